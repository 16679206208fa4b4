package domain

import "time"

type BikeType string

const (
	BikeStandard  BikeType = "standard"
	BikeSport     BikeType = "sport"
	BikeCruiser   BikeType = "cruiser"
	BikeTouring   BikeType = "touring"
	BikeAdventure BikeType = "adventure"
	BikeSuperbike BikeType = "superbike"
	BikeOther     BikeType = "other"
)

type Motorcycle struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"owner_id"`
	Brand        string    `json:"brand" validate:"required"`
	Model        string    `json:"model" validate:"required"`
	Year         int       `json:"year"`
	CC           int       `json:"cc"`
	BikeType     BikeType  `json:"bike_type"`
	LicensePlate string    `json:"license_plate" gorm:"uniqueIndex" validate:"required"`
	Color        string    `json:"color,omitempty"`
	Mileage      int       `json:"mileage"`
	Notes        string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Motorcycle) TableName() string { return "motorcycles" }
