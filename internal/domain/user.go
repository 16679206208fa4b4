package domain

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleMechanic UserRole = "mechanic"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Specialization string

const (
	SpecEngine       Specialization = "engine"
	SpecElectrical   Specialization = "electrical"
	SpecBrake        Specialization = "brake"
	SpecSuspension   Specialization = "suspension"
	SpecTransmission Specialization = "transmission"
	SpecBody         Specialization = "body"
	SpecAll          Specialization = "all"
)

// MechanicProfile carries dispatch-relevant state for a mechanic.
// IsAvailable is read when building the offer snapshot for a new booking;
// TotalJobs is incremented inside the accept transaction.
type MechanicProfile struct {
	ID                int64          `json:"id"`
	UserID            int64          `json:"user_id" gorm:"uniqueIndex"`
	Specialization    Specialization `json:"specialization"`
	YearsOfExperience int            `json:"years_of_experience"`
	Certification     string         `json:"certification,omitempty"`
	Bio               string         `json:"bio,omitempty" gorm:"type:text"`
	IsAvailable       bool           `json:"is_available"`
	Rating            float64        `json:"rating"`
	TotalJobs         int            `json:"total_jobs"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (MechanicProfile) TableName() string { return "mechanic_profiles" }
