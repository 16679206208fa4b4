package booking

import "time"

type CreateBookingRequest struct {
	MotorcycleID       int64     `json:"motorcycle_id" validate:"required,gt=0"`
	ProblemDescription string    `json:"problem_description" validate:"required,min=3"`
	AppointmentDate    time.Time `json:"appointment_date" validate:"required"`
	EstimatedCost      *float64  `json:"estimated_cost,omitempty" validate:"omitempty,gte=0"`
}

type CompleteWorkRequest struct {
	ActualCost  float64 `json:"actual_cost" validate:"required,gte=0"`
	RepairNotes string  `json:"repair_notes" validate:"required,min=3"`
}

type CreateMotorcycleRequest struct {
	Brand        string `json:"brand" validate:"required"`
	Model        string `json:"model" validate:"required"`
	Year         int    `json:"year" validate:"required,gte=1900,lte=2100"`
	CC           int    `json:"cc" validate:"gte=0"`
	BikeType     string `json:"bike_type" validate:"required"`
	LicensePlate string `json:"license_plate" validate:"required"`
	Color        string `json:"color"`
	Mileage      int    `json:"mileage" validate:"gte=0"`
	Notes        string `json:"notes"`
}

type UpdateMotorcycleRequest struct {
	Brand    string `json:"brand" validate:"required"`
	Model    string `json:"model" validate:"required"`
	Year     int    `json:"year" validate:"required,gte=1900,lte=2100"`
	CC       int    `json:"cc" validate:"gte=0"`
	BikeType string `json:"bike_type" validate:"required"`
	Color    string `json:"color"`
	Mileage  int    `json:"mileage" validate:"gte=0"`
	Notes    string `json:"notes"`
}
