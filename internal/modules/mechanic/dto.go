package mechanic

type UpdateProfileRequest struct {
	Specialization    string `json:"specialization" validate:"required,oneof=engine electrical brake suspension transmission body all"`
	YearsOfExperience int    `json:"years_of_experience" validate:"gte=0,lte=80"`
	Certification     string `json:"certification"`
	Bio               string `json:"bio" validate:"max=2000"`
}

type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}
