package profile

type UpdateProfileRequest struct {
	Periodo int `json:"periodo" validate:"required,min=1,max=12"`
}
