package request

type UserRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	FirstName string `json:"firstName" validate:"required,notblank,min=3,max=255"`
	LastName  string `json:"lastName" validate:"required,notblank,min=3,max=255"`
}

type UserUpdateRequest struct {
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	FirstName *string `json:"firstName" validate:"omitempty,notblank,min=3,max=255"`
	LastName  *string `json:"lastName" validate:"omitempty,notblank,min=3,max=255"`
}
