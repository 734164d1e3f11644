package request

type CustomerRequest struct {
	Name     string   `json:"name" validate:"required,notblank,min=3,max=255"`
	Email    string   `json:"email" validate:"required,email,max=255"`
	Password string   `json:"password" validate:"required,min=6,max=255"`
	Roles    []string `json:"roles" validate:"omitempty,dive,oneof=ROLE_ADMIN ROLE_CUSTOMER"`
	UserID   *string  `json:"userId,omitempty" validate:"omitempty,uuid"`
}

// CustomerUpdateRequest holds only the fields present in the body.
type CustomerUpdateRequest struct {
	Name     *string  `json:"name" validate:"omitempty,notblank,min=3,max=255"`
	Email    *string  `json:"email" validate:"omitempty,email,max=255"`
	Password *string  `json:"password" validate:"omitempty,min=6,max=255"`
	Roles    []string `json:"roles" validate:"omitempty,dive,oneof=ROLE_ADMIN ROLE_CUSTOMER"`
	UserID   *string  `json:"userId,omitempty" validate:"omitempty,uuid"`
}
