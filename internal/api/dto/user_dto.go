package dto

// CreateUserRequest is the form-encoded user creation payload. Age arrives as
// text and is converted by the handler; a non-integer value counts as absent.
type CreateUserRequest struct {
	FirstName *string `form:"first_name"`
	LastName  *string `form:"last_name"`
	Age       *string `form:"age"`
	Email     *string `form:"email"`
	Role      *string `form:"role"`
	Phone     *string `form:"phone"`
}

// UpdateUserRequest is the partial JSON update payload.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Age       *int    `json:"age"`
	Email     *string `json:"email"`
	Role      *string `json:"role"`
	Phone     *string `json:"phone"`
}
