package request

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,max=255,nospace"`
	Email string `json:"email" validate:"required,email,max=512"`
}

// UpdateUserRequest is a partial update; nil fields are left unchanged.
type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=255,nospace"`
	Email *string `json:"email" validate:"omitempty,email,max=512"`
}
