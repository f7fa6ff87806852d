package request

type CreateItemRequestRequest struct {
	Description string `json:"description" validate:"required,notblank,max=512"`
}
