package request

type CreateItemRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=255"`
	Description string  `json:"description" validate:"required,notblank,max=512"`
	Available   *bool   `json:"available" validate:"required"`
	RequestID   *string `json:"request_id" validate:"omitempty,uuid"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,min=1,max=512"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,notblank,max=200"`
}
