package request

type CreateBookingRequest struct {
	ItemID string     `json:"item_id" validate:"required,uuid"`
	Start  *Timestamp `json:"start" validate:"required"`
	End    *Timestamp `json:"end" validate:"required"`
}
