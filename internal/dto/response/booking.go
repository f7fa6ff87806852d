package response

import (
	"time"

	"shareit/internal/data/entity"
)

type UserShortResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ItemShortResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     string               `json:"id"`
	Start  time.Time            `json:"start"`
	End    time.Time            `json:"end"`
	Status entity.BookingStatus `json:"status"`
	Booker UserShortResponse    `json:"booker"`
	Item   ItemShortResponse    `json:"item"`
}

// BookingShortResponse is the narrow view shown on an owner's item.
type BookingShortResponse struct {
	ID       string               `json:"id"`
	BookerID string               `json:"booker_id"`
	ItemID   string               `json:"item_id"`
	Status   entity.BookingStatus `json:"status"`
	Start    time.Time            `json:"start"`
	End      time.Time            `json:"end"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID.String(),
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Booker: UserShortResponse{ID: b.BookerID.String(), Name: b.BookerName},
		Item:   ItemShortResponse{ID: b.ItemID.String(), Name: b.ItemName},
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingToResponse(b))
	}
	return out
}

// BookingToShortResponse returns nil for a nil booking.
func BookingToShortResponse(b *entity.Booking) *BookingShortResponse {
	if b == nil {
		return nil
	}
	return &BookingShortResponse{
		ID:       b.ID.String(),
		BookerID: b.BookerID.String(),
		ItemID:   b.ItemID.String(),
		Status:   b.Status,
		Start:    b.Start,
		End:      b.End,
	}
}
