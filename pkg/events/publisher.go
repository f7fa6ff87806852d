package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types published on the bookings topic.
const (
	BookingCreated  = "booking.created"
	BookingApproved = "booking.approved"
	BookingRejected = "booking.rejected"
)

// Envelope is the message written to the broker.
type Envelope struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	Source string          `json:"source"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// BookingEvent describes a booking after a lifecycle change.
type BookingEvent struct {
	BookingID string    `json:"booking_id"`
	ItemID    string    `json:"item_id"`
	OwnerID   string    `json:"owner_id"`
	BookerID  string    `json:"booker_id"`
	Status    string    `json:"status"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// Publisher announces booking lifecycle changes.
type Publisher interface {
	Publish(ctx context.Context, eventType string, event BookingEvent) error
	Close() error
}

// NewEnvelope wraps event with a fresh id.
func NewEnvelope(eventType string, event BookingEvent, at time.Time) (Envelope, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		ID:     uuid.NewString(),
		Type:   eventType,
		Source: "shareit.bookings",
		Time:   at,
		Data:   data,
	}, nil
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, BookingEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
