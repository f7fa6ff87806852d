package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusWaiting  BookingStatus = "WAITING"
	BookingStatusApproved BookingStatus = "APPROVED"
	BookingStatusRejected BookingStatus = "REJECTED"
)

// validTransitions lists the statuses reachable from each status.
// APPROVED and REJECTED are terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusWaiting: {BookingStatusApproved, BookingStatusRejected},
}

// CanTransitionTo reports whether a booking in s may move to target.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// Booking is a request to use an item over [Start, End). Version guards
// concurrent status changes.
type Booking struct {
	Base
	ItemID   uuid.UUID     `db:"item_id"`
	BookerID uuid.UUID     `db:"booker_id"`
	Start    time.Time     `db:"start_date"`
	End      time.Time     `db:"end_date"`
	Status   BookingStatus `db:"status"`
	Version  int64         `db:"version"`

	// Joined read-only projections
	ItemName    string    `db:"item_name"`
	ItemOwnerID uuid.UUID `db:"item_owner_id"`
	BookerName  string    `db:"booker_name"`
}

// Overlaps reports whether the booking window intersects [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && start.Before(b.End)
}
