package repository

import (
	"fmt"
	"strings"
	"time"

	"shareit/internal/data/entity"

	"github.com/google/uuid"
)

// BookingFilter narrows a booking listing. Nil fields are ignored.
type BookingFilter struct {
	StartAtOrBefore *time.Time
	StartAfter      *time.Time
	EndAfter        *time.Time
	EndBefore       *time.Time
	Status          *entity.BookingStatus
}

// Matches applies the filter to a single booking in memory.
func (f BookingFilter) Matches(b *entity.Booking) bool {
	if f.StartAtOrBefore != nil && b.Start.After(*f.StartAtOrBefore) {
		return false
	}
	if f.StartAfter != nil && !b.Start.After(*f.StartAfter) {
		return false
	}
	if f.EndAfter != nil && !b.End.After(*f.EndAfter) {
		return false
	}
	if f.EndBefore != nil && !b.End.Before(*f.EndBefore) {
		return false
	}
	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	return true
}

const bookingSelect = `
	SELECT b.id, b.item_id, b.booker_id, b.start_date, b.end_date, b.status, b.version,
	       b.created_at, b.updated_at, i.name, i.owner_id, u.name
	FROM bookings b
	JOIN items i ON i.id = b.item_id
	JOIN users u ON u.id = b.booker_id
`

// buildBookingListQuery selects the bookings where subjectColumn equals
// subjectID and the filter holds, newest start first.
func buildBookingListQuery(subjectColumn string, subjectID uuid.UUID, f BookingFilter) (string, []any) {
	conds := []string{subjectColumn + " = $1"}
	args := []any{subjectID}

	add := func(expr string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if f.StartAtOrBefore != nil {
		add("b.start_date <= $%d", *f.StartAtOrBefore)
	}
	if f.StartAfter != nil {
		add("b.start_date > $%d", *f.StartAfter)
	}
	if f.EndAfter != nil {
		add("b.end_date > $%d", *f.EndAfter)
	}
	if f.EndBefore != nil {
		add("b.end_date < $%d", *f.EndBefore)
	}
	if f.Status != nil {
		add("b.status = $%d", *f.Status)
	}

	query := bookingSelect + "\tWHERE " + strings.Join(conds, " AND ") + "\n\tORDER BY b.start_date DESC, b.id\n"
	return query, args
}
