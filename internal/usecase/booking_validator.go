package usecase

import (
	"time"

	"shareit/internal/data/entity"
	"shareit/pkg/utils"

	"github.com/google/uuid"
)

// Booking rules. Each returns nil or a typed AppError and has no side effects.

func validateStartBeforeEnd(start, end time.Time) error {
	if !start.Before(end) {
		return utils.InvalidRequest("booking start should be before booking end")
	}
	return nil
}

func validateStartNotInPast(start, now time.Time) error {
	if start.Before(now) {
		return utils.InvalidRequest("booking start should not be in the past")
	}
	return nil
}

func validateItemAvailable(item *entity.Item) error {
	if !item.Available {
		return utils.InvalidRequest("item %s is not available", item.ID)
	}
	return nil
}

// validateNotOwnItem hides the ownership fact behind a not-found message.
func validateNotOwnItem(requesterID uuid.UUID, item *entity.Item) error {
	if requesterID == item.OwnerID {
		return utils.NotAllowed("item %s is not found", item.ID).
			WithCause(errOwnItemBooking)
	}
	return nil
}

func validateNotAlreadyApproved(booking *entity.Booking) error {
	if booking.Status == entity.BookingStatusApproved {
		return utils.InvalidRequest("booking %s is already approved", booking.ID)
	}
	return nil
}

// validateAwaitingDecision accepts only bookings that may still move to target.
func validateAwaitingDecision(booking *entity.Booking, target entity.BookingStatus) error {
	if !booking.Status.CanTransitionTo(target) {
		return utils.InvalidRequest("booking %s is already %s", booking.ID, booking.Status)
	}
	return nil
}
