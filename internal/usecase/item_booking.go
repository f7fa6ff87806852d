package usecase

import (
	"context"
	"fmt"

	"shareit/internal/data/entity"
	"shareit/internal/data/repository"
	"shareit/pkg/utils"

	"github.com/google/uuid"
)

// itemBookingAggregator derives the owner-only last/next booking of an item.
type itemBookingAggregator struct {
	bookings repository.BookingRepository
	clock    utils.Clock
}

// aggregate returns nil, nil for anyone but the owner.
func (a *itemBookingAggregator) aggregate(ctx context.Context, viewerID uuid.UUID, item *entity.Item) (last, next *entity.Booking, err error) {
	if viewerID != item.OwnerID {
		return nil, nil, nil
	}

	now := a.clock.Now()

	last, err = a.bookings.FindLastEndedBefore(ctx, item.ID, now)
	if err != nil {
		return nil, nil, fmt.Errorf("last booking of item %s: %w", item.ID, err)
	}

	next, err = a.bookings.FindNextStartingAfter(ctx, item.ID, now)
	if err != nil {
		return nil, nil, fmt.Errorf("next booking of item %s: %w", item.ID, err)
	}

	return last, next, nil
}
