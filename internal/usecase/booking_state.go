package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"shareit/internal/data/entity"
	"shareit/internal/data/repository"
	"shareit/pkg/utils"

	"github.com/google/uuid"
)

// BookingState is a named view over a subject's bookings. The set is closed:
// every value is declared below with its own filter constructor.
type BookingState struct {
	name   string
	filter func(now time.Time) repository.BookingFilter
}

func (s BookingState) String() string {
	return s.name
}

// Filter builds the store predicate for this state as seen at now.
func (s BookingState) Filter(now time.Time) repository.BookingFilter {
	return s.filter(now)
}

func (s BookingState) valid() bool {
	return s.filter != nil
}

func statusFilter(status entity.BookingStatus) func(time.Time) repository.BookingFilter {
	return func(time.Time) repository.BookingFilter {
		return repository.BookingFilter{Status: &status}
	}
}

var (
	StateAll = BookingState{"ALL", func(time.Time) repository.BookingFilter {
		return repository.BookingFilter{}
	}}
	// StateCurrent holds bookings with start <= now < end.
	StateCurrent = BookingState{"CURRENT", func(now time.Time) repository.BookingFilter {
		return repository.BookingFilter{StartAtOrBefore: &now, EndAfter: &now}
	}}
	StatePast = BookingState{"PAST", func(now time.Time) repository.BookingFilter {
		return repository.BookingFilter{EndBefore: &now}
	}}
	StateFuture = BookingState{"FUTURE", func(now time.Time) repository.BookingFilter {
		return repository.BookingFilter{StartAfter: &now}
	}}
	StateWaiting  = BookingState{"WAITING", statusFilter(entity.BookingStatusWaiting)}
	StateRejected = BookingState{"REJECTED", statusFilter(entity.BookingStatusRejected)}
)

var bookingStates = []BookingState{StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected}

// ParseBookingState resolves a query token case-insensitively. Empty means ALL.
func ParseBookingState(raw string) (BookingState, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if token == "" {
		return StateAll, nil
	}
	for _, s := range bookingStates {
		if s.name == token {
			return s, nil
		}
	}
	return BookingState{}, utils.InvalidRequest("Unknown state: %s", raw)
}

// BookingRole selects whose bookings are listed.
type BookingRole int

const (
	RoleBooker BookingRole = iota
	RoleOwner
)

func (r BookingRole) String() string {
	if r == RoleOwner {
		return "owner"
	}
	return "booker"
}

// temporalClassifier lists a subject's bookings in a state, newest start first.
type temporalClassifier struct {
	bookings repository.BookingRepository
	clock    utils.Clock
}

func (c *temporalClassifier) classify(ctx context.Context, subjectID uuid.UUID, role BookingRole, state BookingState) ([]*entity.Booking, error) {
	if !state.valid() {
		return nil, utils.InvalidRequest("Unknown state: %s", state.name)
	}

	filter := state.Filter(c.clock.Now())

	var (
		bookings []*entity.Booking
		err      error
	)
	switch role {
	case RoleOwner:
		bookings, err = c.bookings.FindByOwner(ctx, subjectID, filter)
	default:
		bookings, err = c.bookings.FindByBooker(ctx, subjectID, filter)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].Start.After(bookings[j].Start)
	})
	return bookings, nil
}
