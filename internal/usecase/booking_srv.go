package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shareit/internal/data/entity"
	"shareit/internal/data/repository"
	"shareit/internal/dto/request"
	"shareit/internal/dto/response"
	"shareit/pkg/events"
	"shareit/pkg/lock"
	"shareit/pkg/metrics"
	"shareit/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errOwnItemBooking = errors.New("requester owns the item")

const defaultPublishTimeout = 5 * time.Second

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	// SetBookingStatus approves or rejects a WAITING booking. Only the item owner may decide.
	SetBookingStatus(ctx context.Context, ownerID, bookingID string, approved bool) (*response.BookingResponse, error)
	// GetBooking is visible to the booker and the item owner only.
	GetBooking(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error)
	ListByBooker(ctx context.Context, userID string, state BookingState) ([]response.BookingResponse, error)
	ListByOwner(ctx context.Context, userID string, state BookingState) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	clock    utils.Clock
	locker   lock.Locker
	lockWait time.Duration
	// publishTimeout bounds how long a slow broker can hold a request.
	publishTimeout time.Duration
	publisher      events.Publisher
	classifier     *temporalClassifier
	log            *zap.Logger
}

func NewBookingService(repo *repository.Repository, infra Infra, config *utils.Config, log *zap.Logger) BookingService {
	lockWait := config.Booking.LockWait
	if lockWait <= 0 {
		lockWait = 3 * time.Second
	}
	return &bookingService{
		repo:           repo,
		clock:          infra.Clock,
		locker:         infra.Locker,
		lockWait:       lockWait,
		publishTimeout: defaultPublishTimeout,
		publisher:      infra.Publisher,
		classifier:     &temporalClassifier{bookings: repo.Booking, clock: infra.Clock},
		log:            log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	start, end := req.Start.Time, req.End.Time
	if err := validateStartBeforeEnd(start, end); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := validateStartNotInPast(start, now); err != nil {
		return nil, err
	}

	bookerID, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}
	itemID, err := parseID("item", req.ItemID)
	if err != nil {
		return nil, err
	}

	booker, err := s.repo.User.FindByID(ctx, bookerID)
	if err != nil {
		return nil, fmt.Errorf("find booker: %w", err)
	}
	if booker == nil {
		return nil, utils.NotFound("user %s is not found", bookerID)
	}

	item, err := s.repo.Item.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	if item == nil {
		return nil, utils.NotFound("item %s is not found", itemID)
	}

	if err := validateItemAvailable(item); err != nil {
		return nil, err
	}
	if err := validateNotOwnItem(bookerID, item); err != nil {
		s.log.Warn("Owner tried to book own item",
			zap.String("user_id", bookerID.String()),
			zap.String("item_id", itemID.String()))
		return nil, err
	}

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ItemID:      itemID,
		BookerID:    bookerID,
		Start:       start,
		End:         end,
		Status:      entity.BookingStatusWaiting,
		Version:     1,
		ItemName:    item.Name,
		ItemOwnerID: item.OwnerID,
		BookerName:  booker.Name,
	}

	err = s.withItemLock(ctx, itemID, func() error {
		overlap, err := s.repo.Booking.HasApprovedOverlap(ctx, itemID, start, end, uuid.Nil)
		if err != nil {
			return fmt.Errorf("check overlap: %w", err)
		}
		if overlap {
			return utils.InvalidRequest("item %s is already booked for the requested period", itemID)
		}
		if err := s.repo.Booking.Create(ctx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("item_id", itemID.String()),
		zap.String("booker_id", bookerID.String()),
		zap.Time("start", start),
		zap.Time("end", end))

	metrics.IncBookingStatus(string(booking.Status))
	s.publish(ctx, events.BookingCreated, booking)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) SetBookingStatus(ctx context.Context, ownerID, bookingID string, approved bool) (*response.BookingResponse, error) {
	ownerUUID, err := parseID("user", ownerID)
	if err != nil {
		return nil, err
	}
	bookingUUID, err := parseID("booking", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUserExists(ctx, ownerUUID); err != nil {
		return nil, err
	}

	booking, err := s.findBooking(ctx, bookingUUID)
	if err != nil {
		return nil, err
	}

	if booking.ItemOwnerID != ownerUUID {
		s.log.Warn("Non-owner tried to decide booking",
			zap.String("user_id", ownerUUID.String()),
			zap.String("booking_id", bookingUUID.String()))
		return nil, utils.NotAuthorized("user %s does not own the item of booking %s", ownerUUID, bookingUUID)
	}

	target := entity.BookingStatusRejected
	if approved {
		target = entity.BookingStatusApproved
		if err := validateNotAlreadyApproved(booking); err != nil {
			return nil, err
		}
	}
	if err := validateAwaitingDecision(booking, target); err != nil {
		return nil, err
	}

	write := func() error {
		err := s.repo.Booking.UpdateStatus(ctx, booking, target, s.clock.Now())
		if errors.Is(err, repository.ErrStaleVersion) {
			return utils.Conflict("booking %s was changed concurrently", bookingUUID).WithCause(err)
		}
		if err != nil {
			return fmt.Errorf("update booking status: %w", err)
		}
		return nil
	}

	if approved {
		err = s.withItemLock(ctx, booking.ItemID, func() error {
			overlap, err := s.repo.Booking.HasApprovedOverlap(ctx, booking.ItemID, booking.Start, booking.End, booking.ID)
			if err != nil {
				return fmt.Errorf("check overlap: %w", err)
			}
			if overlap {
				return utils.Conflict("item %s already has an approved booking in this period", booking.ItemID)
			}
			return write()
		})
	} else {
		err = write()
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking status changed",
		zap.String("booking_id", bookingUUID.String()),
		zap.String("status", string(target)),
		zap.Int64("version", booking.Version))

	metrics.IncBookingStatus(string(target))
	eventType := events.BookingRejected
	if approved {
		eventType = events.BookingApproved
	}
	s.publish(ctx, eventType, booking)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error) {
	userUUID, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}
	bookingUUID, err := parseID("booking", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUserExists(ctx, userUUID); err != nil {
		return nil, err
	}

	booking, err := s.findBooking(ctx, bookingUUID)
	if err != nil {
		return nil, err
	}

	if booking.BookerID != userUUID && booking.ItemOwnerID != userUUID {
		return nil, utils.NotFound("booking %s is not found", bookingUUID)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListByBooker(ctx context.Context, userID string, state BookingState) ([]response.BookingResponse, error) {
	return s.list(ctx, userID, RoleBooker, state)
}

func (s *bookingService) ListByOwner(ctx context.Context, userID string, state BookingState) ([]response.BookingResponse, error) {
	return s.list(ctx, userID, RoleOwner, state)
}

func (s *bookingService) list(ctx context.Context, userID string, role BookingRole, state BookingState) ([]response.BookingResponse, error) {
	userUUID, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUserExists(ctx, userUUID); err != nil {
		return nil, err
	}

	bookings, err := s.classifier.classify(ctx, userUUID, role, state)
	if err != nil {
		return nil, fmt.Errorf("list %s bookings: %w", role, err)
	}

	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) ensureUserExists(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.repo.User.ExistsByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return utils.NotFound("user %s is not found", userID)
	}
	return nil
}

func (s *bookingService) findBooking(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, utils.NotFound("booking %s is not found", id)
	}
	return booking, nil
}

// withItemLock runs fn while holding the item lock. The lock is released
// before withItemLock returns, so callers publish outside it.
func (s *bookingService) withItemLock(ctx context.Context, itemID uuid.UUID, fn func() error) error {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	unlock, err := s.locker.Lock(lockCtx, "item:"+itemID.String())
	if err != nil {
		metrics.IncLockFailure()
		s.log.Warn("Failed to lock item", zap.String("item_id", itemID.String()), zap.Error(err))
		return utils.Conflict("item %s is busy, try again", itemID).WithCause(err)
	}
	defer unlock()

	return fn()
}

// publish is best effort; the booking is already stored.
func (s *bookingService) publish(ctx context.Context, eventType string, b *entity.Booking) {
	event := events.BookingEvent{
		BookingID: b.ID.String(),
		ItemID:    b.ItemID.String(),
		OwnerID:   b.ItemOwnerID.String(),
		BookerID:  b.BookerID.String(),
		Status:    string(b.Status),
		Start:     b.Start,
		End:       b.End,
	}
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(publishCtx, eventType, event); err != nil {
		s.log.Error("Failed to publish booking event",
			zap.String("type", eventType),
			zap.String("booking_id", event.BookingID),
			zap.Error(err))
	}
}
