package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shareit/internal/data/entity"
	"shareit/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByBooker(ctx context.Context, bookerID uuid.UUID, filter BookingFilter) ([]*entity.Booking, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter BookingFilter) ([]*entity.Booking, error)

	// FindLastEndedBefore returns the booking of itemID with the greatest end before now.
	FindLastEndedBefore(ctx context.Context, itemID uuid.UUID, now time.Time) (*entity.Booking, error)
	// FindNextStartingAfter returns the booking of itemID with the smallest start after now.
	FindNextStartingAfter(ctx context.Context, itemID uuid.UUID, now time.Time) (*entity.Booking, error)

	// UpdateStatus moves booking to status if its version is unchanged and
	// bumps the version. It returns ErrStaleVersion otherwise.
	UpdateStatus(ctx context.Context, booking *entity.Booking, status entity.BookingStatus, now time.Time) error

	HasApprovedOverlap(ctx context.Context, itemID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error)
	ExistsFinishedByBookerAndItem(ctx context.Context, bookerID, itemID uuid.UUID, now time.Time) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.ItemID,
		&b.BookerID,
		&b.Start,
		&b.End,
		&b.Status,
		&b.Version,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.ItemName,
		&b.ItemOwnerID,
		&b.BookerName,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, item_id, booker_id, start_date, end_date, status, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ItemID,
		booking.BookerID,
		booking.Start,
		booking.End,
		booking.Status,
		booking.Version,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("item_id", booking.ItemID.String()),
			zap.String("booker_id", booking.BookerID.String()),
		)
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := bookingSelect + "\tWHERE b.id = $1"

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("find booking %s: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByBooker(ctx context.Context, bookerID uuid.UUID, filter BookingFilter) ([]*entity.Booking, error) {
	query, args := buildBookingListQuery("b.booker_id", bookerID, filter)
	return r.list(ctx, "booker", bookerID, query, args)
}

func (r *bookingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter BookingFilter) ([]*entity.Booking, error) {
	query, args := buildBookingListQuery("i.owner_id", ownerID, filter)
	return r.list(ctx, "owner", ownerID, query, args)
}

func (r *bookingRepository) list(ctx context.Context, role string, subjectID uuid.UUID, query string, args []any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.String("role", role),
			zap.String("subject_id", subjectID.String()),
		)
		return nil, fmt.Errorf("list bookings by %s %s: %w", role, subjectID, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) FindLastEndedBefore(ctx context.Context, itemID uuid.UUID, now time.Time) (*entity.Booking, error) {
	query := bookingSelect + `
		WHERE b.item_id = $1 AND b.end_date < $2
		ORDER BY b.end_date DESC
		LIMIT 1
	`
	return r.findOne(ctx, query, itemID, now)
}

func (r *bookingRepository) FindNextStartingAfter(ctx context.Context, itemID uuid.UUID, now time.Time) (*entity.Booking, error) {
	query := bookingSelect + `
		WHERE b.item_id = $1 AND b.start_date > $2
		ORDER BY b.start_date ASC
		LIMIT 1
	`
	return r.findOne(ctx, query, itemID, now)
}

func (r *bookingRepository) findOne(ctx context.Context, query string, itemID uuid.UUID, now time.Time) (*entity.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx, query, itemID, now))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find item booking", zap.Error(err), zap.String("item_id", itemID.String()))
		return nil, fmt.Errorf("find booking for item %s: %w", itemID, err)
	}
	return booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, booking *entity.Booking, status entity.BookingStatus, now time.Time) error {
	query := `
		UPDATE bookings
		SET status = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4
	`

	result, err := r.db.Exec(ctx, query, status, now, booking.ID, booking.Version)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status: %w", booking.ID, err)
	}

	if result.RowsAffected() == 0 {
		return ErrStaleVersion
	}

	booking.Status = status
	booking.Version++
	booking.UpdatedAt = now
	return nil
}

func (r *bookingRepository) HasApprovedOverlap(ctx context.Context, itemID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE item_id = $1 AND status = $2 AND id <> $3
			  AND start_date < $5 AND end_date > $4
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, itemID, entity.BookingStatusApproved, excludeID, start, end).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check booking overlap", zap.Error(err), zap.String("item_id", itemID.String()))
		return false, fmt.Errorf("check overlap for item %s: %w", itemID, err)
	}
	return exists, nil
}

func (r *bookingRepository) ExistsFinishedByBookerAndItem(ctx context.Context, bookerID, itemID uuid.UUID, now time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE booker_id = $1 AND item_id = $2 AND status = $3 AND end_date < $4
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, bookerID, itemID, entity.BookingStatusApproved, now).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check finished booking",
			zap.Error(err),
			zap.String("booker_id", bookerID.String()),
			zap.String("item_id", itemID.String()),
		)
		return false, fmt.Errorf("check finished booking: %w", err)
	}
	return exists, nil
}
