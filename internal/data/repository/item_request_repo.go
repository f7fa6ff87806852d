package repository

import (
	"context"
	"errors"
	"fmt"

	"shareit/internal/data/entity"
	"shareit/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ItemRequestRepository interface {
	Create(ctx context.Context, request *entity.ItemRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ItemRequest, error)
	// FindByRequester returns the requester's own requests, newest first.
	FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]*entity.ItemRequest, error)
	// FindOthers returns everyone else's requests, newest first.
	FindOthers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.ItemRequest, error)
}

type itemRequestRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewItemRequestRepository(db database.PgxIface, log *zap.Logger) ItemRequestRepository {
	return &itemRequestRepository{
		db:  db,
		log: log.With(zap.String("repository", "item_request")),
	}
}

func (r *itemRequestRepository) Create(ctx context.Context, request *entity.ItemRequest) error {
	query := `
		INSERT INTO item_requests (id, requester_id, description, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, request.ID, request.RequesterID, request.Description, request.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create item request", zap.Error(err), zap.String("requester_id", request.RequesterID.String()))
		return fmt.Errorf("create item request: %w", err)
	}

	return nil
}

func (r *itemRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ItemRequest, error) {
	query := `
		SELECT id, requester_id, description, created_at
		FROM item_requests
		WHERE id = $1
	`

	var req entity.ItemRequest
	err := r.db.QueryRow(ctx, query, id).Scan(&req.ID, &req.RequesterID, &req.Description, &req.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find item request", zap.Error(err), zap.String("request_id", id.String()))
		return nil, fmt.Errorf("find item request %s: %w", id, err)
	}

	return &req, nil
}

func (r *itemRequestRepository) FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]*entity.ItemRequest, error) {
	query := `
		SELECT id, requester_id, description, created_at
		FROM item_requests
		WHERE requester_id = $1
		ORDER BY created_at DESC, id
	`
	return r.list(ctx, query, requesterID)
}

func (r *itemRequestRepository) FindOthers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.ItemRequest, error) {
	query := `
		SELECT id, requester_id, description, created_at
		FROM item_requests
		WHERE requester_id <> $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, userID, limit, offset)
}

func (r *itemRequestRepository) list(ctx context.Context, query string, args ...any) ([]*entity.ItemRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list item requests", zap.Error(err))
		return nil, fmt.Errorf("list item requests: %w", err)
	}
	defer rows.Close()

	var requests []*entity.ItemRequest
	for rows.Next() {
		var req entity.ItemRequest
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.Description, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item request: %w", err)
		}
		requests = append(requests, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item requests: %w", err)
	}

	return requests, nil
}
