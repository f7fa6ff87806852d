package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shareit/internal/data/entity"
	"shareit/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Item, error)
	FindByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) ([]*entity.Item, error)
	// Search matches text case-insensitively against name or description of available items.
	Search(ctx context.Context, text string, limit, offset int) ([]*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
}

type itemRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewItemRepository(db database.PgxIface, log *zap.Logger) ItemRepository {
	return &itemRepository{
		db:  db,
		log: log.With(zap.String("repository", "item")),
	}
}

const itemColumns = `id, owner_id, request_id, name, description, available, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var item entity.Item
	err := row.Scan(
		&item.ID,
		&item.OwnerID,
		&item.RequestID,
		&item.Name,
		&item.Description,
		&item.Available,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.OwnerID,
		item.RequestID,
		item.Name,
		item.Description,
		item.Available,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create item", zap.Error(err), zap.String("owner_id", item.OwnerID.String()))
		return fmt.Errorf("create item: %w", err)
	}

	return nil
}

func (r *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find item by ID", zap.Error(err), zap.String("item_id", id.String()))
		return nil, fmt.Errorf("find item %s: %w", id, err)
	}

	return item, nil
}

func (r *itemRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE owner_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, ownerID, limit, offset)
}

func (r *itemRepository) FindByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) ([]*entity.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE request_id = ANY($1)
		ORDER BY created_at, id
	`
	return r.list(ctx, query, requestIDs)
}

func (r *itemRepository) Search(ctx context.Context, text string, limit, offset int) ([]*entity.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE available
		  AND (name ILIKE '%' || $1 || '%' ESCAPE '\' OR description ILIKE '%' || $1 || '%' ESCAPE '\')
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, escapeLike(text), limit, offset)
}

func (r *itemRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list items", zap.Error(err))
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return items, nil
}

func (r *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $1, description = $2, available = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.db.Exec(ctx, query, item.Name, item.Description, item.Available, item.UpdatedAt, item.ID)
	if err != nil {
		r.log.Error("Failed to update item", zap.Error(err), zap.String("item_id", item.ID.String()))
		return fmt.Errorf("update item %s: %w", item.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("item %s not found", item.ID)
	}

	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user text match literally inside ILIKE.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
