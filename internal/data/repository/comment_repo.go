package repository

import (
	"context"
	"fmt"

	"shareit/internal/data/entity"
	"shareit/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*entity.Comment, error)
}

type commentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommentRepository(db database.PgxIface, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (id, item_id, author_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, comment.ID, comment.ItemID, comment.AuthorID, comment.Text, comment.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("item_id", comment.ItemID.String()),
			zap.String("author_id", comment.AuthorID.String()),
		)
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

// FindByItemID returns comments oldest first with author names.
func (r *commentRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*entity.Comment, error) {
	query := `
		SELECT c.id, c.item_id, c.author_id, c.text, c.created_at, u.name
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id = $1
		ORDER BY c.created_at, c.id
	`

	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		r.log.Error("Failed to list comments", zap.Error(err), zap.String("item_id", itemID.String()))
		return nil, fmt.Errorf("list comments for item %s: %w", itemID, err)
	}
	defer rows.Close()

	var comments []*entity.Comment
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.ItemID, &c.AuthorID, &c.Text, &c.CreatedAt, &c.AuthorName); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}
