package usecase

import (
	"context"
	"fmt"
	"strings"

	"shareit/internal/data/entity"
	"shareit/internal/data/repository"
	"shareit/internal/dto/request"
	"shareit/internal/dto/response"
	"shareit/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ItemService interface {
	CreateItem(ctx context.Context, ownerID string, req *request.CreateItemRequest) (*response.ItemResponse, error)
	UpdateItem(ctx context.Context, ownerID, itemID string, req *request.UpdateItemRequest) (*response.ItemResponse, error)
	// GetItem includes last/next bookings only when the viewer owns the item.
	GetItem(ctx context.Context, viewerID, itemID string) (*response.ItemDetailResponse, error)
	ListOwnerItems(ctx context.Context, ownerID string, page request.PageRequest) ([]response.ItemDetailResponse, error)
	Search(ctx context.Context, text string, page request.PageRequest) ([]response.ItemResponse, error)
	CreateComment(ctx context.Context, authorID, itemID string, req *request.CreateCommentRequest) (*response.CommentResponse, error)
}

type itemService struct {
	repo       *repository.Repository
	clock      utils.Clock
	aggregator *itemBookingAggregator
	log        *zap.Logger
}

func NewItemService(repo *repository.Repository, clock utils.Clock, log *zap.Logger) ItemService {
	return &itemService{
		repo:       repo,
		clock:      clock,
		aggregator: &itemBookingAggregator{bookings: repo.Booking, clock: clock},
		log:        log.With(zap.String("service", "item")),
	}
}

func (s *itemService) CreateItem(ctx context.Context, ownerID string, req *request.CreateItemRequest) (*response.ItemResponse, error) {
	ownerUUID, err := parseID("user", ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUserExists(ctx, ownerUUID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	item := &entity.Item{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:     ownerUUID,
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
	}

	if req.RequestID != nil {
		requestID, err := parseID("request", *req.RequestID)
		if err != nil {
			return nil, err
		}
		itemRequest, err := s.repo.ItemRequest.FindByID(ctx, requestID)
		if err != nil {
			return nil, fmt.Errorf("find item request: %w", err)
		}
		if itemRequest == nil {
			return nil, utils.NotFound("item request %s is not found", requestID)
		}
		item.RequestID = &requestID
	}

	if err := s.repo.Item.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.log.Info("Item created",
		zap.String("item_id", item.ID.String()),
		zap.String("owner_id", ownerUUID.String()))

	resp := response.ItemToResponse(item)
	return &resp, nil
}

func (s *itemService) UpdateItem(ctx context.Context, ownerID, itemID string, req *request.UpdateItemRequest) (*response.ItemResponse, error) {
	ownerUUID, err := parseID("user", ownerID)
	if err != nil {
		return nil, err
	}
	item, err := s.findItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID != ownerUUID {
		return nil, utils.NotAuthorized("user %s does not own item %s", ownerUUID, item.ID)
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	item.UpdatedAt = s.clock.Now()

	if err := s.repo.Item.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.log.Info("Item updated", zap.String("item_id", item.ID.String()))

	resp := response.ItemToResponse(item)
	return &resp, nil
}

func (s *itemService) GetItem(ctx context.Context, viewerID, itemID string) (*response.ItemDetailResponse, error) {
	viewerUUID, err := parseID("user", viewerID)
	if err != nil {
		return nil, err
	}
	item, err := s.findItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	detail, err := s.detail(ctx, viewerUUID, item)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *itemService) ListOwnerItems(ctx context.Context, ownerID string, page request.PageRequest) ([]response.ItemDetailResponse, error) {
	ownerUUID, err := parseID("user", ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUserExists(ctx, ownerUUID); err != nil {
		return nil, err
	}

	items, err := s.repo.Item.FindByOwner(ctx, ownerUUID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list owner items: %w", err)
	}

	out := make([]response.ItemDetailResponse, 0, len(items))
	for _, item := range items {
		detail, err := s.detail(ctx, ownerUUID, item)
		if err != nil {
			return nil, err
		}
		out = append(out, detail)
	}
	return out, nil
}

func (s *itemService) Search(ctx context.Context, text string, page request.PageRequest) ([]response.ItemResponse, error) {
	if strings.TrimSpace(text) == "" {
		return []response.ItemResponse{}, nil
	}

	items, err := s.repo.Item.Search(ctx, text, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return response.ItemsToResponse(items), nil
}

func (s *itemService) CreateComment(ctx context.Context, authorID, itemID string, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, utils.InvalidRequest("comment text should not be blank")
	}

	authorUUID, err := parseID("user", authorID)
	if err != nil {
		return nil, err
	}
	author, err := s.repo.User.FindByID(ctx, authorUUID)
	if err != nil {
		return nil, fmt.Errorf("find author: %w", err)
	}
	if author == nil {
		return nil, utils.NotFound("user %s is not found", authorUUID)
	}

	item, err := s.findItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	finished, err := s.repo.Booking.ExistsFinishedByBookerAndItem(ctx, authorUUID, item.ID, now)
	if err != nil {
		return nil, fmt.Errorf("check finished booking: %w", err)
	}
	if !finished {
		return nil, utils.InvalidRequest("user %s has not completed a booking of item %s", authorUUID, item.ID)
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		ItemID:     item.ID,
		AuthorID:   authorUUID,
		Text:       text,
		AuthorName: author.Name,
	}
	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("item_id", item.ID.String()))

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *itemService) detail(ctx context.Context, viewerID uuid.UUID, item *entity.Item) (response.ItemDetailResponse, error) {
	last, next, err := s.aggregator.aggregate(ctx, viewerID, item)
	if err != nil {
		return response.ItemDetailResponse{}, err
	}

	comments, err := s.repo.Comment.FindByItemID(ctx, item.ID)
	if err != nil {
		return response.ItemDetailResponse{}, fmt.Errorf("list comments: %w", err)
	}

	return response.ItemDetailResponse{
		ItemResponse: response.ItemToResponse(item),
		LastBooking:  response.BookingToShortResponse(last),
		NextBooking:  response.BookingToShortResponse(next),
		Comments:     response.CommentsToResponse(comments),
	}, nil
}

func (s *itemService) findItem(ctx context.Context, itemID string) (*entity.Item, error) {
	id, err := parseID("item", itemID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.Item.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	if item == nil {
		return nil, utils.NotFound("item %s is not found", id)
	}
	return item, nil
}

func (s *itemService) ensureUserExists(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.repo.User.ExistsByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return utils.NotFound("user %s is not found", userID)
	}
	return nil
}
