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

type ItemRequestService interface {
	CreateRequest(ctx context.Context, userID string, req *request.CreateItemRequestRequest) (*response.ItemRequestResponse, error)
	ListOwnRequests(ctx context.Context, userID string) ([]response.ItemRequestResponse, error)
	ListOtherRequests(ctx context.Context, userID string, page request.PageRequest) ([]response.ItemRequestResponse, error)
	GetRequest(ctx context.Context, userID, requestID string) (*response.ItemRequestResponse, error)
}

type itemRequestService struct {
	repo  *repository.Repository
	clock utils.Clock
	log   *zap.Logger
}

func NewItemRequestService(repo *repository.Repository, clock utils.Clock, log *zap.Logger) ItemRequestService {
	return &itemRequestService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "item_request")),
	}
}

func (s *itemRequestService) CreateRequest(ctx context.Context, userID string, req *request.CreateItemRequestRequest) (*response.ItemRequestResponse, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, utils.InvalidRequest("request description should not be blank")
	}

	requesterID, err := s.existingUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	itemRequest := &entity.ItemRequest{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: s.clock.Now()},
		RequesterID: requesterID,
		Description: description,
	}
	if err := s.repo.ItemRequest.Create(ctx, itemRequest); err != nil {
		return nil, fmt.Errorf("create item request: %w", err)
	}

	s.log.Info("Item request created",
		zap.String("request_id", itemRequest.ID.String()),
		zap.String("requester_id", requesterID.String()))

	resp := response.ItemRequestToResponse(itemRequest, nil)
	return &resp, nil
}

func (s *itemRequestService) ListOwnRequests(ctx context.Context, userID string) ([]response.ItemRequestResponse, error) {
	requesterID, err := s.existingUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.ItemRequest.FindByRequester(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("list own requests: %w", err)
	}
	return s.withItems(ctx, requests)
}

func (s *itemRequestService) ListOtherRequests(ctx context.Context, userID string, page request.PageRequest) ([]response.ItemRequestResponse, error) {
	viewerID, err := s.existingUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.ItemRequest.FindOthers(ctx, viewerID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list other requests: %w", err)
	}
	return s.withItems(ctx, requests)
}

func (s *itemRequestService) GetRequest(ctx context.Context, userID, requestID string) (*response.ItemRequestResponse, error) {
	if _, err := s.existingUser(ctx, userID); err != nil {
		return nil, err
	}

	id, err := parseID("request", requestID)
	if err != nil {
		return nil, err
	}
	itemRequest, err := s.repo.ItemRequest.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find item request: %w", err)
	}
	if itemRequest == nil {
		return nil, utils.NotFound("item request %s is not found", id)
	}

	out, err := s.withItems(ctx, []*entity.ItemRequest{itemRequest})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// withItems attaches the items listed in answer to each request.
func (s *itemRequestService) withItems(ctx context.Context, requests []*entity.ItemRequest) ([]response.ItemRequestResponse, error) {
	ids := make([]uuid.UUID, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}

	items, err := s.repo.Item.FindByRequestIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find answering items: %w", err)
	}

	byRequest := make(map[uuid.UUID][]*entity.Item)
	for _, item := range items {
		if item.RequestID != nil {
			byRequest[*item.RequestID] = append(byRequest[*item.RequestID], item)
		}
	}

	out := make([]response.ItemRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, response.ItemRequestToResponse(r, byRequest[r.ID]))
	}
	return out, nil
}

func (s *itemRequestService) existingUser(ctx context.Context, userID string) (uuid.UUID, error) {
	id, err := parseID("user", userID)
	if err != nil {
		return uuid.Nil, err
	}
	exists, err := s.repo.User.ExistsByID(ctx, id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return uuid.Nil, utils.NotFound("user %s is not found", id)
	}
	return id, nil
}
