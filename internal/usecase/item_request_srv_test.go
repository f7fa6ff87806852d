package usecase

import (
	"context"
	"testing"

	"shareit/internal/data/entity"
	"shareit/internal/dto/request"
	"shareit/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRequests(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	first, err := h.svc.ItemRequest.CreateRequest(ctx, h.other.ID.String(), &request.CreateItemRequestRequest{Description: "Need a tent"})
	require.NoError(t, err)
	second, err := h.svc.ItemRequest.CreateRequest(ctx, h.other.ID.String(), &request.CreateItemRequestRequest{Description: "Need a kayak"})
	require.NoError(t, err)

	_, err = h.svc.ItemRequest.CreateRequest(ctx, uuid.NewString(), &request.CreateItemRequestRequest{Description: "x"})
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	// the owner answers the first request
	requestID := uuid.MustParse(first.ID)
	answer := entity.Item{Base: entity.Base{ID: uuid.New()}, OwnerID: h.owner.ID, RequestID: &requestID, Name: "Tent", Available: true}
	require.NoError(t, h.repo.Item.Create(ctx, &answer))

	own, err := h.svc.ItemRequest.ListOwnRequests(ctx, h.other.ID.String())
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, second.ID, own[0].ID, "newest first")
	assert.Empty(t, own[0].Items)
	require.Len(t, own[1].Items, 1)
	assert.Equal(t, answer.ID.String(), own[1].Items[0].ID)

	others, err := h.svc.ItemRequest.ListOtherRequests(ctx, h.owner.ID.String(), request.PageRequest{From: 0, Size: 1})
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, second.ID, others[0].ID)

	mine, err := h.svc.ItemRequest.ListOtherRequests(ctx, h.other.ID.String(), request.DefaultPage())
	require.NoError(t, err)
	assert.Empty(t, mine)

	got, err := h.svc.ItemRequest.GetRequest(ctx, h.owner.ID.String(), first.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)

	_, err = h.svc.ItemRequest.GetRequest(ctx, h.owner.ID.String(), uuid.NewString())
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}
