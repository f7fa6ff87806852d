package usecase

import (
	"context"
	"testing"
	"time"

	"shareit/internal/data/entity"
	"shareit/internal/dto/request"
	"shareit/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestGetItemAggregatesForOwnerOnly(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	last := h.store.addBooking(h.item, h.other,
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), entity.BookingStatusApproved)
	h.store.addBooking(h.item, h.other,
		time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 12, 2, 0, 0, 0, 0, time.UTC), entity.BookingStatusApproved)
	next := h.store.addBooking(h.item, h.other,
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), entity.BookingStatusWaiting)
	h.store.addBooking(h.item, h.other,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), entity.BookingStatusRejected)

	asOwner, err := h.svc.Item.GetItem(ctx, h.owner.ID.String(), h.item.ID.String())
	require.NoError(t, err)
	require.NotNil(t, asOwner.LastBooking)
	require.NotNil(t, asOwner.NextBooking)
	assert.Equal(t, last.ID.String(), asOwner.LastBooking.ID)
	assert.Equal(t, h.other.ID.String(), asOwner.LastBooking.BookerID)
	assert.Equal(t, next.ID.String(), asOwner.NextBooking.ID)

	asOther, err := h.svc.Item.GetItem(ctx, h.other.ID.String(), h.item.ID.String())
	require.NoError(t, err)
	assert.Nil(t, asOther.LastBooking)
	assert.Nil(t, asOther.NextBooking)

	_, err = h.svc.Item.GetItem(ctx, h.owner.ID.String(), uuid.NewString())
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestGetItemWithoutBookings(t *testing.T) {
	h := newHarness(t)

	resp, err := h.svc.Item.GetItem(context.Background(), h.owner.ID.String(), h.item.ID.String())
	require.NoError(t, err)
	assert.Nil(t, resp.LastBooking)
	assert.Nil(t, resp.NextBooking)
	assert.Empty(t, resp.Comments)
}

func TestCreateAndUpdateItem(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	created, err := h.svc.Item.CreateItem(ctx, h.owner.ID.String(), &request.CreateItemRequest{
		Name: "Ladder", Description: "Three metre ladder", Available: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, h.owner.ID.String(), created.OwnerID)
	assert.Nil(t, created.RequestID)

	_, err = h.svc.Item.CreateItem(ctx, uuid.NewString(), &request.CreateItemRequest{
		Name: "Ladder", Description: "x", Available: boolPtr(true),
	})
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	_, err = h.svc.Item.CreateItem(ctx, h.owner.ID.String(), &request.CreateItemRequest{
		Name: "Ladder", Description: "x", Available: boolPtr(true), RequestID: strPtr(uuid.NewString()),
	})
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err), "unknown request")

	updated, err := h.svc.Item.UpdateItem(ctx, h.owner.ID.String(), created.ID, &request.UpdateItemRequest{Available: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.Available)
	assert.Equal(t, "Ladder", updated.Name)

	_, err = h.svc.Item.UpdateItem(ctx, h.other.ID.String(), created.ID, &request.UpdateItemRequest{Name: strPtr("Mine")})
	assert.Equal(t, utils.KindNotAuthorized, utils.KindOf(err))
}

func TestListOwnerItems(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.store.addBooking(h.item, h.other, testNow.Add(time.Hour), testNow.Add(2*time.Hour), entity.BookingStatusWaiting)

	items, err := h.svc.Item.ListOwnerItems(ctx, h.owner.ID.String(), request.DefaultPage())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotNil(t, items[0].NextBooking)

	empty, err := h.svc.Item.ListOwnerItems(ctx, h.other.ID.String(), request.DefaultPage())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSearchItems(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.store.addItem(h.owner, "Hidden drill", false)

	found, err := h.svc.Item.Search(ctx, "dRiLl", request.DefaultPage())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, h.item.ID.String(), found[0].ID)

	blank, err := h.svc.Item.Search(ctx, "   ", request.DefaultPage())
	require.NoError(t, err)
	assert.NotNil(t, blank)
	assert.Empty(t, blank)
}

func TestCreateComment(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	req := &request.CreateCommentRequest{Text: "Works great"}

	_, err := h.svc.Item.CreateComment(ctx, h.other.ID.String(), h.item.ID.String(), req)
	assert.Equal(t, utils.KindInvalidRequest, utils.KindOf(err), "no finished booking yet")

	h.store.addBooking(h.item, h.other, testNow.Add(-48*time.Hour), testNow.Add(-24*time.Hour), entity.BookingStatusRejected)
	_, err = h.svc.Item.CreateComment(ctx, h.other.ID.String(), h.item.ID.String(), req)
	assert.Equal(t, utils.KindInvalidRequest, utils.KindOf(err), "rejected bookings do not count")

	h.store.addBooking(h.item, h.other, testNow.Add(-72*time.Hour), testNow.Add(-50*time.Hour), entity.BookingStatusApproved)
	comment, err := h.svc.Item.CreateComment(ctx, h.other.ID.String(), h.item.ID.String(), req)
	require.NoError(t, err)
	assert.Equal(t, "booker", comment.AuthorName)

	detail, err := h.svc.Item.GetItem(ctx, h.other.ID.String(), h.item.ID.String())
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "Works great", detail.Comments[0].Text)

	_, err = h.svc.Item.CreateComment(ctx, h.other.ID.String(), h.item.ID.String(), &request.CreateCommentRequest{Text: "  "})
	assert.Equal(t, utils.KindInvalidRequest, utils.KindOf(err))
}
