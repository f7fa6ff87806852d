package adaptor

import (
	"context"

	"shareit/internal/dto/request"
	"shareit/internal/dto/response"
	"shareit/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *mockBookingService) SetBookingStatus(ctx context.Context, ownerID, bookingID string, approved bool) (*response.BookingResponse, error) {
	args := m.Called(ctx, ownerID, bookingID, approved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *mockBookingService) GetBooking(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *mockBookingService) ListByBooker(ctx context.Context, userID string, state usecase.BookingState) ([]response.BookingResponse, error) {
	args := m.Called(ctx, userID, state.String())
	return args.Get(0).([]response.BookingResponse), args.Error(1)
}

func (m *mockBookingService) ListByOwner(ctx context.Context, userID string, state usecase.BookingState) ([]response.BookingResponse, error) {
	args := m.Called(ctx, userID, state.String())
	return args.Get(0).([]response.BookingResponse), args.Error(1)
}

type mockItemService struct {
	mock.Mock
}

func (m *mockItemService) CreateItem(ctx context.Context, ownerID string, req *request.CreateItemRequest) (*response.ItemResponse, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ItemResponse), args.Error(1)
}

func (m *mockItemService) UpdateItem(ctx context.Context, ownerID, itemID string, req *request.UpdateItemRequest) (*response.ItemResponse, error) {
	args := m.Called(ctx, ownerID, itemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ItemResponse), args.Error(1)
}

func (m *mockItemService) GetItem(ctx context.Context, viewerID, itemID string) (*response.ItemDetailResponse, error) {
	args := m.Called(ctx, viewerID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ItemDetailResponse), args.Error(1)
}

func (m *mockItemService) ListOwnerItems(ctx context.Context, ownerID string, page request.PageRequest) ([]response.ItemDetailResponse, error) {
	args := m.Called(ctx, ownerID, page)
	return args.Get(0).([]response.ItemDetailResponse), args.Error(1)
}

func (m *mockItemService) Search(ctx context.Context, text string, page request.PageRequest) ([]response.ItemResponse, error) {
	args := m.Called(ctx, text, page)
	return args.Get(0).([]response.ItemResponse), args.Error(1)
}

func (m *mockItemService) CreateComment(ctx context.Context, authorID, itemID string, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	args := m.Called(ctx, authorID, itemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.CommentResponse), args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.UserResponse), args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, userID string) (*response.UserResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.UserResponse), args.Error(1)
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]response.UserResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]response.UserResponse), args.Error(1)
}

func (m *mockUserService) UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.UserResponse), args.Error(1)
}

func (m *mockUserService) DeleteUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockItemRequestService struct {
	mock.Mock
}

func (m *mockItemRequestService) CreateRequest(ctx context.Context, userID string, req *request.CreateItemRequestRequest) (*response.ItemRequestResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ItemRequestResponse), args.Error(1)
}

func (m *mockItemRequestService) ListOwnRequests(ctx context.Context, userID string) ([]response.ItemRequestResponse, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]response.ItemRequestResponse), args.Error(1)
}

func (m *mockItemRequestService) ListOtherRequests(ctx context.Context, userID string, page request.PageRequest) ([]response.ItemRequestResponse, error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).([]response.ItemRequestResponse), args.Error(1)
}

func (m *mockItemRequestService) GetRequest(ctx context.Context, userID, requestID string) (*response.ItemRequestResponse, error) {
	args := m.Called(ctx, userID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ItemRequestResponse), args.Error(1)
}
