package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"shareit/internal/data/entity"
	"shareit/internal/data/repository"
	"shareit/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// store is an in-memory stand-in for the Postgres repositories.
type store struct {
	mu       sync.Mutex
	users    map[uuid.UUID]entity.User
	items    map[uuid.UUID]entity.Item
	bookings []entity.Booking
	comments []entity.Comment
	requests []entity.ItemRequest
}

func newStore() *store {
	return &store{
		users: make(map[uuid.UUID]entity.User),
		items: make(map[uuid.UUID]entity.Item),
	}
}

func (s *store) repository() *repository.Repository {
	return &repository.Repository{
		User:        &fakeUserRepo{s},
		Item:        &fakeItemRepo{s},
		Booking:     &fakeBookingRepo{s},
		Comment:     &fakeCommentRepo{s},
		ItemRequest: &fakeItemRequestRepo{s},
	}
}

func (s *store) addUser(name string) entity.User {
	u := entity.User{Base: entity.Base{ID: uuid.New()}, Name: name, Email: name + "@mail.com"}
	s.mu.Lock()
	s.users[u.ID] = u
	s.mu.Unlock()
	return u
}

func (s *store) addItem(owner entity.User, name string, available bool) entity.Item {
	item := entity.Item{Base: entity.Base{ID: uuid.New()}, OwnerID: owner.ID, Name: name, Description: name, Available: available}
	s.mu.Lock()
	s.items[item.ID] = item
	s.mu.Unlock()
	return item
}

func (s *store) addBooking(item entity.Item, booker entity.User, start, end time.Time, status entity.BookingStatus) entity.Booking {
	b := entity.Booking{
		Base:     entity.Base{ID: uuid.New()},
		ItemID:   item.ID,
		BookerID: booker.ID,
		Start:    start,
		End:      end,
		Status:   status,
		Version:  1,
	}
	s.mu.Lock()
	s.bookings = append(s.bookings, b)
	s.mu.Unlock()
	return b
}

// project fills the joined fields the way the SQL join does. Caller holds mu.
func (s *store) project(b entity.Booking) *entity.Booking {
	item := s.items[b.ItemID]
	b.ItemName = item.Name
	b.ItemOwnerID = item.OwnerID
	b.BookerName = s.users[b.BookerID].Name
	return &b
}

type fakeUserRepo struct{ s *store }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		u := u
		out = append(out, &u)
	}
	return out, nil
}

func (r *fakeUserRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.users[id]
	return ok, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, u := range r.s.users {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range r.s.items {
		if item.OwnerID == id {
			return repository.ErrReferenced
		}
	}
	delete(r.s.users, id)
	return nil
}

type fakeItemRepo struct{ s *store }

func (r *fakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *fakeItemRepo) FindByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Item
	for _, item := range r.s.items {
		if item.OwnerID == ownerID {
			item := item
			out = append(out, &item)
		}
	}
	return page(out, limit, offset), nil
}

func (r *fakeItemRepo) FindByRequestIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*entity.Item
	for _, item := range r.s.items {
		if item.RequestID != nil && wanted[*item.RequestID] {
			item := item
			out = append(out, &item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Search(_ context.Context, text string, limit, offset int) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Item
	for _, item := range r.s.items {
		if item.Available && (containsFold(item.Name, text) || containsFold(item.Description, text)) {
			item := item
			out = append(out, &item)
		}
	}
	return page(out, limit, offset), nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[item.ID] = *item
	return nil
}

type fakeBookingRepo struct{ s *store }

func (r *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.bookings = append(r.s.bookings, *booking)
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bookings {
		if b.ID == id {
			return r.s.project(b), nil
		}
	}
	return nil, nil
}

// FindByBooker returns insertion order; sorting is the caller's job.
func (r *fakeBookingRepo) FindByBooker(_ context.Context, bookerID uuid.UUID, filter repository.BookingFilter) ([]*entity.Booking, error) {
	return r.find(func(b *entity.Booking) bool { return b.BookerID == bookerID }, filter), nil
}

func (r *fakeBookingRepo) FindByOwner(_ context.Context, ownerID uuid.UUID, filter repository.BookingFilter) ([]*entity.Booking, error) {
	return r.find(func(b *entity.Booking) bool { return b.ItemOwnerID == ownerID }, filter), nil
}

func (r *fakeBookingRepo) find(subject func(*entity.Booking) bool, filter repository.BookingFilter) []*entity.Booking {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		p := r.s.project(b)
		if subject(p) && filter.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func (r *fakeBookingRepo) FindLastEndedBefore(_ context.Context, itemID uuid.UUID, now time.Time) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var best *entity.Booking
	for _, b := range r.s.bookings {
		if b.ItemID == itemID && b.End.Before(now) && (best == nil || b.End.After(best.End)) {
			best = r.s.project(b)
		}
	}
	return best, nil
}

func (r *fakeBookingRepo) FindNextStartingAfter(_ context.Context, itemID uuid.UUID, now time.Time) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var best *entity.Booking
	for _, b := range r.s.bookings {
		if b.ItemID == itemID && b.Start.After(now) && (best == nil || b.Start.Before(best.Start)) {
			best = r.s.project(b)
		}
	}
	return best, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, booking *entity.Booking, status entity.BookingStatus, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, b := range r.s.bookings {
		if b.ID != booking.ID {
			continue
		}
		if b.Version != booking.Version {
			return repository.ErrStaleVersion
		}
		r.s.bookings[i].Status = status
		r.s.bookings[i].Version++
		r.s.bookings[i].UpdatedAt = now
		booking.Status = status
		booking.Version++
		booking.UpdatedAt = now
		return nil
	}
	return repository.ErrStaleVersion
}

func (r *fakeBookingRepo) HasApprovedOverlap(_ context.Context, itemID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bookings {
		if b.ItemID == itemID && b.ID != excludeID && b.Status == entity.BookingStatusApproved && b.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) ExistsFinishedByBookerAndItem(_ context.Context, bookerID, itemID uuid.UUID, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bookings {
		if b.BookerID == bookerID && b.ItemID == itemID && b.Status == entity.BookingStatusApproved && b.End.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

type fakeCommentRepo struct{ s *store }

func (r *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.comments = append(r.s.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) FindByItemID(_ context.Context, itemID uuid.UUID) ([]*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Comment
	for _, c := range r.s.comments {
		if c.ItemID == itemID {
			c := c
			c.AuthorName = r.s.users[c.AuthorID].Name
			out = append(out, &c)
		}
	}
	return out, nil
}

type fakeItemRequestRepo struct{ s *store }

func (r *fakeItemRequestRepo) Create(_ context.Context, req *entity.ItemRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.requests = append(r.s.requests, *req)
	return nil
}

func (r *fakeItemRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ItemRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, req := range r.s.requests {
		if req.ID == id {
			req := req
			return &req, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRequestRepo) FindByRequester(_ context.Context, requesterID uuid.UUID) ([]*entity.ItemRequest, error) {
	return r.find(func(req entity.ItemRequest) bool { return req.RequesterID == requesterID }, 0, 0), nil
}

func (r *fakeItemRequestRepo) FindOthers(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.ItemRequest, error) {
	return r.find(func(req entity.ItemRequest) bool { return req.RequesterID != userID }, limit, offset), nil
}

// find returns matches newest first.
func (r *fakeItemRequestRepo) find(match func(entity.ItemRequest) bool, limit, offset int) []*entity.ItemRequest {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ItemRequest
	for i := len(r.s.requests) - 1; i >= 0; i-- {
		if req := r.s.requests[i]; match(req) {
			out = append(out, &req)
		}
	}
	if limit == 0 {
		return out
	}
	return page(out, limit, offset)
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, eventType string, event events.BookingEvent) error {
	args := m.Called(ctx, eventType, event)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}
