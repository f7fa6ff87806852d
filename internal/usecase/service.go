package usecase

import (
	"shareit/internal/data/repository"
	"shareit/pkg/events"
	"shareit/pkg/lock"
	"shareit/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Infra bundles the collaborators that are not repositories.
type Infra struct {
	Clock     utils.Clock
	Locker    lock.Locker
	Publisher events.Publisher
}

func (i Infra) withDefaults() Infra {
	if i.Clock == nil {
		i.Clock = utils.SystemClock{}
	}
	if i.Locker == nil {
		i.Locker = lock.NewLocalLocker()
	}
	if i.Publisher == nil {
		i.Publisher = events.NopPublisher{}
	}
	return i
}

type Service struct {
	User        UserService
	Item        ItemService
	Booking     BookingService
	ItemRequest ItemRequestService
}

func NewService(repo *repository.Repository, infra Infra, config *utils.Config, log *zap.Logger) *Service {
	infra = infra.withDefaults()
	return &Service{
		User:        NewUserService(repo.User, infra.Clock, log),
		Item:        NewItemService(repo, infra.Clock, log),
		Booking:     NewBookingService(repo, infra, config, log),
		ItemRequest: NewItemRequestService(repo, infra.Clock, log),
	}
}

func parseID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, utils.InvalidRequest("invalid %s ID format %s", kind, raw)
	}
	return id, nil
}
