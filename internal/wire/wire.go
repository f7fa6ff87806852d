// internal/wire/wire.go
package wire

import (
	"net/http"

	"shareit/internal/adaptor"
	"shareit/internal/data/repository"
	"shareit/internal/usecase"
	"shareit/pkg/metrics"
	"shareit/pkg/middleware"
	"shareit/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes.
func Wiring(repo *repository.Repository, infra usecase.Infra, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, infra, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, config, logger),
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimit(config.RateLimit, logger))

	wireUser(r, handler.User)
	wireItem(r, handler.Item, logger)
	wireBooking(r, handler.Booking, logger)
	wireItemRequest(r, handler.ItemRequest, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
