package wire

import (
	"shareit/internal/adaptor"
	"shareit/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireItemRequest(r chi.Router, requestHandler *adaptor.ItemRequestHandler, log *zap.Logger) {
	r.Route("/requests", func(r chi.Router) {
		r.Use(middleware.Identity(log))

		r.Post("/", requestHandler.CreateRequest)
		r.Get("/", requestHandler.ListOwnRequests)
		r.Get("/all", requestHandler.ListOtherRequests)
		r.Get("/{id}", requestHandler.GetRequest)
	})
}
