package wire

import (
	"shareit/internal/adaptor"
	"shareit/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireItem(r chi.Router, itemHandler *adaptor.ItemHandler, log *zap.Logger) {
	r.Route("/items", func(r chi.Router) {
		// search is open to anonymous callers
		r.Get("/search", itemHandler.Search)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Identity(log))

			r.Post("/", itemHandler.CreateItem)
			r.Get("/", itemHandler.ListOwnerItems)
			r.Get("/{id}", itemHandler.GetItem)
			r.Patch("/{id}", itemHandler.UpdateItem)
			r.Post("/{id}/comment", itemHandler.CreateComment)
		})
	})
}
