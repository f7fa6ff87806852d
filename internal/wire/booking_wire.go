package wire

import (
	"shareit/internal/adaptor"
	"shareit/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, log *zap.Logger) {
	r.Route("/bookings", func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// POST /bookings - request an item for a period
		r.Post("/", bookingHandler.CreateBooking)

		// GET /bookings?state= - bookings made by the caller
		r.Get("/", bookingHandler.ListByBooker)

		// GET /bookings/owner?state= - bookings on the caller's items
		r.Get("/owner", bookingHandler.ListByOwner)

		// PATCH /bookings/{id}?approved= - owner decision
		r.Patch("/{id}", bookingHandler.SetBookingStatus)

		r.Get("/{id}", bookingHandler.GetBooking)
	})
}
