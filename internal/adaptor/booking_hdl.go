package adaptor

import (
	"context"
	"net/http"

	"shareit/internal/dto/request"
	"shareit/internal/dto/response"
	"shareit/internal/usecase"
	"shareit/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if !decodeJSON(w, r, &req) || !validate(w, &req) {
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// SetBookingStatus handles PATCH /bookings/{id}?approved=true|false
func (h *BookingHandler) SetBookingStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	approved, err := utils.ParseQueryBool("approved", r.URL.Query().Get("approved"))
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	booking, err := h.service.SetBookingStatus(r.Context(), userID, chi.URLParam(r, "id"), approved)
	if err != nil {
		handleServiceError(h.log, w, err, "set booking status")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetBooking handles GET /bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ListByBooker handles GET /bookings?state=
func (h *BookingHandler) ListByBooker(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListByBooker, "list booker bookings")
}

// ListByOwner handles GET /bookings/owner?state=
func (h *BookingHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListByOwner, "list owner bookings")
}

func (h *BookingHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(context.Context, string, usecase.BookingState) ([]response.BookingResponse, error),
	operation string,
) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	// unknown states are rejected before any lookup
	state, err := usecase.ParseBookingState(r.URL.Query().Get("state"))
	if err != nil {
		handleServiceError(h.log, w, err, operation)
		return
	}

	bookings, err := fetch(r.Context(), userID, state)
	if err != nil {
		handleServiceError(h.log, w, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
