package adaptor

import (
	"net/http"

	"shareit/internal/dto/request"
	"shareit/internal/usecase"
	"shareit/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ItemRequestHandler struct {
	service usecase.ItemRequestService
	log     *zap.Logger
}

func NewItemRequestHandler(service usecase.ItemRequestService, log *zap.Logger) *ItemRequestHandler {
	return &ItemRequestHandler{
		service: service,
		log:     log.With(zap.String("handler", "item_request")),
	}
}

// CreateRequest handles POST /requests
func (h *ItemRequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req request.CreateItemRequestRequest
	if !decodeJSON(w, r, &req) || !validate(w, &req) {
		return
	}

	created, err := h.service.CreateRequest(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create item request")
		return
	}

	utils.ResponseCreated(w, "success", created)
}

// ListOwnRequests handles GET /requests
func (h *ItemRequestHandler) ListOwnRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	requests, err := h.service.ListOwnRequests(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "list own requests")
		return
	}

	utils.ResponseSuccess(w, "success", requests)
}

// ListOtherRequests handles GET /requests/all?from=&size=
func (h *ItemRequestHandler) ListOtherRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	page, err := parsePage(r)
	if err != nil {
		handleServiceError(h.log, w, err, "list other requests")
		return
	}

	requests, err := h.service.ListOtherRequests(r.Context(), userID, page)
	if err != nil {
		handleServiceError(h.log, w, err, "list other requests")
		return
	}

	utils.ResponseSuccess(w, "success", requests)
}

// GetRequest handles GET /requests/{id}
func (h *ItemRequestHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	found, err := h.service.GetRequest(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get item request")
		return
	}

	utils.ResponseSuccess(w, "success", found)
}
