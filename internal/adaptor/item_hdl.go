package adaptor

import (
	"net/http"

	"shareit/internal/dto/request"
	"shareit/internal/usecase"
	"shareit/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ItemHandler struct {
	service usecase.ItemService
	log     *zap.Logger
}

func NewItemHandler(service usecase.ItemService, log *zap.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		log:     log.With(zap.String("handler", "item")),
	}
}

// CreateItem handles POST /items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req request.CreateItemRequest
	if !decodeJSON(w, r, &req) || !validate(w, &req) {
		return
	}

	item, err := h.service.CreateItem(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create item")
		return
	}

	utils.ResponseCreated(w, "success", item)
}

// UpdateItem handles PATCH /items/{id}
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req request.UpdateItemRequest
	if !decodeJSON(w, r, &req) || !validate(w, &req) {
		return
	}

	item, err := h.service.UpdateItem(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update item")
		return
	}

	utils.ResponseSuccess(w, "success", item)
}

// GetItem handles GET /items/{id}
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	item, err := h.service.GetItem(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get item")
		return
	}

	utils.ResponseSuccess(w, "success", item)
}

// ListOwnerItems handles GET /items?from=&size=
func (h *ItemHandler) ListOwnerItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	page, err := parsePage(r)
	if err != nil {
		handleServiceError(h.log, w, err, "list owner items")
		return
	}

	items, err := h.service.ListOwnerItems(r.Context(), userID, page)
	if err != nil {
		handleServiceError(h.log, w, err, "list owner items")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

// Search handles GET /items/search?text=&from=&size=
func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		handleServiceError(h.log, w, err, "search items")
		return
	}

	items, err := h.service.Search(r.Context(), r.URL.Query().Get("text"), page)
	if err != nil {
		handleServiceError(h.log, w, err, "search items")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

// CreateComment handles POST /items/{id}/comment
func (h *ItemHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req request.CreateCommentRequest
	if !decodeJSON(w, r, &req) || !validate(w, &req) {
		return
	}

	comment, err := h.service.CreateComment(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "success", comment)
}
