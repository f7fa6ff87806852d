package adaptor

import (
	"encoding/json"
	"net/http"

	"shareit/internal/dto/request"
	"shareit/internal/usecase"
	"shareit/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	User        *UserHandler
	Item        *ItemHandler
	Booking     *BookingHandler
	ItemRequest *ItemRequestHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		User:        NewUserHandler(service.User, log),
		Item:        NewItemHandler(service.Item, log),
		Booking:     NewBookingHandler(service.Booking, log),
		ItemRequest: NewItemRequestHandler(service.ItemRequest, log),
	}
}

// handleServiceError logs by severity and writes the mapped status.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	kind := utils.KindOf(err)
	if kind == utils.KindInternal {
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
	} else {
		log.Warn(operation+" rejected",
			zap.Error(err),
			zap.String("operation", operation),
			zap.String("kind", kind.String()))
	}
	utils.ResponseError(w, err)
}

// decodeJSON reads the body into dst, writing 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// validate writes 400 with field errors when dst fails its tags.
func validate(w http.ResponseWriter, dst any) bool {
	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

// parsePage reads from/size, defaulting to 0/10.
func parsePage(r *http.Request) (request.PageRequest, error) {
	query := r.URL.Query()
	page := request.DefaultPage()

	var err error
	if page.From, err = utils.ParseQueryInt("from", query.Get("from"), page.From); err != nil {
		return page, err
	}
	if page.Size, err = utils.ParseQueryInt("size", query.Get("size"), page.Size); err != nil {
		return page, err
	}
	if page.From < 0 || page.Size < 1 {
		return page, utils.InvalidRequest("pagination requires from >= 0 and size >= 1")
	}
	return page, nil
}

// callerID returns the X-Sharer-User-Id resolved by the identity middleware.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Missing user identity", nil)
		return "", false
	}
	return userID.String(), true
}
