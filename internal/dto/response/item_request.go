package response

import (
	"time"

	"shareit/internal/data/entity"
)

type ItemRequestResponse struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	Created     time.Time      `json:"created"`
	Items       []ItemResponse `json:"items"`
}

func ItemRequestToResponse(req *entity.ItemRequest, items []*entity.Item) ItemRequestResponse {
	return ItemRequestResponse{
		ID:          req.ID.String(),
		Description: req.Description,
		Created:     req.CreatedAt,
		Items:       ItemsToResponse(items),
	}
}
