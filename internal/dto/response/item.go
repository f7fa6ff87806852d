package response

import (
	"time"

	"shareit/internal/data/entity"
)

type CommentResponse struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	Created    time.Time `json:"created"`
}

type ItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Available   bool    `json:"available"`
	OwnerID     string  `json:"owner_id"`
	RequestID   *string `json:"request_id,omitempty"`
}

// ItemDetailResponse adds comments and, for the owner only, booking summaries.
type ItemDetailResponse struct {
	ItemResponse
	LastBooking *BookingShortResponse `json:"last_booking,omitempty"`
	NextBooking *BookingShortResponse `json:"next_booking,omitempty"`
	Comments    []CommentResponse     `json:"comments"`
}

func ItemToResponse(item *entity.Item) ItemResponse {
	resp := ItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		OwnerID:     item.OwnerID.String(),
	}
	if item.RequestID != nil {
		id := item.RequestID.String()
		resp.RequestID = &id
	}
	return resp
}

func ItemsToResponse(items []*entity.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ItemToResponse(item))
	}
	return out
}

func CommentToResponse(c *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID.String(),
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    c.CreatedAt,
	}
}

func CommentsToResponse(comments []*entity.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentToResponse(c))
	}
	return out
}
