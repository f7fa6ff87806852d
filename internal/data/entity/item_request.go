package entity

import "github.com/google/uuid"

// ItemRequest is a user's ask for an item nobody has listed yet.
type ItemRequest struct {
	BaseSimple
	RequesterID uuid.UUID `db:"requester_id"`
	Description string    `db:"description"`
}
