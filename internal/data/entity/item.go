package entity

import "github.com/google/uuid"

type Item struct {
	Base
	OwnerID     uuid.UUID  `db:"owner_id"`
	RequestID   *uuid.UUID `db:"request_id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	Available   bool       `db:"available"`
}
