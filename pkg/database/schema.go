package database

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id          UUID PRIMARY KEY,
	name        VARCHAR(255) NOT NULL,
	email       VARCHAR(512) NOT NULL UNIQUE,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS item_requests (
	id            UUID PRIMARY KEY,
	requester_id  UUID NOT NULL REFERENCES users(id),
	description   VARCHAR(512) NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_item_requests_requester ON item_requests(requester_id, created_at DESC);

CREATE TABLE IF NOT EXISTS items (
	id           UUID PRIMARY KEY,
	owner_id     UUID NOT NULL REFERENCES users(id),
	request_id   UUID REFERENCES item_requests(id),
	name         VARCHAR(255) NOT NULL,
	description  VARCHAR(512) NOT NULL,
	available    BOOLEAN NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_items_owner ON items(owner_id, created_at);
CREATE INDEX IF NOT EXISTS idx_items_request ON items(request_id);

CREATE TABLE IF NOT EXISTS bookings (
	id          UUID PRIMARY KEY,
	item_id     UUID NOT NULL REFERENCES items(id),
	booker_id   UUID NOT NULL REFERENCES users(id),
	start_date  TIMESTAMPTZ NOT NULL,
	end_date    TIMESTAMPTZ NOT NULL,
	status      VARCHAR(16) NOT NULL CHECK (status IN ('WAITING', 'APPROVED', 'REJECTED')),
	version     BIGINT NOT NULL DEFAULT 1,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL,
	CHECK (start_date < end_date)
);

CREATE INDEX IF NOT EXISTS idx_bookings_booker_start ON bookings(booker_id, start_date DESC);
CREATE INDEX IF NOT EXISTS idx_bookings_item_start ON bookings(item_id, start_date);
CREATE INDEX IF NOT EXISTS idx_bookings_item_end ON bookings(item_id, end_date);

CREATE TABLE IF NOT EXISTS comments (
	id          UUID PRIMARY KEY,
	item_id     UUID NOT NULL REFERENCES items(id),
	author_id   UUID NOT NULL REFERENCES users(id),
	text        VARCHAR(512) NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comments_item ON comments(item_id, created_at);
`

// EnsureSchema creates missing tables and indexes. It is idempotent.
func EnsureSchema(ctx context.Context, db PgxIface) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
