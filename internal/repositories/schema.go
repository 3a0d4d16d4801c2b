package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/k355l3r-5yndr0m3/auction/internal/logger"
)

// schema is created fresh if absent. There is no migration versioning.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	username VARCHAR(50) NOT NULL UNIQUE,
	password VARCHAR(255) NOT NULL,
	role SMALLINT NOT NULL
);

CREATE TABLE IF NOT EXISTS auctions (
	id BIGSERIAL PRIMARY KEY,
	title VARCHAR(255) NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	current_bid BIGINT NOT NULL DEFAULT 0,
	seller_id BIGINT NOT NULL REFERENCES users (id),
	bidder_id BIGINT REFERENCES users (id)
);
`

// Bootstrap creates the users and auctions tables if they do not exist.
func Bootstrap(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)

	logger.Log.Infow("schema bootstrap", "error", err)

	return err
}
