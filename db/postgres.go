package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
)

// Connect opens a Postgres pool for connStr and pings it.
func Connect(ctx context.Context, connStr string) (*sql.DB, error) {
	if connStr == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

const briefingSchema = `
CREATE TABLE IF NOT EXISTS briefings (
	id               BIGSERIAL PRIMARY KEY,
	content          TEXT NOT NULL,
	market_headlines TEXT[] NOT NULL DEFAULT '{}',
	tickers          TEXT[] NOT NULL DEFAULT '{}',
	model_used       TEXT NOT NULL DEFAULT '',
	generated_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS briefings_generated_at_idx ON briefings (generated_at DESC);
`

// Migrate creates the briefing table when it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, briefingSchema)
	return err
}
