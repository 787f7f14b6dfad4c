package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested event does not exist.
var ErrNotFound = errors.New("not found")

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// RunMigrations runs database migrations
func (s *Store) RunMigrations(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			amount NUMERIC(12,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS event_participants (
			event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
			participant_id TEXT NOT NULL,
			name TEXT NOT NULL,
			seq BIGSERIAL,
			PRIMARY KEY (event_id, participant_id)
		);
		CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
			from_id TEXT NOT NULL DEFAULT '',
			to_id TEXT NOT NULL DEFAULT '',
			amount NUMERIC(12,2) NOT NULL,
			type TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			payer_id TEXT NOT NULL DEFAULT '',
			participants TEXT[],
			validated_by TEXT[],
			validation_count INT NOT NULL DEFAULT 0,
			total_validators INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_transactions_event_id ON transactions(event_id);
	`)
	return err
}
