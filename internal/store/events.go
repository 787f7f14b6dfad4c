package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mgarnier/splitpot/internal/ledger"
)

// CreateEvent inserts an event and its initial participants. A missing id is
// generated. Returns the event id.
func (s *Store) CreateEvent(ctx context.Context, ev ledger.Event) (string, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`INSERT INTO events (id, amount) VALUES ($1, $2::numeric)`,
		ev.ID, ev.Amount.String(),
	); err != nil {
		return "", err
	}

	for _, p := range ev.Participants {
		if p.ID == "" {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO event_participants (event_id, participant_id, name)
             VALUES ($1, $2, $3)
             ON CONFLICT (event_id, participant_id) DO UPDATE SET name = EXCLUDED.name`,
			ev.ID, p.ID, p.Name,
		); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return ev.ID, nil
}

// GetEvent loads an event with its participants in insertion order.
func (s *Store) GetEvent(ctx context.Context, eventID string) (ledger.Event, error) {
	var ev ledger.Event
	var amount string
	err := s.pool.QueryRow(ctx,
		`SELECT id, amount::text FROM events WHERE id = $1`, eventID,
	).Scan(&ev.ID, &amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.Event{}, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
		}
		return ledger.Event{}, err
	}
	ev.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return ledger.Event{}, fmt.Errorf("bad amount for event %s: %w", eventID, err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT participant_id, name FROM event_participants WHERE event_id = $1 ORDER BY seq`,
		eventID,
	)
	if err != nil {
		return ledger.Event{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var p ledger.Participant
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return ledger.Event{}, err
		}
		ev.Participants = append(ev.Participants, p)
	}
	return ev, rows.Err()
}

// AddParticipant adds or renames a participant.
func (s *Store) AddParticipant(ctx context.Context, eventID string, p ledger.Participant) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	ct, err := s.pool.Exec(ctx,
		`INSERT INTO event_participants (event_id, participant_id, name)
         SELECT id, $2, $3 FROM events WHERE id = $1
         ON CONFLICT (event_id, participant_id) DO UPDATE SET name = EXCLUDED.name`,
		eventID, p.ID, p.Name,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}
	return nil
}
