package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mgarnier/splitpot/internal/ledger"
)

// RecordTransaction inserts a transaction for an event. A missing id is
// generated. Records are immutable once inserted.
func (s *Store) RecordTransaction(ctx context.Context, eventID string, tx ledger.Transaction) (string, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO transactions
             (id, event_id, from_id, to_id, amount, type, source, payer_id,
              participants, validated_by, validation_count, total_validators)
         VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9, $10, $11, $12)`,
		tx.ID, eventID, tx.FromID, tx.ToID, tx.Amount.String(), tx.Type,
		tx.Source, tx.PayerID, tx.Participants, tx.ValidatedBy,
		tx.ValidationCount, tx.TotalValidators,
	)
	if err != nil {
		return "", err
	}
	return tx.ID, nil
}

// ListTransactions returns all transactions of an event in recording order.
// The result is a fresh snapshot on every call; the ledger engine never
// writes back.
func (s *Store) ListTransactions(ctx context.Context, eventID string) ([]ledger.Transaction, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, from_id, to_id, amount::text, type, source, payer_id,
                participants, validated_by, validation_count, total_validators
         FROM transactions WHERE event_id = $1 ORDER BY created_at, id`,
		eventID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []ledger.Transaction
	for rows.Next() {
		var tx ledger.Transaction
		var amount string
		if err := rows.Scan(&tx.ID, &tx.FromID, &tx.ToID, &amount, &tx.Type,
			&tx.Source, &tx.PayerID, &tx.Participants, &tx.ValidatedBy,
			&tx.ValidationCount, &tx.TotalValidators); err != nil {
			return nil, err
		}
		tx.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("bad amount for transaction %s: %w", tx.ID, err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
