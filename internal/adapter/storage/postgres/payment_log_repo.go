package postgres

import (
	"context"
	"fmt"

	"xrpl-payroll-gateway/internal/core/ports"
)

// PaymentLogRepo implements ports.PaymentLogRepository.
type PaymentLogRepo struct {
	pool Pool
}

// NewPaymentLogRepo creates a new PaymentLogRepo.
func NewPaymentLogRepo(pool Pool) *PaymentLogRepo {
	return &PaymentLogRepo{pool: pool}
}

// Create inserts one payment outcome row.
func (r *PaymentLogRepo) Create(ctx context.Context, entry *ports.PaymentLogEntry) error {
	query := `INSERT INTO payment_log (id, sender, destination, amount, currency, issuer,
		tx_hash, result_code, succeeded, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.Sender, entry.Destination, entry.Amount,
		entry.Currency, entry.Issuer, entry.TxHash, entry.ResultCode,
		entry.Succeeded, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment log: %w", err)
	}
	return nil
}

// ListBySender returns the most recent entries for a sender, newest
// first.
func (r *PaymentLogRepo) ListBySender(ctx context.Context, sender string, limit int) ([]ports.PaymentLogEntry, error) {
	query := `SELECT id, sender, destination, amount, currency, issuer,
		tx_hash, result_code, succeeded, created_at
		FROM payment_log WHERE sender = $1
		ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, sender, limit)
	if err != nil {
		return nil, fmt.Errorf("query payment log: %w", err)
	}
	defer rows.Close()

	var entries []ports.PaymentLogEntry
	for rows.Next() {
		var e ports.PaymentLogEntry
		if err := rows.Scan(&e.ID, &e.Sender, &e.Destination, &e.Amount,
			&e.Currency, &e.Issuer, &e.TxHash, &e.ResultCode,
			&e.Succeeded, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment log row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment log rows: %w", err)
	}
	return entries, nil
}
