package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rekberhq/rekber/internal/escrow"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	id, trx_code, buyer_id, seller_id, amount, admin_fee, total_transfer,
	description, status, auto_complete_at, tracking_reference, rejection_count,
	created_at, updated_at
`

// scanTransaction reads a transaction row in selectTransactionColumns order.
func scanTransaction(s scanner) (*escrow.Transaction, error) {
	var tx escrow.Transaction

	var statusStr string

	var autoCompleteAt sql.NullTime

	var trackingRef sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.TrxCode, &tx.BuyerID, &tx.SellerID, &tx.Amount, &tx.AdminFee, &tx.TotalTransfer,
		&tx.Description, &statusStr, &autoCompleteAt, &trackingRef, &tx.RejectionCount,
		&tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Status = escrow.Status(statusStr)
	tx.TrackingReference = trackingRef.String

	if autoCompleteAt.Valid {
		at := autoCompleteAt.Time
		tx.AutoCompleteAt = &at
	}

	return &tx, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *escrow.Transaction) error {
	query := `
		INSERT INTO transactions (trx_code, buyer_id, seller_id, amount, admin_fee, total_transfer, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.TrxCode,
		tx.BuyerID,
		tx.SellerID,
		tx.Amount,
		tx.AdminFee,
		tx.TotalTransfer,
		tx.Description,
		tx.Status,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*escrow.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, escrow.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) GetByTrxCode(ctx context.Context, code string) (*escrow.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE trx_code = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, escrow.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction by code: %w", err)
	}

	return tx, nil
}

// CompareAndSwapStatus applies the transition only if the stored status
// still matches what the caller read. Losing the race yields
// ErrStaleState and writes nothing.
func (s *Store) CompareAndSwapStatus(ctx context.Context, id uuid.UUID, expected, next escrow.Status, patch escrow.Patch) error {
	set := []string{"updated_at = NOW()"}

	var args []any

	argIdx := 1

	set = append(set, fmt.Sprintf("status = $%d", argIdx))
	args = append(args, next)
	argIdx++

	switch {
	case patch.AutoCompleteAt != nil:
		set = append(set, fmt.Sprintf("auto_complete_at = $%d", argIdx))

		args = append(args, *patch.AutoCompleteAt)
		argIdx++
	case patch.ClearAutoComplete:
		set = append(set, "auto_complete_at = NULL")
	}

	if patch.TrackingReference != nil {
		set = append(set, fmt.Sprintf("tracking_reference = $%d", argIdx))

		args = append(args, *patch.TrackingReference)
		argIdx++
	}

	if patch.RejectionCount != nil {
		set = append(set, fmt.Sprintf("rejection_count = $%d", argIdx))

		args = append(args, *patch.RejectionCount)
		argIdx++
	}

	query := fmt.Sprintf(
		"UPDATE transactions SET %s WHERE id = $%d AND status = $%d",
		strings.Join(set, ", "), argIdx, argIdx+1,
	)
	args = append(args, id, expected)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if affected == 0 {
		var exists bool
		if err := s.db.QueryRowContext(ctx,
			"SELECT EXISTS (SELECT 1 FROM transactions WHERE id = $1)", id,
		).Scan(&exists); err != nil {
			return fmt.Errorf("checking transaction existence: %w", err)
		}

		if !exists {
			return escrow.ErrNotFound
		}

		return escrow.ErrStaleState
	}

	return nil
}

func (s *Store) ListTransactions(ctx context.Context, filter escrow.ListFilter) ([]*escrow.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND (buyer_id = $%d OR seller_id = $%d)", argIdx, argIdx)

		args = append(args, *filter.UserID)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*escrow.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

// FindAutoCompletable returns SENT transactions whose deadline is at or
// before now, oldest deadline first.
func (s *Store) FindAutoCompletable(ctx context.Context, now time.Time) ([]*escrow.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE status = $1 AND auto_complete_at IS NOT NULL AND auto_complete_at <= $2
		ORDER BY auto_complete_at ASC`

	rows, err := s.db.QueryContext(ctx, query, escrow.StatusSent, now)
	if err != nil {
		return nil, fmt.Errorf("finding auto-completable transactions: %w", err)
	}
	defer rows.Close()

	var txs []*escrow.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}
