package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rekberhq/rekber/internal/audit"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, m *audit.Message) error {
	query := `
		INSERT INTO transaction_messages (transaction_id, author_id, message, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, m.TransactionID, m.AuthorID, m.Text).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting audit message: %w", err)
	}

	return nil
}

func (s *Store) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*audit.Message, error) {
	query := `
		SELECT id, transaction_id, author_id, message, created_at
		FROM transaction_messages
		WHERE transaction_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("listing audit messages: %w", err)
	}
	defer rows.Close()

	var msgs []*audit.Message

	for rows.Next() {
		var m audit.Message

		if err := rows.Scan(&m.ID, &m.TransactionID, &m.AuthorID, &m.Text, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning audit message: %w", err)
		}

		msgs = append(msgs, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit message rows: %w", err)
	}

	return msgs, nil
}
