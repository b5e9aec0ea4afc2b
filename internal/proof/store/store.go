package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rekberhq/rekber/internal/proof"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, p *proof.Proof) error {
	query := `
		INSERT INTO transaction_proofs (transaction_id, type, image_url, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, p.TransactionID, p.Type, p.ImageURL).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating proof: %w", err)
	}

	return nil
}

func (s *Store) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*proof.Proof, error) {
	query := `
		SELECT id, transaction_id, type, image_url, created_at
		FROM transaction_proofs
		WHERE transaction_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("listing proofs: %w", err)
	}
	defer rows.Close()

	var proofs []*proof.Proof

	for rows.Next() {
		var p proof.Proof

		var typeStr string

		if err := rows.Scan(&p.ID, &p.TransactionID, &typeStr, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning proof: %w", err)
		}

		p.Type = proof.Type(typeStr)
		proofs = append(proofs, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating proof rows: %w", err)
	}

	return proofs, nil
}

func (s *Store) Exists(ctx context.Context, transactionID uuid.UUID, typ proof.Type) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM transaction_proofs WHERE transaction_id = $1 AND type = $2)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, transactionID, typ).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking proof existence: %w", err)
	}

	return exists, nil
}
