package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rekberhq/rekber/internal/review"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, r *review.Review) error {
	query := `
		INSERT INTO reviews (transaction_id, reviewer_id, target_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		r.TransactionID, r.ReviewerID, r.TargetID, r.Rating, r.Comment,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating review: %w", err)
	}

	return nil
}

func (s *Store) GetByTransaction(ctx context.Context, transactionID uuid.UUID) (*review.Review, error) {
	query := `
		SELECT id, transaction_id, reviewer_id, target_id, rating, comment, created_at
		FROM reviews
		WHERE transaction_id = $1
	`

	var r review.Review

	err := s.db.QueryRowContext(ctx, query, transactionID).Scan(
		&r.ID, &r.TransactionID, &r.ReviewerID, &r.TargetID, &r.Rating, &r.Comment, &r.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, review.ErrNotFound
		}

		return nil, fmt.Errorf("getting review: %w", err)
	}

	return &r, nil
}

func (s *Store) ListLatest(ctx context.Context, limit int) ([]*review.Review, error) {
	query := `
		SELECT id, transaction_id, reviewer_id, target_id, rating, comment, created_at
		FROM reviews
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*review.Review

	for rows.Next() {
		var r review.Review

		if err := rows.Scan(&r.ID, &r.TransactionID, &r.ReviewerID, &r.TargetID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}

		reviews = append(reviews, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating review rows: %w", err)
	}

	return reviews, nil
}
