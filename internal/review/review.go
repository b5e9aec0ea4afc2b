// Package review lets a buyer rate the seller once a transaction has
// completed. A transaction carries at most one review.
package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rekberhq/rekber/internal/escrow"
)

var (
	ErrNotFound        = errors.New("review not found")
	ErrNotBuyer        = errors.New("only the buyer can review")
	ErrNotCompleted    = errors.New("transaction is not completed")
	ErrAlreadyReviewed = errors.New("transaction already reviewed")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

type Review struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	ReviewerID    uuid.UUID
	TargetID      uuid.UUID
	Rating        int
	Comment       string
	CreatedAt     time.Time
}

//go:generate mockgen -source=review.go -destination=review_mock.go -package=review
type Repository interface {
	Create(ctx context.Context, r *Review) error
	GetByTransaction(ctx context.Context, transactionID uuid.UUID) (*Review, error)
	ListLatest(ctx context.Context, limit int) ([]*Review, error)
}

// TransactionSource resolves the transaction being reviewed.
type TransactionSource interface {
	Get(ctx context.Context, id uuid.UUID) (*escrow.Transaction, error)
}

type Service struct {
	repo         Repository
	transactions TransactionSource
}

func NewService(repo Repository, transactions TransactionSource) *Service {
	return &Service{repo: repo, transactions: transactions}
}

type CreateParams struct {
	TransactionID uuid.UUID
	Rating        int
	Comment       string
}

// Create records the buyer's review. Completion via auto-complete or a
// RELEASE_SELLER ruling counts the same as a manual confirmation; only
// the status matters.
func (s *Service) Create(ctx context.Context, reviewerID uuid.UUID, params CreateParams) (*Review, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return nil, ErrInvalidRating
	}

	tx, err := s.transactions.Get(ctx, params.TransactionID)
	if err != nil {
		return nil, err
	}

	if tx.BuyerID != reviewerID {
		return nil, ErrNotBuyer
	}

	if tx.Status != escrow.StatusCompleted && tx.Status != escrow.StatusDisbursed {
		return nil, ErrNotCompleted
	}

	if _, err := s.repo.GetByTransaction(ctx, params.TransactionID); err == nil {
		return nil, ErrAlreadyReviewed
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	r := &Review{
		TransactionID: params.TransactionID,
		ReviewerID:    reviewerID,
		TargetID:      tx.SellerID,
		Rating:        params.Rating,
		Comment:       params.Comment,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

// Latest returns the newest reviews for the public landing page.
func (s *Service) Latest(ctx context.Context, limit int) ([]*Review, error) {
	if limit <= 0 || limit > 50 {
		limit = 6
	}

	return s.repo.ListLatest(ctx, limit)
}
