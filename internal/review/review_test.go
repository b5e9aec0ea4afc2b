package review_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rekberhq/rekber/internal/escrow"
	"github.com/rekberhq/rekber/internal/review"
)

var (
	buyerID  = uuid.New()
	sellerID = uuid.New()
)

func completedTransaction(status escrow.Status) *escrow.Transaction {
	return &escrow.Transaction{
		ID:       uuid.New(),
		TrxCode:  "TRX-1700000000000",
		BuyerID:  buyerID,
		SellerID: sellerID,
		Amount:   100000,
		Status:   status,
	}
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name       string
		reviewerID uuid.UUID
		params     review.CreateParams
		setupMock  func(repo *review.MockRepository, txs *review.MockTransactionSource)
		wantErr    error
	}

	txID := uuid.New()

	tests := []testCase{
		{
			name:       "Success",
			reviewerID: buyerID,
			params:     review.CreateParams{TransactionID: txID, Rating: 5, Comment: "fast shipping"},
			setupMock: func(repo *review.MockRepository, txs *review.MockTransactionSource) {
				tx := completedTransaction(escrow.StatusCompleted)
				tx.ID = txID

				txs.EXPECT().Get(gomock.Any(), txID).Return(tx, nil)
				repo.EXPECT().GetByTransaction(gomock.Any(), txID).Return(nil, review.ErrNotFound)
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r *review.Review) error {
						r.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:       "DisbursedStillReviewable",
			reviewerID: buyerID,
			params:     review.CreateParams{TransactionID: txID, Rating: 4},
			setupMock: func(repo *review.MockRepository, txs *review.MockTransactionSource) {
				tx := completedTransaction(escrow.StatusDisbursed)
				tx.ID = txID

				txs.EXPECT().Get(gomock.Any(), txID).Return(tx, nil)
				repo.EXPECT().GetByTransaction(gomock.Any(), txID).Return(nil, review.ErrNotFound)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:       "RatingTooLow",
			reviewerID: buyerID,
			params:     review.CreateParams{TransactionID: txID, Rating: 0},
			wantErr:    review.ErrInvalidRating,
		},
		{
			name:       "RatingTooHigh",
			reviewerID: buyerID,
			params:     review.CreateParams{TransactionID: txID, Rating: 6},
			wantErr:    review.ErrInvalidRating,
		},
		{
			name:       "SellerCannotReview",
			reviewerID: sellerID,
			params:     review.CreateParams{TransactionID: txID, Rating: 5},
			setupMock: func(_ *review.MockRepository, txs *review.MockTransactionSource) {
				tx := completedTransaction(escrow.StatusCompleted)
				tx.ID = txID

				txs.EXPECT().Get(gomock.Any(), txID).Return(tx, nil)
			},
			wantErr: review.ErrNotBuyer,
		},
		{
			name:       "NotYetCompleted",
			reviewerID: buyerID,
			params:     review.CreateParams{TransactionID: txID, Rating: 5},
			setupMock: func(_ *review.MockRepository, txs *review.MockTransactionSource) {
				tx := completedTransaction(escrow.StatusSent)
				tx.ID = txID

				txs.EXPECT().Get(gomock.Any(), txID).Return(tx, nil)
			},
			wantErr: review.ErrNotCompleted,
		},
		{
			name:       "AlreadyReviewed",
			reviewerID: buyerID,
			params:     review.CreateParams{TransactionID: txID, Rating: 5},
			setupMock: func(repo *review.MockRepository, txs *review.MockTransactionSource) {
				tx := completedTransaction(escrow.StatusCompleted)
				tx.ID = txID

				txs.EXPECT().Get(gomock.Any(), txID).Return(tx, nil)
				repo.EXPECT().
					GetByTransaction(gomock.Any(), txID).
					Return(&review.Review{ID: uuid.New()}, nil)
			},
			wantErr: review.ErrAlreadyReviewed,
		},
		{
			name:       "TransactionMissing",
			reviewerID: buyerID,
			params:     review.CreateParams{TransactionID: txID, Rating: 5},
			setupMock: func(_ *review.MockRepository, txs *review.MockTransactionSource) {
				txs.EXPECT().Get(gomock.Any(), txID).Return(nil, escrow.ErrNotFound)
			},
			wantErr: escrow.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := review.NewMockRepository(ctrl)
			txs := review.NewMockTransactionSource(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, txs)
			}

			svc := review.NewService(repo, txs)
			got, err := svc.Create(context.Background(), tt.reviewerID, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.reviewerID, got.ReviewerID)
			assert.Equal(t, sellerID, got.TargetID)
		})
	}
}

func TestService_Latest(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := review.NewMockRepository(ctrl)
	txs := review.NewMockTransactionSource(ctrl)
	svc := review.NewService(repo, txs)

	t.Run("ClampsZeroToDefault", func(t *testing.T) {
		repo.EXPECT().ListLatest(gomock.Any(), 6).Return(nil, nil)

		_, err := svc.Latest(context.Background(), 0)
		assert.NoError(t, err)
	})

	t.Run("ClampsOversizedToDefault", func(t *testing.T) {
		repo.EXPECT().ListLatest(gomock.Any(), 6).Return(nil, nil)

		_, err := svc.Latest(context.Background(), 500)
		assert.NoError(t, err)
	})

	t.Run("PassesThroughReasonableLimit", func(t *testing.T) {
		repo.EXPECT().ListLatest(gomock.Any(), 12).Return([]*review.Review{{}, {}}, nil)

		got, err := svc.Latest(context.Background(), 12)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo.EXPECT().ListLatest(gomock.Any(), 6).Return(nil, errors.New("db down"))

		_, err := svc.Latest(context.Background(), 6)
		assert.Error(t, err)
	})
}
