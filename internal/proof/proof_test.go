package proof_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rekberhq/rekber/internal/proof"
)

func TestService_Attach(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := proof.NewMockRepository(ctrl)
	svc := proof.NewService(repo)

	txID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *proof.Proof) error {
				p.ID = uuid.New()
				return nil
			})

		p, err := svc.Attach(context.Background(), txID, proof.TypeTransfer, "https://cdn.example.com/x.png")
		require.NoError(t, err)
		assert.Equal(t, proof.TypeTransfer, p.Type)
		assert.NotEmpty(t, p.ID)
	})

	t.Run("UnknownType", func(t *testing.T) {
		_, err := svc.Attach(context.Background(), txID, proof.Type("selfie"), "https://cdn.example.com/x.png")
		assert.ErrorIs(t, err, proof.ErrInvalidType)
	})
}

func TestService_HasEvidence(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := proof.NewMockRepository(ctrl)
	svc := proof.NewService(repo)

	txID := uuid.New()

	repo.EXPECT().
		Exists(gomock.Any(), txID, proof.TypeRefund).
		Return(true, nil)

	ok, err := svc.HasEvidence(context.Background(), txID, "refund_proof")
	require.NoError(t, err)
	assert.True(t, ok)
}
