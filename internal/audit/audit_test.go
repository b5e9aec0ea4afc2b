package audit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rekberhq/rekber/internal/audit"
)

func TestService_Append(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := audit.NewMockRepository(ctrl)
	svc := audit.NewService(repo)

	txID := uuid.New()

	t.Run("HumanAuthor", func(t *testing.T) {
		authorID := uuid.New()

		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *audit.Message) error {
				require.NotNil(t, m.AuthorID)
				assert.Equal(t, authorID, *m.AuthorID)
				assert.Equal(t, txID, m.TransactionID)
				return nil
			})

		assert.NoError(t, svc.Append(context.Background(), txID, authorID, "[SYSTEM] Dispute opened"))
	})

	t.Run("SystemAuthor", func(t *testing.T) {
		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *audit.Message) error {
				assert.Nil(t, m.AuthorID)
				return nil
			})

		assert.NoError(t, svc.Append(context.Background(), txID, uuid.Nil, "[SYSTEM] Transaction auto-completed"))
	})
}
