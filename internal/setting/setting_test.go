package setting_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rekberhq/rekber/internal/setting"
)

func TestService_AdminFee(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *setting.MockRepository)
		want      int64
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "StoredValue",
			setupMock: func(m *setting.MockRepository) {
				m.EXPECT().Get(gomock.Any(), "admin_fee").Return("7500", nil)
			},
			want: 7500,
		},
		{
			name: "FallbackWhenUnset",
			setupMock: func(m *setting.MockRepository) {
				m.EXPECT().Get(gomock.Any(), "admin_fee").Return("", setting.ErrNotSet)
			},
			want: 5000,
		},
		{
			name: "GarbageValue",
			setupMock: func(m *setting.MockRepository) {
				m.EXPECT().Get(gomock.Any(), "admin_fee").Return("free", nil)
			},
			wantErr: true,
		},
		{
			name: "RepoError",
			setupMock: func(m *setting.MockRepository) {
				m.EXPECT().Get(gomock.Any(), "admin_fee").Return("", errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := setting.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := setting.NewService(repo, 5000)
			got, err := svc.AdminFee(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_SetAdminFee(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := setting.NewMockRepository(ctrl)
	svc := setting.NewService(repo, 5000)

	t.Run("Success", func(t *testing.T) {
		repo.EXPECT().Upsert(gomock.Any(), "admin_fee", "10000").Return(nil)

		assert.NoError(t, svc.SetAdminFee(context.Background(), 10000))
	})

	t.Run("ZeroFeeAllowed", func(t *testing.T) {
		repo.EXPECT().Upsert(gomock.Any(), "admin_fee", "0").Return(nil)

		assert.NoError(t, svc.SetAdminFee(context.Background(), 0))
	})

	t.Run("NegativeRejected", func(t *testing.T) {
		assert.Error(t, svc.SetAdminFee(context.Background(), -1))
	})
}
