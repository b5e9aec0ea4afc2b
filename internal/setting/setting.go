// Package setting exposes operator-tunable values, currently just the
// admin fee charged on top of every transaction.
package setting

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

const keyAdminFee = "admin_fee"

// DefaultAdminFee applies when the operator never configured a fee.
const DefaultAdminFee int64 = 5000

// ErrNotSet means the key has no stored value.
var ErrNotSet = errors.New("setting not set")

//go:generate mockgen -source=setting.go -destination=setting_mock.go -package=setting
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Upsert(ctx context.Context, key, value string) error
}

type Service struct {
	repo     Repository
	fallback int64
}

func NewService(repo Repository, fallback int64) *Service {
	if fallback <= 0 {
		fallback = DefaultAdminFee
	}

	return &Service{repo: repo, fallback: fallback}
}

// AdminFee satisfies the engine's fee source.
func (s *Service) AdminFee(ctx context.Context) (int64, error) {
	raw, err := s.repo.Get(ctx, keyAdminFee)
	if err != nil {
		if errors.Is(err, ErrNotSet) {
			return s.fallback, nil
		}

		return 0, err
	}

	fee, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing admin fee %q: %w", raw, err)
	}

	return fee, nil
}

func (s *Service) SetAdminFee(ctx context.Context, fee int64) error {
	if fee < 0 {
		return fmt.Errorf("admin fee must not be negative")
	}

	return s.repo.Upsert(ctx, keyAdminFee, strconv.FormatInt(fee, 10))
}
