package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rekberhq/rekber/internal/setting"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM system_settings WHERE key = $1`

	var value string

	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", setting.ErrNotSet
		}

		return "", fmt.Errorf("getting setting: %w", err)
	}

	return value, nil
}

func (s *Store) Upsert(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO system_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("upserting setting: %w", err)
	}

	return nil
}
