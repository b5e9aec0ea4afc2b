package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rekberhq/rekber/internal/notify"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, n *notify.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, message, link, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, n.UserID, n.Title, n.Message, n.Link).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}

	return nil
}

// CreateForRole inserts one notification per user holding the role.
func (s *Store) CreateForRole(ctx context.Context, role, title, message, link string) error {
	query := `
		INSERT INTO notifications (user_id, title, message, link, created_at)
		SELECT id, $2, $3, $4, NOW() FROM users WHERE role = $1
	`

	if _, err := s.db.ExecContext(ctx, query, role, title, message, link); err != nil {
		return fmt.Errorf("creating role notifications: %w", err)
	}

	return nil
}

func (s *Store) ListForUser(ctx context.Context, userID uuid.UUID) ([]*notify.Notification, error) {
	query := `
		SELECT id, user_id, title, message, link, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var ns []*notify.Notification

	for rows.Next() {
		var n notify.Notification

		var link sql.NullString

		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &link, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}

		n.Link = link.String
		ns = append(ns, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notification rows: %w", err)
	}

	return ns, nil
}

func (s *Store) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`

	if _, err := s.db.ExecContext(ctx, query, id, userID); err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}

	return nil
}

func (s *Store) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`

	if _, err := s.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("marking notifications read: %w", err)
	}

	return nil
}
