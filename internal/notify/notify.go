// Package notify persists in-app notifications. Delivery is best-effort:
// the engine's dispatcher logs failures and moves on.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Message   string
	Link      string
	IsRead    bool
	CreatedAt time.Time
}

//go:generate mockgen -source=notify.go -destination=notify_mock.go -package=notify
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	CreateForRole(ctx context.Context, role, title, message, link string) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NotifyUser satisfies the engine's notification port for a single user.
func (s *Service) NotifyUser(ctx context.Context, userID uuid.UUID, title, message, link string) error {
	return s.repo.Create(ctx, &Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Link:    link,
	})
}

// NotifyRole fans out to every user holding the role.
func (s *Service) NotifyRole(ctx context.Context, role, title, message, link string) error {
	return s.repo.CreateForRole(ctx, role, title, message, link)
}

func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*Notification, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}
