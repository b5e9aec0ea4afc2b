// Package audit records system-authored narration on a transaction's
// message stream (dispute reasons, tracking references, resolutions).
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Message is one line of a transaction's audit trail. AuthorID is nil
// when the system produced the line without a human trigger.
type Message struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	AuthorID      *uuid.UUID
	Text          string
	CreatedAt     time.Time
}

//go:generate mockgen -source=audit.go -destination=audit_mock.go -package=audit
type Repository interface {
	Insert(ctx context.Context, m *Message) error
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*Message, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Append satisfies the engine's audit log port.
func (s *Service) Append(ctx context.Context, transactionID, authorID uuid.UUID, text string) error {
	m := &Message{
		TransactionID: transactionID,
		Text:          text,
	}

	if authorID != uuid.Nil {
		m.AuthorID = &authorID
	}

	return s.repo.Insert(ctx, m)
}

// History returns the transaction's audit trail, oldest first.
func (s *Service) History(ctx context.Context, transactionID uuid.UUID) ([]*Message, error) {
	return s.repo.ListByTransaction(ctx, transactionID)
}
