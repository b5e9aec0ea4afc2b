// Package proof keeps type-tagged evidence records for transactions.
// Only the image URL is stored; binary storage is external.
package proof

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Type tags what a piece of evidence demonstrates. The values match the
// kinds the escrow engine gates transitions on.
type Type string

const (
	TypePayment  Type = "payment_proof"
	TypeShipping Type = "shipping_proof"
	TypeTransfer Type = "transfer_proof"
	TypeRefund   Type = "refund_proof"
	TypeReturn   Type = "return_proof"
)

func (t Type) Valid() bool {
	switch t {
	case TypePayment, TypeShipping, TypeTransfer, TypeRefund, TypeReturn:
		return true
	}

	return false
}

var ErrInvalidType = errors.New("invalid proof type")

type Proof struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	Type          Type
	ImageURL      string
	CreatedAt     time.Time
}

//go:generate mockgen -source=proof.go -destination=proof_mock.go -package=proof
type Repository interface {
	Create(ctx context.Context, p *Proof) error
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*Proof, error)
	Exists(ctx context.Context, transactionID uuid.UUID, typ Type) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Attach(ctx context.Context, transactionID uuid.UUID, typ Type, imageURL string) (*Proof, error) {
	if !typ.Valid() {
		return nil, ErrInvalidType
	}

	p := &Proof{
		TransactionID: transactionID,
		Type:          typ,
		ImageURL:      imageURL,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*Proof, error) {
	return s.repo.ListByTransaction(ctx, transactionID)
}

// HasEvidence satisfies the engine's evidence check.
func (s *Service) HasEvidence(ctx context.Context, transactionID uuid.UUID, kind string) (bool, error) {
	return s.repo.Exists(ctx, transactionID, Type(kind))
}
