package escrow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rekberhq/rekber/internal/metrics"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=escrow
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	GetByTrxCode(ctx context.Context, code string) (*Transaction, error)

	// CompareAndSwapStatus writes next and the patch only if the stored
	// status still equals expected. It returns ErrStaleState when the
	// status moved underneath the caller and ErrNotFound for unknown ids.
	CompareAndSwapStatus(ctx context.Context, id uuid.UUID, expected, next Status, patch Patch) error

	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	FindAutoCompletable(ctx context.Context, now time.Time) ([]*Transaction, error)
}

// FeeSource yields the intermediary's cut for new transactions.
type FeeSource interface {
	AdminFee(ctx context.Context) (int64, error)
}

// EvidenceChecker reports whether a type-tagged proof is on record.
type EvidenceChecker interface {
	HasEvidence(ctx context.Context, transactionID uuid.UUID, kind string) (bool, error)
}

// EffectDispatcher receives the outbound effects of a committed
// transition. Implementations must not block the caller.
type EffectDispatcher interface {
	Dispatch(effects []Effect)
}

type ListFilter struct {
	Status *Status
	UserID *uuid.UUID // Matches either side of the trade.
}

type Service struct {
	repo       Repository
	fees       FeeSource
	proofs     EvidenceChecker
	dispatcher EffectDispatcher
	metrics    *metrics.Metrics

	now               func() time.Time
	autoCompleteAfter time.Duration
}

func NewService(repo Repository, fees FeeSource, proofs EvidenceChecker, dispatcher EffectDispatcher, m *metrics.Metrics) *Service {
	return &Service{
		repo:              repo,
		fees:              fees,
		proofs:            proofs,
		dispatcher:        dispatcher,
		metrics:           m,
		now:               time.Now,
		autoCompleteAfter: DefaultAutoCompleteWindow,
	}
}

// WithClock replaces the wall clock, for deterministic tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithAutoCompleteWindow overrides the post-shipment confirmation window.
func (s *Service) WithAutoCompleteWindow(d time.Duration) *Service {
	if d > 0 {
		s.autoCompleteAfter = d
	}

	return s
}

type CreateParams struct {
	BuyerID     uuid.UUID
	SellerID    uuid.UUID
	Amount      int64
	Description string
}

// Create opens a new escrow transaction in PENDING_PAYMENT. The admin
// fee is looked up once and TotalTransfer is fixed from that point on.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if params.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if params.BuyerID == params.SellerID {
		return nil, ErrSelfDealing
	}

	fee, err := s.fees.AdminFee(ctx)
	if err != nil {
		return nil, fmt.Errorf("looking up admin fee: %w", err)
	}

	tx := &Transaction{
		TrxCode:       fmt.Sprintf("TRX-%d", s.now().UnixMilli()),
		BuyerID:       params.BuyerID,
		SellerID:      params.SellerID,
		Amount:        params.Amount,
		AdminFee:      fee,
		TotalTransfer: params.Amount + fee,
		Description:   params.Description,
		Status:        StatusPendingPayment,
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// Apply is the single entry point for every transition after creation.
// It resolves the transition rule, checks evidence preconditions,
// commits the status change with a compare-and-swap, and only then hands
// the effects to the dispatcher.
func (s *Service) Apply(ctx context.Context, actor Actor, id uuid.UUID, action Action, in Input) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Now.IsZero() {
		in.Now = s.now()
	}

	if in.AutoCompleteAfter <= 0 {
		in.AutoCompleteAfter = s.autoCompleteAfter
	}

	tr, err := Resolve(tx, actor, action, in)
	if err != nil {
		s.metrics.ObserveTransition(string(action), metricResult(err))
		return nil, err
	}

	if err := s.checkEvidence(ctx, tx.ID, action); err != nil {
		s.metrics.ObserveTransition(string(action), metricResult(err))
		return nil, err
	}

	if err := s.repo.CompareAndSwapStatus(ctx, tx.ID, tr.From, tr.To, tr.Patch); err != nil {
		s.metrics.ObserveTransition(string(action), metricResult(err))
		return nil, err
	}

	applyPatch(tx, tr, in.Now)
	s.metrics.ObserveTransition(string(action), "applied")

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(Effects(tx, tr, actor, in))
	}

	return tx, nil
}

func (s *Service) checkEvidence(ctx context.Context, id uuid.UUID, action Action) error {
	var kind string

	switch action {
	case ActionDisburse:
		kind = EvidenceTransfer
	case ActionMarkRefunded:
		kind = EvidenceRefund
	default:
		return nil
	}

	ok, err := s.proofs.HasEvidence(ctx, id, kind)
	if err != nil {
		return fmt.Errorf("checking %s evidence: %w", kind, err)
	}

	if !ok {
		return ErrMissingEvidence
	}

	return nil
}

func applyPatch(tx *Transaction, tr Transition, now time.Time) {
	tx.Status = tr.To
	tx.UpdatedAt = now

	if tr.Patch.AutoCompleteAt != nil {
		tx.AutoCompleteAt = tr.Patch.AutoCompleteAt
	}

	if tr.Patch.ClearAutoComplete {
		tx.AutoCompleteAt = nil
	}

	if tr.Patch.TrackingReference != nil {
		tx.TrackingReference = *tr.Patch.TrackingReference
	}

	if tr.Patch.RejectionCount != nil {
		tx.RejectionCount = *tr.Patch.RejectionCount
	}
}

func metricResult(err error) string {
	switch {
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrTerminalState):
		return "terminal_state"
	case errors.Is(err, ErrInvalidDecision):
		return "invalid_decision"
	case errors.Is(err, ErrStaleState):
		return "stale_state"
	case errors.Is(err, ErrMissingEvidence):
		return "missing_evidence"
	default:
		return "error"
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

// Track resolves a transaction by its public code.
func (s *Service) Track(ctx context.Context, code string) (*Transaction, error) {
	return s.repo.GetByTrxCode(ctx, code)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// ListForUser returns every transaction the user is a party to.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, ListFilter{UserID: &userID})
}

// AutoCompletable returns the SENT transactions whose deadline passed.
func (s *Service) AutoCompletable(ctx context.Context, now time.Time) ([]*Transaction, error) {
	return s.repo.FindAutoCompletable(ctx, now)
}
