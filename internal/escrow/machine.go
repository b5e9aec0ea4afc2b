package escrow

import "time"

// DefaultAutoCompleteWindow is how long the buyer has to confirm receipt
// after shipment before the sweep completes the transaction.
const DefaultAutoCompleteWindow = 48 * time.Hour

// maxPaymentRejections bounds the VERIFYING -> PENDING_PAYMENT backward
// edge. The rejection that reaches the cap cancels the transaction
// instead of re-opening it.
const maxPaymentRejections = 3

type actorKind int

const (
	byBuyer actorKind = iota
	bySeller
	byAdmin
	bySystem
)

type rule struct {
	from Status
	to   Status
	kind actorKind
}

// rules is the transition table. resolve adjusts the target status for
// the two data-dependent edges (reject_payment, resolve_dispute).
var rules = map[Action]rule{
	ActionSubmitPaymentProof: {from: StatusPendingPayment, to: StatusVerifying, kind: byBuyer},
	ActionVerifyPayment:      {from: StatusVerifying, to: StatusProcessed, kind: byAdmin},
	ActionRejectPayment:      {from: StatusVerifying, to: StatusPendingPayment, kind: byAdmin},
	ActionMarkShipped:        {from: StatusProcessed, to: StatusSent, kind: bySeller},
	ActionOpenDispute:        {from: StatusSent, to: StatusDisputed, kind: byBuyer},
	ActionMarkReceived:       {from: StatusSent, to: StatusCompleted, kind: byBuyer},
	ActionAutoComplete:       {from: StatusSent, to: StatusCompleted, kind: bySystem},
	ActionDisburse:           {from: StatusCompleted, to: StatusDisbursed, kind: byAdmin},
	ActionResolveDispute:     {from: StatusDisputed, kind: byAdmin},
	ActionReturnGoods:        {from: StatusReturnProcess, to: StatusReturnSent, kind: byBuyer},
	ActionConfirmReturn:      {from: StatusReturnSent, to: StatusRefundPending, kind: bySeller},
	ActionMarkRefunded:       {from: StatusRefundPending, to: StatusRefunded, kind: byAdmin},
}

// Input carries the action-specific values a transition may need.
type Input struct {
	Decision          Decision
	Reason            string
	TrackingReference string
	EvidenceURL       string
	Now               time.Time

	// AutoCompleteAfter overrides DefaultAutoCompleteWindow when set.
	AutoCompleteAfter time.Duration
}

// Patch is what the store must write alongside the status change.
type Patch struct {
	AutoCompleteAt    *time.Time
	ClearAutoComplete bool
	TrackingReference *string
	RejectionCount    *int
}

// Transition is a resolved, authorized state change.
type Transition struct {
	Action Action
	From   Status
	To     Status
	Patch  Patch
}

// Resolve validates the action against the transaction's current status
// and the actor's permissions, and returns the resulting transition. The
// transaction is not modified.
func Resolve(tx *Transaction, actor Actor, action Action, in Input) (Transition, error) {
	r, ok := rules[action]
	if !ok {
		return Transition{}, ErrInvalidTransition
	}

	if tx.Status.Terminal() {
		return Transition{}, ErrTerminalState
	}

	if tx.Status != r.from {
		return Transition{}, ErrInvalidTransition
	}

	if err := Authorize(actor, tx, action); err != nil {
		return Transition{}, err
	}

	tr := Transition{Action: action, From: tx.Status, To: r.to}

	switch action {
	case ActionMarkShipped:
		window := in.AutoCompleteAfter
		if window <= 0 {
			window = DefaultAutoCompleteWindow
		}

		at := in.Now.Add(window)
		tr.Patch.AutoCompleteAt = &at

		if in.TrackingReference != "" {
			ref := in.TrackingReference
			tr.Patch.TrackingReference = &ref
		}

	case ActionOpenDispute, ActionMarkReceived:
		tr.Patch.ClearAutoComplete = true

	case ActionAutoComplete:
		if tx.AutoCompleteAt == nil || tx.AutoCompleteAt.After(in.Now) {
			return Transition{}, ErrInvalidTransition
		}

		tr.Patch.ClearAutoComplete = true

	case ActionRejectPayment:
		count := tx.RejectionCount + 1
		tr.Patch.RejectionCount = &count

		if count >= maxPaymentRejections {
			tr.To = StatusCancelled
		}

	case ActionResolveDispute:
		switch in.Decision {
		case DecisionRefundBuyer:
			tr.To = StatusRefundPending
		case DecisionReleaseSeller:
			tr.To = StatusCompleted
		case DecisionReturnGoods:
			tr.To = StatusReturnProcess
		default:
			return Transition{}, ErrInvalidDecision
		}
	}

	return tr, nil
}
