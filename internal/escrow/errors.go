package escrow

import "errors"

var (
	// ErrNotFound means the transaction id is unknown.
	ErrNotFound = errors.New("transaction not found")

	// ErrForbidden means the actor is not permitted to perform the action.
	ErrForbidden = errors.New("actor not permitted for this action")

	// ErrInvalidTransition means the action is not an edge from the
	// transaction's current status.
	ErrInvalidTransition = errors.New("invalid transition for current status")

	// ErrTerminalState means the transaction is closed and accepts no action.
	ErrTerminalState = errors.New("transaction is in a terminal state")

	// ErrInvalidDecision means the dispute resolution value is unknown.
	ErrInvalidDecision = errors.New("invalid dispute decision")

	// ErrStaleState means the stored status changed between read and write;
	// the caller lost a concurrent race and no side effects were applied.
	ErrStaleState = errors.New("transaction status changed concurrently")

	// ErrMissingEvidence means the transition requires an uploaded proof
	// that is not on record.
	ErrMissingEvidence = errors.New("required evidence not uploaded")

	// ErrInvalidAmount rejects non-positive principals at creation.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrSelfDealing rejects transactions where buyer and seller match.
	ErrSelfDealing = errors.New("buyer and seller must be different users")
)
