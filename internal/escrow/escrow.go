package escrow

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of an escrow transaction.
type Status string

const (
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusVerifying      Status = "VERIFYING"
	StatusProcessed      Status = "PROCESSED"
	StatusSent           Status = "SENT"
	StatusCompleted      Status = "COMPLETED"
	StatusDisbursed      Status = "DISBURSED"
	StatusDisputed       Status = "DISPUTED"
	StatusRefundPending  Status = "REFUND_PENDING"
	StatusReturnProcess  Status = "RETURN_PROCESS"
	StatusReturnSent     Status = "RETURN_SENT"
	StatusRefunded       Status = "REFUNDED"
	StatusCancelled      Status = "CANCELLED"
)

// Valid reports whether s is a member of the status enum.
func (s Status) Valid() bool {
	switch s {
	case StatusPendingPayment, StatusVerifying, StatusProcessed, StatusSent,
		StatusCompleted, StatusDisbursed, StatusDisputed, StatusRefundPending,
		StatusReturnProcess, StatusReturnSent, StatusRefunded, StatusCancelled:
		return true
	}

	return false
}

// Terminal reports whether no edge leaves s.
func (s Status) Terminal() bool {
	switch s {
	case StatusDisbursed, StatusCancelled, StatusRefunded:
		return true
	}

	return false
}

// Role is the platform-level role of an actor.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Actor identifies who is requesting a transition. The zero ID with
// System set is the scheduler's synthetic actor.
type Actor struct {
	ID     uuid.UUID
	Role   Role
	System bool
}

// SystemActor is used by the auto-completion sweep.
var SystemActor = Actor{System: true}

// Action is a requested transition on a transaction.
type Action string

const (
	ActionSubmitPaymentProof Action = "submit_payment_proof"
	ActionVerifyPayment      Action = "verify_payment"
	ActionRejectPayment      Action = "reject_payment"
	ActionMarkShipped        Action = "mark_shipped"
	ActionOpenDispute        Action = "open_dispute"
	ActionMarkReceived       Action = "mark_received"
	ActionAutoComplete       Action = "auto_complete"
	ActionDisburse           Action = "disburse"
	ActionResolveDispute     Action = "resolve_dispute"
	ActionReturnGoods        Action = "return_goods"
	ActionConfirmReturn      Action = "confirm_return"
	ActionMarkRefunded       Action = "mark_refunded"
)

// Decision is the intermediary's ruling on a dispute.
type Decision string

const (
	DecisionRefundBuyer   Decision = "REFUND_BUYER"
	DecisionReleaseSeller Decision = "RELEASE_SELLER"
	DecisionReturnGoods   Decision = "RETURN_GOODS"
)

// Evidence kinds the engine gates transitions on. The proof store tags
// records with the same strings.
const (
	EvidencePayment  = "payment_proof"
	EvidenceTransfer = "transfer_proof"
	EvidenceRefund   = "refund_proof"
	EvidenceReturn   = "return_proof"
)

// Transaction is the escrowed trade between a buyer and a seller.
type Transaction struct {
	ID                uuid.UUID
	TrxCode           string
	BuyerID           uuid.UUID
	SellerID          uuid.UUID
	Amount            int64 // Principal owed to the seller, in rupiah.
	AdminFee          int64
	TotalTransfer     int64 // Amount + AdminFee, fixed at creation.
	Description       string
	Status            Status
	AutoCompleteAt    *time.Time // Non-nil only while Status == SENT.
	TrackingReference string
	RejectionCount    int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Involves reports whether the user is a party to the transaction.
func (t *Transaction) Involves(userID uuid.UUID) bool {
	return t.BuyerID == userID || t.SellerID == userID
}
