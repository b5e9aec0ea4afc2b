package escrow

import (
	"fmt"

	"github.com/google/uuid"
)

// Notify asks the notification port to inform a user or a role group.
// Exactly one of UserID and Role is set.
type Notify struct {
	UserID  uuid.UUID
	Role    Role
	Title   string
	Message string
	Link    string
}

// Audit appends a system-authored line to the transaction's message
// stream. AuthorID is uuid.Nil when no human triggered the transition.
type Audit struct {
	AuthorID uuid.UUID
	Text     string
}

// Effect is one outbound side effect of a committed transition. Effects
// are dispatched after the status write commits and never roll it back.
type Effect struct {
	TransactionID uuid.UUID
	Notify        *Notify
	Audit         *Audit
}

// Effects computes the side effects owed for a committed transition.
func Effects(tx *Transaction, tr Transition, actor Actor, in Input) []Effect {
	link := "/transactions/" + tx.ID.String()

	notify := func(n Notify) Effect {
		n.Link = link
		return Effect{TransactionID: tx.ID, Notify: &n}
	}
	audit := func(text string) Effect {
		return Effect{TransactionID: tx.ID, Audit: &Audit{AuthorID: actor.ID, Text: text}}
	}

	var effects []Effect

	switch tr.Action {
	case ActionSubmitPaymentProof:
		effects = append(effects, notify(Notify{
			Role:    RoleAdmin,
			Title:   "Payment proof uploaded",
			Message: fmt.Sprintf("Transaction %s is waiting for payment verification.", tx.TrxCode),
		}))

	case ActionVerifyPayment:
		effects = append(effects,
			notify(Notify{
				UserID:  tx.BuyerID,
				Title:   "Payment verified",
				Message: fmt.Sprintf("Your payment for %s has been verified. The seller can now ship.", tx.TrxCode),
			}),
			notify(Notify{
				UserID:  tx.SellerID,
				Title:   "Payment received",
				Message: fmt.Sprintf("Funds for %s are held in escrow. Please ship the goods.", tx.TrxCode),
			}),
		)

	case ActionRejectPayment:
		msg := fmt.Sprintf("Your payment proof for %s was rejected. Please upload a new one.", tx.TrxCode)
		if tr.To == StatusCancelled {
			msg = fmt.Sprintf("Transaction %s was cancelled after repeated payment rejections.", tx.TrxCode)
		}

		effects = append(effects, notify(Notify{
			UserID:  tx.BuyerID,
			Title:   "Payment rejected",
			Message: msg,
		}))

	case ActionMarkShipped:
		if in.TrackingReference != "" {
			effects = append(effects, audit(fmt.Sprintf("[SYSTEM] Goods shipped, tracking reference: %s", in.TrackingReference)))
		}

		effects = append(effects, notify(Notify{
			UserID:  tx.BuyerID,
			Title:   "Goods shipped",
			Message: fmt.Sprintf("The seller marked %s as shipped. Confirm receipt within 2x24 hours.", tx.TrxCode),
		}))

	case ActionOpenDispute:
		effects = append(effects,
			audit(fmt.Sprintf("[SYSTEM] Dispute opened: %q", in.Reason)),
			notify(Notify{
				UserID:  tx.SellerID,
				Title:   "Dispute opened",
				Message: fmt.Sprintf("The buyer opened a dispute on %s.", tx.TrxCode),
			}),
			notify(Notify{
				Role:    RoleAdmin,
				Title:   "Dispute opened",
				Message: fmt.Sprintf("Transaction %s is disputed and needs mediation.", tx.TrxCode),
			}),
		)

	case ActionMarkReceived:
		effects = append(effects,
			notify(Notify{
				UserID:  tx.SellerID,
				Title:   "Transaction completed",
				Message: fmt.Sprintf("The buyer confirmed receipt for %s. Funds will be disbursed.", tx.TrxCode),
			}),
			notify(Notify{
				Role:    RoleAdmin,
				Title:   "Ready to disburse",
				Message: fmt.Sprintf("Transaction %s is completed and ready for disbursement.", tx.TrxCode),
			}),
		)

	case ActionDisburse:
		effects = append(effects, notify(Notify{
			UserID:  tx.SellerID,
			Title:   "Funds disbursed",
			Message: fmt.Sprintf("Funds for %s have been transferred to your account.", tx.TrxCode),
		}))

	case ActionResolveDispute:
		effects = append(effects, audit(fmt.Sprintf("[SYSTEM] Dispute resolved: %s", in.Decision)))

	case ActionReturnGoods:
		effects = append(effects, audit("[SYSTEM] Buyer returned the goods to the seller."))

	case ActionConfirmReturn:
		effects = append(effects,
			audit("[SYSTEM] Seller confirmed the returned goods. Refund pending."),
			notify(Notify{
				Role:    RoleAdmin,
				Title:   "Refund pending",
				Message: fmt.Sprintf("Transaction %s awaits a refund to the buyer.", tx.TrxCode),
			}),
		)

	case ActionMarkRefunded:
		effects = append(effects, audit("[SYSTEM] Buyer refunded. Transaction closed."))
	}

	return effects
}
