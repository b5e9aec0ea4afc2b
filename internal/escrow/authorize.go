package escrow

// Authorize is the single place actor permissions are checked. Buyer and
// seller actions match on identity, intermediary actions on the ADMIN
// role, and auto_complete accepts only the scheduler's system actor.
func Authorize(actor Actor, tx *Transaction, action Action) error {
	r, ok := rules[action]
	if !ok {
		return ErrInvalidTransition
	}

	switch r.kind {
	case byBuyer:
		if actor.System || actor.ID != tx.BuyerID {
			return ErrForbidden
		}
	case bySeller:
		if actor.System || actor.ID != tx.SellerID {
			return ErrForbidden
		}
	case byAdmin:
		if actor.System || actor.Role != RoleAdmin {
			return ErrForbidden
		}
	case bySystem:
		if !actor.System {
			return ErrForbidden
		}
	}

	return nil
}
