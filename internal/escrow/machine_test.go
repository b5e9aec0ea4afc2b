package escrow_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rekberhq/rekber/internal/escrow"
)

var (
	buyerID  = uuid.New()
	sellerID = uuid.New()
	adminID  = uuid.New()

	buyer = escrow.Actor{ID: buyerID, Role: escrow.RoleUser}
	selr  = escrow.Actor{ID: sellerID, Role: escrow.RoleUser}
	admin = escrow.Actor{ID: adminID, Role: escrow.RoleAdmin}
)

func newTransaction(status escrow.Status) *escrow.Transaction {
	return &escrow.Transaction{
		ID:            uuid.New(),
		TrxCode:       "TRX-1700000000000",
		BuyerID:       buyerID,
		SellerID:      sellerID,
		Amount:        100000,
		AdminFee:      5000,
		TotalTransfer: 105000,
		Status:        status,
	}
}

func TestResolve_Transitions(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	type testCase struct {
		name   string
		status escrow.Status
		actor  escrow.Actor
		action escrow.Action
		in     escrow.Input
		wantTo escrow.Status
	}

	tests := []testCase{
		{
			name:   "BuyerSubmitsPaymentProof",
			status: escrow.StatusPendingPayment,
			actor:  buyer,
			action: escrow.ActionSubmitPaymentProof,
			wantTo: escrow.StatusVerifying,
		},
		{
			name:   "AdminVerifiesPayment",
			status: escrow.StatusVerifying,
			actor:  admin,
			action: escrow.ActionVerifyPayment,
			wantTo: escrow.StatusProcessed,
		},
		{
			name:   "AdminRejectsPayment",
			status: escrow.StatusVerifying,
			actor:  admin,
			action: escrow.ActionRejectPayment,
			wantTo: escrow.StatusPendingPayment,
		},
		{
			name:   "SellerShips",
			status: escrow.StatusProcessed,
			actor:  selr,
			action: escrow.ActionMarkShipped,
			in:     escrow.Input{Now: now},
			wantTo: escrow.StatusSent,
		},
		{
			name:   "BuyerOpensDispute",
			status: escrow.StatusSent,
			actor:  buyer,
			action: escrow.ActionOpenDispute,
			in:     escrow.Input{Reason: "wrong item"},
			wantTo: escrow.StatusDisputed,
		},
		{
			name:   "BuyerConfirmsReceipt",
			status: escrow.StatusSent,
			actor:  buyer,
			action: escrow.ActionMarkReceived,
			wantTo: escrow.StatusCompleted,
		},
		{
			name:   "AdminDisburses",
			status: escrow.StatusCompleted,
			actor:  admin,
			action: escrow.ActionDisburse,
			wantTo: escrow.StatusDisbursed,
		},
		{
			name:   "BuyerReturnsGoods",
			status: escrow.StatusReturnProcess,
			actor:  buyer,
			action: escrow.ActionReturnGoods,
			wantTo: escrow.StatusReturnSent,
		},
		{
			name:   "SellerConfirmsReturn",
			status: escrow.StatusReturnSent,
			actor:  selr,
			action: escrow.ActionConfirmReturn,
			wantTo: escrow.StatusRefundPending,
		},
		{
			name:   "AdminMarksRefunded",
			status: escrow.StatusRefundPending,
			actor:  admin,
			action: escrow.ActionMarkRefunded,
			wantTo: escrow.StatusRefunded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := newTransaction(tt.status)

			tr, err := escrow.Resolve(tx, tt.actor, tt.action, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.status, tr.From)
			assert.Equal(t, tt.wantTo, tr.To)

			// Resolve never mutates the transaction.
			assert.Equal(t, tt.status, tx.Status)
		})
	}
}

func TestResolve_Rejections(t *testing.T) {
	due := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	type testCase struct {
		name    string
		tx      *escrow.Transaction
		actor   escrow.Actor
		action  escrow.Action
		in      escrow.Input
		wantErr error
	}

	tests := []testCase{
		{
			name:    "UnknownAction",
			tx:      newTransaction(escrow.StatusPendingPayment),
			actor:   admin,
			action:  escrow.Action("teleport"),
			wantErr: escrow.ErrInvalidTransition,
		},
		{
			name:    "WrongStatus",
			tx:      newTransaction(escrow.StatusPendingPayment),
			actor:   selr,
			action:  escrow.ActionMarkShipped,
			wantErr: escrow.ErrInvalidTransition,
		},
		{
			name:    "TerminalDisbursed",
			tx:      newTransaction(escrow.StatusDisbursed),
			actor:   admin,
			action:  escrow.ActionVerifyPayment,
			wantErr: escrow.ErrTerminalState,
		},
		{
			name:    "TerminalCancelled",
			tx:      newTransaction(escrow.StatusCancelled),
			actor:   buyer,
			action:  escrow.ActionSubmitPaymentProof,
			wantErr: escrow.ErrTerminalState,
		},
		{
			name:    "TerminalRefunded",
			tx:      newTransaction(escrow.StatusRefunded),
			actor:   admin,
			action:  escrow.ActionMarkRefunded,
			wantErr: escrow.ErrTerminalState,
		},
		{
			name:    "SellerCannotSubmitPaymentProof",
			tx:      newTransaction(escrow.StatusPendingPayment),
			actor:   selr,
			action:  escrow.ActionSubmitPaymentProof,
			wantErr: escrow.ErrForbidden,
		},
		{
			name:    "BuyerCannotShip",
			tx:      newTransaction(escrow.StatusProcessed),
			actor:   buyer,
			action:  escrow.ActionMarkShipped,
			wantErr: escrow.ErrForbidden,
		},
		{
			name:    "UserCannotVerifyPayment",
			tx:      newTransaction(escrow.StatusVerifying),
			actor:   buyer,
			action:  escrow.ActionVerifyPayment,
			wantErr: escrow.ErrForbidden,
		},
		{
			name:    "SellerCannotDispute",
			tx:      newTransaction(escrow.StatusSent),
			actor:   selr,
			action:  escrow.ActionOpenDispute,
			wantErr: escrow.ErrForbidden,
		},
		{
			name:    "HumanCannotAutoComplete",
			tx:      newTransaction(escrow.StatusSent),
			actor:   admin,
			action:  escrow.ActionAutoComplete,
			in:      escrow.Input{Now: due},
			wantErr: escrow.ErrForbidden,
		},
		{
			name:    "SystemActorCannotActAsBuyer",
			tx:      newTransaction(escrow.StatusSent),
			actor:   escrow.SystemActor,
			action:  escrow.ActionMarkReceived,
			wantErr: escrow.ErrForbidden,
		},
		{
			name:    "ResolveWithoutDecision",
			tx:      newTransaction(escrow.StatusDisputed),
			actor:   admin,
			action:  escrow.ActionResolveDispute,
			wantErr: escrow.ErrInvalidDecision,
		},
		{
			name:    "ResolveWithGarbageDecision",
			tx:      newTransaction(escrow.StatusDisputed),
			actor:   admin,
			action:  escrow.ActionResolveDispute,
			in:      escrow.Input{Decision: escrow.Decision("SPLIT_THE_BABY")},
			wantErr: escrow.ErrInvalidDecision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := escrow.Resolve(tt.tx, tt.actor, tt.action, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolve_MarkShippedArmsAutoComplete(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tx := newTransaction(escrow.StatusProcessed)

	tr, err := escrow.Resolve(tx, selr, escrow.ActionMarkShipped, escrow.Input{
		Now:               now,
		TrackingReference: "JNE123456",
	})
	require.NoError(t, err)

	require.NotNil(t, tr.Patch.AutoCompleteAt)
	assert.Equal(t, now.Add(escrow.DefaultAutoCompleteWindow), *tr.Patch.AutoCompleteAt)

	require.NotNil(t, tr.Patch.TrackingReference)
	assert.Equal(t, "JNE123456", *tr.Patch.TrackingReference)
}

func TestResolve_MarkShippedCustomWindow(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tx := newTransaction(escrow.StatusProcessed)

	tr, err := escrow.Resolve(tx, selr, escrow.ActionMarkShipped, escrow.Input{
		Now:               now,
		AutoCompleteAfter: 24 * time.Hour,
	})
	require.NoError(t, err)

	require.NotNil(t, tr.Patch.AutoCompleteAt)
	assert.Equal(t, now.Add(24*time.Hour), *tr.Patch.AutoCompleteAt)
	assert.Nil(t, tr.Patch.TrackingReference)
}

func TestResolve_DeadlineClearedOnBuyerAction(t *testing.T) {
	for _, action := range []escrow.Action{escrow.ActionOpenDispute, escrow.ActionMarkReceived} {
		t.Run(string(action), func(t *testing.T) {
			tx := newTransaction(escrow.StatusSent)
			at := time.Now().Add(time.Hour)
			tx.AutoCompleteAt = &at

			tr, err := escrow.Resolve(tx, buyer, action, escrow.Input{})
			require.NoError(t, err)
			assert.True(t, tr.Patch.ClearAutoComplete)
		})
	}
}

func TestResolve_AutoComplete(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("DeadlinePassed", func(t *testing.T) {
		tx := newTransaction(escrow.StatusSent)
		at := now.Add(-time.Minute)
		tx.AutoCompleteAt = &at

		tr, err := escrow.Resolve(tx, escrow.SystemActor, escrow.ActionAutoComplete, escrow.Input{Now: now})
		require.NoError(t, err)
		assert.Equal(t, escrow.StatusCompleted, tr.To)
		assert.True(t, tr.Patch.ClearAutoComplete)
	})

	t.Run("DeadlineExactlyNow", func(t *testing.T) {
		tx := newTransaction(escrow.StatusSent)
		at := now
		tx.AutoCompleteAt = &at

		_, err := escrow.Resolve(tx, escrow.SystemActor, escrow.ActionAutoComplete, escrow.Input{Now: now})
		assert.NoError(t, err)
	})

	t.Run("DeadlineNotReached", func(t *testing.T) {
		tx := newTransaction(escrow.StatusSent)
		at := now.Add(time.Hour)
		tx.AutoCompleteAt = &at

		_, err := escrow.Resolve(tx, escrow.SystemActor, escrow.ActionAutoComplete, escrow.Input{Now: now})
		assert.ErrorIs(t, err, escrow.ErrInvalidTransition)
	})

	t.Run("DeadlineNeverArmed", func(t *testing.T) {
		tx := newTransaction(escrow.StatusSent)

		_, err := escrow.Resolve(tx, escrow.SystemActor, escrow.ActionAutoComplete, escrow.Input{Now: now})
		assert.ErrorIs(t, err, escrow.ErrInvalidTransition)
	})
}

func TestResolve_RejectionCap(t *testing.T) {
	t.Run("FirstRejectionReopens", func(t *testing.T) {
		tx := newTransaction(escrow.StatusVerifying)

		tr, err := escrow.Resolve(tx, admin, escrow.ActionRejectPayment, escrow.Input{})
		require.NoError(t, err)
		assert.Equal(t, escrow.StatusPendingPayment, tr.To)

		require.NotNil(t, tr.Patch.RejectionCount)
		assert.Equal(t, 1, *tr.Patch.RejectionCount)
	})

	t.Run("ThirdRejectionCancels", func(t *testing.T) {
		tx := newTransaction(escrow.StatusVerifying)
		tx.RejectionCount = 2

		tr, err := escrow.Resolve(tx, admin, escrow.ActionRejectPayment, escrow.Input{})
		require.NoError(t, err)
		assert.Equal(t, escrow.StatusCancelled, tr.To)

		require.NotNil(t, tr.Patch.RejectionCount)
		assert.Equal(t, 3, *tr.Patch.RejectionCount)
	})
}

func TestResolve_DisputeDecisions(t *testing.T) {
	tests := []struct {
		decision escrow.Decision
		wantTo   escrow.Status
	}{
		{escrow.DecisionRefundBuyer, escrow.StatusRefundPending},
		{escrow.DecisionReleaseSeller, escrow.StatusCompleted},
		{escrow.DecisionReturnGoods, escrow.StatusReturnProcess},
	}

	for _, tt := range tests {
		t.Run(string(tt.decision), func(t *testing.T) {
			tx := newTransaction(escrow.StatusDisputed)

			tr, err := escrow.Resolve(tx, admin, escrow.ActionResolveDispute, escrow.Input{Decision: tt.decision})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTo, tr.To)
		})
	}
}

func TestStatus_Terminal(t *testing.T) {
	terminal := map[escrow.Status]bool{
		escrow.StatusDisbursed: true,
		escrow.StatusCancelled: true,
		escrow.StatusRefunded:  true,
	}

	for _, s := range []escrow.Status{
		escrow.StatusPendingPayment, escrow.StatusVerifying, escrow.StatusProcessed,
		escrow.StatusSent, escrow.StatusCompleted, escrow.StatusDisbursed,
		escrow.StatusDisputed, escrow.StatusRefundPending, escrow.StatusReturnProcess,
		escrow.StatusReturnSent, escrow.StatusRefunded, escrow.StatusCancelled,
	} {
		assert.Equal(t, terminal[s], s.Terminal(), "status %s", s)
		assert.True(t, s.Valid())
	}

	assert.False(t, escrow.Status("SHIPPED").Valid())
}
