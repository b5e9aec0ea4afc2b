package escrow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rekberhq/rekber/internal/escrow"
)

func resolved(t *testing.T, tx *escrow.Transaction, actor escrow.Actor, action escrow.Action, in escrow.Input) escrow.Transition {
	t.Helper()

	tr, err := escrow.Resolve(tx, actor, action, in)
	require.NoError(t, err)

	return tr
}

func TestEffects_SubmitPaymentProofAlertsAdmins(t *testing.T) {
	tx := newTransaction(escrow.StatusPendingPayment)
	in := escrow.Input{}
	tr := resolved(t, tx, buyer, escrow.ActionSubmitPaymentProof, in)

	effects := escrow.Effects(tx, tr, buyer, in)
	require.Len(t, effects, 1)

	n := effects[0].Notify
	require.NotNil(t, n)
	assert.Equal(t, escrow.RoleAdmin, n.Role)
	assert.Contains(t, n.Message, tx.TrxCode)
	assert.Equal(t, "/transactions/"+tx.ID.String(), n.Link)
}

func TestEffects_DisputeNotifiesSellerAndAdmins(t *testing.T) {
	tx := newTransaction(escrow.StatusSent)
	in := escrow.Input{Reason: "item never arrived"}
	tr := resolved(t, tx, buyer, escrow.ActionOpenDispute, in)

	effects := escrow.Effects(tx, tr, buyer, in)
	require.Len(t, effects, 3)

	require.NotNil(t, effects[0].Audit)
	assert.Contains(t, effects[0].Audit.Text, "item never arrived")
	assert.Equal(t, buyerID, effects[0].Audit.AuthorID)

	require.NotNil(t, effects[1].Notify)
	assert.Equal(t, sellerID, effects[1].Notify.UserID)

	require.NotNil(t, effects[2].Notify)
	assert.Equal(t, escrow.RoleAdmin, effects[2].Notify.Role)
}

func TestEffects_ShippedWithTrackingAddsAuditLine(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tx := newTransaction(escrow.StatusProcessed)
	in := escrow.Input{Now: now, TrackingReference: "JNE123456"}
	tr := resolved(t, tx, selr, escrow.ActionMarkShipped, in)

	effects := escrow.Effects(tx, tr, selr, in)
	require.Len(t, effects, 2)

	require.NotNil(t, effects[0].Audit)
	assert.Contains(t, effects[0].Audit.Text, "JNE123456")

	require.NotNil(t, effects[1].Notify)
	assert.Equal(t, buyerID, effects[1].Notify.UserID)
}

func TestEffects_FinalRejectionMentionsCancellation(t *testing.T) {
	tx := newTransaction(escrow.StatusVerifying)
	tx.RejectionCount = 2
	in := escrow.Input{}
	tr := resolved(t, tx, admin, escrow.ActionRejectPayment, in)
	require.Equal(t, escrow.StatusCancelled, tr.To)

	effects := escrow.Effects(tx, tr, admin, in)
	require.Len(t, effects, 1)

	n := effects[0].Notify
	require.NotNil(t, n)
	assert.Equal(t, buyerID, n.UserID)
	assert.Contains(t, n.Message, "cancelled")
}
