package escrow_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rekberhq/rekber/internal/escrow"
)

type notifyCall struct {
	userID uuid.UUID
	role   string
	title  string
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
	done  chan struct{}
}

func (f *fakeNotifier) record(c notifyCall) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()

	select {
	case f.done <- struct{}{}:
	default:
	}
}

func (f *fakeNotifier) NotifyUser(_ context.Context, userID uuid.UUID, title, _, _ string) error {
	f.record(notifyCall{userID: userID, title: title})
	return nil
}

func (f *fakeNotifier) NotifyRole(_ context.Context, role, title, _, _ string) error {
	f.record(notifyCall{role: role, title: title})
	return nil
}

type fakeAuditLog struct {
	mu    sync.Mutex
	lines []string
	done  chan struct{}
}

func (f *fakeAuditLog) Append(_ context.Context, _ uuid.UUID, _ uuid.UUID, text string) error {
	f.mu.Lock()
	f.lines = append(f.lines, text)
	f.mu.Unlock()

	select {
	case f.done <- struct{}{}:
	default:
	}

	return nil
}

func waitFor(t *testing.T, ch chan struct{}) {
	t.Helper()

	select {
	case <-ch:
	case <-time.After(time.Second):
		require.FailNow(t, "effect was not delivered")
	}
}

func TestDispatcher_DeliversUserNotification(t *testing.T) {
	notifier := &fakeNotifier{done: make(chan struct{}, 1)}
	auditLog := &fakeAuditLog{done: make(chan struct{}, 1)}

	d := escrow.NewDispatcher(notifier, auditLog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	userID := uuid.New()
	d.Dispatch([]escrow.Effect{{
		TransactionID: uuid.New(),
		Notify:        &escrow.Notify{UserID: userID, Title: "Goods shipped"},
	}})

	waitFor(t, notifier.done)

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, userID, notifier.calls[0].userID)
	assert.Equal(t, "Goods shipped", notifier.calls[0].title)
}

func TestDispatcher_DeliversRoleBroadcast(t *testing.T) {
	notifier := &fakeNotifier{done: make(chan struct{}, 1)}
	auditLog := &fakeAuditLog{done: make(chan struct{}, 1)}

	d := escrow.NewDispatcher(notifier, auditLog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	d.Dispatch([]escrow.Effect{{
		TransactionID: uuid.New(),
		Notify:        &escrow.Notify{Role: escrow.RoleAdmin, Title: "Dispute opened"},
	}})

	waitFor(t, notifier.done)

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, string(escrow.RoleAdmin), notifier.calls[0].role)
}

func TestDispatcher_DeliversAudit(t *testing.T) {
	notifier := &fakeNotifier{done: make(chan struct{}, 1)}
	auditLog := &fakeAuditLog{done: make(chan struct{}, 1)}

	d := escrow.NewDispatcher(notifier, auditLog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	d.Dispatch([]escrow.Effect{{
		TransactionID: uuid.New(),
		Audit:         &escrow.Audit{Text: "[SYSTEM] Dispute opened: \"late\""},
	}})

	waitFor(t, auditLog.done)

	auditLog.mu.Lock()
	defer auditLog.mu.Unlock()
	require.Len(t, auditLog.lines, 1)
	assert.Contains(t, auditLog.lines[0], "Dispute opened")
}

func TestDispatcher_DispatchNeverBlocks(t *testing.T) {
	notifier := &fakeNotifier{done: make(chan struct{}, 1)}
	auditLog := &fakeAuditLog{done: make(chan struct{}, 1)}

	// No Run goroutine: the queue fills up and overflow is dropped.
	d := escrow.NewDispatcher(notifier, auditLog)

	effects := make([]escrow.Effect, 500)
	for i := range effects {
		effects[i] = escrow.Effect{
			TransactionID: uuid.New(),
			Audit:         &escrow.Audit{Text: "overflow"},
		}
	}

	done := make(chan struct{})
	go func() {
		d.Dispatch(effects)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "Dispatch blocked on a full queue")
	}
}
