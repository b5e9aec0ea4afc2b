package escrow

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Notifier is the outbound notification port. Failures are logged by the
// dispatcher and never reach the transition that produced the effect.
type Notifier interface {
	NotifyUser(ctx context.Context, userID uuid.UUID, title, message, link string) error
	NotifyRole(ctx context.Context, role, title, message, link string) error
}

// AuditLog appends system narration to a transaction's message stream.
type AuditLog interface {
	Append(ctx context.Context, transactionID, authorID uuid.UUID, text string) error
}

const (
	dispatchQueueSize = 256
	deliverTimeout    = 5 * time.Second
)

// Dispatcher delivers transition effects on its own goroutine, after the
// state write has committed. Enqueueing never blocks the caller.
type Dispatcher struct {
	notifier Notifier
	audit    AuditLog
	queue    chan Effect
}

func NewDispatcher(notifier Notifier, audit AuditLog) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		audit:    audit,
		queue:    make(chan Effect, dispatchQueueSize),
	}
}

// Dispatch enqueues the effects. A full queue drops the effect with a
// log line rather than stalling a committed transition.
func (d *Dispatcher) Dispatch(effects []Effect) {
	for _, e := range effects {
		select {
		case d.queue <- e:
		default:
			slog.Warn("effect queue full, dropping effect", "transaction", e.TransactionID)
		}
	}
}

// Run drains the queue until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-d.queue:
			d.deliver(e)
		}
	}
}

func (d *Dispatcher) deliver(e Effect) {
	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	switch {
	case e.Notify != nil:
		n := e.Notify

		var err error
		if n.UserID != uuid.Nil {
			err = d.notifier.NotifyUser(ctx, n.UserID, n.Title, n.Message, n.Link)
		} else {
			err = d.notifier.NotifyRole(ctx, string(n.Role), n.Title, n.Message, n.Link)
		}

		if err != nil {
			slog.Error("failed to deliver notification", "transaction", e.TransactionID, "error", err)
		}

	case e.Audit != nil:
		if err := d.audit.Append(ctx, e.TransactionID, e.Audit.AuthorID, e.Audit.Text); err != nil {
			slog.Error("failed to append audit message", "transaction", e.TransactionID, "error", err)
		}
	}
}
