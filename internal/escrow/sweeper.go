package escrow

import (
	"context"
	"log/slog"
	"time"

	"github.com/rekberhq/rekber/internal/metrics"
)

const defaultRecordTimeout = 10 * time.Second

// Sweeper periodically force-completes SENT transactions whose
// confirmation deadline passed, acting as the system actor. A record
// picked up twice is harmless: the second attempt fails the status
// precondition and produces no side effects.
type Sweeper struct {
	svc     *Service
	metrics *metrics.Metrics

	interval      time.Duration
	recordTimeout time.Duration
	now           func() time.Time
}

func NewSweeper(svc *Service, m *metrics.Metrics, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}

	return &Sweeper{
		svc:           svc,
		metrics:       m,
		interval:      interval,
		recordTimeout: defaultRecordTimeout,
		now:           time.Now,
	}
}

// WithClock replaces the wall clock, for deterministic tests.
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	s.now = now
	return s
}

// Run sweeps on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep processes one batch. Each record gets its own timeout and its
// failure never aborts the rest of the batch.
func (s *Sweeper) Sweep(ctx context.Context) (completed int) {
	now := s.now()

	candidates, err := s.svc.AutoCompletable(ctx, now)
	if err != nil {
		slog.Error("failed to list auto-completable transactions", "error", err)
		return 0
	}

	var failed int

	for _, tx := range candidates {
		recCtx, cancel := context.WithTimeout(ctx, s.recordTimeout)
		_, err := s.svc.Apply(recCtx, SystemActor, tx.ID, ActionAutoComplete, Input{Now: now})

		cancel()

		if err != nil {
			failed++

			slog.Error("auto-complete failed", "transaction", tx.TrxCode, "error", err)

			continue
		}

		completed++

		slog.Info("transaction auto-completed", "transaction", tx.TrxCode)
	}

	s.metrics.ObserveSweep(completed, failed)

	return completed
}
