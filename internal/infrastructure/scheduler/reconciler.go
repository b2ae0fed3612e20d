package scheduler

import (
	"context"
	"time"

	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

// Completer is the part of the booking usecase the reconciler drives.
type Completer interface {
	CompleteElapsed(ctx context.Context, now time.Time) (int64, error)
}

// Recorder receives the number of bookings completed per run. Optional.
type Recorder interface {
	BookingsCompleted(n int64)
}

// Reconciler periodically moves confirmed bookings whose end date has passed
// to completed.
type Reconciler struct {
	completer Completer
	recorder  Recorder
	logger    usecasecontract.IAppLogger
	interval  time.Duration
	now       func() time.Time
}

func NewReconciler(completer Completer, recorder Recorder, logger usecasecontract.IAppLogger, interval time.Duration) *Reconciler {
	return &Reconciler{
		completer: completer,
		recorder:  recorder,
		logger:    logger,
		interval:  interval,
		now:       time.Now,
	}
}

// Run reconciles once immediately and then on every tick until ctx is done.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single reconciliation pass.
func (r *Reconciler) RunOnce(ctx context.Context) int64 {
	n, err := r.completer.CompleteElapsed(ctx, r.now())
	if err != nil {
		r.logger.Errorf("booking reconciler: %v", err)
		return 0
	}
	if n > 0 {
		r.logger.Infof("booking reconciler completed %d bookings", n)
	}
	if r.recorder != nil {
		r.recorder.BookingsCompleted(n)
	}
	return n
}
