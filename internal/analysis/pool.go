package analysis

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
)

// PooledPredictor caps the number of predictions running at once
type PooledPredictor struct {
	next         Predictor
	sem          *semaphore.Weighted
	queueTimeout time.Duration
}

// NewPooledPredictor wraps next. maxConcurrency <= 0 disables the cap;
// queueTimeout <= 0 lets callers wait for a slot as long as ctx allows.
func NewPooledPredictor(next Predictor, maxConcurrency int, queueTimeout time.Duration) *PooledPredictor {
	p := &PooledPredictor{next: next, queueTimeout: queueTimeout}
	if maxConcurrency > 0 {
		p.sem = semaphore.NewWeighted(int64(maxConcurrency))
	}
	return p
}

// Predict waits for a free slot, then delegates. It fails with
// ErrPredictorBusy when no slot frees up within the queue timeout.
func (p *PooledPredictor) Predict(ctx context.Context, description string) (string, error) {
	if p.sem == nil {
		return p.next.Predict(ctx, description)
	}

	waitCtx := ctx
	if p.queueTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, p.queueTimeout)
		defer cancel()
	}

	if err := p.sem.Acquire(waitCtx, 1); err != nil {
		return "", ErrPredictorBusy
	}
	defer p.sem.Release(1)

	return p.next.Predict(ctx, description)
}
