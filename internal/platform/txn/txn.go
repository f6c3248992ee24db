// Package txn linearizes mutations against the in-memory ledger. Every
// write path runs inside the Serializer so check-then-act sequences (quorum
// counts, duplicate-endorsement checks, one-time approvals) observe a fully
// consistent prior state and commit a fully consistent next state.
package txn

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	dErrors "caresure/pkg/domain-errors"
)

// Lock contention metrics for monitoring serializer behavior.
var (
	lockWaitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "caresure_ledger_lock_wait_seconds",
		Help:    "Time spent waiting to acquire the ledger write lock",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})
	lockAcquisitions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "caresure_ledger_lock_acquisitions_total",
		Help: "Total number of ledger write lock acquisitions",
	})
)

// defaultTxTimeout is the maximum duration for a ledger transaction.
const defaultTxTimeout = 5 * time.Second

// Serializer provides the single mutation path for the ledger. A single
// mutex rather than a sharded one: endorsement quorums, policy bindings, and
// claim approvals cross entity boundaries, so writes need one global order.
type Serializer struct {
	mu      sync.Mutex
	timeout time.Duration
}

// Option configures the Serializer.
type Option func(*Serializer)

// WithTimeout overrides the default transaction timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Serializer) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func New(opts ...Option) *Serializer {
	s := &Serializer{timeout: defaultTxTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunInTx executes fn while holding the ledger write lock. The call either
// fully commits or, when fn returns an error, commits nothing - fn must stage
// all validation before its first write.
func (s *Serializer) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	lockStart := time.Now()
	s.mu.Lock()
	lockWaitDuration.Observe(time.Since(lockStart).Seconds())
	lockAcquisitions.Inc()
	defer s.mu.Unlock()

	// Check again after acquiring the lock.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(ctx)
}
