package lockbased

// Synchronous event recording with reader/writer lock based computation

import (
	"context"
	"sync"

	"github.com/shashank-93rao/streamstats/pkg/stats"
)

// Holds the running scalars guarded by the lock.
// The snapshot is mutated in place; the write lock is the only thing
// that makes that safe, so it must cover every field access.
type lockBasedStats struct {
	snap stats.Snapshot

	lock sync.RWMutex
}

// NewStats returns a statistics calculator that applies every event
// under an exclusive write lock and serves every read under the shared
// read lock. Writers are totally ordered and never interleave with
// readers at the field level, while any number of readers proceed in
// parallel with each other. A write call blocks until the lock is
// free; there are no timeouts.
func NewStats(ctx context.Context) stats.Statistics {
	return &lockBasedStats{
		snap: stats.EmptySnapshot(),
	}
}

// Event folds n into the running state. The update of all five scalars
// happens inside one write-locked critical section, so no reader can
// observe a partially applied event.
func (s *lockBasedStats) Event(ctx context.Context, n int32) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.snap.Count++
	s.snap.Sum += int64(n)
	s.snap.SumOfSquares += int64(n) * int64(n)
	if n < s.snap.Min {
		s.snap.Min = n
	}
	if n > s.snap.Max {
		s.snap.Max = n
	}
	return nil
}

// Min returns the running minimum, or 0 before the first event.
func (s *lockBasedStats) Min(ctx context.Context) (int32, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.snap.Minimum(), nil
}

// Max returns the running maximum, or 0 before the first event.
func (s *lockBasedStats) Max(ctx context.Context) (int32, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.snap.Maximum(), nil
}

// Mean returns the arithmetic mean, or 0 before the first event.
func (s *lockBasedStats) Mean(ctx context.Context) (float64, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.snap.Mean(), nil
}

// Variance returns the population variance, or 0 before the first
// event. Computed as (sumOfSquares - sum²/n) / n, which can differ
// from the sumOfSquares/n - mean² ordering by a rounding ulp or two;
// callers comparing across implementations need an epsilon.
func (s *lockBasedStats) Variance(ctx context.Context) (float64, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.snap.Count == 0 {
		return 0, nil
	}
	count := float64(s.snap.Count)
	meanSquare := float64(s.snap.Sum) * float64(s.snap.Sum) / count
	return (float64(s.snap.SumOfSquares) - meanSquare) / count, nil
}
