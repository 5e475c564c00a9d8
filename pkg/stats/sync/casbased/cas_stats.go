package casbased

// Synchronous event recording with lock-free compare-and-swap computation

import (
	"context"
	"sync/atomic"

	"github.com/shashank-93rao/streamstats/pkg/stats"
)

// Holds all five running scalars behind a single atomically swapped
// snapshot reference. Snapshots are immutable; every update installs a
// fresh one.
type casBasedStats struct {
	snap atomic.Pointer[stats.Snapshot]
}

// NewStats returns a statistics calculator whose whole state is one
// atomic snapshot pointer. Updates are lock-free retry loops and reads
// are a single atomic load, so no call ever blocks another. A read
// always reflects one consistent point-in-time snapshot, though newer
// events may already have landed by the time the caller looks at the
// result.
func NewStats(ctx context.Context) stats.Statistics {
	s := &casBasedStats{}
	empty := stats.EmptySnapshot()
	s.snap.Store(&empty)
	return s
}

// Event folds n into the running state with a compare-and-swap retry
// loop: load the current snapshot, fold the event into a new one, and
// install it only if no other writer got there first. On a lost race
// the whole round repeats against the fresh state. The loop has no
// retry bound, but at least one contender wins every round, so every
// event is installed exactly once and none is ever lost.
func (s *casBasedStats) Event(ctx context.Context, n int32) error {
	for {
		current := s.snap.Load()
		next := current.Fold(n)
		if s.snap.CompareAndSwap(current, &next) {
			return nil
		}
	}
}

// Min returns the running minimum, or 0 before the first event.
func (s *casBasedStats) Min(ctx context.Context) (int32, error) {
	return s.snap.Load().Minimum(), nil
}

// Max returns the running maximum, or 0 before the first event.
func (s *casBasedStats) Max(ctx context.Context) (int32, error) {
	return s.snap.Load().Maximum(), nil
}

// Mean returns the arithmetic mean, or 0 before the first event.
func (s *casBasedStats) Mean(ctx context.Context) (float64, error) {
	return s.snap.Load().Mean(), nil
}

// Variance returns the population variance, or 0 before the first
// event. Uses the snapshot's sumOfSquares/n - mean² ordering.
func (s *casBasedStats) Variance(ctx context.Context) (float64, error) {
	return s.snap.Load().Variance(), nil
}
