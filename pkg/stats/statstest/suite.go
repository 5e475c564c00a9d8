// Package statstest holds the behavioural suite shared by all
// Statistics implementations. Each implementation package runs it
// against its own constructor, the way a base test class would.
package statstest

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/shashank-93rao/streamstats/pkg/stats"
)

// Factory builds a fresh calculator for one test case.
type Factory func(ctx context.Context) stats.Statistics

const delta = 0.001

// Run exercises the full Statistics contract against calculators built
// by f.
func Run(t *testing.T, f Factory) {
	t.Run("NoEvents", func(t *testing.T) { testNoEvents(t, f) })
	t.Run("SingleEvent", func(t *testing.T) { testSingleEvent(t, f) })
	t.Run("MultipleEvents", func(t *testing.T) { testMultipleEvents(t, f) })
	t.Run("ConcurrentUpdates", func(t *testing.T) { testConcurrentUpdates(t, f) })
	t.Run("IdempotentReads", func(t *testing.T) { testIdempotentReads(t, f) })
	t.Run("MonotonicMinMax", func(t *testing.T) { testMonotonicMinMax(t, f) })
	t.Run("ReadersDuringWrites", func(t *testing.T) { testReadersDuringWrites(t, f) })
}

type observed struct {
	min      int32
	max      int32
	mean     float64
	variance float64
}

func readAll(t *testing.T, ctx context.Context, s stats.Statistics) observed {
	t.Helper()
	min, err := s.Min(ctx)
	require.NoError(t, err)
	max, err := s.Max(ctx)
	require.NoError(t, err)
	mean, err := s.Mean(ctx)
	require.NoError(t, err)
	variance, err := s.Variance(ctx)
	require.NoError(t, err)
	return observed{min: min, max: max, mean: mean, variance: variance}
}

func testNoEvents(t *testing.T, f Factory) {
	ctx := context.Background()
	s := f(ctx)

	got := readAll(t, ctx, s)
	assert.Equal(t, int32(0), got.min, "minimum should be 0 when no events are recorded")
	assert.Equal(t, int32(0), got.max, "maximum should be 0 when no events are recorded")
	assert.InDelta(t, 0, got.mean, delta, "mean should be 0 when no events are recorded")
	assert.InDelta(t, 0, got.variance, delta, "variance should be 0 when no events are recorded")
}

func testSingleEvent(t *testing.T, f Factory) {
	ctx := context.Background()
	s := f(ctx)

	require.NoError(t, s.Event(ctx, 10))

	got := readAll(t, ctx, s)
	assert.Equal(t, int32(10), got.min)
	assert.Equal(t, int32(10), got.max)
	assert.InDelta(t, 10, got.mean, delta)
	assert.InDelta(t, 0, got.variance, delta, "variance should be 0 for a single event")
}

func testMultipleEvents(t *testing.T, f Factory) {
	ctx := context.Background()
	s := f(ctx)

	require.NoError(t, s.Event(ctx, 5))
	require.NoError(t, s.Event(ctx, 15))

	got := readAll(t, ctx, s)
	assert.Equal(t, int32(5), got.min)
	assert.Equal(t, int32(15), got.max)
	assert.InDelta(t, 10, got.mean, delta)
	assert.InDelta(t, 25, got.variance, delta, "population variance of {5,15} is 25")
}

// Ten writers record disjoint value ranges concurrently; afterwards the
// final stats must account for every single event. Any lost update
// shows up in the mean or the variance.
func testConcurrentUpdates(t *testing.T, f Factory) {
	ctx := context.Background()
	s := f(ctx)

	const numWorkers = 10
	const eventsPerWorker = 10

	var g errgroup.Group
	for i := 0; i < numWorkers; i++ {
		first := int32(i*eventsPerWorker + 1)
		g.Go(func() error {
			for n := first; n < first+eventsPerWorker; n++ {
				if err := s.Event(ctx, n); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	const total = numWorkers * eventsPerWorker
	var sum, sumOfSquares float64
	for v := 1; v <= total; v++ {
		sum += float64(v)
		sumOfSquares += float64(v) * float64(v)
	}
	wantMean := sum / total
	wantVariance := sumOfSquares/total - wantMean*wantMean

	got := readAll(t, ctx, s)
	assert.Equal(t, int32(1), got.min)
	assert.Equal(t, int32(total), got.max)
	assert.InDelta(t, wantMean, got.mean, delta)
	assert.InDelta(t, wantVariance, got.variance, delta)
}

func testIdempotentReads(t *testing.T, f Factory) {
	ctx := context.Background()
	s := f(ctx)

	for _, n := range []int32{3, -8, 21} {
		require.NoError(t, s.Event(ctx, n))
	}

	first := readAll(t, ctx, s)
	second := readAll(t, ctx, s)
	assert.Equal(t, first, second, "repeated reads with no intervening event must match exactly")
}

func testMonotonicMinMax(t *testing.T, f Factory) {
	ctx := context.Background()
	s := f(ctx)

	values := []int32{7, 3, 9, -4, 12, 0, 5, -4, 30, -17}

	require.NoError(t, s.Event(ctx, values[0]))
	prevMin, err := s.Min(ctx)
	require.NoError(t, err)
	prevMax, err := s.Max(ctx)
	require.NoError(t, err)
	assert.Equal(t, values[0], prevMin)
	assert.Equal(t, values[0], prevMax)

	for _, v := range values[1:] {
		require.NoError(t, s.Event(ctx, v))
		min, err := s.Min(ctx)
		require.NoError(t, err)
		max, err := s.Max(ctx)
		require.NoError(t, err)
		assert.LessOrEqual(t, min, prevMin, "minimum must never increase")
		assert.GreaterOrEqual(t, max, prevMax, "maximum must never decrease")
		prevMin, prevMax = min, max
	}
}

// Writers record one constant value while readers hammer the calculator.
// Every read must land on a state derived from some whole number of
// events: the mean is either 0 (nothing recorded yet) or the constant,
// and the variance stays at 0 throughout. A torn read of the scalars
// would break both.
func testReadersDuringWrites(t *testing.T, f Factory) {
	ctx := context.Background()
	s := f(ctx)

	const value = 42
	const numWriters = 4
	const eventsPerWriter = 250
	const numReaders = 4

	done := make(chan struct{})

	var readers errgroup.Group
	for i := 0; i < numReaders; i++ {
		readers.Go(func() error {
			for {
				select {
				case <-done:
					return nil
				default:
				}
				min, err := s.Min(ctx)
				if err != nil {
					return err
				}
				if min != 0 && min != value {
					return fmt.Errorf("inconsistent minimum %d", min)
				}
				mean, err := s.Mean(ctx)
				if err != nil {
					return err
				}
				if mean != 0 && math.Abs(mean-value) > 1e-9 {
					return fmt.Errorf("inconsistent mean %f", mean)
				}
				variance, err := s.Variance(ctx)
				if err != nil {
					return err
				}
				if math.Abs(variance) > 1e-6 {
					return fmt.Errorf("inconsistent variance %f", variance)
				}
			}
		})
	}

	var writers errgroup.Group
	for i := 0; i < numWriters; i++ {
		writers.Go(func() error {
			for j := 0; j < eventsPerWriter; j++ {
				if err := s.Event(ctx, value); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, writers.Wait())
	close(done)
	require.NoError(t, readers.Wait())

	got := readAll(t, ctx, s)
	assert.Equal(t, int32(value), got.min)
	assert.Equal(t, int32(value), got.max)
	assert.InDelta(t, value, got.mean, delta)
	assert.InDelta(t, 0, got.variance, delta)
}
