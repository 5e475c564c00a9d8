package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptySnapshot(t *testing.T) {
	s := EmptySnapshot()

	assert.Equal(t, int64(0), s.Count)
	assert.Equal(t, int32(math.MaxInt32), s.Min, "empty minimum holds the sentinel")
	assert.Equal(t, int32(math.MinInt32), s.Max, "empty maximum holds the sentinel")

	assert.Equal(t, int32(0), s.Minimum())
	assert.Equal(t, int32(0), s.Maximum())
	assert.Equal(t, 0.0, s.Mean())
	assert.Equal(t, 0.0, s.Variance())
}

func TestFoldDoesNotMutateReceiver(t *testing.T) {
	s := EmptySnapshot()
	_ = s.Fold(7)

	assert.Equal(t, EmptySnapshot(), s)
}

func TestFoldAccumulates(t *testing.T) {
	s := EmptySnapshot().Fold(5).Fold(15)

	assert.Equal(t, int32(5), s.Min)
	assert.Equal(t, int32(15), s.Max)
	assert.Equal(t, int64(20), s.Sum)
	assert.Equal(t, int64(250), s.SumOfSquares)
	assert.Equal(t, int64(2), s.Count)

	assert.InDelta(t, 10, s.Mean(), 0.001)
	assert.InDelta(t, 25, s.Variance(), 0.001)
}

func TestFoldNegativeValues(t *testing.T) {
	s := EmptySnapshot().Fold(-10).Fold(4)

	assert.Equal(t, int32(-10), s.Minimum())
	assert.Equal(t, int32(4), s.Maximum())
	assert.Equal(t, int64(-6), s.Sum)
	assert.Equal(t, int64(116), s.SumOfSquares)
	assert.InDelta(t, -3, s.Mean(), 0.001)
	assert.InDelta(t, 49, s.Variance(), 0.001)
}

func TestFoldExtremeValuesStayExact(t *testing.T) {
	s := EmptySnapshot().Fold(math.MaxInt32).Fold(math.MaxInt32)

	assert.Equal(t, int64(2)*int64(math.MaxInt32), s.Sum)
	assert.Equal(t, int64(2)*int64(math.MaxInt32)*int64(math.MaxInt32), s.SumOfSquares)
	assert.Equal(t, int32(math.MaxInt32), s.Minimum())
	assert.Equal(t, int32(math.MaxInt32), s.Maximum())
	// Identical observations have no spread; near the top of the int64
	// range the float64 rounding of sumOfSquares/n and mean² can leave a
	// residue of a few hundred, hence the wide delta.
	assert.InDelta(t, 0, s.Variance(), 2048)
}
