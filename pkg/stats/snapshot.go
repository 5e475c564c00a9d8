package stats

import "math"

// Snapshot bundles the five running scalars at one point in time.
// Values are folded in with Fold, which returns a fresh snapshot and
// never touches the receiver, so a constructed snapshot can be shared
// across goroutines without synchronization.
//
// Sum and SumOfSquares are kept as exact int64 accumulations; only the
// final mean/variance division happens in floating point.
type Snapshot struct {
	Min          int32
	Max          int32
	Sum          int64
	SumOfSquares int64
	Count        int64
}

// EmptySnapshot returns the zero-observation state. Min and Max hold
// sentinels that the accessors translate to 0 while Count is zero.
func EmptySnapshot() Snapshot {
	return Snapshot{
		Min: math.MaxInt32,
		Max: math.MinInt32,
	}
}

// Fold returns a new snapshot with n folded into the running state.
func (s Snapshot) Fold(n int32) Snapshot {
	next := Snapshot{
		Min:          s.Min,
		Max:          s.Max,
		Sum:          s.Sum + int64(n),
		SumOfSquares: s.SumOfSquares + int64(n)*int64(n),
		Count:        s.Count + 1,
	}
	if n < next.Min {
		next.Min = n
	}
	if n > next.Max {
		next.Max = n
	}
	return next
}

// Minimum returns the running minimum, or 0 before the first event.
func (s Snapshot) Minimum() int32 {
	if s.Count == 0 {
		return 0
	}
	return s.Min
}

// Maximum returns the running maximum, or 0 before the first event.
func (s Snapshot) Maximum() int32 {
	if s.Count == 0 {
		return 0
	}
	return s.Max
}

// Mean returns the arithmetic mean, or 0 before the first event.
func (s Snapshot) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.Sum) / float64(s.Count)
}

// Variance returns the population variance as sumOfSquares/n - mean².
// 0 before the first event.
func (s Snapshot) Variance() float64 {
	if s.Count == 0 {
		return 0
	}
	mean := float64(s.Sum) / float64(s.Count)
	return float64(s.SumOfSquares)/float64(s.Count) - mean*mean
}
