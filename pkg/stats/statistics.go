package stats

import "context"

// Statistics folds a stream of integer observations into running
// minimum, maximum, mean and population variance. Implementations must
// be safe for any mix of concurrent Event and read calls.
//
// All readers return 0 before the first event. That makes 0 ambiguous
// with a genuine observation of 0; callers that need to tell the two
// apart have to count events themselves.
type Statistics interface {
	Event(ctx context.Context, n int32) error

	Min(ctx context.Context) (int32, error)

	Max(ctx context.Context) (int32, error)

	Mean(ctx context.Context) (float64, error)

	Variance(ctx context.Context) (float64, error)
}
