package factory

import (
	"context"
	"errors"

	"github.com/shashank-93rao/streamstats/pkg/stats"
	"github.com/shashank-93rao/streamstats/pkg/stats/sync/casbased"
	"github.com/shashank-93rao/streamstats/pkg/stats/sync/lockbased"
)

// StatsType is enum of various stats implementations
type StatsType string

const (
	LB  StatsType = "LB"
	CAS StatsType = "CAS"
)

// All returns every known implementation type in stable order. Callers
// that want to exercise each available calculator range over this
// instead of any reflective plugin lookup.
func All() []StatsType {
	return []StatsType{LB, CAS}
}

// GetStats returns a fresh calculator of the requested type. Every
// call constructs a new instance; no state is shared between them.
func GetStats(ctx context.Context, tp StatsType) (s stats.Statistics, err error) {
	switch tp {
	case LB:
		s = lockbased.NewStats(ctx)
	case CAS:
		s = casbased.NewStats(ctx)
	default:
		err = errors.New("unknown stats calculator")
	}
	return
}
