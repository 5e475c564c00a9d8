package lockbased_test

import (
	"context"
	"testing"

	"github.com/shashank-93rao/streamstats/pkg/stats/statstest"
	"github.com/shashank-93rao/streamstats/pkg/stats/sync/lockbased"
)

func TestLockBasedStats(t *testing.T) {
	statstest.Run(t, lockbased.NewStats)
}

func BenchmarkEvent(b *testing.B) {
	ctx := context.Background()
	s := lockbased.NewStats(ctx)
	b.RunParallel(func(pb *testing.PB) {
		n := int32(0)
		for pb.Next() {
			n++
			_ = s.Event(ctx, n)
		}
	})
}

func BenchmarkMixedReadWrite(b *testing.B) {
	ctx := context.Background()
	s := lockbased.NewStats(ctx)
	b.RunParallel(func(pb *testing.PB) {
		n := int32(0)
		for pb.Next() {
			n++
			if n%4 == 0 {
				_ = s.Event(ctx, n)
			} else {
				_, _ = s.Mean(ctx)
			}
		}
	})
}
