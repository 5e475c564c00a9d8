package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shashank-93rao/streamstats/pkg/stats"
	"github.com/shashank-93rao/streamstats/pkg/stats/factory"
)

var (
	implName        string
	totalThreads    int
	eventsPerThread int
	logLevel        string
)

var demoCmd = &cobra.Command{
	Use:   "statsdemo",
	Short: "drive concurrent load against the statistics calculators",
	Long: `statsdemo runs a fixed write workload against one or all of the
registered statistics calculators and reports the resulting min, max,
mean and variance together with the elapsed wall time per
implementation. Each writer records a disjoint value range, so the
expected final stats are known regardless of interleaving.`,
	RunE: run,
}

func init() {
	demoCmd.Flags().StringVar(&implName, "impl", "all", "implementation to drive. LB|CAS|all")
	demoCmd.Flags().IntVar(&totalThreads, "threads", 10, "number of concurrent writer goroutines")
	demoCmd.Flags().IntVar(&eventsPerThread, "events-per-thread", 10, "events recorded by each writer")
	demoCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level. panic|fatal|error|warning|info|debug")
}

func main() {
	if err := demoCmd.Execute(); err != nil {
		log.Fatal(err.Error())
	}
}

func run(cmd *cobra.Command, args []string) error {
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChannel
		log.Info("received interrupt, cancelling run")
		cancel()
	}()

	types, err := selectTypes(implName)
	if err != nil {
		return err
	}

	for _, tp := range types {
		if err := driveOne(ctx, tp); err != nil {
			return err
		}
	}
	return nil
}

func selectTypes(name string) ([]factory.StatsType, error) {
	if strings.EqualFold(name, "all") {
		return factory.All(), nil
	}
	tp := factory.StatsType(strings.ToUpper(name))
	for _, known := range factory.All() {
		if tp == known {
			return []factory.StatsType{tp}, nil
		}
	}
	return nil, fmt.Errorf("unknown implementation %q, expected one of %v or all", name, factory.All())
}

// driveOne runs the full workload against a fresh calculator of the
// given type and reports the final stats.
func driveOne(ctx context.Context, tp factory.StatsType) error {
	calculator, err := factory.GetStats(ctx, tp)
	if err != nil {
		return err
	}

	log.Infof("driving %s with %d writers x %d events", tp, totalThreads, eventsPerThread)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < totalThreads; i++ {
		first := int32(i*eventsPerThread + 1)
		g.Go(func() error {
			return writeRange(gctx, calculator, first, int32(eventsPerThread))
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	minVal, _ := calculator.Min(ctx)
	maxVal, _ := calculator.Max(ctx)
	mean, _ := calculator.Mean(ctx)
	variance, _ := calculator.Variance(ctx)
	log.Infof("implementation %s: min=%d max=%d mean=%f variance=%f", tp, minVal, maxVal, mean, variance)
	log.Infof("implementation %s took %s", tp, elapsed)
	return nil
}

// writeRange records the disjoint slice [first, first+count). Stops
// early if the run context is cancelled.
func writeRange(ctx context.Context, calculator stats.Statistics, first, count int32) error {
	for n := first; n < first+count; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := calculator.Event(ctx, n); err != nil {
			return err
		}
		log.Debugf("recorded event %d", n)
	}
	return nil
}
