package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/engine/routing"
	log "github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/logger"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/policy"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/simulation"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var (
	policyNames    = flag.String("policies", "random_walk,congestion_aware", "comma separated policies to evaluate")
	workers        = flag.Int("workers", 8, "worker goroutines per policy batch")
	cacheSize      = flag.Int("cache", 16, "decoded ticks kept in memory")
	seed           = flag.Uint64("seed", 42, "random walk seed")
	ticksPerSecond = flag.Float64("ticks_per_second", 0, "replay pacing, 0 replays as fast as possible")
)

type evalConfig struct {
	SnapshotFile   string   `validate:"required"`
	OutFile        string   `validate:"required"`
	Workers        int      `validate:"gte=1"`
	CacheSize      int      `validate:"gte=1"`
	TicksPerSecond float64  `validate:"gte=0"`
	Policies       []string `validate:"min=1,dive,oneof=random_walk congestion_aware"`
}

type policyTotals struct {
	ticks    int
	vehicles int
	assigned int
	rerouted int
	duration time.Duration
}

func (t *policyTotals) add(stats policy.BatchStats, elapsed time.Duration) {
	t.ticks++
	t.vehicles += stats.Vehicles
	t.assigned += stats.Assigned
	t.rerouted += stats.Rerouted
	t.duration += elapsed
}

func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	viper.SetDefault("SNAPSHOT_FILE", "./data/grid.ticks.bz2")
	viper.SetDefault("EVAL_CSV", "./data/policy_eval.csv")
	if err := util.ReadConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(err)
		}
		logger.Info("no config file found, using defaults")
	}

	cfg := evalConfig{
		SnapshotFile:   viper.GetString("SNAPSHOT_FILE"),
		OutFile:        viper.GetString("EVAL_CSV"),
		Workers:        *workers,
		CacheSize:      *cacheSize,
		TicksPerSecond: *ticksPerSecond,
		Policies:       strings.Split(*policyNames, ","),
	}
	if err := validator.New().Struct(cfg); err != nil {
		panic(err)
	}

	replayer, err := simulation.NewReplayer(cfg.SnapshotFile, cfg.CacheSize, logger)
	if err != nil {
		panic(err)
	}
	defer replayer.Close()

	policies := buildPolicies(cfg.Policies, cfg.Workers, *seed, logger)

	fout, err := os.Create(cfg.OutFile)
	if err != nil {
		panic(err)
	}
	defer fout.Close()
	writer := csv.NewWriter(fout)
	defer writer.Flush()

	if err := writer.Write(csvHeader()); err != nil {
		panic(err)
	}

	var limiter *rate.Limiter
	if cfg.TicksPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.TicksPerSecond), 1)
	}

	ctx := context.Background()
	totals := make([]policyTotals, len(policies))

	numTicks := replayer.NumTicks()
	logger.Sugar().Infof("replaying %d ticks from %s through %d policies",
		numTicks, cfg.SnapshotFile, len(policies))

	for tick := 0; tick < numTicks; tick++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				panic(err)
			}
		}
		rec, err := replayer.Tick(tick)
		if err != nil {
			panic(err)
		}

		// every policy sees the same frozen snapshot; rows stay in policy
		// order regardless of which finishes first
		rows := make([][]string, len(policies))
		g, gctx := errgroup.WithContext(ctx)
		for i, pol := range policies {
			i, pol := i, pol
			g.Go(func() error {
				start := time.Now()
				_, stats, err := pol.MakeDecisions(gctx, rec.Vehicles, rec.Graph)
				if err != nil {
					return err
				}
				elapsed := time.Since(start)
				rows[i] = csvRow(rec.Tick, pol.Name(), stats, elapsed)
				totals[i].add(stats, elapsed)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			panic(err)
		}
		for _, row := range rows {
			if err := writer.Write(row); err != nil {
				panic(err)
			}
		}
	}

	for i, pol := range policies {
		tot := totals[i]
		meanMs := 0.0
		if tot.ticks > 0 {
			meanMs = float64(tot.duration.Microseconds()) / 1000.0 / float64(tot.ticks)
		}
		logger.Sugar().Infof("%s: %d ticks, %d/%d vehicles assigned, %d reroutes, mean %.3f ms per tick",
			pol.Name(), tot.ticks, tot.assigned, tot.vehicles, tot.rerouted, meanMs)
	}
}

func buildPolicies(names []string, workers int, seed uint64, logger *zap.Logger) []policy.RoutingPolicy {
	opts := routing.DefaultOptions()
	out := make([]policy.RoutingPolicy, 0, len(names))
	for _, name := range names {
		switch name {
		case "random_walk":
			out = append(out, policy.NewRandomWalkPolicy(logger, opts, seed))
		case "congestion_aware":
			out = append(out, policy.NewCongestionAwarePolicy(logger, opts, workers))
		}
	}
	return out
}

func csvHeader() []string {
	header := []string{"tick", "policy", "vehicles", "assigned", "skipped", "rerouted"}
	for s := 0; s < routing.NUM_RESOLVE_STATUSES; s++ {
		header = append(header, routing.ResolveStatus(s).String())
	}
	return append(header, "duration_ms")
}

func csvRow(tick int, name string, stats policy.BatchStats, elapsed time.Duration) []string {
	row := []string{
		strconv.Itoa(tick),
		name,
		strconv.Itoa(stats.Vehicles),
		strconv.Itoa(stats.Assigned),
		strconv.Itoa(stats.Skipped),
		strconv.Itoa(stats.Rerouted),
	}
	for _, n := range stats.Outcomes {
		row = append(row, strconv.Itoa(n))
	}
	durationMs := float64(elapsed.Microseconds()) / 1000.0
	return append(row, strconv.FormatFloat(durationMs, 'f', 3, 64))
}
