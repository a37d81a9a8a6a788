package main

import (
	"context"
	"encoding/csv"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/engine/routing"
	log "github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/logger"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/policy"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/simulation"
)

// Measures per-tick decision latency of the congestion-aware policy across
// worker counts. Each worker count replays the same seeded synthetic stream,
// so rows are directly comparable.
var (
	rows        = flag.Int("rows", 16, "grid rows")
	cols        = flag.Int("cols", 16, "grid columns")
	numVehicles = flag.Int("vehicles", 2000, "vehicles per tick")
	numTicks    = flag.Int("ticks", 20, "ticks per worker count")
	seed        = flag.Uint64("seed", 42, "rng seed")
)

func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	fout, err := os.Create("decision_latency.csv")
	if err != nil {
		panic(err)
	}
	defer fout.Close()
	writer := csv.NewWriter(fout)
	defer writer.Flush()

	if err := writer.Write([]string{"workers", "tick", "vehicles", "assigned", "duration_ms"}); err != nil {
		panic(err)
	}

	for _, workers := range []int{1, 2, 4, 8, 16} {
		synth, err := simulation.NewSynthesizer(*rows, *cols, 100, *numVehicles, *seed)
		if err != nil {
			panic(err)
		}
		pol := policy.NewCongestionAwarePolicy(logger, routing.DefaultOptions(), workers)

		var total time.Duration
		for tick := 0; tick < *numTicks; tick++ {
			rec, err := synth.NextTick()
			if err != nil {
				panic(err)
			}

			start := time.Now()
			_, stats, err := pol.MakeDecisions(context.Background(), rec.Vehicles, rec.Graph)
			if err != nil {
				panic(err)
			}
			elapsed := time.Since(start)
			total += elapsed

			durationMs := float64(elapsed.Microseconds()) / 1000.0
			if err := writer.Write([]string{
				strconv.Itoa(workers),
				strconv.Itoa(rec.Tick),
				strconv.Itoa(stats.Vehicles),
				strconv.Itoa(stats.Assigned),
				strconv.FormatFloat(durationMs, 'f', 3, 64),
			}); err != nil {
				panic(err)
			}
		}

		logger.Sugar().Infof("workers=%d: mean %.3f ms per tick over %d ticks",
			workers, float64(total.Microseconds())/1000.0/float64(*numTicks), *numTicks)
	}
}
