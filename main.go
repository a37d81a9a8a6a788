package main

import (
	"context"
	"os"

	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/engine/routing"
	log "github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/logger"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/policy"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/simulation"
)

// Smoke run: record a short synthetic sequence, replay it, and push the first
// tick through the congestion-aware policy.
func main() {
	logger, err := log.New()
	if err != nil {
		panic(err)
	}
	if err := os.MkdirAll("./data", 0755); err != nil {
		panic(err)
	}

	synth, err := simulation.NewSynthesizer(4, 4, 100, 50, 7)
	if err != nil {
		panic(err)
	}
	recorder, err := simulation.NewRecorder("./data/smoke.ticks.bz2", 5, logger)
	if err != nil {
		panic(err)
	}
	for i := 0; i < 5; i++ {
		rec, err := synth.NextTick()
		if err != nil {
			panic(err)
		}
		if err := recorder.Record(rec); err != nil {
			panic(err)
		}
	}
	if err := recorder.Close(); err != nil {
		panic(err)
	}

	replayer, err := simulation.NewReplayer("./data/smoke.ticks.bz2", 4, logger)
	if err != nil {
		panic(err)
	}
	defer replayer.Close()

	rec, err := replayer.Tick(0)
	if err != nil {
		panic(err)
	}
	pol := policy.NewCongestionAwarePolicy(logger, routing.DefaultOptions(), 4)
	_, stats, err := pol.MakeDecisions(context.Background(), rec.Vehicles, rec.Graph)
	if err != nil {
		panic(err)
	}
	logger.Sugar().Infof("smoke run ok: %d/%d vehicles assigned on tick 0", stats.Assigned, stats.Vehicles)
}
