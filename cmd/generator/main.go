package main

import (
	"errors"
	"flag"
	"os"

	log "github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/logger"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/simulation"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	rows        = flag.Int("rows", 8, "grid rows")
	cols        = flag.Int("cols", 8, "grid columns")
	edgeLength  = flag.Float64("edge_length", 120, "edge length in meters")
	numVehicles = flag.Int("vehicles", 200, "vehicles per tick")
	numTicks    = flag.Int("ticks", 100, "ticks to record")
	seed        = flag.Uint64("seed", 42, "generator rng seed")
)

func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll("./data", 0755); err != nil {
		panic(err)
	}
	viper.SetDefault("SNAPSHOT_FILE", "./data/grid.ticks.bz2")
	if err := util.ReadConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(err)
		}
		logger.Info("no config file found, using defaults")
	}
	snapshotFile := viper.GetString("SNAPSHOT_FILE")

	synth, err := simulation.NewSynthesizer(*rows, *cols, *edgeLength, *numVehicles, *seed)
	if err != nil {
		panic(err)
	}
	recorder, err := simulation.NewRecorder(snapshotFile, *numTicks, logger)
	if err != nil {
		panic(err)
	}

	for i := 0; i < *numTicks; i++ {
		rec, err := synth.NextTick()
		if err != nil {
			panic(err)
		}
		if err := recorder.Record(rec); err != nil {
			panic(err)
		}
		if (i+1)%50 == 0 {
			logger.Sugar().Infof("recorded %d/%d ticks", i+1, *numTicks)
		}
	}
	if err := recorder.Close(); err != nil {
		panic(err)
	}

	logger.Info("synthetic tick sequence recorded",
		zap.String("file", snapshotFile),
		zap.Int("ticks", *numTicks),
		zap.Int("vehicles_per_tick", *numVehicles),
		zap.Int("edges", 2*(*rows)*(*cols)))
}
