// Package main runs the forest without a window and records every
// generation as CSV.
package main

import (
	"context"
	"fmt"
	gomath "math"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/eternal-forest/internal/app"
	"github.com/Faultbox/eternal-forest/internal/config"
	"github.com/Faultbox/eternal-forest/internal/logger"
	"github.com/Faultbox/eternal-forest/internal/telemetry"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) (err error) {
	px, pz, probe, err := config.Probe()
	if err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}

	if probe {
		h := a.World.GetGroundHeightAt(px, pz)
		if gomath.IsInf(float64(h), 1) {
			fmt.Printf("%g,%g: no ground\n", px, pz)
			return nil
		}
		fmt.Printf("%g,%g: %g\n", px, pz, h)
		return nil
	}

	rec, err := telemetry.NewRecorder(cfg.Telemetry.OutputDir)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, rec.Close()) }()

	if err := rec.WriteConfig(cfg); err != nil {
		return err
	}
	if err := rec.WriteHeightMap(a.Image.Gray()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := app.Simulate(ctx, a.World, cfg.Simulation.Steps, cfg.Simulation.TimeStep, rec)
	if err != nil {
		return err
	}

	fmt.Printf("frames=%d time=%.2f generation=%d trees=%d empty=%d blocked=%d\n",
		sum.Frames, sum.Time, sum.Final.Generation, sum.Final.Trees, sum.Final.Empty, sum.Final.Blocked)
	if dir := rec.Dir(); dir != "" {
		fmt.Printf("wrote %d rows to %s\n", rec.Rows(), dir)
	}
	return nil
}
