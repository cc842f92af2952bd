package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/Faultbox/eternal-forest/internal/game/forest"
	"github.com/Faultbox/eternal-forest/internal/game/world"
	"github.com/Faultbox/eternal-forest/internal/logger"
	"github.com/Faultbox/eternal-forest/internal/telemetry"
)

// Summary describes a finished simulation run.
type Summary struct {
	Frames  int
	Time    float64
	Final   forest.Stats
	Records int
}

// Simulate drives w with a fixed frame clock for steps frames of timeStep
// seconds. Every new generation, including the initial field, is passed to
// rec. It stops early when ctx is done.
func Simulate(ctx context.Context, w *world.World, steps int, timeStep float64, rec *telemetry.Recorder) (Summary, error) {
	log := logger.Named("sim")
	var sum Summary

	f := w.Forest()
	lastGen := -1
	for frame := range steps {
		if err := ctx.Err(); err != nil {
			log.Info("simulation interrupted", zap.Int("frame", frame))
			return sum, err
		}

		now := float64(frame) * timeStep
		w.Update(now)
		sum.Frames = frame + 1
		sum.Time = now

		if f == nil || !f.Initialized() {
			continue
		}
		stats := f.Stats()
		if stats.Generation == lastGen {
			continue
		}
		lastGen = stats.Generation
		if err := rec.Record(telemetry.NewGeneration(stats, now, f.TreeHeights())); err != nil {
			return sum, err
		}
		sum.Records++
	}

	if f != nil && f.Initialized() {
		sum.Final = f.Stats()
	}
	log.Info("simulation finished",
		zap.Int("frames", sum.Frames),
		zap.Int("generation", sum.Final.Generation),
		zap.Int("trees", sum.Final.Trees),
		zap.Int("records", sum.Records))
	return sum, nil
}
