package telemetry

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Faultbox/eternal-forest/internal/game/forest"
)

// Generation is one row of generations.csv.
type Generation struct {
	Generation int     `csv:"generation"`
	Time       float64 `csv:"time"`
	Trees      int     `csv:"trees"`
	Empty      int     `csv:"empty"`
	Blocked    int     `csv:"blocked"`
	Births     int     `csv:"births"`
	Deaths     int     `csv:"deaths"`

	// Ground height under living trees.
	AltitudeMean float64 `csv:"altitude_mean"`
	AltitudeStd  float64 `csv:"altitude_std"`
	AltitudeMin  float64 `csv:"altitude_min"`
	AltitudeMax  float64 `csv:"altitude_max"`
}

// NewGeneration builds a record from forest stats and the heights of the
// living trees. Altitude columns are zero when there are no trees.
func NewGeneration(s forest.Stats, time float64, heights []float64) Generation {
	g := Generation{
		Generation: s.Generation,
		Time:       time,
		Trees:      s.Trees,
		Empty:      s.Empty,
		Blocked:    s.Blocked,
		Births:     s.Births,
		Deaths:     s.Deaths,
	}
	if len(heights) == 0 {
		return g
	}

	g.AltitudeMin = floats.Min(heights)
	g.AltitudeMax = floats.Max(heights)
	if len(heights) == 1 {
		g.AltitudeMean = heights[0]
		return g
	}
	g.AltitudeMean, g.AltitudeStd = stat.MeanStdDev(heights, nil)
	return g
}
