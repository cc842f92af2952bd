package app

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/eternal-forest/internal/config"
	"github.com/Faultbox/eternal-forest/internal/telemetry"
)

// smallConfig builds a 16-unit terrain from a flat mid-grey PNG.
func smallConfig(t *testing.T) *config.Config {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, 9, 9))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	path := filepath.Join(t.TempDir(), "flat.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	cfg := config.Default()
	cfg.Terrain.HeightMap = path
	cfg.Terrain.RegionSize = 4
	cfg.Terrain.RegionsNumber = 2
	cfg.Terrain.GroundSize = 16
	cfg.Forest.BlockSize = 0.25
	cfg.Forest.Quota = 5
	cfg.Forest.TickInterval = 1
	return cfg
}

func TestWorldConfigMapping(t *testing.T) {
	cfg := config.Default()
	cfg.World.Position = [3]float32{1, 2, 3}
	cfg.Forest.Quota = 42

	wc := WorldConfig(cfg)
	assert.Equal(t, float32(1), wc.Position.X)
	assert.Equal(t, float32(3), wc.Position.Z)
	assert.Equal(t, float32(0.27), wc.Scale.X)
	assert.Equal(t, float32(1), wc.RotationAxis.X)
	assert.Equal(t, 42, wc.Forest.Quota)
	assert.Equal(t, cfg.Terrain.RegionSize, wc.Terrain.RegionSize)
	assert.NoError(t, wc.Validate())
}

func TestHeightMapGenerated(t *testing.T) {
	cfg := config.Default().Terrain
	cfg.Noise.Width, cfg.Noise.Height = 32, 16

	img, err := HeightMap(cfg)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Width())
	assert.Equal(t, 16, img.Height())
}

func TestHeightMapMissingFile(t *testing.T) {
	cfg := config.Default().Terrain
	cfg.HeightMap = filepath.Join(t.TempDir(), "missing.png")

	_, err := HeightMap(cfg)
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	a, err := New(smallConfig(t))
	require.NoError(t, err)

	assert.True(t, a.World.Terrain().Loaded())
	assert.NotNil(t, a.World.Forest())
	// Mid grey is 128/255 of the 8-unit height step.
	assert.InDelta(t, 8*128.0/255.0, a.World.GetGroundHeightAt(0, 0), 1e-3)
}

func TestSimulate(t *testing.T) {
	a, err := New(smallConfig(t))
	require.NoError(t, err)

	dir := t.TempDir()
	rec, err := telemetry.NewRecorder(dir)
	require.NoError(t, err)

	// Frame times 0, 0.5, ..., 4.5: the first frame builds the field, then
	// the gate fires at 0.5, 2 and 3.5.
	sum, err := Simulate(context.Background(), a.World, 10, 0.5, rec)
	require.NoError(t, err)
	require.NoError(t, rec.Close())

	assert.Equal(t, 10, sum.Frames)
	assert.InDelta(t, 4.5, sum.Time, 1e-9)
	assert.Equal(t, 3, sum.Final.Generation)
	assert.Equal(t, 4, sum.Records)

	rows, err := telemetry.ReadGenerations(filepath.Join(dir, telemetry.GenerationsFile))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	for i, r := range rows {
		assert.Equal(t, i, r.Generation)
	}
	assert.Greater(t, rows[0].Trees, 0)
	assert.Equal(t, rows[3].Trees, sum.Final.Trees)
}

func TestSimulateWithoutForest(t *testing.T) {
	cfg := smallConfig(t)
	cfg.Forest.Enabled = false
	a, err := New(cfg)
	require.NoError(t, err)

	sum, err := Simulate(context.Background(), a.World, 3, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Frames)
	assert.Zero(t, sum.Records)
}

func TestSimulateCancelled(t *testing.T) {
	a, err := New(smallConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := Simulate(ctx, a.World, 5, 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sum.Frames)
}
