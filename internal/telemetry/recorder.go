// Package telemetry writes per-generation forest statistics as CSV.
package telemetry

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// File names inside the output directory.
const (
	GenerationsFile = "generations.csv"
	ConfigFile      = "config.yaml"
	HeightMapFile   = "heightmap.png"
)

// Recorder appends Generation rows to generations.csv in its directory.
// A nil Recorder ignores every call, so callers need not check whether
// output is enabled.
type Recorder struct {
	dir           string
	file          *os.File
	headerWritten bool
	rows          int
}

// NewRecorder creates dir and opens generations.csv in it.
// Returns nil if dir is empty (output disabled).
func NewRecorder(dir string) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, GenerationsFile))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", GenerationsFile, err)
	}
	return &Recorder{dir: dir, file: f}, nil
}

// Dir returns the output directory.
func (r *Recorder) Dir() string {
	if r == nil {
		return ""
	}
	return r.dir
}

// Rows returns the number of records written.
func (r *Recorder) Rows() int {
	if r == nil {
		return 0
	}
	return r.rows
}

// WriteConfig saves cfg as YAML next to the CSV.
func (r *Recorder) WriteConfig(cfg any) error {
	if r == nil {
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.dir, ConfigFile), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", ConfigFile, err)
	}
	return nil
}

// WriteHeightMap saves img as a PNG next to the CSV.
func (r *Recorder) WriteHeightMap(img image.Image) (err error) {
	if r == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(r.dir, HeightMapFile))
	if err != nil {
		return fmt.Errorf("creating %s: %w", HeightMapFile, err)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", HeightMapFile, err)
	}
	return nil
}

// Record appends one generation row. The header is written with the first row.
func (r *Recorder) Record(g Generation) error {
	if r == nil {
		return nil
	}

	records := []Generation{g}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.file); err != nil {
			return fmt.Errorf("writing generation: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.file); err != nil {
			return fmt.Errorf("writing generation: %w", err)
		}
	}
	r.rows++
	return nil
}

// Close flushes and closes the CSV file.
func (r *Recorder) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := multierr.Combine(r.file.Sync(), r.file.Close())
	r.file = nil
	return err
}

// ReadGenerations loads a generations.csv file.
func ReadGenerations(path string) ([]Generation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []Generation
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}
