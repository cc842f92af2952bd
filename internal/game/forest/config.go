package forest

import (
	"fmt"

	"go.uber.org/multierr"
)

// Config holds the life field parameters.
type Config struct {
	Quota        int     `yaml:"quota"`
	SeedFactor   float64 `yaml:"seed_factor"`   // initial trees = SeedFactor * Quota
	BlockSize    float32 `yaml:"block_size"`    // world units per cell side
	TickInterval float64 `yaml:"tick_interval"` // seconds between generations
	Seed         uint64  `yaml:"seed"`
}

// DefaultConfig returns the standard forest settings.
func DefaultConfig() Config {
	return Config{
		Quota:        1000,
		SeedFactor:   6,
		BlockSize:    1,
		TickInterval: 1,
		Seed:         1,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	var err error
	if c.Quota < 0 {
		err = multierr.Append(err, fmt.Errorf("quota must not be negative, got %d", c.Quota))
	}
	if c.SeedFactor < 0 {
		err = multierr.Append(err, fmt.Errorf("seed factor must not be negative, got %g", c.SeedFactor))
	}
	if c.BlockSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("block size must be positive, got %g", c.BlockSize))
	}
	if c.TickInterval < 0 {
		err = multierr.Append(err, fmt.Errorf("tick interval must not be negative, got %g", c.TickInterval))
	}
	return err
}

// StartAmount is the number of seeding attempts made on the first update.
func (c Config) StartAmount() int {
	return int(c.SeedFactor * float64(c.Quota))
}
