package ehrenfest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config describes one simulation run and the outputs it should produce.
// Empty output paths disable the corresponding output.
type Config struct {
	LatticeSize         int    `json:"latticeSize" yaml:"lattice_size"`
	InitialDistribution string `json:"initialDistribution" yaml:"initial_distribution"`
	Timesteps           int    `json:"timesteps" yaml:"timesteps"`
	Seed                int64  `json:"seed,omitempty" yaml:"seed,omitempty"` // 0 = time based

	PlotOut    string `json:"plotOut,omitempty" yaml:"plot_out,omitempty"`
	GIFOut     string `json:"gifOut,omitempty" yaml:"gif_out,omitempty"`
	GIFDelay   int    `json:"gifDelay,omitempty" yaml:"gif_delay,omitempty"`
	VideoOut   string `json:"videoOut,omitempty" yaml:"video_out,omitempty"`
	FrameRate  int    `json:"frameRate,omitempty" yaml:"frame_rate,omitempty"`
	FrameEvery int    `json:"frameEvery,omitempty" yaml:"frame_every,omitempty"`
	CellPixels int    `json:"cellPixels,omitempty" yaml:"cell_pixels,omitempty"`
	PNGPrefix  string `json:"pngPrefix,omitempty" yaml:"png_prefix,omitempty"`
	RawOut     string `json:"rawOut,omitempty" yaml:"raw_out,omitempty"`

	LogLevel string `json:"logLevel,omitempty" yaml:"log_level,omitempty"`
}

// DefaultConfig returns the command line defaults.
func DefaultConfig() *Config {
	return &Config{
		LatticeSize:         LatticeSize,
		InitialDistribution: InitialDistribution,
		Timesteps:           Timesteps,
		PlotOut:             PlotOut,
		GIFDelay:            GIFDelay,
		FrameRate:           FrameRate,
		FrameEvery:          FrameEvery,
		CellPixels:          CellPixels,
		LogLevel:            LogLevel,
	}
}

// Distribution returns the parsed initial distribution.
func (c *Config) Distribution() (Distribution, error) {
	return ParseDistribution(c.InitialDistribution)
}

// RecordsFrames reports whether any animated output needs hop snapshots.
func (c *Config) RecordsFrames() bool {
	return c.GIFOut != "" || c.VideoOut != ""
}

// Validate rejects settings that cannot describe a run. It never mutates c.
func (c *Config) Validate() error {
	if c.LatticeSize <= 0 {
		return fmt.Errorf("%w: lattice size must be positive, got %d", ErrInvalidConfig, c.LatticeSize)
	}
	if _, err := c.Distribution(); err != nil {
		return err
	}
	if c.Timesteps < 0 {
		return fmt.Errorf("%w: timesteps must be non-negative, got %d", ErrInvalidConfig, c.Timesteps)
	}
	if c.RecordsFrames() {
		if c.FrameEvery <= 0 {
			return fmt.Errorf("%w: frame interval must be positive, got %d", ErrInvalidConfig, c.FrameEvery)
		}
		if c.CellPixels <= 0 {
			return fmt.Errorf("%w: cell pixels must be positive, got %d", ErrInvalidConfig, c.CellPixels)
		}
	}
	if c.GIFOut != "" && c.GIFDelay <= 0 {
		return fmt.Errorf("%w: gif delay must be positive, got %d", ErrInvalidConfig, c.GIFDelay)
	}
	if c.VideoOut != "" && c.FrameRate <= 0 {
		return fmt.Errorf("%w: frame rate must be positive, got %d", ErrInvalidConfig, c.FrameRate)
	}
	return nil
}

// LoadConfig overlays a JSON (.json) or YAML (.yaml/.yml) file onto the
// defaults. Keys absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config format %q", ErrInvalidConfig, ext)
	}
	DebugLog("Loaded config from %s: size=%d, distribution=%s, timesteps=%d, seed=%d", path, cfg.LatticeSize, cfg.InitialDistribution, cfg.Timesteps, cfg.Seed)
	return cfg, nil
}
