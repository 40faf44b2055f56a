package ehrenfest

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Result is everything one run produces. Fit is nil when the fit failed.
type Result struct {
	Config      *Config
	Initial     *Lattice
	Final       *Lattice
	InitialHist Histogram
	FinalHist   Histogram
	Fit         *FitResult
	Stats       HopStats
	Frames      []Frame
}

// NewRand returns a generator for seed; seed 0 picks a time based seed.
// The seed actually used is returned so runs can be reproduced.
func NewRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

// Run builds the lattice, simulates cfg.Timesteps hops, tabulates both
// snapshots against a shared bound and fits the final histogram.
//
// A fit failure is returned together with a populated Result (Fit == nil),
// so the simulation itself can still be inspected.
func Run(cfg *Config, rng Source) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dist, _ := cfg.Distribution()
	lattice, err := NewLattice(cfg.LatticeSize, dist, rng)
	if err != nil {
		return nil, err
	}
	res := &Result{Config: cfg, Initial: lattice.Clone()}

	sim := NewSimulator(rng)
	if cfg.RecordsFrames() {
		sim.FrameEvery = cfg.FrameEvery
		sim.OnFrame = func(f Frame) {
			res.Frames = append(res.Frames, f)
		}
	}
	start := time.Now()
	res.Stats, err = sim.Run(lattice, cfg.Timesteps)
	if err != nil {
		return nil, err
	}
	res.Final = lattice
	DebugLog("Hops: %d, time: %s, frames: %d", cfg.Timesteps, time.Since(start), len(res.Frames))

	length := SharedLength(res.Initial, res.Final)
	res.InitialHist = BuildHistogram(res.Initial, length)
	res.FinalHist = BuildHistogram(res.Final, length)

	res.Fit, err = FitBoltzmann(res.FinalHist, DefaultGuess(cfg.LatticeSize))
	if err != nil {
		return res, fmt.Errorf("fit final histogram %v: %w", res.FinalHist, err)
	}
	DebugLog("Fit: %s", res.Fit)
	return res, nil
}

// WriteOutputs renders every output enabled in cfg. All outputs are
// attempted; the returned error joins the individual failures.
func WriteOutputs(cfg *Config, res *Result) error {
	var errs []error
	if cfg.PlotOut != "" {
		if err := SaveFigure(res, cfg.PlotOut); err != nil {
			errs = append(errs, fmt.Errorf("figure: %w", err))
		} else {
			DebugLog("Saved figure: %s", cfg.PlotOut)
		}
	}
	if cfg.GIFOut != "" {
		if err := SaveAnimatedGIF(res.Frames, cfg.GIFOut, cfg.GIFDelay, cfg.CellPixels); err != nil {
			errs = append(errs, fmt.Errorf("gif: %w", err))
		} else {
			DebugLog("Saved animated GIF: %s", cfg.GIFOut)
		}
	}
	if cfg.VideoOut != "" {
		if err := SaveVideo(res.Frames, cfg.VideoOut, cfg.FrameRate, cfg.CellPixels); err != nil {
			errs = append(errs, fmt.Errorf("video: %w", err))
		} else {
			DebugLog("Saved video: %s", cfg.VideoOut)
		}
	}
	if cfg.PNGPrefix != "" {
		if err := SavePNGPair16(res.Initial, res.Final, cfg.PNGPrefix); err != nil {
			errs = append(errs, fmt.Errorf("png: %w", err))
		} else {
			DebugLog("Saved PNG pair with prefix: %s", cfg.PNGPrefix)
		}
	}
	if cfg.RawOut != "" {
		if err := res.Final.SaveRaw(cfg.RawOut); err != nil {
			errs = append(errs, fmt.Errorf("raw: %w", err))
		} else {
			DebugLog("Saved raw lattice: %s", cfg.RawOut)
		}
	}
	return errors.Join(errs...)
}
