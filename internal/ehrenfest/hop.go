package ehrenfest

import "fmt"

// Frame is a lattice snapshot taken after Step hops.
type Frame struct {
	Step    int
	Lattice *Lattice
}

// Simulator moves single quanta between uniformly chosen sites.
type Simulator struct {
	Rand Source
	// FrameEvery > 0 makes Run call OnFrame before the first hop, after
	// every FrameEvery hops and after the last hop.
	FrameEvery int
	OnFrame    func(Frame)
}

// NewSimulator returns a simulator drawing from rng.
func NewSimulator(rng Source) *Simulator {
	return &Simulator{Rand: rng}
}

// Run performs steps hops on l in place. Each hop redraws the source until it
// lands on an occupied site, then draws an unconstrained destination
// (possibly the source itself) and moves one quantum.
//
// The redraw loop has no retry bound. The only way it can fail to terminate
// is an empty lattice, and because hops conserve the total, Run checks that
// once up front and returns ErrDegenerateLattice instead.
func (s *Simulator) Run(l *Lattice, steps int) (HopStats, error) {
	var stats HopStats
	if steps < 0 {
		return stats, fmt.Errorf("%w: timesteps must be non-negative, got %d", ErrInvalidConfig, steps)
	}
	if steps == 0 {
		s.frame(0, steps, l)
		return stats, nil
	}
	if s.Rand == nil {
		return stats, fmt.Errorf("%w: simulator has no random source", ErrInvalidConfig)
	}
	if l.Total() == 0 {
		return stats, fmt.Errorf("%w: %d hops requested on a %dx%d lattice", ErrDegenerateLattice, steps, l.Size, l.Size)
	}
	s.frame(0, steps, l)
	for step := 1; step <= steps; step++ {
		src := s.site(l)
		for l.Cells[src] == 0 {
			stats.log(Rejected)
			src = s.site(l)
		}
		dst := s.site(l)
		l.Cells[src]--
		l.Cells[dst]++
		if src == dst {
			stats.log(SelfHop)
		} else {
			stats.log(Accepted)
		}
		s.frame(step, steps, l)
	}
	if Debug {
		DebugLog("Hop stats: %s", stats)
	}
	return stats, nil
}

// site draws x then y, each uniform in [0, Size), and returns the flat index.
func (s *Simulator) site(l *Lattice) int {
	x := int(s.Rand.Float64() * float64(l.Size))
	y := int(s.Rand.Float64() * float64(l.Size))
	return l.idx(x, y)
}

func (s *Simulator) frame(step, steps int, l *Lattice) {
	if s.OnFrame == nil || s.FrameEvery <= 0 {
		return
	}
	if step%s.FrameEvery != 0 && step != steps {
		return
	}
	s.OnFrame(Frame{Step: step, Lattice: l.Clone()})
}
