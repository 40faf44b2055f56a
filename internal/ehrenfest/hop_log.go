package ehrenfest

import "fmt"

type Category uint8

const (
	Accepted Category = iota // quantum moved between two distinct sites
	Rejected                 // source draw landed on an empty site and was redrawn
	SelfHop                  // source and destination coincided (no-op hop)
)

func (c Category) String() string {
	switch c {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case SelfHop:
		return "self"
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// HopStats counts what happened during a simulation run.
// Hops == Accepted + SelfHop, Rejected counts redrawn source coordinates.
type HopStats struct {
	Hops     int
	Accepted int
	Rejected int
	SelfHops int
}

func (s *HopStats) log(c Category) {
	switch c {
	case Accepted:
		s.Hops++
		s.Accepted++
	case SelfHop:
		s.Hops++
		s.SelfHops++
	case Rejected:
		s.Rejected++
	}
}

// RejectionRate is the fraction of source draws that hit an empty site.
func (s HopStats) RejectionRate() float64 {
	draws := s.Hops + s.Rejected
	if draws == 0 {
		return 0
	}
	return float64(s.Rejected) / float64(draws)
}

func (s HopStats) String() string {
	return fmt.Sprintf("hops=%d accepted=%d self=%d rejected=%d (%.2f%%)",
		s.Hops, s.Accepted, s.SelfHops, s.Rejected, 100*s.RejectionRate())
}
