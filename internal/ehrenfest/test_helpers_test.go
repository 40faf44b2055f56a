package ehrenfest

import (
	"math/rand"
	"testing"
)

// scriptedSource replays fixed Float64 draws and fails the test when the
// script runs out.
type scriptedSource struct {
	t     *testing.T
	draws []float64
	pos   int
}

func script(t *testing.T, draws ...float64) *scriptedSource {
	return &scriptedSource{t: t, draws: draws}
}

func (s *scriptedSource) Float64() float64 {
	if s.pos >= len(s.draws) {
		s.t.Fatalf("scripted source exhausted after %d draws", s.pos)
	}
	v := s.draws[s.pos]
	s.pos++
	return v
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func uniformLattice(t *testing.T, size int) *Lattice {
	t.Helper()
	l, err := NewLattice(size, Uniform, nil)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func latticeOf(size int, cells ...int) *Lattice {
	return &Lattice{Size: size, Cells: cells}
}
