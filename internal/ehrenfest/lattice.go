package ehrenfest

import (
	"fmt"
	"math"
	"strings"
)

// Source is the randomness consumed by lattice construction and hops.
// *rand.Rand satisfies it; tests inject scripted sequences.
type Source interface {
	Float64() float64
}

// Distribution selects how a fresh lattice is populated.
type Distribution uint8

const (
	Random  Distribution = iota // each site 0 or 1 with probability 1/2
	Uniform                     // each site holds exactly one quantum
)

func (d Distribution) String() string {
	switch d {
	case Random:
		return "random"
	case Uniform:
		return "uniform"
	}
	return fmt.Sprintf("Distribution(%d)", uint8(d))
}

// ParseDistribution maps a (case-insensitive) name to a Distribution.
func ParseDistribution(name string) (Distribution, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "random":
		return Random, nil
	case "uniform":
		return Uniform, nil
	}
	return 0, fmt.Errorf("%w: unknown initial distribution %q (want random or uniform)", ErrInvalidConfig, name)
}

// Lattice is a Size x Size grid of quantum occupation counts.
type Lattice struct {
	Size  int
	Cells []int // flat: x*Size + y
}

// NewLattice allocates a lattice and populates it according to dist.
// rng is only consulted for the Random distribution.
func NewLattice(size int, dist Distribution, rng Source) (*Lattice, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: lattice size must be positive, got %d", ErrInvalidConfig, size)
	}
	l := &Lattice{Size: size, Cells: make([]int, size*size)}
	switch dist {
	case Uniform:
		for i := range l.Cells {
			l.Cells[i] = 1
		}
	case Random:
		if rng == nil {
			return nil, fmt.Errorf("%w: random distribution needs a random source", ErrInvalidConfig)
		}
		for i := range l.Cells {
			l.Cells[i] = int(math.RoundToEven(rng.Float64()))
		}
	default:
		return nil, fmt.Errorf("%w: unsupported distribution %v", ErrInvalidConfig, dist)
	}
	DebugLog("Created lattice size=%d, distribution=%s, quanta=%d", size, dist, l.Total())
	return l, nil
}

func (l *Lattice) idx(x, y int) int {
	return x*l.Size + y
}

// At returns the occupation of site (x, y).
func (l *Lattice) At(x, y int) int { return l.Cells[l.idx(x, y)] }

// Set overwrites the occupation of site (x, y).
func (l *Lattice) Set(x, y, v int) { l.Cells[l.idx(x, y)] = v }

// Clone returns an independent deep copy.
func (l *Lattice) Clone() *Lattice {
	cells := make([]int, len(l.Cells))
	copy(cells, l.Cells)
	return &Lattice{Size: l.Size, Cells: cells}
}

// Total returns the number of quanta on the lattice.
func (l *Lattice) Total() int {
	total := 0
	for _, v := range l.Cells {
		total += v
	}
	return total
}

// Max returns the highest site occupation.
func (l *Lattice) Max() int {
	m := l.Cells[0]
	for _, v := range l.Cells[1:] {
		m = imax(m, v)
	}
	return m
}

// Min returns the lowest site occupation.
func (l *Lattice) Min() int {
	m := l.Cells[0]
	for _, v := range l.Cells[1:] {
		m = imin(m, v)
	}
	return m
}

// Equal reports whether both lattices have the same size and contents.
func (l *Lattice) Equal(o *Lattice) bool {
	if l.Size != o.Size || len(l.Cells) != len(o.Cells) {
		return false
	}
	for i, v := range l.Cells {
		if o.Cells[i] != v {
			return false
		}
	}
	return true
}
