package ehrenfest

// Histogram counts lattice sites by occupation: h[k] is the number of
// sites holding exactly k quanta.
type Histogram []int

// SharedLength is the histogram length that fits every occupation seen in
// any of the given lattices. Compute it before building histograms that are
// meant to be compared so that index k means the same thing in each.
func SharedLength(lattices ...*Lattice) int {
	m := 0
	for _, l := range lattices {
		m = imax(m, l.Max())
	}
	return m + 1
}

// BuildHistogram tallies l into a histogram of the given length.
// Every occupation must lie in [0, length); anything else is a caller bug
// and panics with an index error.
func BuildHistogram(l *Lattice, length int) Histogram {
	h := make(Histogram, length)
	for _, v := range l.Cells {
		h[v]++
	}
	return h
}

// Sum returns the number of sites counted.
func (h Histogram) Sum() int {
	s := 0
	for _, v := range h {
		s += v
	}
	return s
}

// Points returns (E, count) pairs as float slices for fitting and plotting.
func (h Histogram) Points() (xs, ys []float64) {
	xs = make([]float64, len(h))
	ys = make([]float64, len(h))
	for i, v := range h {
		xs[i] = float64(i)
		ys[i] = float64(v)
	}
	return xs, ys
}
