package ehrenfest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConservesQuanta(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		rng := seeded(seed)
		l, err := NewLattice(20, Random, rng)
		require.NoError(t, err)
		before := l.Total()
		for _, steps := range []int{0, 1, 10, 5000} {
			stats, err := NewSimulator(rng).Run(l, steps)
			require.NoError(t, err)
			require.Equal(t, before, l.Total(), "seed %d steps %d", seed, steps)
			require.Equal(t, steps, stats.Hops)
			require.Equal(t, stats.Hops, stats.Accepted+stats.SelfHops)
			for _, v := range l.Cells {
				require.GreaterOrEqual(t, v, 0)
			}
		}
	}
}

func TestRunZeroStepsLeavesLatticeUntouched(t *testing.T) {
	l, err := NewLattice(10, Random, seeded(3))
	require.NoError(t, err)
	initial := l.Clone()
	// no draws may be consumed
	stats, err := NewSimulator(script(t)).Run(l, 0)
	require.NoError(t, err)
	assert.True(t, l.Equal(initial))
	assert.Equal(t, HopStats{}, stats)
}

func TestRunIsDeterministicForFixedSeed(t *testing.T) {
	run := func() (*Lattice, HopStats) {
		rng := seeded(42)
		l, err := NewLattice(15, Random, rng)
		require.NoError(t, err)
		stats, err := NewSimulator(rng).Run(l, 3000)
		require.NoError(t, err)
		return l, stats
	}
	a, sa := run()
	b, sb := run()
	assert.True(t, a.Equal(b))
	assert.Equal(t, sa, sb)
}

func TestSingleHopMovesOneQuantum(t *testing.T) {
	l := uniformLattice(t, 3)
	// source (0,0), destination (2,1)
	stats, err := NewSimulator(script(t, 0.0, 0.0, 0.7, 0.4)).Run(l, 1)
	require.NoError(t, err)
	assert.Equal(t, 9, l.Total())
	assert.Equal(t, 0, l.At(0, 0))
	assert.Equal(t, 2, l.At(2, 1))
	assert.Equal(t, HopStats{Hops: 1, Accepted: 1}, stats)
}

func TestSingleHopOntoItselfIsNoop(t *testing.T) {
	l := uniformLattice(t, 3)
	stats, err := NewSimulator(script(t, 0.5, 0.5, 0.5, 0.5)).Run(l, 1)
	require.NoError(t, err)
	assert.True(t, l.Equal(uniformLattice(t, 3)))
	assert.Equal(t, HopStats{Hops: 1, SelfHops: 1}, stats)
}

func TestSingleHopOutcomes(t *testing.T) {
	var moved, self int
	for seed := int64(1); seed <= 200; seed++ {
		l := uniformLattice(t, 3)
		stats, err := NewSimulator(seeded(seed)).Run(l, 1)
		require.NoError(t, err)
		require.Equal(t, 9, l.Total())

		counts := map[int]int{}
		for _, v := range l.Cells {
			counts[v]++
		}
		if stats.SelfHops == 1 {
			self++
			require.Equal(t, map[int]int{1: 9}, counts)
			continue
		}
		moved++
		require.Equal(t, map[int]int{0: 1, 1: 7, 2: 1}, counts)
	}
	// P(self) = 1/9, so both branches show up in 200 tries.
	assert.Positive(t, moved)
	assert.Positive(t, self)
}

func TestRunRedrawsEmptySources(t *testing.T) {
	l := latticeOf(2, 0, 0, 0, 4)
	rng := script(t,
		0.1, 0.1, // (0,0) empty
		0.9, 0.1, // (1,0) empty
		0.9, 0.9, // (1,1) source
		0.1, 0.9, // (0,1) destination
	)
	stats, err := NewSimulator(rng).Run(l, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0, 3}, l.Cells)
	assert.Equal(t, 2, stats.Rejected)
	assert.InDelta(t, 2.0/3.0, stats.RejectionRate(), 1e-12)
}

func TestRunEmptyLattice(t *testing.T) {
	l := latticeOf(3, make([]int, 9)...)
	_, err := NewSimulator(seeded(1)).Run(l, 5)
	require.ErrorIs(t, err, ErrDegenerateLattice)

	_, err = NewSimulator(seeded(1)).Run(l, 0)
	require.NoError(t, err)
}

func TestRunRejectsNegativeSteps(t *testing.T) {
	_, err := NewSimulator(seeded(1)).Run(uniformLattice(t, 2), -1)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRunRecordsFrames(t *testing.T) {
	var frames []Frame
	sim := NewSimulator(seeded(9))
	sim.FrameEvery = 3
	sim.OnFrame = func(f Frame) { frames = append(frames, f) }

	l := uniformLattice(t, 4)
	_, err := sim.Run(l, 10)
	require.NoError(t, err)

	steps := make([]int, len(frames))
	for i, f := range frames {
		steps[i] = f.Step
		assert.Equal(t, 16, f.Lattice.Total())
	}
	assert.Equal(t, []int{0, 3, 6, 9, 10}, steps)
	assert.True(t, frames[0].Lattice.Equal(uniformLattice(t, 4)), "first frame is the starting lattice")
	assert.True(t, frames[len(frames)-1].Lattice.Equal(l))

	l.Cells[0] += 100
	assert.Equal(t, 16, frames[len(frames)-1].Lattice.Total(), "frames are snapshots")
}

func TestHopStatsString(t *testing.T) {
	s := HopStats{Hops: 3, Accepted: 2, SelfHops: 1, Rejected: 1}
	assert.Equal(t, "hops=3 accepted=2 self=1 rejected=1 (25.00%)", s.String())
	assert.Equal(t, "self", SelfHop.String())
	assert.Zero(t, HopStats{}.RejectionRate())
}
