package ehrenfest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDistribution(t *testing.T) {
	tests := []struct {
		in      string
		want    Distribution
		wantErr bool
	}{
		{"random", Random, false},
		{"uniform", Uniform, false},
		{"Uniform", Uniform, false},
		{" random ", Random, false},
		{"gaussian", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDistribution(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}

func TestNewLatticeUniform(t *testing.T) {
	l := uniformLattice(t, 4)
	require.Len(t, l.Cells, 16)
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			assert.Equal(t, 1, l.At(x, y))
		}
	}
	assert.Equal(t, 16, l.Total())
	assert.Equal(t, 1, l.Min())
	assert.Equal(t, 1, l.Max())
}

func TestNewLatticeRandomRoundsDraws(t *testing.T) {
	l, err := NewLattice(2, Random, script(t, 0.2, 0.7, 0.49, 0.99))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0, 1}, l.Cells)
}

func TestNewLatticeRandomIsZeroOrOne(t *testing.T) {
	l, err := NewLattice(70, Random, seeded(7))
	require.NoError(t, err)
	for _, v := range l.Cells {
		require.Contains(t, []int{0, 1}, v)
	}
	// 4900 fair coin flips: mean 2450, sigma 35
	assert.InDelta(t, 2450, l.Total(), 300)
}

func TestNewLatticeInvalid(t *testing.T) {
	for _, size := range []int{0, -3} {
		_, err := NewLattice(size, Uniform, nil)
		require.ErrorIs(t, err, ErrInvalidConfig)
	}
	_, err := NewLattice(3, Random, nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
	_, err = NewLattice(3, Distribution(9), seeded(1))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCloneIsIndependent(t *testing.T) {
	l := uniformLattice(t, 3)
	initial := l.Clone()
	l.Set(1, 2, 5)
	l.Cells[0] = 0
	assert.Equal(t, 1, initial.At(1, 2))
	assert.Equal(t, 1, initial.Cells[0])
	assert.False(t, l.Equal(initial))
	assert.True(t, initial.Equal(uniformLattice(t, 3)))
}

func TestLatticeAccessors(t *testing.T) {
	l := latticeOf(2, 3, 0, 1, 2)
	assert.Equal(t, 3, l.At(0, 0))
	assert.Equal(t, 1, l.At(1, 0))
	assert.Equal(t, 6, l.Total())
	assert.Equal(t, 0, l.Min())
	assert.Equal(t, 3, l.Max())
	assert.False(t, l.Equal(latticeOf(1, 6)))
}
