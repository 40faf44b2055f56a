package ehrenfest

import "errors"

var (
	// ErrInvalidConfig is returned for a bad lattice size, distribution name,
	// timestep count or output setting. It is raised before any simulation work.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDegenerateLattice is returned when hops are requested on a lattice
	// holding no quanta at all (source selection could never succeed).
	ErrDegenerateLattice = errors.New("degenerate lattice: no quanta to hop")

	// ErrFitConvergence is returned when the Boltzmann fit does not converge
	// or the problem is ill-conditioned at the solution.
	ErrFitConvergence = errors.New("boltzmann fit failed")
)
