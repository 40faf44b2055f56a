package ehrenfest

import "math/rand"

var (
	Debug = false // set to true to log per-frame and hop statistics
	// Compile time check that the stdlib generator can drive the simulation
	_ Source = (*rand.Rand)(nil)
)
