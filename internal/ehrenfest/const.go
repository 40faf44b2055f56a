package ehrenfest

const (
	LatticeSize         = 70
	InitialDistribution = "random"
	Timesteps           = 10_000
	PlotOut             = "boltzmann.png"
	FrameEvery          = 100 // hops between recorded frames (GIF/video)
	GIFDelay            = 10  // 100ths of a second per frame
	FrameRate           = 10  // video frames per second
	CellPixels          = 4   // on-screen pixels per lattice site in GIF/video frames
	LogLevel            = "info"
	// Levenberg-Marquardt knobs
	fitMaxIter   = 1000
	fitTol       = 1e-10
	fitLambda0   = 1e-3
	fitLambdaMax = 1e16
	// fit curve overlay, matching the plotted energy range
	curveMaxE    = 10
	curveSamples = 1000
)
