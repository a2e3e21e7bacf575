package fixed

// Parameter domains
const (
	minStages   = 1
	minFactor   = 1
	maxDelay    = 2
	minInWidth  = 1
	minOutWidth = 2

	// MaxPortWidth is the widest input or output sample; ports are int64.
	MaxPortWidth = 64
)

// Native register size
const (
	nativeBits = 64
)
