package analysis

const (
	// zeroThreshold is below which sin(pi*f) is treated as zero.
	zeroThreshold = 1e-12

	// dbPerDecade converts an amplitude ratio to decibels.
	dbPerDecade = 20.0

	// maxBandwidth is the Nyquist frequency in cycles per sample.
	maxBandwidth = 0.5

	// aliasGridPoints is how many frequencies each alias band is sampled at.
	aliasGridPoints = 256
)
