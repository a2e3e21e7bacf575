package cic

// Channel constants
const (
	stereoChannels = 2   // Stereo channel count (used by interleave functions)
	maxChannels    = 256 // Maximum supported channel count
)

// Register storage estimates
const (
	bytesPerNativeRegister = 8  // Size of an int64 register in bytes
	bitsPerByte            = 8  // Bits per byte
	bigIntOverhead         = 32 // Approximate big.Int header and slice overhead in bytes
)

// Latency constants
const (
	latencyDivisor = 2 // Group delay is half the impulse response span
)
