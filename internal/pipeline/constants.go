package pipeline

// Register backings
const (
	datapathNative = "int64"
	datapathBig    = "big"
)

// Stream driver limits
const (
	// maxIdleTicks is how many consecutive ticks without a handshake the
	// driver tolerates before reporting a stall.
	maxIdleTicks = 1 << 16

	// defaultQueueCapacity is the initial external FIFO size.
	defaultQueueCapacity = 1024
)

// Ring buffer growth
const (
	bufferGrowthFactor = 2
)
