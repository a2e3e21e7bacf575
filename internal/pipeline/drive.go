package pipeline

import (
	"errors"
	"fmt"
)

// ErrStalled indicates that no handshake completed for too many ticks.
var ErrStalled = errors.New("pipeline stalled")

// ReadyFunc returns the downstream ready signal for a tick.
type ReadyFunc func(tick int) bool

// AlwaysReady is a downstream that never applies backpressure.
func AlwaysReady(int) bool { return true }

// Drive streams input through p from an external FIFO, presenting the
// oldest queued sample every tick and taking outputs whenever ready allows.
// It returns once the queue is empty and p owes no more output.
func Drive(p Pipeline, input []int64, ready ReadyFunc) ([]int64, error) {
	queue := NewRingBuffer(max(len(input), defaultQueueCapacity))
	queue.Write(input)

	out := make([]int64, 0, expectedOutput(p.Widths().Factor, len(input)))
	idle := 0

	for tick := 0; queue.Available() > 0 || p.Busy(); tick++ {
		s := Signals{OutReady: ready(tick)}
		s.InData, s.InValid = queue.Front()

		t := p.Step(s)
		if t.Accepted {
			queue.Discard(1)
		}
		if t.Delivered {
			out = append(out, t.OutData)
		}

		if t.Accepted || t.Delivered {
			idle = 0
			continue
		}
		idle++
		if idle > maxIdleTicks {
			return out, fmt.Errorf("%w: %d ticks without a handshake, %d samples queued",
				ErrStalled, idle, queue.Available())
		}
	}

	return out, nil
}

func expectedOutput(factor, n int) int {
	// upper bound for either direction
	return n*factor + 1
}
