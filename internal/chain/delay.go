package chain

// maxDelay is the deepest comb history supported (differential delay M).
const maxDelay = 2

// DelayLine is a fixed-depth shift register. Entry 0 is the most recent
// value pushed; entry Depth()-1 is the oldest and is the one shifted out by
// the next Push.
//
// The storage is a fixed array so the depth cannot drift at run time.
type DelayLine[T any] struct {
	data  [maxDelay]T
	depth int
	head  int // index of entry 0
}

func newDelayLine[T any](depth int, zero func() T) DelayLine[T] {
	d := DelayLine[T]{depth: depth}
	d.clear(zero)
	return d
}

// Push inserts v at the head and returns the value that fell off the tail.
func (d *DelayLine[T]) Push(v T) T {
	// the tail slot is the one the new head will occupy
	tail := (d.head + d.depth - 1) % d.depth
	old := d.data[tail]
	d.data[tail] = v
	d.head = tail
	return old
}

// Tail returns the oldest entry without shifting.
func (d *DelayLine[T]) Tail() T {
	return d.data[(d.head+d.depth-1)%d.depth]
}

// At returns entry i, 0 being the most recent.
func (d *DelayLine[T]) At(i int) T {
	return d.data[(d.head+i)%d.depth]
}

// Depth returns the number of entries.
func (d *DelayLine[T]) Depth() int {
	return d.depth
}

func (d *DelayLine[T]) clear(zero func() T) {
	for i := range d.data {
		d.data[i] = zero()
	}
	d.head = 0
}
