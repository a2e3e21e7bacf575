package pipeline

import (
	"sync"
)

// RingBuffer is a growable circular FIFO of samples. It serves as the
// external queue in front of a pipeline when the source cannot be stalled.
type RingBuffer struct {
	data     []int64
	capacity int
	size     int
	readPos  int
	writePos int
	mu       sync.Mutex
}

// NewRingBuffer creates a new ring buffer with the specified capacity.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}

	return &RingBuffer{
		data:     make([]int64, capacity),
		capacity: capacity,
	}
}

// Write appends samples, growing the buffer if needed.
func (b *RingBuffer) Write(samples []int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	needed := len(samples)
	if needed == 0 {
		return
	}

	if b.size+needed > b.capacity {
		b.grow(b.size + needed)
	}

	for _, sample := range samples {
		b.data[b.writePos] = sample
		b.writePos = (b.writePos + 1) % b.capacity
		b.size++
	}
}

// Read removes and returns up to n samples.
func (b *RingBuffer) Read(n int) []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > b.size {
		n = b.size
	}
	if n <= 0 {
		return []int64{}
	}

	result := make([]int64, n)
	for i := range n {
		result[i] = b.data[b.readPos]
		b.readPos = (b.readPos + 1) % b.capacity
		b.size--
	}

	return result
}

// Front returns the oldest sample without removing it.
func (b *RingBuffer) Front() (int64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.size == 0 {
		return 0, false
	}
	return b.data[b.readPos], true
}

// Discard drops up to n samples from the front.
func (b *RingBuffer) Discard(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > b.size {
		n = b.size
	}
	if n <= 0 {
		return
	}
	b.readPos = (b.readPos + n) % b.capacity
	b.size -= n
}

// ReadAll removes and returns every buffered sample.
func (b *RingBuffer) ReadAll() []int64 {
	return b.Read(b.Available())
}

// Available returns the number of buffered samples.
func (b *RingBuffer) Available() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Capacity returns the current buffer capacity.
func (b *RingBuffer) Capacity() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.capacity
}

// Clear removes all samples from the buffer.
func (b *RingBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.size = 0
	b.readPos = 0
	b.writePos = 0
}

// grow increases the capacity to at least minCapacity, keeping order.
func (b *RingBuffer) grow(minCapacity int) {
	newCapacity := b.capacity
	for newCapacity < minCapacity {
		newCapacity *= bufferGrowthFactor
	}

	newData := make([]int64, newCapacity)
	if b.size > 0 {
		if b.readPos < b.writePos {
			copy(newData, b.data[b.readPos:b.writePos])
		} else {
			n1 := copy(newData, b.data[b.readPos:])
			copy(newData[n1:], b.data[:b.writePos])
		}
	}

	b.data = newData
	b.capacity = newCapacity
	b.readPos = 0
	b.writePos = b.size
}
