package cic

import (
	"fmt"
	"sync"
)

// Bank runs one independent filter per channel with a shared configuration.
type Bank struct {
	config  Config
	filters []Filter
}

// NewBank creates config.Channels filters of kind config.Mode.
func NewBank(config *Config) (*Bank, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	b := &Bank{
		config:  *config,
		filters: make([]Filter, config.channels()),
	}
	b.config.Channels = len(b.filters)

	for ch := range b.filters {
		f, err := New(config)
		if err != nil {
			return nil, fmt.Errorf("failed to create channel %d: %w", ch, err)
		}
		b.filters[ch] = f
	}

	return b, nil
}

// ProcessMulti processes one input slice per channel.
// When EnableParallel is true in config, channels are processed concurrently.
// Otherwise, channels are processed sequentially.
func (b *Bank) ProcessMulti(input [][]int64) ([][]int64, error) {
	if len(input) != len(b.filters) {
		return nil, fmt.Errorf("%w: expected %d channels, got %d", ErrChannelCount, len(b.filters), len(input))
	}

	output := make([][]int64, len(input))

	// Sequential processing (default or when parallel disabled)
	if !b.config.EnableParallel || len(input) <= 1 {
		for ch := range input {
			result, err := b.filters[ch].Process(input[ch])
			if err != nil {
				return nil, fmt.Errorf("channel %d: %w", ch, err)
			}
			output[ch] = result
		}
		return output, nil
	}

	// Parallel processing: filters share no state
	var wg sync.WaitGroup
	errChan := make(chan error, len(input))

	for ch := range input {
		wg.Add(1)
		go func(channel int) {
			defer wg.Done()

			result, err := b.filters[channel].Process(input[channel])
			if err != nil {
				errChan <- fmt.Errorf("channel %d: %w", channel, err)
				return
			}
			output[channel] = result
		}(ch)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	return output, nil
}

// ProcessInterleaved processes interleaved frames [c0, c1, ..., c0, c1, ...]
// and returns interleaved output.
func (b *Bank) ProcessInterleaved(input []int64) ([]int64, error) {
	planar, err := Deinterleave(input, len(b.filters))
	if err != nil {
		return nil, err
	}

	out, err := b.ProcessMulti(planar)
	if err != nil {
		return nil, err
	}

	return Interleave(out)
}

// Channel returns the filter for one channel, or nil if out of range.
func (b *Bank) Channel(ch int) Filter {
	if ch < 0 || ch >= len(b.filters) {
		return nil
	}
	return b.filters[ch]
}

// Channels returns the channel count.
func (b *Bank) Channels() int {
	return len(b.filters)
}

// Reset clears the state of every channel.
func (b *Bank) Reset() {
	for _, f := range b.filters {
		f.Reset()
	}
}
