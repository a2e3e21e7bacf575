package cic

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/tphakala/go-cic/internal/fixed"
	"github.com/tphakala/go-cic/internal/pipeline"
)

// Filter is a clocked CIC filter seen through its streaming ports.
//
// Step is the low-level interface: one call is one clock edge. Process and
// ProcessWithBackpressure drive the same ports from a slice, so both levels
// can be mixed on one instance; state carries over between calls.
type Filter interface {
	// Step advances the filter by one clock tick.
	Step(s Signals) Tick

	// InReady returns the input ready signal for the current state given
	// the downstream ready signal, without advancing.
	InReady(outReady bool) bool

	// Output returns the registered output, without advancing.
	Output() (data int64, valid bool)

	// Busy reports whether the filter still owes output for samples it has
	// already accepted.
	Busy() bool

	// Reset returns every register to zero.
	Reset()

	// Process streams input through the filter with a downstream that is
	// always ready and returns every output produced.
	Process(input []int64) ([]int64, error)

	// ProcessWithBackpressure is like Process, but ready supplies the
	// downstream ready signal for each tick.
	ProcessWithBackpressure(input []int64, ready func(tick int) bool) ([]int64, error)

	// Widths returns the derived register widths.
	Widths() Widths

	// Gain returns the DC gain of the full-precision datapath.
	Gain() *big.Int

	// Latency returns the group delay in high-rate samples.
	Latency() int

	// Factor returns the rate change factor R.
	Factor() int
}

// Signals are the input port values for one clock tick.
type Signals = pipeline.Signals

// Tick reports the port values observed during one clock tick.
type Tick = pipeline.Tick

// Widths holds the build parameters and derived register widths.
type Widths = fixed.Widths

// Mode selects the filter structure built by New.
type Mode int

const (
	// ModeDecimate reduces the sample rate by Factor.
	ModeDecimate Mode = iota

	// ModeInterpolate raises the sample rate by Factor.
	ModeInterpolate
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeDecimate:
		return "decimate"
	case ModeInterpolate:
		return "interpolate"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Config holds the filter configuration. All parameters are fixed at
// construction.
type Config struct {
	// Stages is the number of integrator and comb stages (N).
	Stages int

	// Factor is the integer rate change factor (R).
	Factor int

	// DifferentialDelay is the comb delay (M), 1 or 2.
	DifferentialDelay int

	// InputWidth is the signed input sample width in bits, 1-64.
	InputWidth int

	// OutputWidth is the signed output sample width in bits. It must be
	// 2-64 and no wider than the full precision width.
	OutputWidth int

	// Saturate clamps out-of-range outputs instead of wrapping them.
	Saturate bool

	// Round applies round-half-up before discarding low bits.
	Round bool

	// Mode selects decimation or interpolation. It is only read by New and
	// NewBank.
	Mode Mode

	// Channels is the number of independent channels in a Bank.
	// Zero means one.
	Channels int

	// EnableParallel processes Bank channels concurrently.
	// Has no effect with a single channel.
	EnableParallel bool
}

// Common errors returned by the filters.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid CIC configuration")

	// ErrSampleRange indicates an input sample that does not fit InputWidth.
	ErrSampleRange = errors.New("sample out of range")

	// ErrChannelCount indicates a channel count mismatch.
	ErrChannelCount = errors.New("channel count mismatch")

	// ErrStalled indicates that the downstream stopped taking output.
	ErrStalled = pipeline.ErrStalled
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	_, err := c.widths()
	return err
}

func (c *Config) widths() (Widths, error) {
	if c.Channels < 0 || c.Channels > maxChannels {
		return Widths{}, fmt.Errorf("%w: channels must be 1-%d", ErrInvalidConfig, maxChannels)
	}

	if c.Mode != ModeDecimate && c.Mode != ModeInterpolate {
		return Widths{}, fmt.Errorf("%w: unknown mode %v", ErrInvalidConfig, c.Mode)
	}

	w, err := fixed.Calculate(c.Stages, c.Factor, c.DifferentialDelay, c.InputWidth, c.OutputWidth)
	if err != nil {
		return Widths{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return w, nil
}

// channels returns the effective channel count.
func (c *Config) channels() int {
	if c.Channels == 0 {
		return 1
	}
	return c.Channels
}

// New creates a decimator or interpolator according to config.Mode.
func New(config *Config) (Filter, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	var (
		f   Filter
		err error
	)
	switch config.Mode {
	case ModeDecimate:
		f, err = NewDecimator(config)
	case ModeInterpolate:
		f, err = NewInterpolator(config)
	default:
		return nil, fmt.Errorf("%w: unknown mode %v", ErrInvalidConfig, config.Mode)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Info describes a filter instance.
type Info struct {
	// Algorithm names the filter structure.
	Algorithm string

	// Widths are the derived register widths.
	Widths Widths

	// Gain is the DC gain of the full-precision datapath.
	Gain *big.Int

	// OutputGain is the DC gain seen at the output port, after the low
	// bits are discarded.
	OutputGain float64

	// Latency is the group delay in high-rate samples.
	Latency int

	// Registers is the number of full-width registers.
	Registers int

	// MemoryUsage is the approximate register storage in bytes.
	MemoryUsage int64

	// Datapath names the register backing, "int64" or "big".
	Datapath string

	// SIMDType describes the SIMD instruction set available to the
	// analysis helpers.
	SIMDType string
}

// infoProvider is implemented by filters that can describe themselves.
type infoProvider interface {
	GetInfo() Info
}

// GetInfo returns information about a filter.
// Filters from this package report their full info; any other Filter
// gets the values its public methods expose.
func GetInfo(f Filter) Info {
	if provider, ok := f.(infoProvider); ok {
		return provider.GetInfo()
	}

	return Info{
		Algorithm: "unknown",
		Widths:    f.Widths(),
		Gain:      f.Gain(),
		Latency:   f.Latency(),
		Datapath:  "unknown",
		SIMDType:  "none",
	}
}
