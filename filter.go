package cic

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/tphakala/simd/cpu"

	"github.com/tphakala/go-cic/internal/fixed"
	"github.com/tphakala/go-cic/internal/pipeline"
)

// filter holds what the decimator and interpolator share: the validated
// configuration and the clocked pipeline behind the ports.
type filter struct {
	config Config
	widths Widths
	p      pipeline.Pipeline

	mu sync.Mutex
}

func newFilter(config *Config, kind pipeline.Kind) (*filter, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	w, err := config.widths()
	if err != nil {
		return nil, err
	}

	p, err := pipeline.Build(pipeline.Spec{
		Kind:     kind,
		Widths:   w,
		Round:    config.Round,
		Saturate: config.Saturate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build %v pipeline: %w", kind, err)
	}

	return &filter{
		config: *config,
		widths: w,
		p:      p,
	}, nil
}

// Step advances the filter by one clock tick.
func (f *filter) Step(s Signals) Tick {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.p.Step(s)
}

// InReady returns the input ready signal without advancing.
func (f *filter) InReady(outReady bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.p.InReady(outReady)
}

// Output returns the registered output without advancing.
func (f *filter) Output() (int64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.p.Output()
}

// Busy reports whether output is still owed.
func (f *filter) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.p.Busy()
}

// Reset clears all internal state.
func (f *filter) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.p.Reset()
}

// Process streams input through the filter with an always-ready downstream.
func (f *filter) Process(input []int64) ([]int64, error) {
	return f.ProcessWithBackpressure(input, nil)
}

// ProcessWithBackpressure streams input through the filter, asking ready
// for the downstream ready signal on every tick. A nil ready never applies
// backpressure.
func (f *filter) ProcessWithBackpressure(input []int64, ready func(tick int) bool) ([]int64, error) {
	if err := f.checkRange(input); err != nil {
		return nil, err
	}
	if ready == nil {
		ready = pipeline.AlwaysReady
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return pipeline.Drive(f.p, input, ready)
}

// checkRange rejects samples that do not fit the input port.
func (f *filter) checkRange(input []int64) error {
	lo, hi := fixed.MinSigned(f.widths.In), fixed.MaxSigned(f.widths.In)
	for i, v := range input {
		if v < lo || v > hi {
			return fmt.Errorf("%w: sample %d is %d, %d-bit input range is [%d, %d]",
				ErrSampleRange, i, v, f.widths.In, lo, hi)
		}
	}
	return nil
}

// Widths returns the derived register widths.
func (f *filter) Widths() Widths {
	return f.widths
}

// Factor returns the rate change factor R.
func (f *filter) Factor() int {
	return f.widths.Factor
}

// Config returns a copy of the configuration the filter was built with.
func (f *filter) Config() Config {
	return f.config
}

// cascadeGain returns (R*M)^N.
func (f *filter) cascadeGain() *big.Int {
	rm := big.NewInt(int64(f.widths.Factor * f.widths.Delay))
	return new(big.Int).Exp(rm, big.NewInt(int64(f.widths.Stages)), nil)
}

// Latency returns the group delay in high-rate samples: half the impulse
// response span plus one sample per integrator after the first.
func (f *filter) Latency() int {
	w := f.widths
	return w.Stages*(w.Factor*w.Delay-1)/latencyDivisor + w.Stages - 1
}

func (f *filter) info(algorithm string, gain *big.Int) Info {
	w := f.widths
	registers := w.Stages + w.Stages*w.Delay

	bytesPerRegister := int64(bytesPerNativeRegister)
	if !w.Native() {
		bytesPerRegister = int64((w.Full+bitsPerByte-1)/bitsPerByte) + bigIntOverhead
	}

	outputGain, _ := new(big.Float).SetMantExp(new(big.Float).SetInt(gain), -w.Discard()).Float64()

	return Info{
		Algorithm:   algorithm,
		Widths:      w,
		Gain:        gain,
		OutputGain:  outputGain,
		Latency:     f.Latency(),
		Registers:   registers,
		MemoryUsage: int64(registers) * bytesPerRegister,
		Datapath:    f.p.Datapath(),
		SIMDType:    cpu.Info(),
	}
}

// Decimator is a CIC decimation filter: one output per Factor accepted
// inputs.
type Decimator struct {
	*filter
}

// NewDecimator creates a decimator. config.Mode is ignored.
func NewDecimator(config *Config) (*Decimator, error) {
	f, err := newFilter(config, pipeline.KindDecimator)
	if err != nil {
		return nil, err
	}
	f.config.Mode = ModeDecimate
	return &Decimator{filter: f}, nil
}

// Gain returns the decimator DC gain (R*M)^N.
func (d *Decimator) Gain() *big.Int {
	return d.cascadeGain()
}

// GetInfo returns information about the decimator.
func (d *Decimator) GetInfo() Info {
	return d.info("cic-decimator", d.Gain())
}

// Interpolator is a CIC interpolation filter: Factor outputs per accepted
// input.
type Interpolator struct {
	*filter
}

// NewInterpolator creates an interpolator. config.Mode is ignored.
func NewInterpolator(config *Config) (*Interpolator, error) {
	f, err := newFilter(config, pipeline.KindInterpolator)
	if err != nil {
		return nil, err
	}
	f.config.Mode = ModeInterpolate
	return &Interpolator{filter: f}, nil
}

// Gain returns the interpolator DC gain (R*M)^N / R. Zero stuffing divides
// the cascade gain by R, which always divides it exactly.
func (p *Interpolator) Gain() *big.Int {
	g := p.cascadeGain()
	return g.Quo(g, big.NewInt(int64(p.widths.Factor)))
}

// GetInfo returns information about the interpolator.
func (p *Interpolator) GetInfo() Info {
	return p.info("cic-interpolator", p.Gain())
}
