// Package pipeline assembles the CIC building blocks into clocked
// decimator and interpolator pipelines behind a ready/valid handshake.
// Build picks the register backing (int64 or *big.Int) from the full
// precision width, so the rest of the module sees a single interface.
package pipeline

import (
	"fmt"
	"math/big"

	"github.com/tphakala/go-cic/internal/fixed"
)

// Signals are the values driven into a pipeline's input ports for one
// clock tick.
type Signals struct {
	// Reset forces every register to zero at the end of the tick. No
	// handshake completes during a reset tick.
	Reset bool

	// InValid and InData form the upstream half of the input handshake.
	// Only the low IN_WIDTH bits of InData are used.
	InValid bool
	InData  int64

	// OutReady is the downstream half of the output handshake.
	OutReady bool
}

// Tick reports the port values observed during one clock tick.
type Tick struct {
	// InReady is the input ready signal during the tick.
	InReady bool

	// Accepted is set when the input handshake completed.
	Accepted bool

	// OutValid and OutData are the registered outputs during the tick.
	OutValid bool
	OutData  int64

	// Delivered is set when the output handshake completed (OutValid and
	// OutReady).
	Delivered bool

	// Fire is set when a decimator completed a group of R inputs this tick.
	Fire bool
}

// Pipeline is a clocked CIC filter seen through its ports.
type Pipeline interface {
	// Step advances the pipeline by one clock tick.
	Step(s Signals) Tick

	// InReady returns the input ready signal for the current state given
	// the downstream ready signal, without advancing.
	InReady(outReady bool) bool

	// Output returns the registered output, without advancing.
	Output() (data int64, valid bool)

	// Busy reports whether the pipeline still owes output: a held sample
	// or an unfinished expansion.
	Busy() bool

	// Reset returns every register to zero.
	Reset()

	// Widths returns the register widths the pipeline was built with.
	Widths() fixed.Widths

	// Snapshot copies the complete register state.
	Snapshot() Snapshot

	// Datapath names the register backing, "int64" or "big".
	Datapath() string
}

// Kind selects the pipeline structure.
type Kind int

const (
	// KindDecimator reduces the sample rate by R.
	KindDecimator Kind = iota

	// KindInterpolator raises the sample rate by R.
	KindInterpolator
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDecimator:
		return "decimator"
	case KindInterpolator:
		return "interpolator"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Spec specifies the pipeline to build.
type Spec struct {
	Kind     Kind
	Widths   fixed.Widths
	Round    bool
	Saturate bool
}

// Snapshot is a copy of a pipeline's registers, used by tests and
// diagnostics. Register values are widened to *big.Int.
type Snapshot struct {
	Integrators []*big.Int
	Comb        [][]*big.Int // [stage][entry], entry 0 most recent

	Count    int  // decimation counter
	Fire     bool // decimation one-shot
	Phase    int  // expansion phase
	Pending  bool // expansion in progress
	Baseband *big.Int

	OutValid bool
	OutData  int64
}

// IsZero reports whether every register holds its reset value.
func (s Snapshot) IsZero() bool {
	for _, v := range s.Integrators {
		if v.Sign() != 0 {
			return false
		}
	}
	for _, line := range s.Comb {
		for _, v := range line {
			if v.Sign() != 0 {
				return false
			}
		}
	}
	if s.Baseband != nil && s.Baseband.Sign() != 0 {
		return false
	}
	return s.Count == 0 && !s.Fire && s.Phase == 0 && !s.Pending && !s.OutValid && s.OutData == 0
}

// Build constructs the pipeline described by spec.
func Build(spec Spec) (Pipeline, error) {
	if spec.Widths.Full < 1 {
		return nil, fmt.Errorf("invalid full precision width: %d", spec.Widths.Full)
	}
	if spec.Widths.Native() {
		return build(spec, fixed.Int64Ops(spec.Widths.Full), datapathNative)
	}
	return build(spec, fixed.BigOps(spec.Widths.Full), datapathBig)
}

func build[T any](spec Spec, ops *fixed.Ops[T], datapath string) (Pipeline, error) {
	switch spec.Kind {
	case KindDecimator:
		d, err := newDecimator(spec, ops, datapath)
		if err != nil {
			return nil, err
		}
		return d, nil
	case KindInterpolator:
		p, err := newInterpolator(spec, ops, datapath)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported pipeline kind: %v", spec.Kind)
	}
}
