package pipeline

import (
	"math/big"

	"github.com/tphakala/go-cic/internal/chain"
	"github.com/tphakala/go-cic/internal/fixed"
	"github.com/tphakala/go-cic/internal/handshake"
	"github.com/tphakala/go-cic/internal/rate"
)

// Decimator runs the integrators at the input rate and the combs once per
// R accepted samples.
type Decimator[T any] struct {
	ops      *fixed.Ops[T]
	widths   fixed.Widths
	format   fixed.Formatter
	datapath string

	integ *chain.Integrator[T]
	comb  *chain.Comb[T]
	rate  *rate.Decimation
	slot  handshake.Slot
}

func newDecimator[T any](spec Spec, ops *fixed.Ops[T], datapath string) (*Decimator[T], error) {
	w := spec.Widths
	comb, err := chain.NewComb(ops, w.Stages, w.Delay)
	if err != nil {
		return nil, err
	}

	return &Decimator[T]{
		ops:      ops,
		widths:   w,
		format:   fixed.NewFormatter(w, spec.Round, spec.Saturate),
		datapath: datapath,
		integ:    chain.NewIntegrator(ops, w.Stages),
		comb:     comb,
		rate:     rate.NewDecimation(w.Factor),
	}, nil
}

// Step advances the decimator by one clock tick.
//
// The handshake decisions are taken from the state left by the previous
// tick. The chains are clocked afterwards; the comb sees the integrator
// output that includes this tick's sample, and the formatted result is
// latched into the output slot at the tick boundary.
func (d *Decimator[T]) Step(s Signals) Tick {
	if s.Reset {
		d.Reset()
		return Tick{}
	}

	tick := d.observe(s.OutReady)
	tick.Accepted = s.InValid && tick.InReady

	count, fire := d.rate.Count(), false
	var out int64
	if tick.Accepted {
		count, fire = d.rate.Next()
		top := d.integ.Activate(d.ops.FromInt64(s.InData, d.widths.In))
		if fire {
			out = fixed.Format(d.format, d.ops, d.comb.Activate(top))
		}
	}

	d.rate.Commit(count, fire)
	d.slot.Commit(fire, out, s.OutReady)
	tick.Fire = fire

	return tick
}

func (d *Decimator[T]) observe(outReady bool) Tick {
	t := Tick{
		InReady:   handshake.InReady(&d.slot, outReady, false),
		OutValid:  d.slot.Valid(),
		Delivered: d.slot.Delivered(outReady),
	}
	if t.OutValid {
		t.OutData = d.slot.Data()
	}
	return t
}

// InReady returns in_ready = !(out_valid && !out_ready).
func (d *Decimator[T]) InReady(outReady bool) bool {
	return handshake.InReady(&d.slot, outReady, false)
}

// Output returns the registered output.
func (d *Decimator[T]) Output() (int64, bool) {
	return d.slot.Data(), d.slot.Valid()
}

// Busy reports whether an output is waiting for downstream.
func (d *Decimator[T]) Busy() bool {
	return d.slot.Valid()
}

// Reset zeroes every register.
func (d *Decimator[T]) Reset() {
	d.integ.Reset()
	d.comb.Reset()
	d.rate.Reset()
	d.slot.Reset()
}

// Widths returns the register widths.
func (d *Decimator[T]) Widths() fixed.Widths {
	return d.widths
}

// Datapath names the register backing.
func (d *Decimator[T]) Datapath() string {
	return d.datapath
}

// Snapshot copies the register state.
func (d *Decimator[T]) Snapshot() Snapshot {
	return Snapshot{
		Integrators: widen(d.ops, d.integ.Registers()),
		Comb:        combState(d.ops, d.comb),
		Count:       d.rate.Count(),
		Fire:        d.rate.Fired(),
		OutValid:    d.slot.Valid(),
		OutData:     d.slot.Data(),
	}
}

func widen[T any](ops *fixed.Ops[T], regs []T) []*big.Int {
	out := make([]*big.Int, len(regs))
	for i, v := range regs {
		out[i] = ops.Big(v)
	}
	return out
}

func combState[T any](ops *fixed.Ops[T], c *chain.Comb[T]) [][]*big.Int {
	out := make([][]*big.Int, c.Stages())
	for s := range out {
		line := c.Line(s)
		out[s] = make([]*big.Int, line.Depth())
		for i := range out[s] {
			out[s][i] = ops.Big(line.At(i))
		}
	}
	return out
}
