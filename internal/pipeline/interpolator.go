package pipeline

import (
	"github.com/tphakala/go-cic/internal/chain"
	"github.com/tphakala/go-cic/internal/fixed"
	"github.com/tphakala/go-cic/internal/handshake"
	"github.com/tphakala/go-cic/internal/rate"
)

// Interpolator runs the combs at the input rate and the integrators at the
// output rate, feeding them the latched comb result followed by R-1 zeros.
type Interpolator[T any] struct {
	ops      *fixed.Ops[T]
	widths   fixed.Widths
	format   fixed.Formatter
	datapath string

	comb     *chain.Comb[T]
	integ    *chain.Integrator[T]
	exp      *rate.Expansion
	baseband T
	slot     handshake.Slot
}

func newInterpolator[T any](spec Spec, ops *fixed.Ops[T], datapath string) (*Interpolator[T], error) {
	w := spec.Widths
	comb, err := chain.NewComb(ops, w.Stages, w.Delay)
	if err != nil {
		return nil, err
	}

	return &Interpolator[T]{
		ops:      ops,
		widths:   w,
		format:   fixed.NewFormatter(w, spec.Round, spec.Saturate),
		datapath: datapath,
		comb:     comb,
		integ:    chain.NewIntegrator(ops, w.Stages),
		exp:      rate.NewExpansion(w.Factor),
		baseband: ops.Zero(),
	}, nil
}

// Step advances the interpolator by one clock tick.
//
// A new input is accepted only between expansions, so accepting and
// emitting an output phase never happen in the same tick.
func (p *Interpolator[T]) Step(s Signals) Tick {
	if s.Reset {
		p.Reset()
		return Tick{}
	}

	pending := p.exp.Pending()
	tick := p.observe(s.OutReady)
	tick.Accepted = s.InValid && tick.InReady
	outStep := pending && p.slot.Free(s.OutReady)

	phase, nextPending := p.exp.Phase(), pending
	var out int64
	if outStep {
		feed := p.ops.Zero()
		if !p.exp.Zero() {
			feed = p.baseband
		}
		out = fixed.Format(p.format, p.ops, p.integ.Activate(feed))
		phase, nextPending = p.exp.Advance()
	}
	if tick.Accepted {
		p.baseband = p.comb.Activate(p.ops.FromInt64(s.InData, p.widths.In))
		phase, nextPending = 0, true
	}

	p.exp.Commit(phase, nextPending)
	p.slot.Commit(outStep, out, s.OutReady)

	return tick
}

func (p *Interpolator[T]) observe(outReady bool) Tick {
	t := Tick{
		InReady:   p.InReady(outReady),
		OutValid:  p.slot.Valid(),
		Delivered: p.slot.Delivered(outReady),
	}
	if t.OutValid {
		t.OutData = p.slot.Data()
	}
	return t
}

// InReady returns in_ready = !pending && !(out_valid && !out_ready).
func (p *Interpolator[T]) InReady(outReady bool) bool {
	return handshake.InReady(&p.slot, outReady, p.exp.Pending())
}

// Output returns the registered output.
func (p *Interpolator[T]) Output() (int64, bool) {
	return p.slot.Data(), p.slot.Valid()
}

// Busy reports whether an expansion is unfinished or an output is waiting.
func (p *Interpolator[T]) Busy() bool {
	return p.exp.Pending() || p.slot.Valid()
}

// Reset zeroes every register.
func (p *Interpolator[T]) Reset() {
	p.comb.Reset()
	p.integ.Reset()
	p.exp.Reset()
	p.baseband = p.ops.Zero()
	p.slot.Reset()
}

// Widths returns the register widths.
func (p *Interpolator[T]) Widths() fixed.Widths {
	return p.widths
}

// Datapath names the register backing.
func (p *Interpolator[T]) Datapath() string {
	return p.datapath
}

// Snapshot copies the register state.
func (p *Interpolator[T]) Snapshot() Snapshot {
	return Snapshot{
		Integrators: widen(p.ops, p.integ.Registers()),
		Comb:        combState(p.ops, p.comb),
		Phase:       p.exp.Phase(),
		Pending:     p.exp.Pending(),
		Baseband:    p.ops.Big(p.baseband),
		OutValid:    p.slot.Valid(),
		OutData:     p.slot.Data(),
	}
}
