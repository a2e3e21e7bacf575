// Package rate implements the rate controllers that gate the CIC chains:
// the decimation counter that fires once per R accepted samples, and the
// expansion sequencer that emits R high-rate phases per accepted sample.
//
// Both controllers separate the next-state computation from the commit so a
// pipeline can evaluate a whole tick before any register changes.
package rate

// Decimation counts accepted samples and fires on every Rth one.
type Decimation struct {
	factor int
	count  int
	fire   bool
}

// NewDecimation returns a counter for the given rate factor (>= 1).
func NewDecimation(factor int) *Decimation {
	return &Decimation{factor: factor}
}

// Next returns the counter value and fire flag that accepting one more
// sample would produce, without changing state.
func (d *Decimation) Next() (count int, fire bool) {
	if d.count == d.factor-1 {
		return 0, true
	}
	return d.count + 1, false
}

// Commit stores the result of Next, or clears the fire flag for a tick in
// which nothing was accepted.
func (d *Decimation) Commit(count int, fire bool) {
	d.count = count
	d.fire = fire
}

// Count returns the number of samples accepted since the last fire.
func (d *Decimation) Count() int { return d.count }

// Fired reports whether the last committed tick fired.
func (d *Decimation) Fired() bool { return d.fire }

// Factor returns R.
func (d *Decimation) Factor() int { return d.factor }

// Reset returns the counter to its power-on state.
func (d *Decimation) Reset() {
	d.count = 0
	d.fire = false
}

// Expansion sequences the R output phases produced for each input sample
// of an interpolator.
type Expansion struct {
	factor  int
	phase   int
	pending bool
}

// NewExpansion returns a sequencer for the given rate factor (>= 1).
func NewExpansion(factor int) *Expansion {
	return &Expansion{factor: factor}
}

// Pending reports whether an input sample is mid-expansion.
func (e *Expansion) Pending() bool { return e.pending }

// Phase returns the index of the next output phase.
func (e *Expansion) Phase() int { return e.phase }

// Factor returns R.
func (e *Expansion) Factor() int { return e.factor }

// Zero reports whether the next phase is a zero-stuffed one.
func (e *Expansion) Zero() bool { return e.phase != 0 }

// Advance returns the phase and pending state after emitting the current
// phase.
func (e *Expansion) Advance() (phase int, pending bool) {
	if e.phase == e.factor-1 {
		return 0, false
	}
	return e.phase + 1, true
}

// Commit stores a new phase and pending state.
func (e *Expansion) Commit(phase int, pending bool) {
	e.phase = phase
	e.pending = pending
}

// Reset returns the sequencer to its power-on state.
func (e *Expansion) Reset() {
	e.phase = 0
	e.pending = false
}
