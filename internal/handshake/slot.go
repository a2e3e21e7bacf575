// Package handshake implements the ready/valid flow control shared by the
// CIC pipelines: a single registered output slot whose valid flag is held
// until downstream takes the sample.
package handshake

// Slot is the registered output of a pipeline.
type Slot struct {
	valid bool
	data  int64
}

// Valid reports whether the slot holds a sample not yet taken downstream.
func (s *Slot) Valid() bool { return s.valid }

// Data returns the sample in the slot. It is only meaningful while Valid.
func (s *Slot) Data() int64 { return s.data }

// Blocked reports whether the slot holds a sample that downstream refuses
// this tick. A blocked slot must not be overwritten.
func (s *Slot) Blocked(outReady bool) bool {
	return s.valid && !outReady
}

// Delivered reports whether the output handshake completes this tick.
func (s *Slot) Delivered(outReady bool) bool {
	return s.valid && outReady
}

// Free reports whether a new sample may be latched this tick: the slot is
// empty or its sample is being taken.
func (s *Slot) Free(outReady bool) bool {
	return !s.Blocked(outReady)
}

// Commit applies the end-of-tick update. When produced is set the slot is
// loaded with data; otherwise it stays valid only while blocked. The data of
// a blocked slot is never changed.
func (s *Slot) Commit(produced bool, data int64, outReady bool) {
	if produced {
		s.valid = true
		s.data = data
		return
	}
	s.valid = s.Blocked(outReady)
}

// Reset empties the slot.
func (s *Slot) Reset() {
	s.valid = false
	s.data = 0
}

// InReady derives the input ready signal. extraBusy lets a pipeline refuse
// input for reasons of its own, such as an expansion in progress.
func InReady(s *Slot, outReady, extraBusy bool) bool {
	return !extraBusy && !s.Blocked(outReady)
}
