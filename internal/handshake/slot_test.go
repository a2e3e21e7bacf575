package handshake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlot_HoldsUntilTaken(t *testing.T) {
	var s Slot
	assert.False(t, s.Valid())
	assert.True(t, InReady(&s, false, false), "empty slot accepts even without out_ready")

	s.Commit(true, 42, false)
	assert.True(t, s.Valid())
	assert.Equal(t, int64(42), s.Data())

	// stalled: nothing produced, downstream not ready
	for range 5 {
		assert.True(t, s.Blocked(false))
		assert.False(t, InReady(&s, false, false))
		s.Commit(false, 99, false)
		assert.True(t, s.Valid())
		assert.Equal(t, int64(42), s.Data(), "held data must not change")
	}

	assert.True(t, s.Delivered(true))
	s.Commit(false, 0, true)
	assert.False(t, s.Valid())
}

func TestSlot_ReloadWhileTaken(t *testing.T) {
	var s Slot
	s.Commit(true, 1, true)

	assert.True(t, s.Free(true))
	assert.True(t, s.Delivered(true))
	s.Commit(true, 2, true)
	assert.True(t, s.Valid())
	assert.Equal(t, int64(2), s.Data())
}

func TestInReady_ExtraBusy(t *testing.T) {
	var s Slot
	assert.False(t, InReady(&s, true, true))
	assert.True(t, InReady(&s, true, false))
}

func TestSlot_Reset(t *testing.T) {
	var s Slot
	s.Commit(true, 7, false)
	s.Reset()
	assert.False(t, s.Valid())
	assert.Equal(t, int64(0), s.Data())
}
