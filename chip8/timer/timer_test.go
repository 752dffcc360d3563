package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelayDecay(t *testing.T) {
	u := &Unit{}
	u.SetDelay(5)

	for i := 4; i >= 0; i-- {
		u.Tick()
		assert.Equal(t, byte(i), u.Delay())
	}

	// Clamped at zero, never negative.
	u.Tick()
	assert.Equal(t, byte(0), u.Delay())
}

func TestSoundDecayIndependentOfDelay(t *testing.T) {
	u := &Unit{}
	u.SetDelay(2)
	u.SetSound(4)

	u.Tick()
	u.Tick()
	u.Tick()

	assert.Equal(t, byte(0), u.Delay())
	assert.Equal(t, byte(1), u.Sound())
}

func TestSoundHandlerTransitions(t *testing.T) {
	var calls []bool
	u := &Unit{SoundHandler: func(active bool) {
		calls = append(calls, active)
	}}

	u.SetSound(2)
	assert.True(t, u.SoundActive())

	u.Tick()
	u.Tick()

	assert.False(t, u.SoundActive())
	assert.Equal(t, []bool{true, false}, calls)
}

func TestSoundHandlerNotCalledWhileRunning(t *testing.T) {
	var calls int
	u := &Unit{SoundHandler: func(bool) { calls++ }}

	u.SetSound(10)
	u.SetSound(5) // still active, no transition

	assert.Equal(t, 1, calls)
}
