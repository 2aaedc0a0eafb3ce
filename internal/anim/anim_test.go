package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceWraps(t *testing.T) {
	s, err := New(MachineClips(), Driving)
	require.NoError(t, err)

	s.Advance(0.1) // 1.2 frames
	assert.Equal(t, 1, s.CurrentFrame())
	s.Advance(0.25) // 4.2 -> 0.2
	assert.Equal(t, 0, s.CurrentFrame())

	// long hitch still lands inside the clip
	s.Advance(10)
	assert.GreaterOrEqual(t, s.CurrentFrame(), 0)
	assert.Less(t, s.CurrentFrame(), 4)
}

func TestSwitchRewindsOnlyOnChange(t *testing.T) {
	s, err := New(MachineClips(), Driving)
	require.NoError(t, err)
	s.Advance(0.2)
	require.Equal(t, 2, s.CurrentFrame())

	s.Switch(Driving)
	assert.Equal(t, 2, s.CurrentFrame())

	s.Switch(Idle)
	assert.Equal(t, Idle, s.Current())
	assert.Equal(t, 0, s.CurrentFrame())

	s.Switch("missing")
	assert.Equal(t, Idle, s.Current())
}

func TestNewValidates(t *testing.T) {
	_, err := New(map[Key]Clip{Idle: {Frames: 0}}, Idle)
	assert.Error(t, err)
	_, err = New(MachineClips(), "nope")
	assert.Error(t, err)
}
