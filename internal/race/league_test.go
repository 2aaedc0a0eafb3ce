package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeagueProgression(t *testing.T) {
	l := NewLeague("cup", Entry{Course: "a", Laps: 3}, Entry{Course: "b", Laps: 2})
	assert.Equal(t, 2, l.Len())

	e, ok := l.Current()
	require.True(t, ok)
	assert.Equal(t, "a", e.Course)

	e, ok = l.Next()
	require.True(t, ok)
	assert.Equal(t, "b", e.Course)
	assert.False(t, l.IsCompleted())

	_, ok = l.Next()
	assert.False(t, ok)
	assert.True(t, l.IsCompleted())

	// stays completed
	_, ok = l.Next()
	assert.False(t, ok)
	assert.Equal(t, 2, l.Index())

	l.Reset()
	e, ok = l.Current()
	require.True(t, ok)
	assert.Equal(t, "a", e.Course)
}
