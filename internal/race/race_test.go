package race

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"mode7racer/internal/collision"
	"mode7racer/internal/track"
)

var (
	onFinish = collision.R(0, 0, 1, 1)
	onC1     = collision.R(0, 50, 1, 1)
	onC2     = collision.R(50, 100, 1, 1)
	nowhere  = collision.R(0, 25, 1, 1)
)

func twoCheckpointTrack(t *testing.T) *track.Track {
	t.Helper()
	tr, err := track.New(track.Geometry{
		Name:        "loop",
		Surface:     []collision.Rect{collision.R(0, 50, 10, 120), collision.R(50, 100, 100, 10)},
		FinishLine:  collision.R(0, 0, 10, 1),
		Checkpoints: []collision.Rect{collision.R(0, 50, 10, 2), collision.R(50, 100, 2, 10)},
	})
	require.NoError(t, err)
	return tr
}

func sec(s float64) time.Duration { return time.Duration(s * float64(time.Second)) }

func TestNewValidatesLaps(t *testing.T) {
	_, err := New(twoCheckpointTrack(t), 0)
	assert.ErrorIs(t, err, ErrInvalidLaps)
	_, err = New(nil, 3)
	assert.Error(t, err)
}

func TestTimerGating(t *testing.T) {
	r, err := New(twoCheckpointTrack(t), 3)
	require.NoError(t, err)

	assert.False(t, r.UpdateLapCount(nowhere, sec(1)))
	assert.False(t, r.Started())
	assert.Equal(t, time.Duration(0), r.Elapsed(sec(1)))

	assert.True(t, r.UpdateLapCount(onFinish, sec(2)))
	assert.True(t, r.Started())
	assert.Equal(t, sec(2), r.StartTime())
	assert.Equal(t, 0, r.CompletedLaps())

	// staying on the line does not restart the clock
	assert.False(t, r.UpdateLapCount(onFinish, sec(2.1)))
	assert.Equal(t, sec(2), r.StartTime())
	assert.Equal(t, sec(3), r.Elapsed(sec(5)))
}

func TestOneCheckpointDoesNotCount(t *testing.T) {
	tr := twoCheckpointTrack(t)
	r, err := New(tr, 3)
	require.NoError(t, err)

	r.UpdateLapCount(onFinish, sec(0))
	r.UpdateLapCount(onC1, sec(5))
	assert.Equal(t, 1, tr.PassedCount())

	r.UpdateLapCount(onFinish, sec(10))
	assert.Equal(t, 0, r.CompletedLaps())
	assert.Empty(t, r.LapTimes())
	assert.Equal(t, 0, tr.PassedCount(), "invalid touch resets progress")
}

func TestBothCheckpointsEitherOrder(t *testing.T) {
	for name, order := range map[string][]collision.Rect{
		"c1 then c2": {onC1, onC2},
		"c2 then c1": {onC2, onC1},
	} {
		t.Run(name, func(t *testing.T) {
			tr := twoCheckpointTrack(t)
			r, err := New(tr, 3)
			require.NoError(t, err)

			r.UpdateLapCount(onFinish, sec(1))
			r.UpdateLapCount(order[0], sec(4))
			r.UpdateLapCount(order[1], sec(8))
			r.UpdateLapCount(onFinish, sec(13.5))

			assert.Equal(t, 1, r.CompletedLaps())
			assert.Equal(t, []time.Duration{sec(12.5)}, r.LapTimes())
			assert.True(t, r.PlayerCompletedFirstLap())
			assert.False(t, r.PlayerFinishedRace())
			assert.Equal(t, 0, tr.PassedCount())

			// lingering on the line right after does not count again
			r.UpdateLapCount(onFinish, sec(13.6))
			assert.Equal(t, 1, r.CompletedLaps())
		})
	}
}

func TestThreeLapRace(t *testing.T) {
	tr, err := track.New(track.Geometry{
		Name:        "straight",
		Surface:     []collision.Rect{collision.R(0, 50, 10, 120)},
		FinishLine:  collision.R(0, 0, 10, 1),
		Checkpoints: []collision.Rect{collision.R(0, 50, 10, 2)},
	})
	require.NoError(t, err)
	r, err := New(tr, 3)
	require.NoError(t, err)

	mid := collision.R(0, 50, 1, 1)
	now := sec(0.5)
	r.UpdateLapCount(onFinish, now)
	start := now

	for lap := 1; lap <= 3; lap++ {
		assert.False(t, r.PlayerFinishedRace())
		now += sec(3)
		r.UpdateLapCount(mid, now)
		now += sec(float64(lap))
		r.UpdateLapCount(onFinish, now)
		assert.Equal(t, lap, r.CompletedLaps())
	}

	assert.True(t, r.PlayerFinishedRace())
	laps := r.LapTimes()
	require.Len(t, laps, 3)
	for _, l := range laps {
		assert.Positive(t, int64(l))
	}
	assert.Equal(t, now-start, r.TotalTime())
	assert.Equal(t, r.TotalTime(), r.Elapsed(now+sec(100)))

	best, ok := r.BestLap()
	require.True(t, ok)
	assert.Equal(t, sec(4), best)
}

func TestReset(t *testing.T) {
	tr := twoCheckpointTrack(t)
	r, err := New(tr, 1)
	require.NoError(t, err)

	r.UpdateLapCount(onFinish, sec(0))
	r.UpdateLapCount(onC1, sec(1))
	r.UpdateLapCount(onC2, sec(2))
	r.UpdateLapCount(onFinish, sec(3))
	require.True(t, r.PlayerFinishedRace())

	r.UpdateLapCount(onC1, sec(4))
	r.Reset()
	assert.False(t, r.Started())
	assert.Equal(t, 0, r.CompletedLaps())
	assert.Empty(t, r.LapTimes())
	assert.Equal(t, 0, tr.PassedCount())
	_, ok := r.BestLap()
	assert.False(t, ok)
}

func TestLapTimesCopy(t *testing.T) {
	tr, err := track.New(track.Geometry{
		Surface:    []collision.Rect{collision.R(0, 0, 10, 10)},
		FinishLine: collision.R(0, 0, 10, 1),
	})
	require.NoError(t, err)
	r, err := New(tr, 5)
	require.NoError(t, err)

	// no checkpoints: the starting contact is itself a zero-length lap
	r.UpdateLapCount(onFinish, sec(1))
	r.UpdateLapCount(onFinish, sec(2))
	laps := r.LapTimes()
	require.Len(t, laps, 2)
	laps[0] = time.Hour
	assert.Equal(t, time.Duration(0), r.LapTimes()[0])
}

func TestInvalidTouchIsLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r, err := New(twoCheckpointTrack(t), 3, WithLogger(zap.New(core)))
	require.NoError(t, err)

	r.UpdateLapCount(onFinish, sec(0))
	r.UpdateLapCount(onC1, sec(1))
	r.UpdateLapCount(onFinish, sec(2))

	assert.Equal(t, 1, logs.FilterMessage("race started").Len())
	assert.Equal(t, 1, logs.FilterMessage("finish line touched with checkpoints missing").Len())
}
