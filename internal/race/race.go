// Package race implements the lap and checkpoint state machine of a single
// race attempt, plus the league that strings races together.
package race

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"mode7racer/internal/collision"
	"mode7racer/internal/track"
)

var ErrInvalidLaps = errors.New("required laps must be at least 1")

// Race is the mutable per-attempt state bound to one track.
// Finished is derived from the lap counter, never stored.
type Race struct {
	track        *track.Track
	requiredLaps int

	completedLaps int
	started       bool
	startTime     time.Duration
	lastLapTime   time.Duration
	lapTimes      []time.Duration

	logger *zap.Logger
}

type Option func(r *Race)

func WithLogger(l *zap.Logger) Option {
	return func(r *Race) {
		if l != nil {
			r.logger = l
		}
	}
}

func New(t *track.Track, requiredLaps int, opts ...Option) (*Race, error) {
	if t == nil {
		return nil, errors.New("race needs a track")
	}
	if requiredLaps < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLaps, requiredLaps)
	}
	r := &Race{
		track:        t,
		requiredLaps: requiredLaps,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// UpdateLapCount advances the state machine for the player's collider at
// time now and reports whether the race clock started in this call.
// Checkpoints are updated on every call, before the finish-line test.
func (r *Race) UpdateLapCount(player collision.Rect, now time.Duration) bool {
	r.track.UpdateKeyCheckpoints(player)

	if !r.track.IsOnFinishLine(player) {
		return false
	}

	justStarted := false
	if !r.started {
		r.started = true
		r.startTime = now
		r.lastLapTime = now
		justStarted = true
		r.logger.Info("race started", zap.String("track", r.track.Name()))
	}

	if r.track.AllKeyCheckpointsPassed() {
		lap := now - r.lastLapTime
		r.lapTimes = append(r.lapTimes, lap)
		r.lastLapTime = now
		r.completedLaps++
		r.logger.Info("lap completed",
			zap.Int("lap", r.completedLaps),
			zap.Duration("lapTime", lap))
		if r.PlayerFinishedRace() {
			r.logger.Info("race finished", zap.Duration("total", r.TotalTime()))
		}
	} else if !justStarted {
		// Contact without all checkpoints throws away partial progress.
		r.logger.Debug("finish line touched with checkpoints missing",
			zap.Int("passed", r.track.PassedCount()),
			zap.Int("required", len(r.track.Checkpoints())))
	}
	r.track.ResetKeyCheckpoints()

	return justStarted
}

func (r *Race) Reset() {
	r.completedLaps = 0
	r.started = false
	r.startTime = 0
	r.lastLapTime = 0
	r.lapTimes = nil
	r.track.ResetKeyCheckpoints()
}

func (r *Race) PlayerFinishedRace() bool {
	return r.completedLaps >= r.requiredLaps
}

func (r *Race) PlayerCompletedFirstLap() bool {
	return r.completedLaps >= 1
}

func (r *Race) Track() *track.Track { return r.track }

func (r *Race) Started() bool { return r.started }

// StartTime is only meaningful once Started reports true.
func (r *Race) StartTime() time.Duration { return r.startTime }

func (r *Race) CompletedLaps() int { return r.completedLaps }

func (r *Race) RequiredLaps() int { return r.requiredLaps }

// LapTimes returns a copy of the recorded lap times in order.
func (r *Race) LapTimes() []time.Duration {
	return slices.Clone(r.lapTimes)
}

func (r *Race) TotalTime() time.Duration {
	return lo.Sum(r.lapTimes)
}

// BestLap returns the fastest lap, or false when no lap was completed.
func (r *Race) BestLap() (time.Duration, bool) {
	if len(r.lapTimes) == 0 {
		return 0, false
	}
	return lo.Min(r.lapTimes), true
}

// Elapsed is the running race clock: zero before the start, frozen at the
// total once the race is finished.
func (r *Race) Elapsed(now time.Duration) time.Duration {
	switch {
	case !r.started:
		return 0
	case r.PlayerFinishedRace():
		return r.TotalTime()
	default:
		return now - r.startTime
	}
}
