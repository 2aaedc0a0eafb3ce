package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mode7racer/internal/vehicle"
)

func TestHUDBeforeStart(t *testing.T) {
	s := newSquareSession(t, WithHeadless())
	h := s.HUD(time.Second)

	assert.Equal(t, "square", h.Course)
	assert.Equal(t, StateRacing, h.State)
	assert.Zero(t, h.DisplaySpeed)
	assert.Equal(t, 1.0, h.EnergyFraction)
	assert.Equal(t, 1, h.Lap)
	assert.Equal(t, 3, h.RequiredLaps)
	assert.Zero(t, h.Elapsed)
	assert.False(t, h.HasBestLap)
	assert.Equal(t, "LAP 1/3", h.LapLabel())
}

func TestHUDDisplaySpeed(t *testing.T) {
	s := newSquareSession(t, WithHeadless())
	var now time.Duration
	for i := 0; i < 30; i++ {
		now += frame
		s.StepNoRender(now, frame.Seconds(), vehicle.Intents{Accelerate: true})
	}
	h := s.HUD(now)
	v := s.Vehicle()
	assert.Equal(t, int(v.Speed()*DisplaySpeedScale/v.Machine().MaxSpeed), h.DisplaySpeed)
	assert.Positive(t, h.DisplaySpeed)
}

func TestFormatRaceTime(t *testing.T) {
	assert.Equal(t, "0'00\"00", FormatRaceTime(0))
	assert.Equal(t, "1'05\"25", FormatRaceTime(65*time.Second+250*time.Millisecond))
	assert.Equal(t, "0'00\"00", FormatRaceTime(-time.Second))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "racing", StateRacing.String())
	assert.Equal(t, "league complete", StateLeagueComplete.String())
	assert.Equal(t, "unknown", State(42).String())
}
