package game

import (
	"fmt"
	"time"
)

// DisplaySpeedScale maps max speed to the number shown on the speedometer.
const DisplaySpeedScale = 1426

// HUD is everything the overlay draws for one frame.
type HUD struct {
	Course         string
	State          State
	DisplaySpeed   int
	EnergyFraction float64
	Boosted        bool
	CanBoost       bool
	Lap            int
	RequiredLaps   int
	Elapsed        time.Duration
	LapTimes       []time.Duration
	BestLap        time.Duration
	HasBestLap     bool
	JumpHeight     float64
	LeagueIndex    int
	LeagueLen      int
}

// HUD builds the overlay snapshot at now.
func (s *Session) HUD(now time.Duration) HUD {
	t := s.vehicle.Telemetry()
	speed := 0
	if t.MaxSpeed > 0 {
		speed = int(t.Speed * DisplaySpeedScale / t.MaxSpeed)
	}
	lap := min(t.CompletedLaps+1, t.RequiredLaps)
	best, ok := s.race.BestLap()
	return HUD{
		Course:         s.course.Name,
		State:          s.State(),
		DisplaySpeed:   speed,
		EnergyFraction: t.EnergyFraction,
		Boosted:        t.Boosted,
		CanBoost:       t.CanBoost,
		Lap:            lap,
		RequiredLaps:   t.RequiredLaps,
		Elapsed:        s.race.Elapsed(now),
		LapTimes:       t.LapTimes,
		BestLap:        best,
		HasBestLap:     ok,
		JumpHeight:     s.vehicle.JumpHeight(now),
		LeagueIndex:    s.league.Index(),
		LeagueLen:      s.league.Len(),
	}
}

// LapLabel reads like "LAP 2/3".
func (h HUD) LapLabel() string {
	return fmt.Sprintf("LAP %d/%d", h.Lap, h.RequiredLaps)
}

// FormatRaceTime renders d as m'ss"cc.
func FormatRaceTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	cs := d.Milliseconds() / 10
	return fmt.Sprintf("%d'%02d\"%02d", cs/6000, cs/100%60, cs%100)
}
