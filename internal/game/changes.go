package game

import (
	"go.uber.org/zap"
)

// snapshot is the part of the telemetry that events are derived from.
type snapshot struct {
	started   bool
	laps      int
	finished  bool
	boosted   bool
	jumping   bool
	destroyed bool
	speed     float64
}

func (s *Session) snapshot() snapshot {
	return snapshot{
		started:   s.race.Started(),
		laps:      s.race.CompletedLaps(),
		finished:  s.vehicle.Finished(),
		boosted:   s.vehicle.Boosted(),
		jumping:   s.vehicle.Jumping(),
		destroyed: s.vehicle.Destroyed(),
		speed:     s.vehicle.Speed(),
	}
}

func (s *Session) emitChanges() {
	prev, cur := s.prev, s.snapshot()
	s.prev = cur

	if !prev.started && cur.started {
		s.events.Emit(Event{Type: EventRaceStarted})
	}
	if cur.laps > prev.laps {
		laps := s.race.LapTimes()
		s.events.Emit(Event{Type: EventLapCompleted, Lap: cur.laps, Time: laps[len(laps)-1]})
	}
	if !prev.finished && cur.finished {
		s.logger.Info("race finished",
			zap.String("course", s.course.Name),
			zap.Duration("total", s.race.TotalTime()))
		s.events.Emit(Event{Type: EventRaceFinished, Lap: cur.laps, Time: s.race.TotalTime()})
	}
	if !prev.boosted && cur.boosted {
		s.events.Emit(Event{Type: EventBoost})
	}
	if prev.speed > 0 && cur.speed < 0 && !cur.destroyed {
		s.events.Emit(Event{Type: EventBounce})
	}
	if !prev.jumping && cur.jumping {
		s.events.Emit(Event{Type: EventJump})
	}
	if prev.jumping && !cur.jumping && !cur.destroyed {
		s.events.Emit(Event{Type: EventLanded})
	}
	if !prev.destroyed && cur.destroyed {
		s.events.Emit(Event{Type: EventDestroyed})
	}
}
