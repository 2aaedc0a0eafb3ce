package game

import (
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"mode7racer/internal/config"
	"mode7racer/internal/race"
)

// Result summarises one autopilot race.
type Result struct {
	Course    string
	Laps      int
	LapTimes  []time.Duration
	Total     time.Duration
	Finished  bool
	Destroyed bool
	Cause     string
	Frames    int
}

// Simulate races e headless with the autopilot at a fixed 60 Hz step and
// stops at the finish, a wreck or after maxFrames.
func Simulate(cfg config.Config, e race.Entry, maxFrames int, boost bool, opts ...Option) (Result, error) {
	opts = append(opts, WithHeadless(), WithLeague(race.NewLeague(e.Course, e)))
	s, err := NewSession(cfg, opts...)
	if err != nil {
		return Result{}, err
	}
	ap := NewAutopilot(s.Course().Waypoints)
	ap.Boost = boost

	const step = time.Second / 60
	var now time.Duration
	frames := 0
	for ; frames < maxFrames && s.State() == StateRacing; frames++ {
		now += step
		s.StepNoRender(now, step.Seconds(), ap.Intents(s.Vehicle().Telemetry()))
	}

	t := s.Vehicle().Telemetry()
	res := Result{
		Course:    s.Course().Name,
		Laps:      t.CompletedLaps,
		LapTimes:  t.LapTimes,
		Total:     s.Race().TotalTime(),
		Finished:  t.Finished,
		Destroyed: t.Destroyed,
		Cause:     t.DestroyCause,
		Frames:    frames,
	}
	s.logger.Info("simulation done",
		zap.String("course", res.Course),
		zap.Int("laps", res.Laps),
		zap.Bool("finished", res.Finished),
		zap.Bool("destroyed", res.Destroyed),
		zap.Int("frames", res.Frames))
	return res, nil
}

// BenchResult holds per-frame timings of the full step including the render.
type BenchResult struct {
	Frames  int
	Workers int
	Mean    time.Duration
	Max     time.Duration
	// OverBudget counts frames slower than the budget passed to Bench.
	OverBudget int
}

// Bench renders frames of e while the autopilot drives and times each step.
func Bench(cfg config.Config, e race.Entry, frames int, budget time.Duration, opts ...Option) (BenchResult, error) {
	opts = append(opts, WithLeague(race.NewLeague(e.Course, e)))
	s, err := NewSession(cfg, opts...)
	if err != nil {
		return BenchResult{}, err
	}
	ap := NewAutopilot(s.Course().Waypoints)

	const step = time.Second / 60
	var now time.Duration
	timings := make([]time.Duration, 0, frames)
	for i := 0; i < frames; i++ {
		if s.State() != StateRacing {
			if err := s.Restart(now); err != nil {
				return BenchResult{}, err
			}
			ap.Reset()
		}
		now += step
		in := ap.Intents(s.Vehicle().Telemetry())
		begin := time.Now()
		s.Step(now, step.Seconds(), in)
		timings = append(timings, time.Since(begin))
	}

	res := BenchResult{Frames: len(timings), Workers: s.Renderer().Workers()}
	if len(timings) == 0 {
		return res, nil
	}
	res.Mean = lo.Sum(timings) / time.Duration(len(timings))
	res.Max = lo.Max(timings)
	res.OverBudget = lo.CountBy(timings, func(d time.Duration) bool { return d > budget })
	return res, nil
}
