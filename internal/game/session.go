// Package game runs a racing session: it loads league races, steps the
// vehicle, race and camera once per frame and hands the camera pose to the
// mode7 renderer. It knows nothing about windows or devices.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"mode7racer/internal/camera"
	"mode7racer/internal/config"
	"mode7racer/internal/machine"
	"mode7racer/internal/mode7"
	"mode7racer/internal/race"
	"mode7racer/internal/track"
	"mode7racer/internal/vehicle"
)

const skySeed = 0x5EED

type scene struct {
	params mode7.Params
	ground *mode7.Texture
	sky    *mode7.Texture
}

type Session struct {
	cfg     config.Config
	catalog Catalog
	league  *race.League
	machine machine.Profile

	course  Course
	race    *race.Race
	vehicle *vehicle.Vehicle
	camera  *camera.Camera

	headless bool
	renderer *mode7.Renderer
	scenes   map[string]scene

	leagueDone bool
	prev       snapshot

	events *EventBus
	logger *zap.Logger
}

type Option func(s *Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalog replaces the built-in courses.
func WithCatalog(c Catalog) Option {
	return func(s *Session) { s.catalog = c }
}

// WithLeague drives l instead of the league picked from the config.
func WithLeague(l *race.League) Option {
	return func(s *Session) { s.league = l }
}

// WithHeadless skips texture painting and rendering. Step then behaves
// like StepNoRender and returns nil.
func WithHeadless() Option {
	return func(s *Session) { s.headless = true }
}

// NewSession validates cfg and loads the first race. With cfg.Race.Course
// set the league holds that single course.
func NewSession(cfg config.Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p, err := machine.ByName(cfg.Race.Machine)
	if err != nil {
		return nil, err
	}
	s := &Session{
		cfg:     cfg,
		catalog: DefaultCatalog(),
		machine: p,
		scenes:  make(map[string]scene),
		events:  NewEventBus(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.league == nil {
		if cfg.Race.Course != "" {
			s.league = race.NewLeague("single", race.Entry{Course: cfg.Race.Course, Laps: cfg.Race.Laps})
		} else {
			s.league = DefaultLeague(cfg.Race.Laps)
		}
	}
	entry, ok := s.league.Current()
	if !ok {
		return nil, fmt.Errorf("league %q has no races", s.league.Name)
	}
	if err := s.LoadRace(entry, 0); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadRace builds a fresh race for e and puts the vehicle on its start.
func (s *Session) LoadRace(e race.Entry, now time.Duration) error {
	course, err := s.catalog.Lookup(e.Course)
	if err != nil {
		return err
	}
	tr, err := track.New(course.Geometry())
	if err != nil {
		return fmt.Errorf("course %q: %w", course.Name, err)
	}
	r, err := race.New(tr, e.Laps, race.WithLogger(s.logger.With(zap.String("course", course.Name))))
	if err != nil {
		return fmt.Errorf("course %q: %w", course.Name, err)
	}
	r.Reset()

	if s.vehicle == nil {
		s.vehicle = vehicle.New(s.machine, r, course.Start, s.cfg.Physics, vehicle.WithLogger(s.logger))
		s.camera = camera.New(s.vehicle, s.cfg.Render.CameraDistance)
	} else {
		s.vehicle.SetRace(r, course.Start)
		s.vehicle.Reinitialize()
		s.camera.Update()
	}
	s.course = course
	s.race = r
	s.leagueDone = false

	if !s.headless {
		if err := s.loadScene(course, tr); err != nil {
			return err
		}
	}
	s.prev = s.snapshot()

	s.logger.Info("race loaded",
		zap.String("course", course.Name),
		zap.Int("laps", e.Laps),
		zap.Int("leagueIndex", s.league.Index()),
		zap.Duration("at", now))
	s.events.Emit(Event{Type: EventRaceLoaded})
	return nil
}

func (s *Session) loadScene(course Course, tr *track.Track) error {
	sc, ok := s.scenes[course.Name]
	if !ok {
		rc := s.cfg.Render
		ground, scale, err := mode7.TrackGround(tr, course.Palette, rc.Scale, rc.GroundMaxSide)
		if err != nil {
			return err
		}
		sky, err := mode7.GradientSky(mode7.SkyWidth(rc.BackgroundRotation), max(rc.Horizon, 1), course.Palette, skySeed)
		if err != nil {
			return err
		}
		sc = scene{params: rc.Params(course.Foggy), ground: ground, sky: sky}
		sc.params.Scale = scale
		s.scenes[course.Name] = sc
	}

	if s.renderer == nil {
		r, err := mode7.NewRenderer(sc.params, sc.ground, sc.sky,
			mode7.WithWorkers(s.cfg.Render.Workers),
			mode7.WithSpeedScaling(s.cfg.Render.SpeedZoom, s.cfg.Render.SpeedPan),
			mode7.WithLogger(s.logger))
		if err != nil {
			return err
		}
		s.renderer = r
		return nil
	}
	return s.renderer.SetScene(sc.params, sc.ground, sc.sky)
}

// Step runs one frame and renders it.
func (s *Session) Step(now time.Duration, delta float64, in vehicle.Intents) *mode7.Frame {
	s.StepNoRender(now, delta, in)
	if s.renderer == nil {
		return nil
	}
	return s.renderer.Draw(s.CameraPose(), s.vehicle.Speed(), s.machine.MaxSpeed)
}

// StepNoRender runs the frame logic: vehicle and race, post-race
// bookkeeping, camera, then events.
func (s *Session) StepNoRender(now time.Duration, delta float64, in vehicle.Intents) {
	if s.leagueDone {
		return
	}
	s.vehicle.Update(now, delta, in)

	if s.race.PlayerFinishedRace() && !s.vehicle.Finished() {
		s.vehicle.MarkFinished()
	}
	if s.race.PlayerCompletedFirstLap() && !s.vehicle.HasBoostPower() {
		s.vehicle.GrantBoostPower()
	}
	s.camera.Update()
	s.emitChanges()
}

// Confirm acts on the confirm key: next race after a finish, retry after a
// wreck, start over after the league. It does nothing while racing.
func (s *Session) Confirm(now time.Duration) error {
	switch s.State() {
	case StateFinished:
		next, ok := s.league.Next()
		if !ok {
			s.leagueDone = true
			s.logger.Info("league complete", zap.String("league", s.league.Name))
			s.events.Emit(Event{Type: EventLeagueComplete})
			return nil
		}
		return s.LoadRace(next, now)
	case StateDestroyed:
		return s.Restart(now)
	case StateLeagueComplete:
		s.league.Reset()
		return s.Restart(now)
	}
	return nil
}

// Restart reloads the current league race.
func (s *Session) Restart(now time.Duration) error {
	e, ok := s.league.Current()
	if !ok {
		return fmt.Errorf("league %q is completed", s.league.Name)
	}
	return s.LoadRace(e, now)
}

func (s *Session) State() State {
	switch {
	case s.leagueDone:
		return StateLeagueComplete
	case s.vehicle.Destroyed():
		return StateDestroyed
	case s.vehicle.Finished():
		return StateFinished
	}
	return StateRacing
}

func (s *Session) CameraPose() mode7.Pose {
	return mode7.Pose{Position: s.camera.Position, Angle: s.camera.Angle}
}

func (s *Session) Vehicle() *vehicle.Vehicle { return s.vehicle }
func (s *Session) Race() *race.Race          { return s.race }
func (s *Session) Camera() *camera.Camera    { return s.camera }
func (s *Session) Course() Course            { return s.course }
func (s *Session) League() *race.League      { return s.league }
func (s *Session) Events() *EventBus         { return s.events }
func (s *Session) Renderer() *mode7.Renderer { return s.renderer }
func (s *Session) Config() config.Config     { return s.cfg }
func (s *Session) Machine() machine.Profile  { return s.machine }
