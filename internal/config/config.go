// Package config holds every tunable of a racing session in one explicit
// struct. There are no package-level tuning globals.
package config

import (
	"errors"
	"fmt"

	"mode7racer/internal/machine"
	"mode7racer/internal/mode7"
	"mode7racer/internal/vehicle"
)

var ErrInvalidConfig = errors.New("invalid config")

// Internal render resolution: 400x225 scaled by 1.6.
const (
	RenderWidth  = 640
	RenderHeight = 360
	// A horizon a quarter down the frame gives the classic mode7 look.
	RenderHorizon = RenderHeight / 2 / 2
)

// Projection defaults.
const (
	FocalLen           = 400.0
	GroundScale        = 20.0
	FogDensity         = 100.0
	BackgroundRotation = 120.0
	CameraDistance     = 4.0
	SpeedZoom          = 0.3
	SpeedPan           = 0.15
	GroundMaxSide      = 2048
)

// Window defaults.
const (
	WindowWidth  = 1280
	WindowHeight = 720
)

const DefaultLaps = 3

type Window struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
	VSync  bool   `mapstructure:"vsync"`
}

type Render struct {
	Width              int     `mapstructure:"width"`
	Height             int     `mapstructure:"height"`
	Horizon            int     `mapstructure:"horizon"`
	FocalLen           float64 `mapstructure:"focal_len"`
	Scale              float64 `mapstructure:"scale"`
	FogDensity         float64 `mapstructure:"fog_density"`
	BackgroundRotation float64 `mapstructure:"background_rotation"`
	CameraDistance     float64 `mapstructure:"camera_distance"`
	// Workers is the number of row bands rendered in parallel, 0 = NumCPU.
	Workers   int     `mapstructure:"workers"`
	SpeedZoom float64 `mapstructure:"speed_zoom"`
	SpeedPan  float64 `mapstructure:"speed_pan"`
	// GroundMaxSide caps procedurally painted ground textures.
	GroundMaxSide int `mapstructure:"ground_max_side"`
}

type Audio struct {
	Enabled    bool    `mapstructure:"enabled"`
	Volume     float64 `mapstructure:"volume"`
	SampleRate int     `mapstructure:"sample_rate"`
}

type Race struct {
	// Course starts a single race; empty drives the league.
	Course  string `mapstructure:"course"`
	Machine string `mapstructure:"machine"`
	Laps    int    `mapstructure:"laps"`
}

type Debug struct {
	// RestartKey enables the R key restart.
	RestartKey bool `mapstructure:"restart_key"`
	ShowFPS    bool `mapstructure:"show_fps"`
}

type Config struct {
	Window  Window          `mapstructure:"window"`
	Render  Render          `mapstructure:"render"`
	Physics vehicle.Physics `mapstructure:"physics"`
	Audio   Audio           `mapstructure:"audio"`
	Race    Race            `mapstructure:"race"`
	Debug   Debug           `mapstructure:"debug"`
}

func Default() Config {
	return Config{
		Window: Window{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  "mode7racer",
			VSync:  true,
		},
		Render: Render{
			Width:              RenderWidth,
			Height:             RenderHeight,
			Horizon:            RenderHorizon,
			FocalLen:           FocalLen,
			Scale:              GroundScale,
			FogDensity:         FogDensity,
			BackgroundRotation: BackgroundRotation,
			CameraDistance:     CameraDistance,
			SpeedZoom:          SpeedZoom,
			SpeedPan:           SpeedPan,
			GroundMaxSide:      GroundMaxSide,
		},
		Physics: vehicle.DefaultPhysics(),
		Audio: Audio{
			Enabled:    true,
			Volume:     0.4,
			SampleRate: 44100,
		},
		Race: Race{
			Machine: machine.PurpleComet().Name,
			Laps:    DefaultLaps,
		},
	}
}

// Params returns the base projection for a scene; foggy comes from the
// course.
func (r Render) Params(foggy bool) mode7.Params {
	return mode7.Params{
		Width:              r.Width,
		Height:             r.Height,
		Horizon:            r.Horizon,
		FocalLen:           r.FocalLen,
		Scale:              r.Scale,
		BackgroundRotation: r.BackgroundRotation,
		Foggy:              foggy,
		FogDensity:         r.FogDensity,
	}
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if err := c.Render.Params(false).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Render.CameraDistance < 0 {
		return fmt.Errorf("%w: camera distance %g", ErrInvalidConfig, c.Render.CameraDistance)
	}
	if c.Render.GroundMaxSide <= 0 {
		return fmt.Errorf("%w: ground max side %d", ErrInvalidConfig, c.Render.GroundMaxSide)
	}
	if c.Physics.CollisionWidth <= 0 || c.Physics.CollisionHeight <= 0 {
		return fmt.Errorf("%w: collider %gx%g", ErrInvalidConfig,
			c.Physics.CollisionWidth, c.Physics.CollisionHeight)
	}
	if c.Physics.DirtDamping < 0 || c.Physics.DirtDamping > 1 {
		return fmt.Errorf("%w: dirt damping %g", ErrInvalidConfig, c.Physics.DirtDamping)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: volume %g", ErrInvalidConfig, c.Audio.Volume)
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.Audio.SampleRate)
	}
	if c.Race.Laps < 1 {
		return fmt.Errorf("%w: laps %d", ErrInvalidConfig, c.Race.Laps)
	}
	if _, err := machine.ByName(c.Race.Machine); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
