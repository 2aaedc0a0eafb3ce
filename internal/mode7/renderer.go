package mode7

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// Renderer owns the textures, output frame and worker count of a scene and
// applies speed scaling before each Render.
type Renderer struct {
	base    Params
	ground  *Texture
	bg      *Texture
	frame   *Frame
	workers int

	zoom, pan float64

	logger *zap.Logger
}

type Option func(r *Renderer)

func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithWorkers sets the number of row bands; <= 0 means one per CPU.
func WithWorkers(n int) Option {
	return func(r *Renderer) { r.workers = n }
}

// WithSpeedScaling sets the extra focal length and background pan applied
// at top speed, as fractions of the base values.
func WithSpeedScaling(zoom, pan float64) Option {
	return func(r *Renderer) {
		r.zoom = zoom
		r.pan = pan
	}
}

func NewRenderer(p Params, ground, bg *Texture, opts ...Option) (*Renderer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if ground == nil || bg == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTexture, errNoTexture)
	}
	frame, err := NewFrame(p.Width, p.Height)
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		base:   p,
		ground: ground,
		bg:     bg,
		frame:  frame,
		zoom:   0.3,
		pan:    0.15,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers <= 0 {
		r.workers = runtime.NumCPU()
	}
	r.logger.Debug("renderer ready",
		zap.Int("width", p.Width),
		zap.Int("height", p.Height),
		zap.Int("workers", r.workers),
		zap.Int("groundW", ground.Width),
		zap.Int("groundH", ground.Height))
	return r, nil
}

// Draw renders the scene for the camera pose and returns the frame. The
// frame is reused by the next Draw.
func (r *Renderer) Draw(pose Pose, speed, maxSpeed float64) *Frame {
	p := SpeedScaled(r.base, speed, maxSpeed, r.zoom, r.pan)
	Render(r.frame, pose, r.ground, r.bg, p, r.workers)
	return r.frame
}

// SetScene swaps textures and base parameters, e.g. on race load.
func (r *Renderer) SetScene(p Params, ground, bg *Texture) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if ground == nil || bg == nil {
		return fmt.Errorf("%w: %w", ErrInvalidTexture, errNoTexture)
	}
	if p.Width != r.frame.Width || p.Height != r.frame.Height {
		f, err := NewFrame(p.Width, p.Height)
		if err != nil {
			return err
		}
		r.frame = f
	}
	r.base, r.ground, r.bg = p, ground, bg
	return nil
}

func (r *Renderer) Params() Params   { return r.base }
func (r *Renderer) Frame() *Frame    { return r.frame }
func (r *Renderer) Workers() int     { return r.workers }
func (r *Renderer) Ground() *Texture { return r.ground }
