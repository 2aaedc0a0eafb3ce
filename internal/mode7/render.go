// Package mode7 projects a tiled ground texture onto a perspective plane
// below a horizon and pans a tiled background above it.
package mode7

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Keeps the horizon row from dividing by zero.
const horizonEpsilon = 0.01

// Params are the projection constants of one frame. FocalLen and
// BackgroundRotation may change every frame, see SpeedScaled.
type Params struct {
	Width  int
	Height int
	// Horizon is the first ground row; rows above it show the background.
	Horizon  int
	FocalLen float64
	// Scale converts world units to ground texels.
	Scale float64
	// BackgroundRotation is the pan in background pixels per radian.
	BackgroundRotation float64

	Foggy      bool
	FogDensity float64
}

func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidParams, p.Width, p.Height)
	}
	if p.Horizon < 0 || p.Horizon > p.Height {
		return fmt.Errorf("%w: horizon %d outside 0..%d", ErrInvalidParams, p.Horizon, p.Height)
	}
	if !(p.Scale > 0) || math.IsInf(p.Scale, 0) {
		return fmt.Errorf("%w: scale %g", ErrInvalidParams, p.Scale)
	}
	if math.IsNaN(p.FocalLen) || math.IsInf(p.FocalLen, 0) {
		return fmt.Errorf("%w: focal length %g", ErrInvalidParams, p.FocalLen)
	}
	return nil
}

// Pose is the camera on the ground plane.
type Pose struct {
	Position mgl64.Vec2
	Angle    float64
}

// SpeedScaled widens the view and speeds up the background pan as speed
// approaches maxSpeed: zoom and pan are the extra fractions at top speed.
func SpeedScaled(base Params, speed, maxSpeed, zoom, pan float64) Params {
	f := 0.0
	if maxSpeed > 0 {
		f = math.Min(speed/maxSpeed, 1)
	}
	base.FocalLen *= 1 + f*zoom
	base.BackgroundRotation *= 1 + f*pan
	return base
}

// Render fills dst from the camera pose. It reads only its arguments, so the
// row bands handed to the workers never share an output pixel. All workers
// have finished when Render returns. workers <= 0 uses one per CPU.
func Render(dst *Frame, pose Pose, ground, bg *Texture, p Params, workers int) {
	h := min(p.Height, dst.Height)
	if h <= 0 || min(p.Width, dst.Width) <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > h {
		workers = h
	}

	sin, cos := math.Sincos(pose.Angle)
	pan := backgroundPan(pose.Angle, p.BackgroundRotation)
	v := view{
		dst: dst, ground: ground, bg: bg, p: p,
		sin: sin, cos: cos, pan: pan, pos: pose.Position,
		halfW: float64(p.Width / 2), halfH: float64(p.Height / 2),
		width: min(p.Width, dst.Width),
	}

	rowsPer := (h + workers - 1) / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		y0 := i * rowsPer
		if y0 >= h {
			break
		}
		y1 := min(y0+rowsPer, h)
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			for y := y0; y < y1; y++ {
				v.row(y)
			}
		}(y0, y1)
	}
	wg.Wait()
}

// view is the frozen per-frame snapshot shared by the workers.
type view struct {
	dst        *Frame
	ground, bg *Texture
	p          Params

	sin, cos     float64
	pan          int
	pos          mgl64.Vec2
	halfW, halfH float64
	width        int
}

func (v *view) row(y int) {
	out := v.dst.Pix[y*v.dst.Width*4:]
	if y < v.p.Horizon {
		by := y % v.bg.Height
		for x := 0; x < v.width; x++ {
			bx := posMod(x-v.pan, v.bg.Width)
			si := (by*v.bg.Width + bx) * 4
			copy(out[x*4:x*4+4], v.bg.Pix[si:si+4])
		}
		return
	}

	z := float64(y-v.p.Horizon) + horizonEpsilon
	sy := float64(y) + v.p.FocalLen
	att := clampF(7.5*math.Abs(z)/v.halfH, 0, 1)
	fog := 0.0
	if v.p.Foggy {
		fog = (1 - att) * v.p.FogDensity
	}
	gw, gh := float64(v.ground.Width), float64(v.ground.Height)

	for x := 0; x < v.width; x++ {
		sx := v.halfW - float64(x)
		rx := sx*v.cos + sy*v.sin
		ry := -sx*v.sin + sy*v.cos
		u := texel((rx/z+v.pos[1])*v.p.Scale, gw, v.ground.Width)
		t := texel((ry/z+v.pos[0])*v.p.Scale, gh, v.ground.Height)

		si := (t*v.ground.Width + u) * 4
		o := out[x*4 : x*4+4]
		o[0] = clampByte(float64(v.ground.Pix[si])*att + fog)
		o[1] = clampByte(float64(v.ground.Pix[si+1])*att + fog)
		o[2] = clampByte(float64(v.ground.Pix[si+2])*att + fog)
		o[3] = 255
	}
}

// texel wraps a texture coordinate into [0, n).
func texel(c, size float64, n int) int {
	m := math.Mod(c, size)
	if m < 0 {
		m += size
	}
	i := int(m)
	if i >= n {
		i -= n
	}
	return i
}

func posMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// backgroundPan is the horizontal sky offset for a heading. It follows the
// raw angle so the sky scrolls smoothly through any multiple of 2π.
func backgroundPan(angle, rotation float64) int {
	return int(angle * rotation)
}

// SkyWidth is the background width that makes one full turn pan exactly
// one texture width, so the sky repeats every 2π to within a pixel.
func SkyWidth(rotation float64) int {
	return max(1, int(math.Round(2*math.Pi*math.Abs(rotation))))
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var (
	ErrInvalidParams = errors.New("invalid render params")
	errNoTexture     = errors.New("ground and background textures are required")
)
