// Package camera derives the mode7 viewpoint from the machine it follows.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Target is what the camera follows, read only.
type Target interface {
	Position() mgl64.Vec2
	Angle() float64
}

// Camera trails its target at a fixed distance, looking the same way.
type Camera struct {
	Position mgl64.Vec2
	Angle    float64

	target   Target
	distance float64
}

func New(target Target, distance float64) *Camera {
	c := &Camera{target: target, distance: distance}
	c.Update()
	return c
}

// Update recomputes the pose from the target. Nothing carries over from the
// previous frame.
func (c *Camera) Update() {
	a := c.target.Angle()
	sin, cos := math.Sincos(a)
	c.Position = c.target.Position().Sub(mgl64.Vec2{cos, sin}.Mul(c.distance))
	c.Angle = a
}

// Follow switches to another target, e.g. after a race reload.
func (c *Camera) Follow(target Target) {
	c.target = target
	c.Update()
}

func (c *Camera) Distance() float64 { return c.distance }
