// Package collision holds the axis-aligned rectangle used for every track
// and vehicle collider. Rects live in the logical ground plane, not in
// screen space.
package collision

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrInvalidRect = errors.New("invalid collision rect")

// Rect is an axis-aligned rectangle described by its centre and full extents.
type Rect struct {
	Center mgl64.Vec2
	Width  float64
	Height float64
}

// NewRect validates the extents and returns the rect.
func NewRect(center mgl64.Vec2, w, h float64) (Rect, error) {
	r := Rect{Center: center, Width: w, Height: h}
	if err := r.Validate(); err != nil {
		return Rect{}, err
	}
	return r, nil
}

// R builds a rect without validation. Meant for literal geometry tables
// that are validated later by track.New.
func R(x, y, w, h float64) Rect {
	return Rect{Center: mgl64.Vec2{x, y}, Width: w, Height: h}
}

func (r Rect) Validate() error {
	if !finite(r.Center[0]) || !finite(r.Center[1]) {
		return fmt.Errorf("%w: centre %v", ErrInvalidRect, r.Center)
	}
	if !(r.Width > 0) || !(r.Height > 0) || !finite(r.Width) || !finite(r.Height) {
		return fmt.Errorf("%w: size %gx%g", ErrInvalidRect, r.Width, r.Height)
	}
	return nil
}

// Overlaps is a closed test: rects that only touch at an edge overlap.
func (r Rect) Overlaps(o Rect) bool {
	return math.Abs(r.Center[0]-o.Center[0]) <= (r.Width+o.Width)/2 &&
		math.Abs(r.Center[1]-o.Center[1]) <= (r.Height+o.Height)/2
}

// Moved returns a copy of r centred on c.
func (r Rect) Moved(c mgl64.Vec2) Rect {
	r.Center = c
	return r
}

// Min and Max return the lower-left and upper-right corners.
func (r Rect) Min() mgl64.Vec2 {
	return mgl64.Vec2{r.Center[0] - r.Width/2, r.Center[1] - r.Height/2}
}

func (r Rect) Max() mgl64.Vec2 {
	return mgl64.Vec2{r.Center[0] + r.Width/2, r.Center[1] + r.Height/2}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g, %g) %gx%g", r.Center[0], r.Center[1], r.Width, r.Height)
}

func Overlap(a, b Rect) bool { return a.Overlaps(b) }

// AnyOverlap reports whether q overlaps at least one rect in rects.
// The scan stops at the first hit.
func AnyOverlap(rects []Rect, q Rect) bool {
	for i := range rects {
		if rects[i].Overlaps(q) {
			return true
		}
	}
	return false
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
