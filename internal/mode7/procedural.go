package mode7

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"mode7racer/internal/collision"
	"mode7racer/internal/track"
)

// CheckerGround is a two colour checkerboard with square cells.
func CheckerGround(w, h, cell int, a, b RGB) (*Texture, error) {
	if cell <= 0 {
		return nil, fmt.Errorf("%w: cell size %d", ErrInvalidTexture, cell)
	}
	t, err := NewTexture(w, h, nil)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				t.Set(x, y, a)
			} else {
				t.Set(x, y, b)
			}
		}
	}
	return t, nil
}

// GradientSky paints a vertical gradient with a skyline along the bottom
// and a few stars. Both wrap seamlessly in x.
func GradientSky(w, h int, pal Palette, seed uint64) (*Texture, error) {
	t, err := NewTexture(w, h, nil)
	if err != nil {
		return nil, err
	}
	star := pal.SkyTop.Lerp(RGB{R: 255, G: 255, B: 255}, 0.8)
	for x := 0; x < w; x++ {
		phase := 2 * math.Pi * float64(x) / float64(w)
		ridge := 0.22 + 0.08*math.Sin(3*phase) + 0.04*math.Sin(7*phase+1) + 0.02*math.Sin(19*phase)
		top := h - int(ridge*float64(h))
		for y := 0; y < h; y++ {
			switch {
			case y >= top:
				t.Set(x, y, pal.Skyline)
			case y < h/2 && hash2D(seed, x, y)%211 == 0:
				t.Set(x, y, star)
			default:
				t.Set(x, y, pal.SkyTop.Lerp(pal.SkyBottom, float64(y)/float64(h)))
			}
		}
	}
	return t, nil
}

// groundMargin is the border of plain ground kept around a painted track.
const groundMargin = 20.0

// TrackGround paints the track's zones onto a ground texture using the
// renderer's texel mapping: columns follow world y, rows follow world x,
// both times scale. If the track would need a side longer than maxSide the
// scale is reduced; the scale actually used is returned and must be passed
// to the renderer.
func TrackGround(tr *track.Track, pal Palette, scale float64, maxSide int) (*Texture, float64, error) {
	if !(scale > 0) || maxSide <= 0 {
		return nil, 0, fmt.Errorf("%w: scale %g, max side %d", ErrInvalidTexture, scale, maxSide)
	}
	g := tr.Geometry()
	all := make([]collision.Rect, 0, len(g.Surface)+8)
	all = append(all, g.Surface...)
	all = append(all, g.Ramps...)
	all = append(all, g.Recovery...)
	all = append(all, g.DashPlates...)
	all = append(all, g.Dirt...)
	all = append(all, g.FinishLine)

	bbMin, bbMax := all[0].Min(), all[0].Max()
	for _, r := range all[1:] {
		mn, mx := r.Min(), r.Max()
		bbMin = mgl64.Vec2{math.Min(bbMin[0], mn[0]), math.Min(bbMin[1], mn[1])}
		bbMax = mgl64.Vec2{math.Max(bbMax[0], mx[0]), math.Max(bbMax[1], mx[1])}
	}
	extX := bbMax[0] - bbMin[0] + 2*groundMargin
	extY := bbMax[1] - bbMin[1] + 2*groundMargin
	if longest := math.Max(extX, extY) * scale; longest > float64(maxSide) {
		scale *= float64(maxSide) / longest
	}

	w := max(1, int(math.Ceil(extY*scale)))
	h := max(1, int(math.Ceil(extX*scale)))
	t, err := NewTexture(w, h, nil)
	if err != nil {
		return nil, 0, err
	}
	t.Fill(pal.Ground)

	solid := func(c RGB) func(x, y float64) RGB {
		return func(float64, float64) RGB { return c }
	}
	// Alternating bands along both axes so motion stays visible.
	road := func(x, y float64) RGB {
		if (int(math.Floor(x/2))+int(math.Floor(y/2)))%2 == 0 {
			return pal.Road
		}
		return pal.RoadAlt
	}
	finish := func(x, y float64) RGB {
		if (int(math.Floor(x*2))+int(math.Floor(y*2)))%2 == 0 {
			return pal.FinishA
		}
		return pal.FinishB
	}

	for _, r := range g.Surface {
		paintRect(t, r, scale, road)
	}
	for _, r := range g.Dirt {
		paintRect(t, r, scale, solid(pal.Dirt))
	}
	for _, r := range g.Recovery {
		paintRect(t, r, scale, solid(pal.Recovery))
	}
	for _, r := range g.DashPlates {
		paintRect(t, r, scale, solid(pal.DashPlate))
	}
	for _, r := range g.Ramps {
		paintRect(t, r, scale, solid(pal.Ramp))
	}
	paintRect(t, g.FinishLine, scale, finish)

	return t, scale, nil
}

func paintRect(t *Texture, r collision.Rect, scale float64, colour func(x, y float64) RGB) {
	mn, mx := r.Min(), r.Max()
	r0, r1 := int(math.Floor(mn[0]*scale)), int(math.Ceil(mx[0]*scale))
	c0, c1 := int(math.Floor(mn[1]*scale)), int(math.Ceil(mx[1]*scale))
	// Keep at least one texel for rects thinner than a texel.
	r1 = max(r1, r0+1)
	c1 = max(c1, c0+1)
	for row := r0; row < r1; row++ {
		wx := (float64(row) + 0.5) / scale
		for col := c0; col < c1; col++ {
			wy := (float64(col) + 0.5) / scale
			t.Set(posMod(col, t.Width), posMod(row, t.Height), colour(wx, wy))
		}
	}
}
