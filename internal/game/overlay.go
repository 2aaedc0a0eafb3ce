package game

import (
	"mode7racer/internal/mode7"
)

// Overlay layout in frame pixels.
const (
	barMargin  = 6
	energyBarW = 80
	energyBarH = 5
	lapPipSize = 4
	lapPipGap  = 2
	speedBarH  = 3
)

var (
	barBackground = mode7.RGB{R: 40, G: 40, B: 40}
	boostReady    = mode7.RGB{R: 80, G: 200, B: 255}
	boostActive   = mode7.RGB{R: 255, G: 255, B: 255}
	lapDone       = mode7.RGB{R: 250, G: 210, B: 40}
	speedColour   = mode7.RGB{R: 230, G: 230, B: 230}
	wreckTint     = mode7.RGB{R: 160, G: 20, B: 20}
	finishTint    = mode7.RGB{R: 20, G: 60, B: 160}
)

// EnergyColor is green, yellow or red depending on the fraction left.
func EnergyColor(frac float64) mode7.RGB {
	if frac > 0.6 {
		return mode7.RGB{R: 60, G: 220, B: 60}
	}
	if frac > 0.3 {
		return mode7.RGB{R: 220, G: 220, B: 60}
	}
	return mode7.RGB{R: 220, G: 60, B: 60}
}

// Paint draws the bars of h onto f: energy top left, lap pips top right,
// speed along the bottom. Text goes through the window title.
func (h HUD) Paint(f *mode7.Frame) {
	if f.Width < 2*barMargin+energyBarW || f.Height < 2*barMargin+energyBarH {
		return
	}
	t := &f.Texture

	filled := int(float64(energyBarW) * h.EnergyFraction)
	if h.EnergyFraction > 0 {
		filled = max(filled, 1)
	}
	for x := 0; x < energyBarW; x++ {
		c := barBackground
		if x < filled {
			c = EnergyColor(h.EnergyFraction)
		}
		fillRect(t, barMargin+x, barMargin, 1, energyBarH, c)
	}
	switch {
	case h.Boosted:
		fillRect(t, barMargin, barMargin+energyBarH+1, energyBarW, 1, boostActive)
	case h.CanBoost:
		fillRect(t, barMargin, barMargin+energyBarH+1, energyBarW, 1, boostReady)
	}

	for i := 0; i < h.RequiredLaps; i++ {
		x := f.Width - barMargin - (h.RequiredLaps-i)*(lapPipSize+lapPipGap)
		c := barBackground
		if i < len(h.LapTimes) {
			c = lapDone
		}
		fillRect(t, x, barMargin, lapPipSize, lapPipSize, c)
	}

	w := min(h.DisplaySpeed*(f.Width-2*barMargin)/(DisplaySpeedScale*3/2), f.Width-2*barMargin)
	if w > 0 {
		fillRect(t, barMargin, f.Height-barMargin-speedBarH, w, speedBarH, speedColour)
	}

	switch h.State {
	case StateDestroyed:
		tintRows(t, wreckTint)
	case StateFinished, StateLeagueComplete:
		tintRows(t, finishTint)
	}
}

func fillRect(t *mode7.Texture, x0, y0, w, h int, c mode7.RGB) {
	for y := max(y0, 0); y < min(y0+h, t.Height); y++ {
		for x := max(x0, 0); x < min(x0+w, t.Width); x++ {
			t.Set(x, y, c)
		}
	}
}

// tintRows blends every other row towards c, a cheap scanline veil.
func tintRows(t *mode7.Texture, c mode7.RGB) {
	for y := 0; y < t.Height; y += 2 {
		for x := 0; x < t.Width; x++ {
			t.Set(x, y, t.At(x, y).Lerp(c, 0.5))
		}
	}
}
