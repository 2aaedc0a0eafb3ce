package mode7

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// Mul scales every channel by k/255.
func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

// Lerp blends towards o, t in [0,1].
func (c RGB) Lerp(o RGB, t float64) RGB {
	mix := func(a, b uint8) uint8 {
		return clampByte(float64(a) + (float64(b)-float64(a))*t)
	}
	return RGB{R: mix(c.R, o.R), G: mix(c.G, o.G), B: mix(c.B, o.B)}
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Palette colours a procedurally painted course.
type Palette struct {
	Name string

	Ground    RGB
	Road      RGB
	RoadAlt   RGB
	Dirt      RGB
	Recovery  RGB
	DashPlate RGB
	Ramp      RGB
	FinishA   RGB
	FinishB   RGB

	SkyTop    RGB
	SkyBottom RGB
	Skyline   RGB
}

var (
	EventHorizon = Palette{
		Name:      "event-horizon",
		Ground:    RGB{R: 24, G: 14, B: 48},
		Road:      RGB{R: 60, G: 66, B: 79},
		RoadAlt:   RGB{R: 70, G: 76, B: 92},
		Dirt:      RGB{R: 120, G: 92, B: 60},
		Recovery:  RGB{R: 236, G: 92, B: 180},
		DashPlate: RGB{R: 255, G: 200, B: 90},
		Ramp:      RGB{R: 90, G: 200, B: 255},
		FinishA:   RGB{R: 255, G: 255, B: 255},
		FinishB:   RGB{R: 0, G: 0, B: 0},
		SkyTop:    RGB{R: 8, G: 4, B: 30},
		SkyBottom: RGB{R: 120, G: 60, B: 160},
		Skyline:   RGB{R: 30, G: 20, B: 60},
	}
	City = Palette{
		Name:      "city",
		Ground:    RGB{R: 140, G: 136, B: 91},
		Road:      RGB{R: 104, G: 108, B: 112},
		RoadAlt:   RGB{R: 112, G: 116, B: 121},
		Dirt:      RGB{R: 160, G: 150, B: 92},
		Recovery:  RGB{R: 255, G: 150, B: 70},
		DashPlate: RGB{R: 255, G: 210, B: 110},
		Ramp:      RGB{R: 190, G: 70, B: 45},
		FinishA:   RGB{R: 255, G: 255, B: 255},
		FinishB:   RGB{R: 0, G: 0, B: 0},
		SkyTop:    RGB{R: 70, G: 120, B: 200},
		SkyBottom: RGB{R: 214, G: 190, B: 153},
		Skyline:   RGB{R: 86, G: 89, B: 88},
	}
	Snow = Palette{
		Name:      "snow",
		Ground:    RGB{R: 228, G: 236, B: 244},
		Road:      RGB{R: 120, G: 120, B: 125},
		RoadAlt:   RGB{R: 130, G: 130, B: 136},
		Dirt:      RGB{R: 180, G: 190, B: 200},
		Recovery:  RGB{R: 90, G: 200, B: 255},
		DashPlate: RGB{R: 255, G: 200, B: 90},
		Ramp:      RGB{R: 190, G: 70, B: 45},
		FinishA:   RGB{R: 255, G: 255, B: 255},
		FinishB:   RGB{R: 20, G: 20, B: 30},
		SkyTop:    RGB{R: 150, G: 170, B: 200},
		SkyBottom: RGB{R: 235, G: 240, B: 245},
		Skyline:   RGB{R: 110, G: 120, B: 140},
	}
)
