package track

import c "mode7racer/internal/collision"

// Dash plate prefab size.
const (
	DashPlateWidth  = 1.5
	DashPlateHeight = 1.5
)

// Track2023 is the first city course: seven surface rects around a
// rectangular loop, the top and middle straights doubling as checkpoints.
func Track2023() Geometry {
	rect1 := c.R(27.165, -99.615, 14.33, 144.77) // leftmost
	rect2 := c.R(39.17, -162.635, 9.68, 18.73)
	rect3 := c.R(47.815, -157.725, 26.97, 8.91) // bottom
	rect4 := c.R(56.925, -142.14, 8.69, 40.08)
	rect5 := c.R(62.385, -125.59, 19.55, 8.98) // middle
	rect6 := c.R(67.95, -86.495, 8.42, 118.53) // rightmost
	rect7 := c.R(46.08, -33.24, 52.16, 11.86)  // top

	return Geometry{
		Name:        "track 2023",
		Surface:     []c.Rect{rect1, rect2, rect3, rect4, rect5, rect6, rect7},
		Checkpoints: []c.Rect{rect7, rect5},
		Ramps:       []c.Rect{c.R(67.95, -145.82, 8.42, 0.12)},
		FinishLine:  c.R(27.165, -116.6325, 14.33, 1.145),
		DashPlates:  []c.Rect{c.R(32.4, -150.965, DashPlateWidth, DashPlateHeight)},
		Recovery:    []c.Rect{c.R(67.99, -75.64, 2.28, 61.54)},
		GuardRails:  true,
	}
}

// SpeedOval is a wide oval with a jump section and a recovery detour on the
// right straight.
func SpeedOval() Geometry {
	const width = 25

	left := c.R(40, -200, width, 320)
	bottom := c.R(100, -355, 145, 30)
	right := c.R(170, -200, width, 320)
	jump := c.R(170, -150, width, 40)
	detour := c.R(205, -150, 45, 40)
	top := c.R(105, -45, 155, 30)

	dash := func(x, y float64) c.Rect { return c.R(x, y, DashPlateWidth, DashPlateHeight) }

	return Geometry{
		Name:        "speed oval",
		Surface:     []c.Rect{left, bottom, right, jump, detour, top},
		Checkpoints: []c.Rect{top, bottom},
		Ramps:       []c.Rect{c.R(170, -165, width, 0.5)},
		FinishLine:  c.R(40, -100, width, 2),
		DashPlates: []c.Rect{
			dash(80, -355), dash(120, -355), // bottom curve
			dash(85, -45), dash(125, -45), // top curve
			dash(170, -180), // before the jump
			dash(40, -250),
		},
		Recovery:   []c.Rect{c.R(215, -150, 20, 35)},
		GuardRails: true,
	}
}

// Funktioniert1 was drawn with the map editor and is the only course with
// a dirt patch.
func Funktioniert1() Geometry {
	return Geometry{
		Name: "funktioniert1",
		Surface: []c.Rect{
			c.R(71.08, -132.50, 0.50, 0.67),
			c.R(70.25, -110.00, 28.17, 49.67),
			c.R(77.92, -150.00, 13.17, 33.33),
			c.R(47.08, -161.92, 73.50, 10.17),
			c.R(14.75, -116.67, 8.50, 100.00),
			c.R(51.67, -70.75, 82.67, 8.17),
			c.R(88.75, -61.25, 8.17, 27.17),
			c.R(74.75, -51.75, 35.83, 7.83),
			c.R(67.33, -53.75, 20.67, 10.50),
		},
		Checkpoints: []c.Rect{
			c.R(14.58, -114.25, 8.50, 34.83),
			c.R(88.58, -61.00, 7.17, 11.00),
		},
		Ramps:      []c.Rect{c.R(67.42, -58.50, 21.83, 2.00)},
		FinishLine: c.R(77.50, -141.75, 13.67, 1.83),
		DashPlates: []c.Rect{
			c.R(52.67, -165.17, 2.67, 2.33),
			c.R(70.08, -56.50, 14.83, 1.67),
		},
		Recovery:   []c.Rect{c.R(70.33, -109.92, 28.33, 49.83)},
		Dirt:       []c.Rect{c.R(48.28, -159.48, 11.33, 4.66)},
		GuardRails: true,
	}
}
