package game

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"mode7racer/internal/mode7"
	"mode7racer/internal/race"
	"mode7racer/internal/track"
	"mode7racer/internal/vehicle"
)

// Course is a track plus everything needed to race it: start pose, look
// and a driving line for the autopilot.
type Course struct {
	Name     string
	Geometry func() track.Geometry
	Start    vehicle.Pose
	Foggy    bool
	Palette  mode7.Palette
	// Waypoints trace one lap, starting after the finish line.
	Waypoints []mgl64.Vec2
}

type Catalog map[string]Course

func (c Catalog) Lookup(name string) (Course, error) {
	course, ok := c[name]
	if !ok {
		return Course{}, fmt.Errorf("unknown course %q (have %v)", name, c.Names())
	}
	return course, nil
}

func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for n := range c {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var track2023Start = vehicle.Pose{Position: mgl64.Vec2{25.55, -119.78}, Angle: -111.565}

var track2023Line = []mgl64.Vec2{
	{27.2, -34}, {68, -33.5}, {68, -125.6}, {57, -126},
	{57, -157.7}, {39, -158}, {27.2, -150},
}

// DefaultCatalog returns the built-in courses.
func DefaultCatalog() Catalog {
	return Catalog{
		"event-horizon": {
			Name:      "event-horizon",
			Geometry:  track.Track2023,
			Start:     track2023Start,
			Palette:   mode7.EventHorizon,
			Waypoints: track2023Line,
		},
		"city-fog": {
			Name:      "city-fog",
			Geometry:  track.Track2023,
			Start:     track2023Start,
			Foggy:     true,
			Palette:   mode7.City,
			Waypoints: track2023Line,
		},
		"city-snow": {
			Name:      "city-snow",
			Geometry:  track.Track2023,
			Start:     track2023Start,
			Palette:   mode7.Snow,
			Waypoints: track2023Line,
		},
		"speed-oval": {
			Name:     "speed-oval",
			Geometry: track.SpeedOval,
			Start:    vehicle.Pose{Position: mgl64.Vec2{40, -108}, Angle: math.Pi / 2},
			Palette:  mode7.City,
			Waypoints: []mgl64.Vec2{
				{40, -50}, {170, -50}, {170, -350}, {40, -350},
			},
		},
		"funktioniert1": {
			Name:     "funktioniert1",
			Geometry: track.Funktioniert1,
			Start:    vehicle.Pose{Position: mgl64.Vec2{77.5, -145}, Angle: math.Pi / 2},
			Foggy:    true,
			Palette:  mode7.EventHorizon,
			Waypoints: []mgl64.Vec2{
				{77.5, -120}, {70, -70.5}, {88.7, -70.5}, {88.7, -51.7},
				{67, -51.7}, {67, -62}, {15, -70.5}, {14.7, -162},
				{77.5, -162}, {77.5, -145},
			},
		},
	}
}

// DefaultLeague strings the built-in courses together.
func DefaultLeague(laps int) *race.League {
	return race.NewLeague("league 1",
		race.Entry{Course: "event-horizon", Laps: laps},
		race.Entry{Course: "city-fog", Laps: laps},
		race.Entry{Course: "speed-oval", Laps: laps},
		race.Entry{Course: "funktioniert1", Laps: laps},
		race.Entry{Course: "city-snow", Laps: laps},
	)
}
