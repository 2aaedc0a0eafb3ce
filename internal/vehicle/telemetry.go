package vehicle

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Telemetry is a read-only snapshot polled by HUD and audio collaborators.
type Telemetry struct {
	Position       mgl64.Vec2
	Angle          float64
	Speed          float64
	MaxSpeed       float64
	Centri         float64
	Energy         float64
	EnergyFraction float64
	Boosted        bool
	Jumping        bool
	Finished       bool
	Destroyed      bool
	DestroyCause   string
	CanBoost       bool
	CompletedLaps  int
	RequiredLaps   int
	LapTimes       []time.Duration
	AnimFrame      int
}

func (v *Vehicle) Telemetry() Telemetry {
	return Telemetry{
		Position:       v.position,
		Angle:          v.angle,
		Speed:          v.speed,
		MaxSpeed:       v.machine.MaxSpeed,
		Centri:         v.centri,
		Energy:         v.energy,
		EnergyFraction: clamp(v.energy/v.machine.MaxEnergy, 0, 1),
		Boosted:        v.boosted,
		Jumping:        v.jumping,
		Finished:       v.finished,
		Destroyed:      v.destroyed,
		DestroyCause:   v.destroyCause,
		CanBoost:       v.CanBoost(),
		CompletedLaps:  v.race.CompletedLaps(),
		RequiredLaps:   v.race.RequiredLaps(),
		LapTimes:       v.race.LapTimes(),
		AnimFrame:      v.anim.CurrentFrame(),
	}
}
