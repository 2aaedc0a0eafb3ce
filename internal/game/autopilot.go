package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"mode7racer/internal/vehicle"
)

// Autopilot drives a vehicle around a closed list of waypoints. It is used
// by the headless simulate command and by tests.
type Autopilot struct {
	waypoints []mgl64.Vec2
	next      int

	// Radius at which a waypoint counts as reached.
	Radius float64
	// Deadband is the heading error, in radians, that is left alone.
	Deadband float64
	// Above SlowAngle the autopilot brakes down to SlowFactor of top speed.
	SlowAngle  float64
	SlowFactor float64
	// Boost fires the booster on straights whenever it is available.
	Boost bool
}

func NewAutopilot(waypoints []mgl64.Vec2) *Autopilot {
	return &Autopilot{
		waypoints:  append([]mgl64.Vec2(nil), waypoints...),
		Radius:     8,
		Deadband:   0.05,
		SlowAngle:  math.Pi / 3,
		SlowFactor: 0.4,
	}
}

// Next is the index of the waypoint being steered at.
func (a *Autopilot) Next() int { return a.next }

func (a *Autopilot) Reset() { a.next = 0 }

// Intents picks the controls for one frame from the vehicle telemetry.
func (a *Autopilot) Intents(t vehicle.Telemetry) vehicle.Intents {
	if len(a.waypoints) == 0 || t.Destroyed || t.Finished {
		return vehicle.Intents{}
	}
	if t.Position.Sub(a.waypoints[a.next]).Len() < a.Radius {
		a.next = (a.next + 1) % len(a.waypoints)
	}
	d := a.waypoints[a.next].Sub(t.Position)
	diff := headingError(math.Atan2(d[1], d[0]), t.Angle)

	in := vehicle.Intents{
		SteerLeft:  diff > a.Deadband,
		SteerRight: diff < -a.Deadband,
	}
	if math.Abs(diff) > a.SlowAngle && t.Speed > t.MaxSpeed*a.SlowFactor {
		in.Brake = true
	} else {
		in.Accelerate = true
	}
	in.Boost = a.Boost && t.CanBoost && math.Abs(diff) < a.Deadband
	return in
}

// headingError is want-have wrapped into (-pi, pi]. Positive means turn
// left.
func headingError(want, have float64) float64 {
	d := math.Mod(want-have, 2*math.Pi)
	switch {
	case d > math.Pi:
		d -= 2 * math.Pi
	case d <= -math.Pi:
		d += 2 * math.Pi
	}
	return d
}
