// Package vehicle implements the per-frame dynamics of the player machine:
// speed, steering, centrifugal drift, guard-rail bounces, jumps, boosts and
// the gimmick zones of the track.
package vehicle

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"mode7racer/internal/anim"
	"mode7racer/internal/collision"
	"mode7racer/internal/machine"
	"mode7racer/internal/race"
)

// Intents are the per-frame controls, already decoupled from any device.
type Intents struct {
	Accelerate bool
	Brake      bool
	Boost      bool
	SteerLeft  bool
	SteerRight bool
}

func (in Intents) Steering() bool { return in.SteerLeft || in.SteerRight }

// Pose is a position on the ground plane plus a heading in radians.
type Pose struct {
	Position mgl64.Vec2
	Angle    float64
}

type Vehicle struct {
	machine machine.Profile
	phys    Physics
	race    *race.Race
	start   Pose

	position mgl64.Vec2
	angle    float64
	speed    float64
	centri   float64
	energy   float64

	steeringLeft  bool
	steeringRight bool

	jumping      bool
	jumpStart    time.Duration
	jumpDuration float64

	boosted      bool
	boostStart   time.Duration
	hasBoostPow  bool
	finished     bool
	destroyed    bool
	destroyCause string

	anim     *anim.State
	clipsErr error
	logger   *zap.Logger
}

type Option func(v *Vehicle)

func WithLogger(l *zap.Logger) Option {
	return func(v *Vehicle) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithClips replaces the default machine clip table. An invalid table is
// logged by New and the default clips stay in place.
func WithClips(clips map[anim.Key]anim.Clip) Option {
	return func(v *Vehicle) {
		s, err := anim.New(clips, anim.Driving)
		if err != nil {
			v.clipsErr = err
			return
		}
		v.anim = s
	}
}

// New places a fresh machine at start on race r.
func New(p machine.Profile, r *race.Race, start Pose, phys Physics, opts ...Option) *Vehicle {
	a, err := anim.New(anim.MachineClips(), anim.Driving)
	if err != nil {
		// MachineClips is a literal table.
		panic(fmt.Sprintf("machine clips: %v", err))
	}
	v := &Vehicle{
		machine: p,
		phys:    phys,
		race:    r,
		start:   start,
		anim:    a,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.clipsErr != nil {
		v.logger.Warn("invalid clip table, keeping machine clips", zap.Error(v.clipsErr))
	}
	v.Reinitialize()
	return v
}

// Update advances the vehicle by one frame. now is the monotonic frame
// time, delta the seconds since the previous frame. A destroyed vehicle
// stays frozen until Reinitialize.
func (v *Vehicle) Update(now time.Duration, delta float64, in Intents) {
	if v.destroyed {
		return
	}
	v.move(now, delta, in)
	if v.destroyed {
		return
	}

	rect := v.CollisionRect()
	t := v.race.Track()

	v.race.UpdateLapCount(rect, now)

	if t.IsOnDashPlate(rect) && !v.jumping && !v.boosted {
		v.startBoost(now)
	}

	if t.IsOnRamp(rect) && !v.jumping && v.speed >= v.phys.MinJumpSpeed {
		v.jumping = true
		v.jumpDuration = v.machine.JumpDurationMultiplier * v.speed
		v.jumpStart = now
		v.anim.Switch(anim.Jumping)
	}
	if v.jumping {
		v.continueJump(now, rect)
	}

	if !v.jumping && t.IsOnRecoveryZone(rect) {
		v.energy = math.Min(v.energy+v.machine.RecoverSpeed*delta, v.machine.MaxEnergy)
	}

	if !v.jumping && t.IsOnDirt(rect) {
		v.speed *= v.phys.DirtDamping
		limit := v.machine.MaxSpeed * v.phys.DirtMaxSpeedFactor
		v.speed = clamp(v.speed, -limit, limit)
	}

	if v.boosted && seconds(now-v.boostStart) > v.machine.BoostDuration {
		v.boosted = false
	}

	v.anim.Advance(delta)
}

func (v *Vehicle) move(now time.Duration, delta float64, in Intents) {
	if in.Boost && v.CanBoost() {
		v.energy -= v.machine.BoostCost
		v.startBoost(now)
	}

	if in.SteerLeft && !v.finished {
		v.steeringLeft, v.steeringRight = true, false
		v.angle += v.machine.RotationSpeed * delta
	}
	if in.SteerRight && !v.finished {
		v.steeringLeft, v.steeringRight = false, true
		v.angle -= v.machine.RotationSpeed * delta
	}

	v.updateSpeed(delta, in)
	v.updateCentri(delta, in)

	sin, cos := math.Sincos(v.angle)
	step := v.speed * delta
	forward := v.position.Add(mgl64.Vec2{step * cos, step * sin})
	if v.canMoveTo(forward) {
		v.position = forward
	} else if v.race.Track().GuardRailsActive() {
		v.speed = -(v.speed*v.phys.ObstacleHitSpeedRetention + v.phys.MinBounceForce)
		v.centri = 0
		v.steeringLeft, v.steeringRight = false, false
		v.LoseEnergy(v.speed)
		v.logger.Debug("guard rail bounce",
			zap.Float64("speed", v.speed),
			zap.Float64("energy", v.energy))
		if v.energy < 0 {
			v.Destroy("out of energy")
			return
		}
	} else {
		v.Destroy("left the track")
		return
	}

	// Centrifugal drift pushes the machine to the outside of the turn.
	cfSin := -v.centri * step * sin * delta
	cfCos := -v.centri * step * cos * delta
	drift := v.position
	switch {
	case v.steeringLeft:
		drift = v.position.Add(mgl64.Vec2{-cfSin, cfCos})
	case v.steeringRight:
		drift = v.position.Add(mgl64.Vec2{cfSin, -cfCos})
	}
	if v.canMoveTo(drift) {
		v.position = drift
	} else if v.race.Track().GuardRailsActive() {
		// The loss is computed from the already cleared force, so drifting
		// into a rail never costs energy.
		v.centri = 0
		v.LoseEnergy(v.centri)
		if v.energy < 0 {
			v.Destroy("out of energy")
		}
	} else {
		v.Destroy("drifted off the track")
	}
}

func (v *Vehicle) updateSpeed(delta float64, in Intents) {
	maxSpeed := v.machine.MaxSpeed
	accel := v.machine.Acceleration
	if v.boosted {
		maxSpeed = v.machine.BoostedMaxSpeed
		accel = v.machine.BoostedAcceleration
	}

	switch {
	case in.Accelerate && !v.finished && v.speed <= maxSpeed:
		v.switchAnim(anim.Driving)
		v.speed += accel * delta
	case in.Brake && !v.finished && !v.jumping:
		v.switchAnim(anim.Idle)
		v.speed = approachZero(v.speed, v.machine.Brake*delta)
	default:
		v.switchAnim(anim.Idle)
		if v.jumping {
			return
		}
		loss := v.machine.SpeedLoss
		if v.boosted || v.speed > v.machine.MaxSpeed {
			loss = v.machine.BoostedSpeedLoss
		}
		v.speed = approachZero(v.speed, loss*delta)
	}
}

func (v *Vehicle) updateCentri(delta float64, in Intents) {
	if in.Steering() {
		v.centri = clamp(v.centri+v.machine.CentriIncrease*v.speed*delta, 0, v.machine.MaxCentri)
		return
	}
	v.centri -= v.machine.CentriDecrease * delta
	if v.centri <= 0 {
		v.centri = 0
		v.steeringLeft, v.steeringRight = false, false
	}
}

func (v *Vehicle) canMoveTo(p mgl64.Vec2) bool {
	return v.jumping || v.phys.CollisionOff || v.race.Track().IsOnTrack(v.rectAt(p))
}

func (v *Vehicle) continueJump(now time.Duration, rect collision.Rect) {
	if seconds(now-v.jumpStart) < v.jumpDuration {
		return
	}
	v.jumping = false
	v.anim.Switch(anim.Driving)
	if !v.phys.CollisionOff && !v.race.Track().IsOnTrack(rect) {
		v.Destroy("landed off the track")
	}
}

func (v *Vehicle) startBoost(now time.Duration) {
	v.boosted = true
	v.boostStart = now
}

// switchAnim keeps the jump clip while airborne.
func (v *Vehicle) switchAnim(k anim.Key) {
	if v.jumping {
		return
	}
	v.anim.Switch(k)
}

// LoseEnergy drains energy proportional to the impact force.
func (v *Vehicle) LoseEnergy(force float64) {
	v.energy -= math.Abs(force) * v.phys.HitCostSpeedFactor * v.machine.HitCost
}

// Destroy is terminal until Reinitialize.
func (v *Vehicle) Destroy(reason string) {
	if v.destroyed {
		return
	}
	v.destroyed = true
	v.destroyCause = reason
	v.logger.Info("vehicle destroyed",
		zap.String("reason", reason),
		zap.Float64("x", v.position[0]),
		zap.Float64("y", v.position[1]))
}

// Reinitialize puts the vehicle back on the start pose with a full tank and
// no boost power.
func (v *Vehicle) Reinitialize() {
	v.position = v.start.Position
	v.angle = v.start.Angle
	v.speed = 0
	v.centri = 0
	v.energy = v.machine.MaxEnergy
	v.steeringLeft, v.steeringRight = false, false
	v.jumping = false
	v.jumpDuration = 0
	v.boosted = false
	v.hasBoostPow = false
	v.finished = false
	v.destroyed = false
	v.destroyCause = ""
	v.anim.Switch(anim.Driving)
	v.anim.Restart()
}

// SetRace binds the vehicle to another race and its start pose. Call
// Reinitialize afterwards to move there.
func (v *Vehicle) SetRace(r *race.Race, start Pose) {
	v.race = r
	v.start = start
}

func (v *Vehicle) CanBoost() bool {
	return v.hasBoostPow && !v.boosted && v.energy >= v.machine.BoostCost
}

func (v *Vehicle) GrantBoostPower() { v.hasBoostPow = true }

func (v *Vehicle) MarkFinished() { v.finished = true }

func (v *Vehicle) CollisionRect() collision.Rect {
	return v.rectAt(v.position)
}

func (v *Vehicle) rectAt(p mgl64.Vec2) collision.Rect {
	return collision.Rect{Center: p, Width: v.phys.CollisionWidth, Height: v.phys.CollisionHeight}
}

// JumpHeight is the height of the jump arc at now, zero on the ground.
func (v *Vehicle) JumpHeight(now time.Duration) float64 {
	if !v.jumping {
		return 0
	}
	t := seconds(now - v.jumpStart)
	return math.Max(0, -(t*(t-v.jumpDuration))*v.phys.JumpHeight)
}

func (v *Vehicle) Position() mgl64.Vec2 { return v.position }
func (v *Vehicle) Angle() float64       { return v.angle }
func (v *Vehicle) Speed() float64       { return v.speed }
func (v *Vehicle) Centri() float64      { return v.centri }
func (v *Vehicle) Energy() float64      { return v.energy }
func (v *Vehicle) Boosted() bool        { return v.boosted }
func (v *Vehicle) Jumping() bool        { return v.jumping }
func (v *Vehicle) Finished() bool       { return v.finished }
func (v *Vehicle) Destroyed() bool      { return v.destroyed }
func (v *Vehicle) HasBoostPower() bool  { return v.hasBoostPow }
func (v *Vehicle) Machine() machine.Profile {
	return v.machine
}
func (v *Vehicle) Race() *race.Race { return v.race }

func approachZero(x, step float64) float64 {
	switch {
	case x > 0:
		return math.Max(0, x-step)
	case x < 0:
		return math.Min(0, x+step)
	}
	return 0
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func seconds(d time.Duration) float64 { return d.Seconds() }
