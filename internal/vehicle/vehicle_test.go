package vehicle

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"mode7racer/internal/anim"
	"mode7racer/internal/collision"
	"mode7racer/internal/machine"
	"mode7racer/internal/race"
	"mode7racer/internal/track"
)

const frame = 1.0 / 60

func newVehicle(t *testing.T, g track.Geometry, phys Physics) *Vehicle {
	t.Helper()
	if g.FinishLine.Width == 0 {
		g.FinishLine = collision.R(0, 400, 1, 1)
	}
	tr, err := track.New(g)
	require.NoError(t, err)
	r, err := race.New(tr, 3)
	require.NoError(t, err)
	return New(machine.PurpleComet(), r, Pose{}, phys)
}

func openField() track.Geometry {
	return track.Geometry{Surface: []collision.Rect{collision.R(0, 0, 1000, 1000)}}
}

// clock feeds fixed-step frame times.
type clock struct{ now time.Duration }

func (c *clock) tick(delta float64) time.Duration {
	c.now += time.Duration(delta * float64(time.Second))
	return c.now
}

func TestCoastingConvergesToZero(t *testing.T) {
	for _, delta := range []float64{frame, 0.05, 0.5, 3} {
		v := newVehicle(t, openField(), DefaultPhysics())
		var c clock
		for i := 0; i < 120; i++ {
			v.Update(c.tick(frame), frame, Intents{Accelerate: true})
		}
		require.Positive(t, v.Speed())

		for i := 0; i < 500; i++ {
			v.Update(c.tick(delta), delta, Intents{})
			require.GreaterOrEqual(t, v.Speed(), 0.0, "delta %v overshot", delta)
		}
		assert.Equal(t, 0.0, v.Speed(), "delta %v", delta)
	}
}

func TestBrakeDoesNotCrossZero(t *testing.T) {
	v := newVehicle(t, openField(), DefaultPhysics())
	var c clock
	v.Update(c.tick(0.2), 0.2, Intents{Accelerate: true})
	v.Update(c.tick(10), 10, Intents{Brake: true})
	assert.Equal(t, 0.0, v.Speed())
}

func TestAccelerationIsFrameRateIndependent(t *testing.T) {
	slow := newVehicle(t, openField(), DefaultPhysics())
	fast := newVehicle(t, openField(), DefaultPhysics())
	var c1, c2 clock
	for i := 0; i < 30; i++ {
		slow.Update(c1.tick(1.0/30), 1.0/30, Intents{Accelerate: true})
	}
	for i := 0; i < 120; i++ {
		fast.Update(c2.tick(1.0/120), 1.0/120, Intents{Accelerate: true})
	}
	assert.InDelta(t, slow.Speed(), fast.Speed(), 1e-9)
}

func TestCentriStaysInRange(t *testing.T) {
	v := newVehicle(t, track.Geometry{
		Surface:    []collision.Rect{collision.R(0, 0, 60, 60)},
		GuardRails: true,
	}, DefaultPhysics())
	maxCentri := v.Machine().MaxCentri

	pattern := []Intents{
		{Accelerate: true, SteerLeft: true},
		{Accelerate: true, SteerRight: true},
		{SteerLeft: true},
		{Brake: true, SteerRight: true},
		{},
		{Accelerate: true},
	}
	var c clock
	for i := 0; i < 3000; i++ {
		in := pattern[(i/40)%len(pattern)]
		v.Update(c.tick(frame), frame, in)
		require.GreaterOrEqual(t, v.Centri(), 0.0)
		require.LessOrEqual(t, v.Centri(), maxCentri)
		if v.Destroyed() {
			break
		}
	}
}

func TestCentriDecayClearsSteering(t *testing.T) {
	v := newVehicle(t, openField(), DefaultPhysics())
	var c clock
	for i := 0; i < 60; i++ {
		v.Update(c.tick(frame), frame, Intents{Accelerate: true, SteerLeft: true})
	}
	require.Positive(t, v.Centri())
	require.True(t, v.steeringLeft)

	v.Update(c.tick(1), 1, Intents{})
	assert.Equal(t, 0.0, v.Centri())
	assert.False(t, v.steeringLeft)
	assert.False(t, v.steeringRight)
}

// corridor is a track along the x axis, |y| <= 2.5 counts as on track.
func corridor(guardRails bool) track.Geometry {
	return track.Geometry{
		Surface:    []collision.Rect{collision.R(0, 0, 1000, 4)},
		GuardRails: guardRails,
	}
}

// wall is a short stub ending at x = 5.5 for a 1x1 collider.
func wall(guardRails bool) track.Geometry {
	return track.Geometry{
		Surface:    []collision.Rect{collision.R(0, 0, 10, 10)},
		GuardRails: guardRails,
	}
}

func TestGuardRailBounce(t *testing.T) {
	v := newVehicle(t, wall(true), DefaultPhysics())
	p := v.Machine()
	phys := DefaultPhysics()
	var c clock

	for i := 0; i < 600; i++ {
		before := v.Position()
		s0 := v.Speed()
		energy := v.Energy()
		v.Update(c.tick(frame), frame, Intents{Accelerate: true})
		if v.Speed() >= 0 {
			continue
		}
		s1 := s0 + p.Acceleration*frame
		want := -(s1*phys.ObstacleHitSpeedRetention + phys.MinBounceForce)
		assert.InDelta(t, want, v.Speed(), 1e-9)
		assert.Equal(t, before, v.Position(), "bounce does not move the vehicle")
		assert.InDelta(t, energy-math.Abs(want)*phys.HitCostSpeedFactor*p.HitCost, v.Energy(), 1e-9)
		assert.Equal(t, 0.0, v.Centri())
		assert.False(t, v.Destroyed())
		return
	}
	t.Fatal("vehicle never reached the wall")
}

// Reversing into a rail slower than twice the minimum bounce force keeps the
// vehicle going backwards: the bounce formula only adds MinBounceForce.
func TestSlowReverseIntoRailKeepsSign(t *testing.T) {
	v := newVehicle(t, wall(true), DefaultPhysics())
	p := v.Machine()
	phys := DefaultPhysics()
	const delta = 1e-4
	v.position = mgl64.Vec2{-5.5, 0} // touching the left edge
	v.speed = -0.006

	v.Update(time.Millisecond, delta, Intents{})

	s1 := -0.006 + p.SpeedLoss*delta
	require.Negative(t, s1)
	want := -(s1*phys.ObstacleHitSpeedRetention + phys.MinBounceForce)
	assert.InDelta(t, want, v.Speed(), 1e-12)
	assert.Negative(t, v.Speed())
	assert.Less(t, math.Abs(v.Speed()), phys.MinBounceForce)
	assert.Equal(t, mgl64.Vec2{-5.5, 0}, v.Position())
	assert.False(t, v.Destroyed())
}

func TestBounceOutOfEnergyDestroys(t *testing.T) {
	v := newVehicle(t, wall(true), DefaultPhysics())
	v.energy = 0.0001
	var c clock
	for i := 0; i < 600 && !v.Destroyed(); i++ {
		v.Update(c.tick(frame), frame, Intents{Accelerate: true})
	}
	assert.True(t, v.Destroyed())
	assert.Negative(t, v.Energy())
}

func TestLeavingTrackWithoutGuardRailsDestroys(t *testing.T) {
	v := newVehicle(t, wall(false), DefaultPhysics())
	var c clock

	for i := 0; i < 600; i++ {
		s0 := v.Speed()
		v.Update(c.tick(frame), frame, Intents{Accelerate: true})
		if v.Destroyed() {
			assert.InDelta(t, s0+v.Machine().Acceleration*frame, v.Speed(), 1e-9, "no bounce")
			assert.LessOrEqual(t, v.Position()[0], 5.5)

			// frozen until reinitialised
			pos := v.Position()
			v.Update(c.tick(frame), frame, Intents{Accelerate: true, SteerLeft: true})
			assert.Equal(t, pos, v.Position())

			v.Reinitialize()
			assert.False(t, v.Destroyed())
			assert.Equal(t, mgl64.Vec2{}, v.Position())
			assert.Equal(t, 0.0, v.Speed())
			return
		}
	}
	t.Fatal("vehicle never left the track")
}

func TestCollisionOffDrivesAnywhere(t *testing.T) {
	phys := DefaultPhysics()
	phys.CollisionOff = true
	v := newVehicle(t, wall(false), phys)
	var c clock
	for i := 0; i < 600; i++ {
		v.Update(c.tick(frame), frame, Intents{Accelerate: true})
	}
	assert.False(t, v.Destroyed())
	assert.Greater(t, v.Position()[0], 5.5)
}

// driftIntoRail brings the vehicle to speed along the corridor and then
// steers hard for one long frame so that only the drift leaves the track.
func driftIntoRail(t *testing.T, guardRails bool) (*Vehicle, mgl64.Vec2) {
	t.Helper()
	v := newVehicle(t, corridor(guardRails), DefaultPhysics())
	var c clock
	for i := 0; i < 240; i++ {
		v.Update(c.tick(frame), frame, Intents{Accelerate: true})
	}
	require.Equal(t, 0.0, v.Position()[1])
	before := v.Position()
	v.Update(c.tick(0.1), 0.1, Intents{SteerLeft: true})
	return v, before
}

func TestDriftIntoRailCostsNoEnergy(t *testing.T) {
	v, before := driftIntoRail(t, true)

	require.False(t, v.Destroyed())
	assert.Equal(t, 0.0, v.Centri())
	assert.Equal(t, v.Machine().MaxEnergy, v.Energy(), "loss is taken from the cleared force")

	sin, cos := math.Sincos(v.Angle())
	step := v.Speed() * 0.1
	assert.InDelta(t, before[0]+step*cos, v.Position()[0], 1e-9)
	assert.InDelta(t, before[1]+step*sin, v.Position()[1], 1e-9)
}

func TestDriftOffTrackWithoutGuardRailsDestroys(t *testing.T) {
	v, _ := driftIntoRail(t, false)
	assert.True(t, v.Destroyed())
}

func TestDashPlateBoost(t *testing.T) {
	g := openField()
	g.DashPlates = []collision.Rect{collision.R(0, 0, 1.5, 1.5)}
	v := newVehicle(t, g, DefaultPhysics())
	require.False(t, v.HasBoostPower())

	var c clock
	v.Update(c.tick(frame), frame, Intents{})
	assert.True(t, v.Boosted())
	assert.Equal(t, v.Machine().MaxEnergy, v.Energy(), "dash plates are free")

	v.Update(c.now+time.Second, frame, Intents{})
	assert.True(t, v.Boosted())
	v.Update(c.now+2100*time.Millisecond, frame, Intents{})
	assert.False(t, v.Boosted())
}

func TestBoostIntent(t *testing.T) {
	v := newVehicle(t, openField(), DefaultPhysics())
	p := v.Machine()
	var c clock

	v.Update(c.tick(frame), frame, Intents{Boost: true})
	assert.False(t, v.Boosted(), "no boost power during the first lap")

	v.GrantBoostPower()
	assert.True(t, v.CanBoost())
	v.Update(c.tick(frame), frame, Intents{Boost: true})
	assert.True(t, v.Boosted())
	assert.InDelta(t, p.MaxEnergy-p.BoostCost, v.Energy(), 1e-9)
	assert.False(t, v.CanBoost())

	// boosted acceleration and top speed
	v.Update(c.tick(frame), frame, Intents{Accelerate: true})
	assert.InDelta(t, p.BoostedAcceleration*frame, v.Speed(), 1e-9)
}

func TestBoostNeedsEnergy(t *testing.T) {
	v := newVehicle(t, openField(), DefaultPhysics())
	v.GrantBoostPower()
	v.energy = v.Machine().BoostCost - 1
	assert.False(t, v.CanBoost())
}

func TestRecoveryZone(t *testing.T) {
	g := openField()
	g.Recovery = []collision.Rect{collision.R(0, 0, 2, 2)}
	v := newVehicle(t, g, DefaultPhysics())
	p := v.Machine()
	v.GrantBoostPower()

	var c clock
	v.Update(c.tick(frame), frame, Intents{Boost: true})
	assert.InDelta(t, p.MaxEnergy-p.BoostCost+p.RecoverSpeed*frame, v.Energy(), 1e-9)

	v.Update(c.tick(10), 10, Intents{})
	assert.Equal(t, p.MaxEnergy, v.Energy())
}

func TestDirtDampsAndCapsSpeed(t *testing.T) {
	g := openField()
	g.Dirt = []collision.Rect{collision.R(0, 0, 1000, 1000)}
	phys := DefaultPhysics()
	v := newVehicle(t, g, phys)
	p := v.Machine()

	var c clock
	v.Update(c.tick(frame), frame, Intents{Accelerate: true})
	assert.InDelta(t, p.Acceleration*frame*phys.DirtDamping, v.Speed(), 1e-9)

	v.Update(c.tick(5), 5, Intents{Accelerate: true})
	assert.InDelta(t, p.MaxSpeed*phys.DirtMaxSpeedFactor, v.Speed(), 1e-9)
}

func rampTrack(surface collision.Rect) track.Geometry {
	return track.Geometry{
		Surface: []collision.Rect{surface},
		Ramps:   []collision.Rect{collision.R(5, 0, 0.2, 10)},
	}
}

func jumpOffRamp(t *testing.T, v *Vehicle) *clock {
	t.Helper()
	c := &clock{}
	for i := 0; i < 600; i++ {
		v.Update(c.tick(frame), frame, Intents{Accelerate: true})
		if v.Jumping() {
			return c
		}
	}
	t.Fatal("never jumped")
	return nil
}

func TestJumpLandsOnTrack(t *testing.T) {
	v := newVehicle(t, rampTrack(collision.R(10, 0, 30, 10)), DefaultPhysics())
	c := jumpOffRamp(t, v)

	require.GreaterOrEqual(t, v.Speed(), DefaultPhysics().MinJumpSpeed)
	d := v.jumpDuration
	assert.InDelta(t, v.Machine().JumpDurationMultiplier*v.Speed(), d, 1e-9)

	mid := v.jumpStart + time.Duration(d/2*float64(time.Second))
	assert.InDelta(t, d*d/4*DefaultPhysics().JumpHeight, v.JumpHeight(mid), 1e-6)

	for i := 0; i < 600 && v.Jumping(); i++ {
		v.Update(c.tick(frame), frame, Intents{})
	}
	assert.False(t, v.Jumping())
	assert.False(t, v.Destroyed())
	assert.Equal(t, 0.0, v.JumpHeight(c.now))
}

func TestJumpLandingOffTrackDestroys(t *testing.T) {
	v := newVehicle(t, rampTrack(collision.R(2.5, 0, 6, 10)), DefaultPhysics())
	c := jumpOffRamp(t, v)

	sawOffTrack := false
	for i := 0; i < 600 && v.Jumping(); i++ {
		v.Update(c.tick(frame), frame, Intents{Accelerate: true})
		if v.Jumping() && v.Position()[0] > 6 {
			sawOffTrack = true
			assert.False(t, v.Destroyed(), "airborne vehicles ignore the surface")
		}
	}
	assert.True(t, sawOffTrack)
	assert.True(t, v.Destroyed())
}

func TestNoJumpBelowMinimumSpeed(t *testing.T) {
	g := openField()
	g.Ramps = []collision.Rect{collision.R(0, 0, 2, 2)}
	v := newVehicle(t, g, DefaultPhysics())
	var c clock
	v.Update(c.tick(frame), frame, Intents{Accelerate: true})
	assert.False(t, v.Jumping())
}

func TestFinishedVehicleCoasts(t *testing.T) {
	v := newVehicle(t, openField(), DefaultPhysics())
	var c clock
	for i := 0; i < 60; i++ {
		v.Update(c.tick(frame), frame, Intents{Accelerate: true})
	}
	v.MarkFinished()
	angle, speed := v.Angle(), v.Speed()

	v.Update(c.tick(frame), frame, Intents{Accelerate: true, SteerLeft: true})
	assert.Equal(t, angle, v.Angle())
	assert.InDelta(t, speed-v.Machine().SpeedLoss*frame, v.Speed(), 1e-9)
}

func TestUpdateDrivesLapCount(t *testing.T) {
	g := openField()
	g.FinishLine = collision.R(0, 0, 4, 1)
	v := newVehicle(t, g, DefaultPhysics())
	var c clock
	v.Update(c.tick(frame), frame, Intents{})
	assert.True(t, v.Race().Started())
	assert.Equal(t, c.now, v.Race().StartTime())
}

func TestTelemetry(t *testing.T) {
	v := newVehicle(t, openField(), DefaultPhysics())
	v.GrantBoostPower()
	var c clock
	v.Update(c.tick(frame), frame, Intents{Boost: true})

	tel := v.Telemetry()
	p := v.Machine()
	assert.True(t, tel.Boosted)
	assert.InDelta(t, (p.MaxEnergy-p.BoostCost)/p.MaxEnergy, tel.EnergyFraction, 1e-9)
	assert.Equal(t, 3, tel.RequiredLaps)
	assert.Equal(t, 0, tel.CompletedLaps)
	assert.Empty(t, tel.LapTimes)
}

func TestInvalidClipsAreLogged(t *testing.T) {
	g := openField()
	g.FinishLine = collision.R(0, 400, 1, 1)
	tr, err := track.New(g)
	require.NoError(t, err)
	r, err := race.New(tr, 3)
	require.NoError(t, err)
	core, logs := observer.New(zapcore.WarnLevel)

	bad := map[anim.Key]anim.Clip{anim.Driving: {Frames: 0, Speed: 12}}
	v := New(machine.PurpleComet(), r, Pose{}, DefaultPhysics(),
		WithClips(bad), WithLogger(zap.New(core)))

	require.Equal(t, 1, logs.FilterMessage("invalid clip table, keeping machine clips").Len())
	assert.Equal(t, anim.Driving, v.anim.Current())

	// the default table still animates
	var c clock
	for i := 0; i < 30; i++ {
		v.Update(c.tick(frame), frame, Intents{Accelerate: true})
	}
	assert.Positive(t, v.Telemetry().AnimFrame)
}

func TestValidClipsReplaceDefaults(t *testing.T) {
	g := openField()
	g.FinishLine = collision.R(0, 400, 1, 1)
	tr, err := track.New(g)
	require.NoError(t, err)
	r, err := race.New(tr, 3)
	require.NoError(t, err)
	core, logs := observer.New(zapcore.WarnLevel)

	clips := map[anim.Key]anim.Clip{anim.Driving: {Frames: 1, Speed: 12}}
	v := New(machine.PurpleComet(), r, Pose{}, DefaultPhysics(),
		WithClips(clips), WithLogger(zap.New(core)))

	assert.Zero(t, logs.Len())
	var c clock
	for i := 0; i < 30; i++ {
		v.Update(c.tick(frame), frame, Intents{Accelerate: true})
	}
	assert.Zero(t, v.Telemetry().AnimFrame)
}
