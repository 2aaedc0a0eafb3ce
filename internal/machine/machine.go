// Package machine holds the tuning profiles of the drivable machines.
package machine

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/samber/lo"
)

var ErrInvalidMachine = errors.New("invalid machine profile")

// Profile is the physics tuning of one machine. Rates are per second unless
// noted; the vehicle integrates them with the frame delta.
type Profile struct {
	Name string

	MaxSpeed        float64
	BoostedMaxSpeed float64

	Acceleration        float64
	BoostedAcceleration float64
	Brake               float64

	// SpeedLoss is subtracted while neither accelerating nor braking.
	SpeedLoss        float64
	BoostedSpeedLoss float64

	// Centrifugal force, in percent of the current speed.
	MaxCentri      float64
	CentriIncrease float64
	CentriDecrease float64

	// Jump duration in seconds is speed * JumpDurationMultiplier.
	JumpDurationMultiplier float64
	BoostDuration          float64

	MaxEnergy    float64
	BoostCost    float64
	HitCost      float64
	RecoverSpeed float64

	// RotationSpeed in radians per second.
	RotationSpeed float64
}

func (p Profile) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"max speed", p.MaxSpeed},
		{"boosted max speed", p.BoostedMaxSpeed},
		{"acceleration", p.Acceleration},
		{"boosted acceleration", p.BoostedAcceleration},
		{"brake", p.Brake},
		{"speed loss", p.SpeedLoss},
		{"boosted speed loss", p.BoostedSpeedLoss},
		{"max centri", p.MaxCentri},
		{"centri increase", p.CentriIncrease},
		{"centri decrease", p.CentriDecrease},
		{"jump duration multiplier", p.JumpDurationMultiplier},
		{"boost duration", p.BoostDuration},
		{"max energy", p.MaxEnergy},
		{"boost cost", p.BoostCost},
		{"hit cost", p.HitCost},
		{"recover speed", p.RecoverSpeed},
		{"rotation speed", p.RotationSpeed},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return fmt.Errorf("%w %q: %s = %g", ErrInvalidMachine, p.Name, f.name, f.v)
		}
	}
	if p.MaxEnergy == 0 {
		return fmt.Errorf("%w %q: max energy must be positive", ErrInvalidMachine, p.Name)
	}
	if p.BoostedMaxSpeed < p.MaxSpeed {
		return fmt.Errorf("%w %q: boosted max speed %g below max speed %g",
			ErrInvalidMachine, p.Name, p.BoostedMaxSpeed, p.MaxSpeed)
	}
	return nil
}

const (
	speedScale = 1.1

	stdMaxEnergy = 100

	purpleCometAcceleration = (5000.0 / 750) * speedScale
	purpleCometMaxSpeed     = 25 * speedScale
)

// PurpleComet is the reference machine every other preset derives from.
func PurpleComet() Profile {
	return Profile{
		Name:                   "purple-comet",
		MaxSpeed:               purpleCometMaxSpeed,
		BoostedMaxSpeed:        purpleCometMaxSpeed * 1.4,
		Acceleration:           purpleCometAcceleration,
		BoostedAcceleration:    purpleCometAcceleration * 10,
		Brake:                  purpleCometAcceleration * 2,
		SpeedLoss:              purpleCometAcceleration / 3,
		BoostedSpeedLoss:       purpleCometAcceleration * 6,
		MaxCentri:              20,
		CentriIncrease:         10,
		CentriDecrease:         50,
		JumpDurationMultiplier: 2 / purpleCometMaxSpeed, // 2s jump at top speed
		BoostDuration:          2,
		MaxEnergy:              stdMaxEnergy,
		BoostCost:              19,
		HitCost:                1,
		RecoverSpeed:           13,
		RotationSpeed:          2.5,
	}
}

// FasterPurpleComet trades acceleration and grip for top speed.
func FasterPurpleComet() Profile {
	b := PurpleComet()
	return Profile{
		Name:                   "faster-purple-comet",
		MaxSpeed:               b.MaxSpeed * 1.1,
		BoostedMaxSpeed:        b.MaxSpeed * 1.4,
		Acceleration:           b.Acceleration / 2,
		BoostedAcceleration:    b.BoostedAcceleration,
		Brake:                  b.Brake,
		SpeedLoss:              b.SpeedLoss / 2,
		BoostedSpeedLoss:       b.BoostedSpeedLoss / 20,
		MaxCentri:              b.MaxCentri,
		CentriIncrease:         b.CentriIncrease,
		CentriDecrease:         b.CentriDecrease,
		JumpDurationMultiplier: b.JumpDurationMultiplier,
		BoostDuration:          1.75,
		MaxEnergy:              stdMaxEnergy,
		BoostCost:              14,
		HitCost:                0.5,
		RecoverSpeed:           b.RecoverSpeed / 2,
		RotationSpeed:          b.RotationSpeed * 0.75,
	}
}

// SlowerPurpleComet accelerates hard and has a strong booster.
func SlowerPurpleComet() Profile {
	b := PurpleComet()
	return Profile{
		Name:                   "slower-purple-comet",
		MaxSpeed:               b.MaxSpeed * 0.9,
		BoostedMaxSpeed:        b.MaxSpeed * 1.5,
		Acceleration:           b.Acceleration * 2,
		BoostedAcceleration:    b.BoostedAcceleration,
		Brake:                  b.Brake,
		SpeedLoss:              b.SpeedLoss,
		BoostedSpeedLoss:       b.BoostedSpeedLoss,
		MaxCentri:              b.MaxCentri * 2,
		CentriIncrease:         b.CentriIncrease * 1.5,
		CentriDecrease:         b.CentriDecrease * 1.5,
		JumpDurationMultiplier: b.JumpDurationMultiplier,
		BoostDuration:          1,
		MaxEnergy:              stdMaxEnergy,
		BoostCost:              22,
		HitCost:                2,
		RecoverSpeed:           b.RecoverSpeed * 2,
		RotationSpeed:          b.RotationSpeed * 1.3,
	}
}

var presets = []func() Profile{PurpleComet, FasterPurpleComet, SlowerPurpleComet}

// All returns every preset in selection-menu order.
func All() []Profile {
	out := make([]Profile, 0, len(presets))
	for _, f := range presets {
		out = append(out, f())
	}
	return out
}

// ByName looks a preset up by name, case-insensitively.
func ByName(name string) (Profile, error) {
	for _, p := range All() {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: unknown machine %q (have %s)",
		ErrInvalidMachine, name, strings.Join(Names(), ", "))
}

func Names() []string {
	names := lo.Map(All(), func(p Profile, _ int) string { return p.Name })
	sort.Strings(names)
	return names
}
