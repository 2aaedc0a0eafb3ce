package machine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsValidate(t *testing.T) {
	for _, p := range All() {
		t.Run(p.Name, func(t *testing.T) {
			require.NoError(t, p.Validate())
			assert.GreaterOrEqual(t, p.BoostedMaxSpeed, p.MaxSpeed)
		})
	}
}

func TestPurpleCometTuning(t *testing.T) {
	p := PurpleComet()
	assert.InDelta(t, 27.5, p.MaxSpeed, 1e-9)
	assert.InDelta(t, 38.5, p.BoostedMaxSpeed, 1e-9)
	assert.InDelta(t, 5000.0/750*1.1, p.Acceleration, 1e-9)
	assert.InDelta(t, p.Acceleration*2, p.Brake, 1e-9)
	// a jump at top speed lasts two seconds
	assert.InDelta(t, 2.0, p.MaxSpeed*p.JumpDurationMultiplier, 1e-9)
}

func TestByName(t *testing.T) {
	p, err := ByName("Faster-Purple-Comet")
	require.NoError(t, err)
	assert.Equal(t, "faster-purple-comet", p.Name)
	assert.InDelta(t, PurpleComet().MaxSpeed*1.1, p.MaxSpeed, 1e-9)

	_, err = ByName("blue-falcon")
	assert.ErrorIs(t, err, ErrInvalidMachine)
	assert.Len(t, Names(), 3)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(p *Profile){
		"negative brake":     func(p *Profile) { p.Brake = -1 },
		"nan acceleration":   func(p *Profile) { p.Acceleration = math.NaN() },
		"zero energy":        func(p *Profile) { p.MaxEnergy = 0 },
		"boost slower":       func(p *Profile) { p.BoostedMaxSpeed = p.MaxSpeed - 1 },
		"infinite max speed": func(p *Profile) { p.MaxSpeed = math.Inf(1); p.BoostedMaxSpeed = math.Inf(1) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := PurpleComet()
			mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidMachine)
		})
	}
}

func TestZeroMaxSpeedAllowed(t *testing.T) {
	p := PurpleComet()
	p.MaxSpeed = 0
	assert.NoError(t, p.Validate())
}
