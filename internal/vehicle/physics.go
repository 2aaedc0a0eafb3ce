package vehicle

// Physics holds the tuning shared by every machine: collider size, bounce
// behaviour and gimmick strengths.
type Physics struct {
	CollisionWidth  float64 `mapstructure:"collision_width"`
	CollisionHeight float64 `mapstructure:"collision_height"`

	// Share of the speed kept, reversed, when bouncing off a guard rail.
	ObstacleHitSpeedRetention float64 `mapstructure:"obstacle_hit_speed_retention"`
	// Added to every bounce so a vehicle barely off the track is pushed back.
	MinBounceForce float64 `mapstructure:"min_bounce_force"`
	// Energy lost per unit of speed on impact, before the machine's HitCost.
	HitCostSpeedFactor float64 `mapstructure:"hit_cost_speed_factor"`

	MinJumpSpeed float64 `mapstructure:"min_jump_speed"`
	// Peak height of the jump arc in screen pixels.
	JumpHeight float64 `mapstructure:"jump_height"`

	// Per-frame speed multiplier on dirt and the reduced top speed there,
	// as a fraction of the machine's MaxSpeed.
	DirtDamping        float64 `mapstructure:"dirt_damping"`
	DirtMaxSpeedFactor float64 `mapstructure:"dirt_max_speed_factor"`

	// CollisionOff lets the vehicle drive anywhere. Debug only.
	CollisionOff bool `mapstructure:"collision_off"`
}

func DefaultPhysics() Physics {
	return Physics{
		CollisionWidth:            1,
		CollisionHeight:           1,
		ObstacleHitSpeedRetention: 0.5,
		MinBounceForce:            0.005,
		HitCostSpeedFactor:        5 / 27.5,
		MinJumpSpeed:              2.0,
		JumpHeight:                160,
		DirtDamping:               0.97,
		DirtMaxSpeedFactor:        0.6,
	}
}
