// Package track models the collision map of a race course: the drivable
// surface, gimmick zones, the finish line and the key checkpoints that make
// a finish-line crossing count as a lap.
package track

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"mode7racer/internal/collision"
)

var ErrNoSurface = errors.New("track has no surface rects")

// Geometry is the authored description of a track.
type Geometry struct {
	Name        string
	Surface     []collision.Rect
	Ramps       []collision.Rect
	Recovery    []collision.Rect
	DashPlates  []collision.Rect
	Dirt        []collision.Rect
	FinishLine  collision.Rect
	Checkpoints []collision.Rect
	GuardRails  bool
}

// KeyCheckpoint must be touched before a finish-line crossing counts.
type KeyCheckpoint struct {
	Collider collision.Rect
	Passed   bool
}

// Track is immutable after New apart from the checkpoint flags.
type Track struct {
	name        string
	surface     []collision.Rect
	ramps       []collision.Rect
	recovery    []collision.Rect
	dashPlates  []collision.Rect
	dirt        []collision.Rect
	finishLine  collision.Rect
	checkpoints []KeyCheckpoint
	guardRails  bool
}

// New validates g and builds a track from copies of its rect lists.
func New(g Geometry) (*Track, error) {
	if len(g.Surface) == 0 {
		return nil, fmt.Errorf("track %q: %w", g.Name, ErrNoSurface)
	}
	lists := []struct {
		kind  string
		rects []collision.Rect
	}{
		{"surface", g.Surface},
		{"ramp", g.Ramps},
		{"recovery", g.Recovery},
		{"dash plate", g.DashPlates},
		{"dirt", g.Dirt},
		{"checkpoint", g.Checkpoints},
		{"finish line", []collision.Rect{g.FinishLine}},
	}
	for _, l := range lists {
		for i, r := range l.rects {
			if err := r.Validate(); err != nil {
				return nil, fmt.Errorf("track %q: %s %d: %w", g.Name, l.kind, i, err)
			}
		}
	}

	return &Track{
		name:       g.Name,
		surface:    slices.Clone(g.Surface),
		ramps:      slices.Clone(g.Ramps),
		recovery:   slices.Clone(g.Recovery),
		dashPlates: slices.Clone(g.DashPlates),
		dirt:       slices.Clone(g.Dirt),
		finishLine: g.FinishLine,
		checkpoints: lo.Map(g.Checkpoints, func(r collision.Rect, _ int) KeyCheckpoint {
			return KeyCheckpoint{Collider: r}
		}),
		guardRails: g.GuardRails,
	}, nil
}

func (t *Track) Name() string { return t.name }

func (t *Track) IsOnTrack(r collision.Rect) bool {
	return collision.AnyOverlap(t.surface, r)
}

func (t *Track) IsOnRamp(r collision.Rect) bool {
	return collision.AnyOverlap(t.ramps, r)
}

func (t *Track) IsOnDashPlate(r collision.Rect) bool {
	return collision.AnyOverlap(t.dashPlates, r)
}

func (t *Track) IsOnRecoveryZone(r collision.Rect) bool {
	return collision.AnyOverlap(t.recovery, r)
}

func (t *Track) IsOnDirt(r collision.Rect) bool {
	return collision.AnyOverlap(t.dirt, r)
}

func (t *Track) IsOnFinishLine(r collision.Rect) bool {
	return t.finishLine.Overlaps(r)
}

// UpdateKeyCheckpoints marks every checkpoint overlapping r as passed.
func (t *Track) UpdateKeyCheckpoints(r collision.Rect) {
	for i := range t.checkpoints {
		if !t.checkpoints[i].Passed && t.checkpoints[i].Collider.Overlaps(r) {
			t.checkpoints[i].Passed = true
		}
	}
}

// AllKeyCheckpointsPassed is vacuously true on a track without checkpoints.
func (t *Track) AllKeyCheckpointsPassed() bool {
	return lo.EveryBy(t.checkpoints, func(kc KeyCheckpoint) bool { return kc.Passed })
}

func (t *Track) ResetKeyCheckpoints() {
	for i := range t.checkpoints {
		t.checkpoints[i].Passed = false
	}
}

func (t *Track) PassedCount() int {
	return lo.CountBy(t.checkpoints, func(kc KeyCheckpoint) bool { return kc.Passed })
}

// Checkpoints returns a copy of the checkpoint states.
func (t *Track) Checkpoints() []KeyCheckpoint {
	return slices.Clone(t.checkpoints)
}

// GuardRailsActive reports whether leaving the surface bounces the vehicle
// in this frame. Only the static flag is consulted for now.
func (t *Track) GuardRailsActive() bool {
	return t.guardRails
}

// Geometry returns a copy of the authored geometry, used to paint ground
// textures and minimaps.
func (t *Track) Geometry() Geometry {
	return Geometry{
		Name:       t.name,
		Surface:    slices.Clone(t.surface),
		Ramps:      slices.Clone(t.ramps),
		Recovery:   slices.Clone(t.recovery),
		DashPlates: slices.Clone(t.dashPlates),
		Dirt:       slices.Clone(t.dirt),
		FinishLine: t.finishLine,
		Checkpoints: lo.Map(t.checkpoints, func(kc KeyCheckpoint, _ int) collision.Rect {
			return kc.Collider
		}),
		GuardRails: t.guardRails,
	}
}
