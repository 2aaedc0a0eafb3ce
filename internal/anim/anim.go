// Package anim tracks which animation clip a machine plays and how far
// into it the playhead is. Frames are indices; the images live with the
// presentation layer.
package anim

import "fmt"

type Key string

const (
	Idle    Key = "idle"
	Driving Key = "driving"
	Jumping Key = "jumping"
)

// Clip is a looping animation of Frames frames played at Speed frames per
// second.
type Clip struct {
	Frames int
	Speed  float64
}

// State holds a clip table by composition and the current playhead.
type State struct {
	clips    map[Key]Clip
	current  Key
	position float64
}

// New returns a state playing initial. Every clip needs at least one frame.
func New(clips map[Key]Clip, initial Key) (*State, error) {
	cp := make(map[Key]Clip, len(clips))
	for k, c := range clips {
		if c.Frames < 1 {
			return nil, fmt.Errorf("animation %q: needs at least one frame", k)
		}
		cp[k] = c
	}
	if _, ok := cp[initial]; !ok {
		return nil, fmt.Errorf("animation %q: not in clip table", initial)
	}
	return &State{clips: cp, current: initial}, nil
}

// MachineClips is the clip table shared by the built-in machines.
func MachineClips() map[Key]Clip {
	return map[Key]Clip{
		Idle:    {Frames: 1, Speed: 12},
		Driving: {Frames: 4, Speed: 12},
		Jumping: {Frames: 4, Speed: 12},
	}
}

// Switch changes clip and rewinds it. Switching to the clip already
// playing, or to an unknown key, is a no-op.
func (s *State) Switch(k Key) {
	if k == s.current {
		return
	}
	if _, ok := s.clips[k]; !ok {
		return
	}
	s.current = k
	s.position = 0
}

func (s *State) Restart() { s.position = 0 }

func (s *State) Advance(delta float64) {
	c := s.clips[s.current]
	s.position += delta * c.Speed
	n := float64(c.Frames)
	for s.position >= n {
		s.position -= n
	}
}

func (s *State) Current() Key { return s.current }

func (s *State) CurrentFrame() int {
	return int(s.position) % s.clips[s.current].Frames
}
