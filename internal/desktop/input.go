//go:build !android

package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"mode7racer/internal/vehicle"
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

// JustPressed reports a key going down this frame. Call it once per frame
// per key so the edge is not lost.
func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Intents samples the held driving keys. Arrows and WASD both work.
func (in *Input) Intents(window *glfw.Window) vehicle.Intents {
	held := func(keys ...glfw.Key) bool {
		for _, k := range keys {
			if window.GetKey(k) == glfw.Press {
				return true
			}
		}
		return false
	}
	return vehicle.Intents{
		Accelerate: held(glfw.KeyUp, glfw.KeyW),
		Brake:      held(glfw.KeyDown, glfw.KeyS),
		Boost:      held(glfw.KeySpace),
		SteerLeft:  held(glfw.KeyLeft, glfw.KeyA),
		SteerRight: held(glfw.KeyRight, glfw.KeyD),
	}
}
