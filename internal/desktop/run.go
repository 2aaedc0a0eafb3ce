//go:build !android

// Package desktop is the windowed frontend: a glfw window, keyboard
// input, a GL presenter for the software mode7 frames and oto audio.
package desktop

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"mode7racer/internal/config"
	"mode7racer/internal/game"
)

const (
	// maxFrameDelta keeps a stalled frame from launching the machine
	// through a wall.
	maxFrameDelta = 0.1
	titleInterval = 0.25
)

// Run opens the window and plays until it is closed.
func Run(cfg config.Config, logger *zap.Logger) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	session, err := game.NewSession(cfg, game.WithLogger(logger))
	if err != nil {
		return err
	}

	window, err := initWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	logger.Debug("gl ready", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.ClearColor(0, 0, 0, 1)

	presenter, err := NewPresenter()
	if err != nil {
		return fmt.Errorf("presenter: %w", err)
	}
	defer presenter.Destroy()

	var audio *Audio
	if cfg.Audio.Enabled {
		audio, err = NewAudio(cfg.Audio, logger)
		if err != nil {
			logger.Warn("audio init failed, continuing without sound", zap.Error(err))
		} else {
			audio.Attach(session.Events())
			defer audio.Close()
		}
	}

	input := NewInput()
	start := glfw.GetTime()
	last := start
	lastTitle := 0.0
	frames := 0

	for !window.ShouldClose() {
		t := glfw.GetTime()
		dt := t - last
		last = t
		if dt > maxFrameDelta {
			dt = maxFrameDelta
		}
		now := time.Duration((t - start) * float64(time.Second))

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		confirm := input.JustPressed(window, glfw.KeySpace)
		restart := input.JustPressed(window, glfw.KeyR)
		if confirm && session.State() != game.StateRacing {
			if err := session.Confirm(now); err != nil {
				return err
			}
		}
		if restart && cfg.Debug.RestartKey {
			if err := session.Restart(now); err != nil {
				return err
			}
		}

		frame := session.Step(now, dt, input.Intents(window))
		hud := session.HUD(now)
		hud.Paint(frame)
		if audio != nil {
			audio.Update(session.Vehicle().Telemetry())
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW > 0 && fbH > 0 {
			presenter.Upload(frame)
			presenter.Draw(fbW, fbH)
		}

		frames++
		if t-lastTitle >= titleInterval {
			title := fmt.Sprintf("%s | %s | %s | %d km/h | %s | %s",
				cfg.Window.Title, hud.Course, hud.LapLabel(), hud.DisplaySpeed,
				game.FormatRaceTime(hud.Elapsed), hud.State)
			if cfg.Debug.ShowFPS {
				title += fmt.Sprintf(" | %.0f fps", float64(frames)/(t-lastTitle))
			}
			window.SetTitle(title)
			lastTitle = t
			frames = 0
		}

		window.SwapBuffers()
	}
	return nil
}
