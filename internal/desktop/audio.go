//go:build !android

package desktop

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"go.uber.org/zap"

	"mode7racer/internal/config"
	"mode7racer/internal/game"
	"mode7racer/internal/sfx"
	"mode7racer/internal/vehicle"
)

// maxVoices caps overlapping effects to avoid clipping.
const maxVoices = 4

// Audio plays effects for session events and keeps the engine hum in step
// with the vehicle.
type Audio struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64

	synth  sfx.Synth
	cache  map[sfx.Kind][]byte
	mu     sync.Mutex
	voices atomic.Int32

	engine       *sfx.Engine
	enginePlayer oto.Player

	logger *zap.Logger
}

func NewAudio(cfg config.Audio, logger *zap.Logger) (*Audio, error) {
	ctx, ready, err := oto.NewContext(cfg.SampleRate, sfx.ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, err
	}
	return &Audio{
		ctx:    ctx,
		ready:  ready,
		volume: cfg.Volume,
		synth:  sfx.NewSynth(cfg.SampleRate),
		cache:  make(map[sfx.Kind][]byte),
		engine: sfx.NewEngine(cfg.SampleRate),
		logger: logger,
	}, nil
}

// Attach maps session events to effects.
func (a *Audio) Attach(bus *game.EventBus) {
	sounds := map[game.EventType]sfx.Kind{
		game.EventRaceStarted:    sfx.Start,
		game.EventLapCompleted:   sfx.Lap,
		game.EventRaceFinished:   sfx.Finish,
		game.EventBoost:          sfx.Boost,
		game.EventBounce:         sfx.Bounce,
		game.EventJump:           sfx.Jump,
		game.EventLanded:         sfx.Land,
		game.EventDestroyed:      sfx.Explosion,
		game.EventLeagueComplete: sfx.Finish,
		game.EventRaceLoaded:     sfx.Confirm,
	}
	for et, k := range sounds {
		k := k
		bus.Subscribe(et, func(game.Event) { a.Play(k) })
	}
}

func (a *Audio) isReady() bool {
	select {
	case <-a.ready:
		return true
	default:
		return false
	}
}

// Play starts an effect on its own player; it is dropped while the
// context is still starting or too many voices are playing.
func (a *Audio) Play(k sfx.Kind) {
	if !a.isReady() || a.volume <= 0 {
		return
	}
	if a.voices.Load() >= maxVoices {
		return
	}
	samples := a.samples(k)
	if len(samples) == 0 {
		return
	}
	a.voices.Add(1)
	go func() {
		defer a.voices.Add(-1)
		player := a.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(a.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			a.logger.Debug("close player", zap.Stringer("sound", k), zap.Error(err))
		}
	}()
}

func (a *Audio) samples(k sfx.Kind) []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	if b, ok := a.cache[k]; ok {
		return b
	}
	b := a.synth.Generate(k)
	a.cache[k] = b
	return b
}

// Update feeds the engine hum from telemetry, starting it on first use.
func (a *Audio) Update(t vehicle.Telemetry) {
	if a.enginePlayer == nil {
		if !a.isReady() {
			return
		}
		a.enginePlayer = a.ctx.NewPlayer(a.engine)
		a.enginePlayer.SetVolume(a.volume)
		a.enginePlayer.Play()
	}
	throttle := 0.0
	if t.MaxSpeed > 0 {
		throttle = t.Speed / t.MaxSpeed
	}
	a.engine.Set(throttle, t.Boosted)
	a.engine.Mute(t.Destroyed || t.Finished)
}

func (a *Audio) Close() {
	if a.enginePlayer != nil {
		if err := a.enginePlayer.Close(); err != nil {
			a.logger.Debug("close engine player", zap.Error(err))
		}
	}
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
