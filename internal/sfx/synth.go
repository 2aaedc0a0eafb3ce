// Package sfx synthesises the race sound effects and the engine hum as
// stereo float32 little-endian PCM. Playback lives with the desktop
// frontend.
package sfx

import (
	"math"
)

const (
	DefaultSampleRate = 44100
	ChannelCount      = 2
	// BytesPerFrame is one stereo float32 sample pair.
	BytesPerFrame = 8
)

type Kind int

const (
	Start Kind = iota
	Lap
	Finish
	Boost
	Bounce
	Jump
	Land
	Explosion
	Confirm
)

func (k Kind) String() string {
	switch k {
	case Start:
		return "start"
	case Lap:
		return "lap"
	case Finish:
		return "finish"
	case Boost:
		return "boost"
	case Bounce:
		return "bounce"
	case Jump:
		return "jump"
	case Land:
		return "land"
	case Explosion:
		return "explosion"
	case Confirm:
		return "confirm"
	}
	return "unknown"
}

// Synth renders effects at a fixed sample rate.
type Synth struct {
	rate float64
}

// NewSynth falls back to DefaultSampleRate for rate <= 0.
func NewSynth(rate int) Synth {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return Synth{rate: float64(rate)}
}

func (sy Synth) Rate() int { return int(sy.rate) }

// Generate renders one effect. Unknown kinds give nil.
func (sy Synth) Generate(k Kind) []byte {
	switch k {
	case Start:
		return sy.tones([]float64{440, 440, 880}, 0.18, 2.0, 1.5)
	case Lap:
		return sy.tones([]float64{659.25, 987.77}, 0.08, 2.756, 4.0)
	case Finish:
		return sy.tones([]float64{523.25, 659.25, 783.99, 1046.5}, 0.075, 3.5, 5.0)
	case Boost:
		return sy.sweep(0.45, 180, 900, 0.45)
	case Bounce:
		return sy.thud(0.12, 140, 0xB0)
	case Jump:
		return sy.sweep(0.25, 300, 620, 0.3)
	case Land:
		return sy.thud(0.09, 90, 0x1A)
	case Explosion:
		return sy.noiseBurst(0.7, 0xE4)
	case Confirm:
		return sy.sweep(0.065, 1400, 700, 0.38)
	}
	return nil
}

// tones plays freqs one after another, each ringing into the next.
func (sy Synth) tones(freqs []float64, step, modRatio, modIdx float64) []byte {
	noteLen := int(step * sy.rate)
	total := len(freqs)*noteLen + int(0.2*sy.rate)
	mix := make([]float64, total)
	for fi, freq := range freqs {
		start := fi * noteLen
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / sy.rate
			env := adsr(float64(j)/float64(dur), 0.004, 0.55, 0.05, 0.35)
			mix[start+j] += fm(t, freq, modRatio, modIdx*env) * env * 0.32
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereo(buf, i, softSat(s))
	}
	return buf
}

// sweep glides linearly from f0 to f1.
func (sy Synth) sweep(dur, f0, f1, gain float64) []byte {
	n := int(dur * sy.rate)
	buf := makeBuf(n)
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		freq := f0 + (f1-f0)*p
		phase += 2 * math.Pi * freq / sy.rate
		env := adsr(p, 0.02, 0.4, 0.5, 0.3)
		s := math.Sin(phase+0.8*math.Sin(phase*0.5)) * env * gain
		putStereo(buf, i, softSat(s))
	}
	return buf
}

// thud is a pitched-down sine with a noise transient.
func (sy Synth) thud(dur, freq float64, seed uint64) []byte {
	n := int(dur * sy.rate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / sy.rate
		p := float64(i) / float64(n)
		env := (1 - p) * (1 - p)
		s := math.Sin(2*math.Pi*freq*(1-0.5*p)*t) * env * 0.6
		if p < 0.1 {
			s += lcg(&seed) * (0.1 - p) * 3
		}
		putStereo(buf, i, softSat(s))
	}
	return buf
}

// noiseBurst is low-passed noise over a sub rumble.
func (sy Synth) noiseBurst(dur float64, seed uint64) []byte {
	n := int(dur * sy.rate)
	buf := makeBuf(n)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / sy.rate
		p := float64(i) / float64(n)
		lp = lp*0.9 + lcg(&seed)*0.1
		env := math.Exp(-4 * p)
		s := (lp*2.2 + math.Sin(2*math.Pi*(55-25*p)*t)*0.5) * env
		putStereo(buf, i, softSat(s))
	}
	return buf
}

func putStereo(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for c := 0; c < 2; c++ {
		o := i*BytesPerFrame + c*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat saturates smoothly instead of clipping.
func softSat(x float64) float64 {
	if x > 1 {
		return 1 - 0.5/x
	}
	if x < -1 {
		return -1 - 0.5/x
	}
	return x - x*x*x/3
}

// adsr is an envelope at progress in [0,1]; attack, decay and release are
// fractions of the whole duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1 - (progress-attack)/decay*(1-sustain)
	case progress < 1-release:
		return sustain
	default:
		return sustain * (1 - (progress-(1-release))/release)
	}
}

func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg returns noise in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*BytesPerFrame) }
