package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a wave of the given frequency and duration.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with attack and release ramps over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.totalSamples - e.releaseSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; 0 or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is one step of the built-in tune.
type note struct {
	freq float64 // 0 = rest
	dur  time.Duration
}

const beat = 200 * time.Millisecond

// tune is a short pastoral loop in C major.
var tune = []note{
	{523.25, beat}, {659.25, beat}, {783.99, beat}, {659.25, beat},
	{698.46, beat}, {880.00, beat}, {783.99, 2 * beat},
	{659.25, beat}, {587.33, beat}, {523.25, beat}, {587.33, beat},
	{659.25, 2 * beat}, {0, 2 * beat},
}

// MusicTone synthesizes one pass of the built-in background tune.
func MusicTone(rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(tune))
	for _, n := range tune {
		if n.freq == 0 {
			parts = append(parts, beep.Silence(rate.N(n.dur)))
			continue
		}
		osc := NewOscillator(n.freq, n.dur, WaveSquare, rate)
		shaped := NewEnvelope(osc, n.dur, 10*time.Millisecond, 60*time.Millisecond, rate)
		parts = append(parts, newVolume(shaped, 0.12))
	}
	return beep.Seq(parts...)
}

// crashDuration is the length of the built-in collision sound.
const crashDuration = 400 * time.Millisecond

// CrashTone synthesizes the built-in collision sound: a falling buzz over noise.
func CrashTone(rate beep.SampleRate) beep.Streamer {
	low := NewOscillator(90, crashDuration, WaveSaw, rate)
	lowShaped := NewEnvelope(low, crashDuration, 5*time.Millisecond, 300*time.Millisecond, rate)

	noise := NewOscillator(0, crashDuration/2, WaveNoise, rate)
	noiseShaped := NewEnvelope(noise, crashDuration/2, time.Millisecond, 150*time.Millisecond, rate)

	return beep.Mix(
		newVolume(lowShaped, 0.35),
		newVolume(noiseShaped, 0.2),
	)
}
