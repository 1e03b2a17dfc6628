package audio

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/cowdodge/internal/core"
)

// SampleRate is the output rate; decoded files are resampled to it.
const SampleRate = beep.SampleRate(44100)

// format is the layout of every buffered source.
var format = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

// Options selects the sources for the two channels.
// Empty paths use the built-in tones.
type Options struct {
	MusicPath  string
	EffectPath string
	Muted      bool
}

// track is one channel: a buffered source behind a pause switch.
// Its fields are guarded by the owning Mixer's lock.
type track struct {
	buf    *beep.Buffer
	loop   bool
	ctrl   *beep.Ctrl
	seeker beep.StreamSeeker
}

// reset drops the current stream and queues a new one at the start,
// keeping the pause state.
func (t *track) reset(mixer *beep.Mixer) {
	paused := true
	if t.ctrl != nil {
		paused = t.ctrl.Paused
		t.ctrl.Streamer = nil // Mixer drops a nil-stream Ctrl
	}

	t.seeker = t.buf.Streamer(0, t.buf.Len())
	var s beep.Streamer = t.seeker
	if t.loop {
		s = beep.Loop(-1, t.seeker)
	}
	t.ctrl = &beep.Ctrl{Streamer: s, Paused: paused}
	mixer.Add(t.ctrl)
}

func (t *track) apply(op core.AudioOp, mixer *beep.Mixer) {
	switch op {
	case core.OpRewind:
		t.reset(mixer)
	case core.OpPlay:
		if t.ctrl == nil || t.ctrl.Streamer == nil || t.finished() {
			t.reset(mixer)
		}
		t.ctrl.Paused = false
	case core.OpPause:
		if t.ctrl != nil {
			t.ctrl.Paused = true
		}
	}
}

// finished reports whether a one-shot source has played to its end.
func (t *track) finished() bool {
	return !t.loop && t.seeker != nil && t.seeker.Position() >= t.seeker.Len()
}

// position returns the playback position in samples, or -1 when idle.
func (t *track) position() int {
	if t.seeker == nil {
		return -1
	}
	return t.seeker.Position()
}

// Mixer owns the two tracks and mixes them into one stream.
// It does not touch the audio device; Beep feeds it to the speaker.
type Mixer struct {
	mu     sync.Locker
	mixer  *beep.Mixer
	volume *effects.Volume
	tracks map[core.Channel]*track
}

// NewMixer builds a mixer from already-buffered sources.
func NewMixer(lock sync.Locker, music, effect *beep.Buffer) *Mixer {
	m := &Mixer{
		mu:    lock,
		mixer: &beep.Mixer{},
		tracks: map[core.Channel]*track{
			core.ChannelMusic:  {buf: music, loop: true},
			core.ChannelEffect: {buf: effect},
		},
	}
	m.mixer.Add(beep.Silence(-1)) // Keeps the stream alive while both tracks are idle
	m.volume = &effects.Volume{Streamer: m.mixer, Base: 2}
	return m
}

// Streamer returns the mixed output.
func (m *Mixer) Streamer() beep.Streamer {
	return m.volume
}

func (m *Mixer) Apply(ch core.Channel, op core.AudioOp) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tracks[ch]; ok {
		t.apply(op, m.mixer)
	}
}

func (m *Mixer) SetMuted(muted bool) {
	m.mu.Lock()
	m.volume.Silent = muted
	m.mu.Unlock()
}

func (m *Mixer) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume.Silent
}

// Playing reports whether ch has an unpaused stream.
func (m *Mixer) Playing(ch core.Channel) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tracks[ch]
	return ok && t.ctrl != nil && t.ctrl.Streamer != nil && !t.ctrl.Paused && !t.finished()
}

// Position returns the playback position of ch in samples, or -1 when idle.
func (m *Mixer) Position(ch core.Channel) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tracks[ch]; ok {
		return t.position()
	}
	return -1
}

func (m *Mixer) clear() {
	m.mu.Lock()
	m.mixer.Clear()
	for _, t := range m.tracks {
		t.ctrl, t.seeker = nil, nil
	}
	m.mu.Unlock()
}

// speakerLock serializes with the speaker's playback goroutine.
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// Beep plays through the system audio device.
type Beep struct {
	*Mixer
	closeOnce sync.Once
}

// NewBeep opens the audio device and loads both channels.
func NewBeep(opts Options) (*Beep, error) {
	music, err := loadSource(opts.MusicPath, MusicTone)
	if err != nil {
		return nil, fmt.Errorf("audio: music: %w", err)
	}
	effect, err := loadSource(opts.EffectPath, CrashTone)
	if err != nil {
		return nil, fmt.Errorf("audio: effect: %w", err)
	}

	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}

	b := &Beep{Mixer: NewMixer(speakerLock{}, music, effect)}
	b.SetMuted(opts.Muted)
	speaker.Play(b.Streamer())
	return b, nil
}

// Close stops playback and releases the device.
func (b *Beep) Close() error {
	b.closeOnce.Do(func() {
		b.clear()
		speaker.Close()
	})
	return nil
}

// loadSource buffers a WAV file, or the built-in tone when path is empty.
func loadSource(path string, builtin func(beep.SampleRate) beep.Streamer) (*beep.Buffer, error) {
	buf := beep.NewBuffer(format)
	if path == "" {
		buf.Append(builtin(SampleRate))
		return buf, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, fileFormat, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer s.Close()

	var src beep.Streamer = s
	if fileFormat.SampleRate != SampleRate {
		src = beep.Resample(4, fileFormat.SampleRate, SampleRate, s)
	}
	buf.Append(src)
	return buf, nil
}

// Open returns a device-backed service, or a silent one when the device
// or an asset is unavailable. The error explains the fallback.
func Open(opts Options) (Service, error) {
	b, err := NewBeep(opts)
	if err != nil {
		n := NewNop()
		n.SetMuted(opts.Muted)
		return n, err
	}
	return b, nil
}
