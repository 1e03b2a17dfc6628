package audio

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/cowdodge/internal/core"
)

func TestPerformKeepsOrder(t *testing.T) {
	rec := NewRecorder()
	effects := []core.Effect{
		{Channel: core.ChannelMusic, Op: core.OpPause},
		{Channel: core.ChannelEffect, Op: core.OpRewind},
		{Channel: core.ChannelEffect, Op: core.OpPlay},
	}

	Perform(rec, effects)
	Perform(rec, nil)
	Perform(nil, effects)

	if got := rec.Effects(); !reflect.DeepEqual(got, effects) {
		t.Errorf("recorded %v, expected %v", got, effects)
	}
}

func TestToggleMute(t *testing.T) {
	for _, svc := range []Service{NewNop(), NewRecorder()} {
		if svc.Muted() {
			t.Fatalf("%T starts muted", svc)
		}
		if !ToggleMute(svc) || !svc.Muted() {
			t.Errorf("%T: first toggle should mute", svc)
		}
		if ToggleMute(svc) || svc.Muted() {
			t.Errorf("%T: second toggle should unmute", svc)
		}
	}
}

func toneBuffer(d time.Duration) *beep.Buffer {
	buf := beep.NewBuffer(format)
	buf.Append(NewOscillator(440, d, WaveSquare, SampleRate))
	return buf
}

func newTestMixer() *Mixer {
	return NewMixer(&sync.Mutex{}, toneBuffer(time.Second), toneBuffer(100*time.Millisecond))
}

// pull streams n samples and reports whether any were non-zero.
func pull(m *Mixer, n int) bool {
	samples := make([][2]float64, n)
	m.Streamer().Stream(samples)
	for _, s := range samples {
		if s[0] != 0 || s[1] != 0 {
			return true
		}
	}
	return false
}

func TestMixerIdleIsSilent(t *testing.T) {
	m := newTestMixer()

	if pull(m, 512) {
		t.Error("idle mixer produced sound")
	}
	if m.Position(core.ChannelMusic) != -1 || m.Playing(core.ChannelMusic) {
		t.Error("music should be idle")
	}
}

func TestMixerMusicPlayPauseRewind(t *testing.T) {
	m := newTestMixer()

	m.Apply(core.ChannelMusic, core.OpRewind)
	if m.Playing(core.ChannelMusic) {
		t.Fatal("rewind alone should not start playback")
	}
	m.Apply(core.ChannelMusic, core.OpPlay)
	if !m.Playing(core.ChannelMusic) {
		t.Fatal("music should be playing")
	}

	if !pull(m, 1000) {
		t.Error("playing music produced silence")
	}
	if pos := m.Position(core.ChannelMusic); pos != 1000 {
		t.Errorf("position=%d, expected 1000", pos)
	}

	m.Apply(core.ChannelMusic, core.OpPause)
	if pull(m, 1000) {
		t.Error("paused music produced sound")
	}
	if pos := m.Position(core.ChannelMusic); pos != 1000 {
		t.Errorf("paused position moved to %d", pos)
	}

	m.Apply(core.ChannelMusic, core.OpRewind)
	if pos := m.Position(core.ChannelMusic); pos != 0 {
		t.Errorf("rewound position=%d, expected 0", pos)
	}
	if m.Playing(core.ChannelMusic) {
		t.Error("rewind should keep the pause state")
	}
}

func TestMixerMusicLoops(t *testing.T) {
	m := newTestMixer()
	m.Apply(core.ChannelMusic, core.OpPlay)

	n := SampleRate.N(time.Second)
	pull(m, n+100)

	if !m.Playing(core.ChannelMusic) {
		t.Error("music stopped after one pass")
	}
	if pos := m.Position(core.ChannelMusic); pos >= n {
		t.Errorf("position=%d, expected to wrap below %d", pos, n)
	}
}

func TestMixerEffectIsOneShot(t *testing.T) {
	m := newTestMixer()
	m.Apply(core.ChannelEffect, core.OpRewind)
	m.Apply(core.ChannelEffect, core.OpPlay)

	pull(m, SampleRate.N(200*time.Millisecond))
	if m.Playing(core.ChannelEffect) {
		t.Error("effect should finish after its length")
	}

	m.Apply(core.ChannelEffect, core.OpPlay)
	if !m.Playing(core.ChannelEffect) || m.Position(core.ChannelEffect) != 0 {
		t.Error("play after the end should start again from the top")
	}
	if !pull(m, 256) {
		t.Error("replayed effect produced silence")
	}
}

func TestMixerMute(t *testing.T) {
	m := newTestMixer()
	m.Apply(core.ChannelMusic, core.OpPlay)

	m.SetMuted(true)
	if !m.Muted() {
		t.Fatal("mixer should report muted")
	}
	if pull(m, 512) {
		t.Error("muted mixer produced sound")
	}
	if pos := m.Position(core.ChannelMusic); pos != 512 {
		t.Errorf("muted playback should still advance, position=%d", pos)
	}

	m.SetMuted(false)
	if !pull(m, 512) {
		t.Error("unmuted mixer produced silence")
	}
}

func TestLoadSourceMissingFile(t *testing.T) {
	if _, err := loadSource("/nonexistent/cow.wav", CrashTone); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadSourceBuiltin(t *testing.T) {
	buf, err := loadSource("", CrashTone)
	if err != nil {
		t.Fatal(err)
	}
	want := SampleRate.N(crashDuration)
	if buf.Len() < want-1 || buf.Len() > want+1 {
		t.Errorf("crash tone is %d samples, expected about %d", buf.Len(), want)
	}
}
