// Package audio performs the sound effects emitted by game steps.
//
// A game never talks to an audio device. Each step returns core.Effect
// values and the platform hands them to a Service after the step.
package audio

import (
	"sync"

	"github.com/vovakirdan/cowdodge/internal/core"
)

// Service plays the two game channels: a looping music track and a
// one-shot sound effect. Calls are fire-and-forget.
type Service interface {
	Apply(ch core.Channel, op core.AudioOp)
	SetMuted(muted bool)
	Muted() bool
	Close() error
}

// Perform applies effects in order.
func Perform(svc Service, effects []core.Effect) {
	if svc == nil {
		return
	}
	for _, e := range effects {
		svc.Apply(e.Channel, e.Op)
	}
}

// ToggleMute flips the mute state and returns the new value.
func ToggleMute(svc Service) bool {
	m := !svc.Muted()
	svc.SetMuted(m)
	return m
}

// Nop is a silent service, used when no audio device is available and
// for SSH sessions.
type Nop struct {
	mu    sync.Mutex
	muted bool
}

// NewNop creates a silent service.
func NewNop() *Nop {
	return &Nop{}
}

func (n *Nop) Apply(core.Channel, core.AudioOp) {}

func (n *Nop) SetMuted(muted bool) {
	n.mu.Lock()
	n.muted = muted
	n.mu.Unlock()
}

func (n *Nop) Muted() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.muted
}

func (n *Nop) Close() error { return nil }

// Recorder remembers every effect it is asked to perform.
type Recorder struct {
	mu      sync.Mutex
	effects []core.Effect
	muted   bool
	closed  bool
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Apply(ch core.Channel, op core.AudioOp) {
	r.mu.Lock()
	r.effects = append(r.effects, core.Effect{Channel: ch, Op: op})
	r.mu.Unlock()
}

func (r *Recorder) SetMuted(muted bool) {
	r.mu.Lock()
	r.muted = muted
	r.mu.Unlock()
}

func (r *Recorder) Muted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.muted
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}

// Effects returns a copy of everything applied so far.
func (r *Recorder) Effects() []core.Effect {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.Effect, len(r.effects))
	copy(out, r.effects)
	return out
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
