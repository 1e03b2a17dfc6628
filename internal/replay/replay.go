// Package replay records the input log of a session and re-simulates
// recorded runs headlessly.
package replay

import (
	"fmt"

	"github.com/vovakirdan/cowdodge/internal/config"
	"github.com/vovakirdan/cowdodge/internal/core"
	"github.com/vovakirdan/cowdodge/internal/games/cowdodge"
	"github.com/vovakirdan/cowdodge/internal/storage"
)

// Recorder collects every input frame handed to the game.
// Call Record once per step, empty frames included.
type Recorder struct {
	frames uint64
	inputs []storage.Input
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record logs the input applied at the next frame.
func (r *Recorder) Record(in core.InputFrame) {
	r.frames++
	for seq, a := range in.Actions {
		r.inputs = append(r.inputs, storage.Input{
			Frame:  r.frames,
			Seq:    seq,
			Action: a.String(),
		})
	}
}

// Frames returns how many frames were recorded.
func (r *Recorder) Frames() uint64 {
	return r.frames
}

// Inputs returns the non-empty input frames, oldest first.
func (r *Recorder) Inputs() []storage.Input {
	out := make([]storage.Input, len(r.inputs))
	copy(out, r.inputs)
	return out
}

// Session is what a recording needs to know about the game it watched.
type Session struct {
	User     string
	Runtime  core.RuntimeConfig
	Config   []byte // Encoded game configuration
	Score    int    // Displayed score at the end
	Checksum string // Game state hash at the end
	Recorder *Recorder
}

// Save stores a recorded session and returns its run ID.
func Save(store *storage.Store, s Session) (string, error) {
	run := storage.Run{
		GameID:     cowdodge.GameID,
		User:       s.User,
		Seed:       s.Runtime.Seed,
		TickRate:   s.Runtime.TickRate,
		ConfigYAML: string(s.Config),
		Frames:     s.Recorder.Frames(),
		FinalScore: s.Score,
		Checksum:   s.Checksum,
	}
	id, err := store.SaveRun(run, s.Recorder.Inputs())
	if err != nil {
		return "", fmt.Errorf("replay: %w", err)
	}
	return id, nil
}

// Result is the outcome of re-simulating a run.
type Result struct {
	Run   storage.Run
	Final cowdodge.Snapshot
	Match bool // Re-simulated score and state hash equal the recorded ones
}

// Frames groups a flat input log by frame.
func Frames(inputs []storage.Input) (map[uint64]core.InputFrame, error) {
	frames := make(map[uint64]core.InputFrame)
	for _, in := range inputs {
		a, ok := core.ParseAction(in.Action)
		if !ok {
			return nil, fmt.Errorf("replay: frame %d: unknown action %q", in.Frame, in.Action)
		}
		f := frames[in.Frame]
		f.Set(a)
		frames[in.Frame] = f
	}
	return frames, nil
}

// Simulate replays a run from its seed, configuration and input log.
// progress, if non-nil, is called after every step. A run stored without
// a checksum is matched on its score alone.
func Simulate(run storage.Run, inputs []storage.Input, progress func(cowdodge.Snapshot)) (Result, error) {
	cfg, err := config.Parse([]byte(run.ConfigYAML))
	if err != nil {
		return Result{}, fmt.Errorf("replay: run %s: %w", run.ID, err)
	}
	frames, err := Frames(inputs)
	if err != nil {
		return Result{}, err
	}

	g := cowdodge.NewWithConfig(cfg)
	rc := core.DefaultConfig()
	rc.TickRate = run.TickRate
	rc.Seed = run.Seed
	g.Reset(rc)

	for f := uint64(1); f <= run.Frames; f++ {
		g.Step(frames[f])
		if progress != nil {
			progress(g.Snapshot())
		}
	}

	final := g.Snapshot()
	return Result{
		Run:   run,
		Final: final,
		Match: final.DisplayScore == run.FinalScore &&
			(run.Checksum == "" || final.Checksum == run.Checksum),
	}, nil
}
