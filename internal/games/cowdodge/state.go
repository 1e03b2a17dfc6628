// Package cowdodge implements a side-scrolling dodge game.
// The player steers a cow up and down to avoid bugs flying in from the
// right while the score accrues every frame.
//
// All game data lives in a State value. Each subsystem is a plain function
// taking *State, so a test can build any situation as a fixture and step a
// single subsystem in isolation.
package cowdodge

import (
	"github.com/vovakirdan/cowdodge/internal/config"
	"github.com/vovakirdan/cowdodge/internal/core"
)

// Phase is the game state machine position.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Player is the cow. X, Width and Height never change.
type Player struct {
	X             float64
	Y             float64 // 0 = top of playfield
	Width         float64
	Height        float64
	VerticalSpeed float64 // Units per frame, positive = down
	Gravity       float64 // Added to VerticalSpeed every frame
	JumpStrength  float64 // Negative = upward
}

// Rect returns the player's collision box.
func (p Player) Rect() core.RectF {
	return core.NewRectF(p.X, p.Y, p.Width, p.Height)
}

// Obstacle is a bug. Only X changes after spawn.
type Obstacle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Rect returns the obstacle's collision box.
func (o Obstacle) Rect() core.RectF {
	return core.NewRectF(o.X, o.Y, o.Width, o.Height)
}

// State is the whole game: the only owner of the player, the live
// obstacles and the score.
type State struct {
	Phase        Phase
	Player       Player
	Obstacles    []Obstacle // Insertion order, oldest first
	Score        float64
	SpawnCounter int // Frames since the last spawn

	Config config.CowDodgeConfig // Read-only tuning
}

// NewState creates a game waiting for its first start input.
func NewState(cfg config.CowDodgeConfig) *State {
	s := &State{
		Phase:     PhaseNotStarted,
		Obstacles: make([]Obstacle, 0, 8),
		Config:    cfg,
	}
	s.resetEntities()
	return s
}

// resetEntities puts every entity back to its initial value.
func (s *State) resetEntities() {
	pc := s.Config.Player
	s.Player = Player{
		X:            pc.X,
		Y:            pc.Y,
		Width:        pc.Width,
		Height:       pc.Height,
		Gravity:      pc.Gravity,
		JumpStrength: pc.JumpStrength,
	}
	s.Obstacles = s.Obstacles[:0]
	s.Score = 0
	s.SpawnCounter = 0
}

// start enters Running from any phase with a full reset and returns the
// "begin background audio" effects.
func (s *State) start() []core.Effect {
	s.resetEntities()
	s.Phase = PhaseRunning
	return []core.Effect{
		{Channel: core.ChannelMusic, Op: core.OpRewind},
		{Channel: core.ChannelMusic, Op: core.OpPlay},
	}
}

// DisplayScore truncates the accumulated score for display.
func DisplayScore(score float64) int {
	if score <= 0 {
		return 0
	}
	return int(score)
}
