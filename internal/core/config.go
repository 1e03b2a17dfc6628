package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the platform-facing summary of a game.
type GameState struct {
	Score    int  // Displayed (floored) score
	Started  bool // Whether the first round has begun
	GameOver bool // Whether the current round has ended
}

// StepResult is returned by Game.Step() after each simulation tick.
// Effects are side effects the platform performs after the step, in order.
type StepResult struct {
	State   GameState
	Effects []Effect
}
