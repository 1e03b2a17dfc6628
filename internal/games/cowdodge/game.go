package cowdodge

import (
	"math/rand"

	"github.com/vovakirdan/cowdodge/internal/config"
	"github.com/vovakirdan/cowdodge/internal/core"
	"github.com/vovakirdan/cowdodge/internal/registry"
)

// GameID is the registry identifier.
const GameID = "cowdodge"

// registryConfig is used by games created through the registry.
// nil means each game loads the default search path on Reset.
var registryConfig *config.CowDodgeConfig

// SetConfigPath loads and validates the configuration at path (or the
// default search path when empty) for games created through the registry.
// It must be called before games are created.
func SetConfigPath(path string) error {
	cfg, err := config.LoadCowDodge(path)
	if err != nil {
		return err
	}
	registryConfig = &cfg
	return nil
}

// Step runs one whole frame: queued input first, then physics, obstacles
// and collision, then score. Returns the effects to perform, in order.
func Step(s *State, in core.InputFrame, rng Rand) []core.Effect {
	var effects []core.Effect
	for _, a := range in.Actions {
		effects = append(effects, HandleInput(s, a)...)
	}

	if s.Phase != PhaseRunning {
		return effects
	}

	UpdatePlayer(s)
	UpdateObstacles(s, rng)

	if hit, fx := CheckCollision(s); hit {
		return append(effects, fx...)
	}

	s.Score += s.Config.Score.Increment
	return effects
}

// Game adapts State to the platform's registry.Game interface.
type Game struct {
	state   *State
	cfg     config.CowDodgeConfig
	fixed   bool // cfg was supplied by the caller; don't reload on Reset
	skin    Skin
	rng     *rand.Rand
	runtime core.RuntimeConfig
	tick    uint64 // Ticks since Reset, in every phase
}

// New creates a game using the configuration loaded by SetConfigPath,
// or one that loads its configuration on Reset.
func New() *Game {
	if registryConfig != nil {
		return NewWithConfig(*registryConfig)
	}
	return &Game{}
}

// NewWithConfig creates a game bound to cfg.
func NewWithConfig(cfg config.CowDodgeConfig) *Game {
	return &Game{cfg: cfg, fixed: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Cow Dodge"
}

// Reset initializes the game, waiting for the start input.
// The seed fixes every obstacle position for the rest of the session,
// restarts included.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixed {
		cfg, err := config.LoadCowDodge("")
		if err != nil {
			cfg = config.DefaultCowDodgeConfig()
		}
		g.cfg = cfg
	}

	g.skin = NewSkin(g.cfg)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.state = NewState(g.cfg)
	g.tick = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	effects := Step(g.state, in, g.rng)
	return core.StepResult{State: g.State(), Effects: effects}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	surface := core.NewScreenSurface(dst, g.cfg.Playfield.Width, g.cfg.Playfield.Height)
	Render(g.state, surface, g.skin)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    DisplayScore(g.state.Score),
		Started:  g.state.Phase != PhaseNotStarted,
		GameOver: g.state.Phase == PhaseGameOver,
	}
}

// Config returns the configuration in use.
func (g *Game) Config() config.CowDodgeConfig {
	return g.cfg
}

// ConfigYAML encodes the configuration in use, for replay recording.
func (g *Game) ConfigYAML() ([]byte, error) {
	return config.Marshal(g.cfg)
}

// QueueSize returns how many inputs the platform should buffer per frame.
func (g *Game) QueueSize() int {
	return g.cfg.Input.QueueSize
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
