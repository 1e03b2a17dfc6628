package cowdodge

import (
	"math"

	"github.com/vovakirdan/cowdodge/internal/core"
)

// HandleInput applies a single action to the state machine.
// Actions that mean nothing in the current phase are ignored.
func HandleInput(s *State, a core.Action) []core.Effect {
	switch a {
	case core.ActionPrimary:
		if s.Phase == PhaseNotStarted || s.Phase == PhaseGameOver {
			return s.start()
		}
	case core.ActionUp:
		if s.Phase == PhaseRunning {
			s.Player.VerticalSpeed = s.Player.JumpStrength
		}
	case core.ActionDown:
		if s.Phase == PhaseRunning {
			s.Player.VerticalSpeed = math.Abs(s.Player.JumpStrength)
		}
	}
	return nil
}
