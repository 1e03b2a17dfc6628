package cowdodge

import "github.com/vovakirdan/cowdodge/internal/core"

// CheckCollision tests the cow against every live bug. On the first hit it
// ends the round and returns the audio effects for the crash.
func CheckCollision(s *State) (bool, []core.Effect) {
	player := s.Player.Rect()
	for _, o := range s.Obstacles {
		if player.Overlaps(o.Rect()) {
			s.Phase = PhaseGameOver
			return true, []core.Effect{
				{Channel: core.ChannelMusic, Op: core.OpPause},
				{Channel: core.ChannelEffect, Op: core.OpRewind},
				{Channel: core.ChannelEffect, Op: core.OpPlay},
			}
		}
	}
	return false, nil
}
