package cowdodge

import "github.com/vovakirdan/cowdodge/internal/core"

// Rand is the randomness the obstacle manager needs.
// *rand.Rand satisfies it; tests can pass a fixed sequence.
type Rand interface {
	Float64() float64 // Uniform in [0, 1)
}

// UpdateObstacles runs one frame of the obstacle manager: spawn on cadence,
// move every bug left, then drop the ones that have left the playfield.
func UpdateObstacles(s *State, rng Rand) {
	s.SpawnCounter++
	if s.SpawnCounter >= s.Config.Obstacles.SpawnRate {
		spawnObstacle(s, rng)
		s.SpawnCounter = 0
	}

	advanceObstacles(s)
	pruneObstacles(s)
}

// spawnObstacle adds a bug at the right edge, near the cow's height.
func spawnObstacle(s *State, rng Rand) {
	oc := s.Config.Obstacles
	offset := (rng.Float64()*2 - 1) * oc.SpawnVariance
	y := core.ClampF(s.Player.Y+offset, 0, s.Config.Playfield.Height-oc.Height)

	s.Obstacles = append(s.Obstacles, Obstacle{
		X:      s.Config.Playfield.Width,
		Y:      y,
		Width:  oc.Width,
		Height: oc.Height,
	})
}

// advanceObstacles moves every bug left by the fixed speed.
func advanceObstacles(s *State) {
	speed := s.Config.Obstacles.Speed
	for i := range s.Obstacles {
		s.Obstacles[i].X -= speed
	}
}

// pruneObstacles keeps only bugs whose right edge is still on the playfield.
// Single filtering pass; survivors keep their relative order.
func pruneObstacles(s *State) {
	live := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		if o.X+o.Width > 0 {
			live = append(live, o)
		}
	}
	s.Obstacles = live
}
