package cowdodge

import (
	"fmt"
	"hash/fnv"
	"strconv"
)

// Snapshot captures the game for determinism testing and replay checks.
type Snapshot struct {
	Tick          uint64
	Phase         Phase
	Score         float64
	DisplayScore  int
	PlayerY       float64
	VerticalSpeed float64
	Obstacles     int
	SpawnCounter  int
	Checksum      string // Hash of the whole simulation state
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.state
	return Snapshot{
		Tick:          g.tick,
		Phase:         s.Phase,
		Score:         s.Score,
		DisplayScore:  DisplayScore(s.Score),
		PlayerY:       s.Player.Y,
		VerticalSpeed: s.Player.VerticalSpeed,
		Obstacles:     len(s.Obstacles),
		SpawnCounter:  s.SpawnCounter,
		Checksum:      g.Checksum(),
	}
}

// Checksum hashes the tick count and every simulated value, obstacle
// positions included. Equal checksums mean the runs did not diverge.
func (g *Game) Checksum() string {
	s := g.state
	h := fnv.New64a()

	fmt.Fprintf(h, "T:%d;P:%d;S:%v;C:%d;", g.tick, s.Phase, s.Score, s.SpawnCounter)
	fmt.Fprintf(h, "Y:%v:%v;", s.Player.Y, s.Player.VerticalSpeed)

	fmt.Fprintf(h, "O:")
	for _, o := range s.Obstacles {
		fmt.Fprintf(h, "%v:%v,", o.X, o.Y)
	}

	return strconv.FormatUint(h.Sum64(), 16)
}
