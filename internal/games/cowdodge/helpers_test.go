package cowdodge

import (
	"math"

	"github.com/vovakirdan/cowdodge/internal/config"
)

// seqRand returns its values in order, repeating the last one.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i]
	if r.i < len(r.vals)-1 {
		r.i++
	}
	return v
}

func fixedRand(v float64) *seqRand {
	return &seqRand{vals: []float64{v}}
}

func testState() *State {
	return NewState(config.DefaultCowDodgeConfig())
}

func runningState() *State {
	s := testState()
	s.start()
	return s
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
