package cowdodge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/cowdodge/internal/config"
	"github.com/vovakirdan/cowdodge/internal/core"
	"github.com/vovakirdan/cowdodge/internal/registry"
)

func newTestGame(seed int64) *Game {
	g := NewWithConfig(config.DefaultCowDodgeConfig())
	rc := core.DefaultConfig()
	rc.Seed = seed
	g.Reset(rc)
	return g
}

func TestStepFrozenOutsideRunning(t *testing.T) {
	s := testState()

	for i := 0; i < 300; i++ {
		Step(s, core.InputFrame{}, fixedRand(0.5))
	}
	if s.Score != 0 || s.SpawnCounter != 0 || len(s.Obstacles) != 0 || s.Player.Y != 200 {
		t.Errorf("state advanced before start: %+v", s)
	}

	s.Phase = PhaseGameOver
	s.Score = 4.2
	Step(s, core.NewInputFrame(core.ActionUp), fixedRand(0.5))
	if s.Score != 4.2 || s.Player.VerticalSpeed != 0 {
		t.Errorf("state advanced after game over: score=%f speed=%f", s.Score, s.Player.VerticalSpeed)
	}
}

func TestStepScoresWhileRunning(t *testing.T) {
	s := runningState()
	s.Config.Obstacles.SpawnRate = 1 << 30

	for i := 0; i < 150; i++ {
		Step(s, core.InputFrame{}, fixedRand(0.5))
	}

	if DisplayScore(s.Score) != 1 {
		t.Errorf("display score after 150 frames = %d (raw %f), expected 1", DisplayScore(s.Score), s.Score)
	}
}

func TestStepCollisionFrameDoesNotScore(t *testing.T) {
	s := runningState()
	s.Score = 0.5
	s.Obstacles = append(s.Obstacles, Obstacle{X: 100, Y: 210, Width: 40, Height: 40})

	effects := Step(s, core.InputFrame{}, fixedRand(0.5))

	if s.Phase != PhaseGameOver {
		t.Fatalf("phase=%v, expected game_over", s.Phase)
	}
	if s.Score != 0.5 {
		t.Errorf("score=%f, collision frame should not score", s.Score)
	}
	if len(effects) != 3 || effects[0].Channel != core.ChannelMusic || effects[0].Op != core.OpPause {
		t.Errorf("effects=%v, expected the crash sequence", effects)
	}
}

func TestStepStartAndSteerInOneFrame(t *testing.T) {
	s := testState()

	effects := Step(s, core.NewInputFrame(core.ActionPrimary, core.ActionUp), fixedRand(0.5))

	if s.Phase != PhaseRunning {
		t.Fatalf("phase=%v, expected running", s.Phase)
	}
	if !approx(s.Player.Y, 195) || !approx(s.Player.VerticalSpeed, -4.9) {
		t.Errorf("y=%f speed=%f, expected y=195 speed=-4.9", s.Player.Y, s.Player.VerticalSpeed)
	}
	if len(effects) != 2 || effects[1].Op != core.OpPlay {
		t.Errorf("effects=%v, expected music rewind+play", effects)
	}
	if !approx(s.Score, 0.01) {
		t.Errorf("score=%f, the start frame should already score", s.Score)
	}
}

func TestGameDeterminism(t *testing.T) {
	a := newTestGame(42)
	b := newTestGame(42)

	for frame := 0; frame < 3000; frame++ {
		var in core.InputFrame
		switch {
		case frame%400 == 0:
			in.Set(core.ActionPrimary)
		case frame%37 == 0:
			in.Set(core.ActionUp)
		case frame%53 == 0:
			in.Set(core.ActionDown)
		}

		ra := a.Step(in)
		rb := b.Step(in)

		if ra.State != rb.State {
			t.Fatalf("frame %d: states diverged: %+v vs %+v", frame, ra.State, rb.State)
		}
		if a.Snapshot() != b.Snapshot() {
			t.Fatalf("frame %d: snapshots diverged: %+v vs %+v", frame, a.Snapshot(), b.Snapshot())
		}
	}
}

func TestGameResetAndState(t *testing.T) {
	g := newTestGame(1)

	st := g.State()
	if st.Started || st.GameOver || st.Score != 0 {
		t.Errorf("fresh game state = %+v", st)
	}

	res := g.Step(core.NewInputFrame(core.ActionPrimary))
	if !res.State.Started || res.State.GameOver {
		t.Errorf("after start state = %+v", res.State)
	}
	if g.Snapshot().Tick != 1 {
		t.Errorf("tick=%d, expected 1", g.Snapshot().Tick)
	}

	g.Reset(core.DefaultConfig())
	snap := g.Snapshot()
	if snap.Tick != 0 || snap.Phase != PhaseNotStarted || snap.Obstacles != 0 {
		t.Errorf("after reset snapshot = %+v", snap)
	}
}

func TestGameOverState(t *testing.T) {
	g := newTestGame(1)
	g.Step(core.NewInputFrame(core.ActionPrimary))
	g.state.Obstacles = append(g.state.Obstacles, Obstacle{X: 60, Y: 210, Width: 40, Height: 40})

	res := g.Step(core.InputFrame{})

	if !res.State.GameOver || !res.State.Started {
		t.Errorf("state = %+v, expected game over", res.State)
	}
	if len(res.Effects) != 3 {
		t.Errorf("effects = %v, expected the crash sequence", res.Effects)
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatalf("%q not registered", GameID)
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Cow Dodge" {
		t.Errorf("title=%q", g.Title())
	}
}

func TestConfigYAMLRoundTrips(t *testing.T) {
	g := newTestGame(1)
	data, err := g.ConfigYAML()
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Obstacles.SpawnRate != g.Config().Obstacles.SpawnRate || g.QueueSize() != 8 {
		t.Errorf("config mismatch: %+v", cfg.Obstacles)
	}
}

func TestSetConfigPathAppliesToRegistryGames(t *testing.T) {
	t.Cleanup(func() { registryConfig = nil })

	path := filepath.Join(t.TempDir(), "cowdodge.yaml")
	if err := os.WriteFile(path, []byte("obstacles:\n  spawn_rate: 30\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := SetConfigPath(path); err != nil {
		t.Fatalf("SetConfigPath() failed: %v", err)
	}

	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatal(err)
	}
	g.Reset(core.DefaultConfig())
	if rate := g.(*Game).Config().Obstacles.SpawnRate; rate != 30 {
		t.Errorf("spawn rate = %d, expected 30 from the config file", rate)
	}
}

func TestSetConfigPathRejectsBadFile(t *testing.T) {
	t.Cleanup(func() { registryConfig = nil })

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("player:\n  gravity: .nan\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := SetConfigPath(path); err == nil {
		t.Fatal("expected an invalid config to fail")
	}
	if registryConfig != nil {
		t.Error("a failed load must not replace the registry config")
	}

	if err := SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected a missing file to fail")
	}
}
