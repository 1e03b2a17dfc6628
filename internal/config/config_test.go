package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultCowDodgeConfig() {
		t.Errorf("embedded YAML and DefaultCowDodgeConfig differ:\n%+v\n%+v", cfg, DefaultCowDodgeConfig())
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("obstacles:\n  speed: 3\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Obstacles.Speed != 3 {
		t.Errorf("speed = %f, expected 3", cfg.Obstacles.Speed)
	}
	if cfg.Obstacles.SpawnRate != 150 || cfg.Player.Gravity != 0.1 {
		t.Error("unset keys should keep their defaults")
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero spawn rate", "obstacles:\n  spawn_rate: 0\n"},
		{"negative variance", "obstacles:\n  spawn_variance: -1\n"},
		{"tall obstacle", "obstacles:\n  height: 500\n"},
		{"zero queue", "input:\n  queue_size: 0\n"},
		{"zero playfield", "playfield:\n  width: 0\n"},
		{"NaN gravity", "player:\n  gravity: .nan\n"},
		{"NaN jump strength", "player:\n  jump_strength: .nan\n"},
		{"infinite gravity", "player:\n  gravity: .inf\n"},
		{"NaN start y", "player:\n  y: .nan\n"},
		{"infinite playfield", "playfield:\n  height: .inf\n"},
		{"NaN score increment", "score:\n  increment: .nan\n"},
		{"start y above playfield", "player:\n  y: -1\n"},
		{"start y below floor", "player:\n  y: 341\n"},
		{"downward jump", "player:\n  jump_strength: 5\n"},
		{"zero jump", "player:\n  jump_strength: 0\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Parse() error = %v, expected ErrInvalidConfig", err)
			}
		})
	}

	if _, err := Parse([]byte("player: [")); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestParseAcceptsStartOnEdges(t *testing.T) {
	for _, y := range []string{"0", "340"} {
		if _, err := Parse([]byte("player:\n  y: " + y + "\n")); err != nil {
			t.Errorf("player.y=%s rejected: %v", y, err)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("score:\n  increment: 0.5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadCowDodge(path)
	if err != nil {
		t.Fatalf("LoadCowDodge() failed: %v", err)
	}
	if cfg.Score.Increment != 0.5 {
		t.Errorf("increment = %f, expected 0.5", cfg.Score.Increment)
	}

	if _, err := LoadCowDodge(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path should be an error")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	want := DefaultCowDodgeConfig()
	want.Obstacles.SpawnRate = 42

	data, err := Marshal(want)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch:\n%+v\n%+v", got, want)
	}
}

func TestSpriteImage(t *testing.T) {
	img := SpriteConfig{Glyph: "✱", Color: "bright_green", Label: "x"}.Image("bug")
	if img.Name != "bug" || img.Glyph != '✱' || img.Label != "x" {
		t.Errorf("Image() = %+v", img)
	}

	empty := SpriteConfig{Color: "no-such-colour"}.Image("blank")
	if empty.Glyph != 0 {
		t.Errorf("empty glyph should map to 0, got %q", empty.Glyph)
	}
}

func TestReadOverrides(t *testing.T) {
	t.Setenv(EnvFPS, "30")
	t.Setenv(EnvSeed, "-7")
	t.Setenv(EnvDB, "/tmp/runs.db")
	t.Setenv(EnvConfig, "")

	o, err := ReadOverrides()
	if err != nil {
		t.Fatalf("ReadOverrides() failed: %v", err)
	}
	if o.FPS == nil || *o.FPS != 30 {
		t.Errorf("FPS = %v, expected 30", o.FPS)
	}
	if o.Seed == nil || *o.Seed != -7 {
		t.Errorf("Seed = %v, expected -7", o.Seed)
	}
	if o.DBPath != "/tmp/runs.db" || o.ConfigPath != "" {
		t.Errorf("paths = %q, %q", o.DBPath, o.ConfigPath)
	}

	t.Setenv(EnvFPS, "fast")
	if _, err := ReadOverrides(); err == nil {
		t.Error("non-numeric FPS should fail")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("COWDODGE_CONFIG=from-dotenv.yaml\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfig, "")
	os.Unsetenv(EnvConfig)

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() failed: %v", err)
	}
	if got := os.Getenv(EnvConfig); got != "from-dotenv.yaml" {
		t.Errorf("%s = %q, expected from-dotenv.yaml", EnvConfig, got)
	}

	if err := LoadDotEnv(filepath.Join(dir, "nothing.env")); err != nil {
		t.Errorf("missing files should be skipped, got %v", err)
	}
}
