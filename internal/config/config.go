// Package config provides YAML-based game configuration loading and
// environment overrides for runtime settings.
package config

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/cowdodge/internal/core"
)

// CowDodgeConfig contains all configuration for the Cow Dodge game.
// Every speed and acceleration is per frame; none is scaled by wall-clock time.
type CowDodgeConfig struct {
	Playfield PlayfieldConfig `yaml:"playfield"`
	Player    PlayerConfig    `yaml:"player"`
	Obstacles ObstacleConfig  `yaml:"obstacles"`
	Score     ScoreConfig     `yaml:"score"`
	Input     InputConfig     `yaml:"input"`
	Text      TextConfig      `yaml:"text"`
	Assets    AssetsConfig    `yaml:"assets"`
}

// PlayfieldConfig is the logical drawing area.
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the cow.
type PlayerConfig struct {
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"` // Initial vertical position
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Gravity      float64 `yaml:"gravity"`
	JumpStrength float64 `yaml:"jump_strength"` // Upward speed; must be negative
}

// ObstacleConfig defines the bugs.
type ObstacleConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	SpawnRate     int     `yaml:"spawn_rate"` // Frames between spawns
	Speed         float64 `yaml:"speed"`
	SpawnVariance float64 `yaml:"spawn_variance"`
}

// ScoreConfig defines score accrual.
type ScoreConfig struct {
	Increment float64 `yaml:"increment"`
}

// InputConfig defines input buffering.
type InputConfig struct {
	QueueSize int `yaml:"queue_size"`
}

// TextConfig defines overlay text.
type TextConfig struct {
	Color       string  `yaml:"color"`
	ScoreSize   float64 `yaml:"score_size"`
	TitleSize   float64 `yaml:"title_size"`
	HintSize    float64 `yaml:"hint_size"`
	StartPrompt string  `yaml:"start_prompt"`
	GameOver    string  `yaml:"game_over"` // Prefix before the score
	Restart     string  `yaml:"restart_prompt"`
}

// AssetsConfig describes sprites and optional audio files.
type AssetsConfig struct {
	Player   SpriteConfig `yaml:"player"`
	Obstacle SpriteConfig `yaml:"obstacle"`
	GameOver SpriteConfig `yaml:"game_over"`
	Music    string       `yaml:"music"`  // WAV path; empty = built-in tone
	Effect   string       `yaml:"effect"` // WAV path; empty = built-in tone
}

// SpriteConfig describes how a sprite is painted on a character surface.
// Width and Height are only used for images drawn at natural size.
type SpriteConfig struct {
	Glyph  string  `yaml:"glyph"`
	Color  string  `yaml:"color"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Framed bool    `yaml:"framed"`
	Label  string  `yaml:"label"`
}

// Image converts the sprite description into a drawable image handle.
func (s SpriteConfig) Image(name string) core.Image {
	glyph, _ := utf8.DecodeRuneInString(s.Glyph)
	if glyph == utf8.RuneError {
		glyph = 0
	}
	color, _ := core.ParseColor(s.Color)
	return core.Image{
		Name:   name,
		Width:  s.Width,
		Height: s.Height,
		Glyph:  glyph,
		Color:  color,
		Framed: s.Framed,
		Label:  s.Label,
	}
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks the values the simulation relies on.
func (c CowDodgeConfig) Validate() error {
	floats := []struct {
		v    float64
		name string
	}{
		{c.Playfield.Width, "playfield.width"},
		{c.Playfield.Height, "playfield.height"},
		{c.Player.X, "player.x"},
		{c.Player.Y, "player.y"},
		{c.Player.Width, "player.width"},
		{c.Player.Height, "player.height"},
		{c.Player.Gravity, "player.gravity"},
		{c.Player.JumpStrength, "player.jump_strength"},
		{c.Obstacles.Width, "obstacles.width"},
		{c.Obstacles.Height, "obstacles.height"},
		{c.Obstacles.Speed, "obstacles.speed"},
		{c.Obstacles.SpawnVariance, "obstacles.spawn_variance"},
		{c.Score.Increment, "score.increment"},
		{c.Text.ScoreSize, "text.score_size"},
		{c.Text.TitleSize, "text.title_size"},
		{c.Text.HintSize, "text.hint_size"},
		{c.Assets.Player.Width, "assets.player.width"},
		{c.Assets.Player.Height, "assets.player.height"},
		{c.Assets.Obstacle.Width, "assets.obstacle.width"},
		{c.Assets.Obstacle.Height, "assets.obstacle.height"},
		{c.Assets.GameOver.Width, "assets.game_over.width"},
		{c.Assets.GameOver.Height, "assets.game_over.height"},
	}
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidConfig, f.name)
		}
	}

	checks := []struct {
		ok   bool
		what string
	}{
		{c.Playfield.Width > 0 && c.Playfield.Height > 0, "playfield size must be positive"},
		{c.Player.Width > 0 && c.Player.Height > 0, "player size must be positive"},
		{c.Player.Height <= c.Playfield.Height, "player taller than playfield"},
		{c.Player.Y >= 0 && c.Player.Y <= c.Playfield.Height-c.Player.Height, "player.y outside the playfield"},
		{c.Player.JumpStrength < 0, "player.jump_strength must be negative"},
		{c.Obstacles.Width > 0 && c.Obstacles.Height > 0, "obstacle size must be positive"},
		{c.Obstacles.Height <= c.Playfield.Height, "obstacle taller than playfield"},
		{c.Obstacles.SpawnRate > 0, "obstacles.spawn_rate must be positive"},
		{c.Obstacles.Speed > 0, "obstacles.speed must be positive"},
		{c.Obstacles.SpawnVariance >= 0, "obstacles.spawn_variance must not be negative"},
		{c.Score.Increment >= 0, "score.increment must not be negative"},
		{c.Input.QueueSize > 0, "input.queue_size must be positive"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, chk.what)
		}
	}
	return nil
}
