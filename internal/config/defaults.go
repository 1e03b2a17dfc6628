package config

import (
	_ "embed"
)

//go:embed defaults/cowdodge.yaml
var defaultCowDodgeYAML []byte

// DefaultCowDodgeConfig returns the built-in configuration.
// It mirrors defaults/cowdodge.yaml and is used if the embedded file fails to parse.
func DefaultCowDodgeConfig() CowDodgeConfig {
	return CowDodgeConfig{
		Playfield: PlayfieldConfig{
			Width:  800,
			Height: 400,
		},
		Player: PlayerConfig{
			X:            50,
			Y:            200,
			Width:        80,
			Height:       60,
			Gravity:      0.1,
			JumpStrength: -5,
		},
		Obstacles: ObstacleConfig{
			Width:         40,
			Height:        40,
			SpawnRate:     150,
			Speed:         1.5,
			SpawnVariance: 100,
		},
		Score: ScoreConfig{
			Increment: 0.01,
		},
		Input: InputConfig{
			QueueSize: 8,
		},
		Text: TextConfig{
			Color:       "default",
			ScoreSize:   20,
			TitleSize:   30,
			HintSize:    20,
			StartPrompt: "Press Space to Start",
			GameOver:    "Game Over! Score: ",
			Restart:     "Press Space to Restart",
		},
		Assets: AssetsConfig{
			Player:   SpriteConfig{Glyph: "▓", Color: "white"},
			Obstacle: SpriteConfig{Glyph: "✱", Color: "bright_green"},
			GameOver: SpriteConfig{
				Glyph:  " ",
				Color:  "red",
				Width:  300,
				Height: 100,
				Framed: true,
				Label:  "GAME OVER",
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultCowDodgeYAML
}
