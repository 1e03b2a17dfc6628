package cowdodge

import (
	"fmt"

	"github.com/vovakirdan/cowdodge/internal/config"
	"github.com/vovakirdan/cowdodge/internal/core"
)

// HUD placement in logical units.
const (
	scoreX         = 10
	scoreY         = 30
	gameOverGap    = 40 // Image bottom to "Game Over" baseline
	restartLineGap = 30 // "Game Over" baseline to restart prompt baseline
)

// Skin is the resolved look of the game: image handles, fonts and texts.
type Skin struct {
	Player   core.Image
	Obstacle core.Image
	GameOver core.Image

	ScoreFont core.Font
	TitleFont core.Font
	HintFont  core.Font

	StartPrompt   string
	GameOverText  string
	RestartPrompt string
}

// NewSkin resolves the asset and text sections of a configuration.
func NewSkin(cfg config.CowDodgeConfig) Skin {
	textColor, _ := core.ParseColor(cfg.Text.Color)
	return Skin{
		Player:        cfg.Assets.Player.Image("cow"),
		Obstacle:      cfg.Assets.Obstacle.Image("bug"),
		GameOver:      cfg.Assets.GameOver.Image("game_over"),
		ScoreFont:     core.Font{Size: cfg.Text.ScoreSize, Color: textColor},
		TitleFont:     core.Font{Size: cfg.Text.TitleSize, Color: textColor},
		HintFont:      core.Font{Size: cfg.Text.HintSize, Color: textColor},
		StartPrompt:   cfg.Text.StartPrompt,
		GameOverText:  cfg.Text.GameOver,
		RestartPrompt: cfg.Text.Restart,
	}
}

// Render paints the state onto dst. It only reads s.
func Render(s *State, dst core.Surface, skin Skin) {
	dst.Clear()

	dst.DrawImage(skin.Player, s.Player.Rect())
	for _, o := range s.Obstacles {
		dst.DrawImage(skin.Obstacle, o.Rect())
	}

	score := DisplayScore(s.Score)
	dst.DrawText(fmt.Sprintf("Score: %d", score), scoreX, scoreY, skin.ScoreFont)

	w := s.Config.Playfield.Width
	h := s.Config.Playfield.Height

	switch s.Phase {
	case PhaseNotStarted:
		drawCentered(dst, w, h/2, skin.StartPrompt, skin.TitleFont)

	case PhaseGameOver:
		img := skin.GameOver
		imgX := (w - img.Width) / 2
		imgY := (h - img.Height) / 2
		dst.DrawImage(img, core.NewRectF(imgX, imgY, img.Width, img.Height))

		titleY := imgY + img.Height + gameOverGap
		drawCentered(dst, w, titleY, fmt.Sprintf("%s%d", skin.GameOverText, score), skin.TitleFont)
		drawCentered(dst, w, titleY+restartLineGap, skin.RestartPrompt, skin.HintFont)
	}
}

// drawCentered draws text horizontally centered on a playfield of width w.
func drawCentered(dst core.Surface, w, baseline float64, text string, font core.Font) {
	x := (w - dst.MeasureText(text, font)) / 2
	dst.DrawText(text, x, baseline, font)
}
