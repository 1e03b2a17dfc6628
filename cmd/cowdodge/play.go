package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cowdodge/internal/audio"
	"github.com/vovakirdan/cowdodge/internal/config"
	"github.com/vovakirdan/cowdodge/internal/core"
	"github.com/vovakirdan/cowdodge/internal/games/cowdodge"
	"github.com/vovakirdan/cowdodge/internal/platform/tui"
	"github.com/vovakirdan/cowdodge/internal/replay"
	"github.com/vovakirdan/cowdodge/internal/storage"
)

var (
	flagConfig string
	flagRecord bool
	flagMusic  string
	flagSFX    string
	flagMute   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Cow Dodge",
	Long: `Start a game in this terminal.

Controls:
  Space      - Start / restart after game over
  Up/Down    - Steer the cow
  M          - Toggle sound
  Ctrl+S     - Save a text screenshot to ~/.cowdodge/screenshots
  Q/Ctrl+C   - Quit

With --record the input log is saved to the run database on quit and can
be checked later with 'cowdodge replay run <id>'.

Examples:
  cowdodge play
  cowdodge play --seed 42 --record
  cowdodge play --config ./my-cowdodge.yaml
  cowdodge play --music ./moo.wav --sfx ./splat.wav`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the session for replay")
	playCmd.Flags().StringVar(&flagMusic, "music", "", "WAV file for background music (overrides config)")
	playCmd.Flags().StringVar(&flagSFX, "sfx", "", "WAV file for the collision sound (overrides config)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound off")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	gameCfg, err := config.LoadCowDodge(flagConfig)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	sound := openAudio(gameCfg)
	defer sound.Close()

	var store *storage.Store
	if flagRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("recording disabled: could not open run database", "error", err)
		} else {
			defer store.Close()
		}
	}

	game := cowdodge.NewWithConfig(gameCfg)
	final, err := tui.Run(game, cfg, tui.Options{
		Audio:  sound,
		Record: store != nil,
		User:   os.Getenv("USER"),
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	fmt.Printf("Final score: %d\n", final.State().Score)
	if n := final.Dropped(); n > 0 {
		logger.Debug("inputs dropped by a full queue", "count", n)
	}

	if sess := final.Session(); sess != nil && store != nil && sess.Recorder.Frames() > 0 {
		id, err := replay.Save(store, *sess)
		if err != nil {
			return err
		}
		logger.Info("run saved", "id", id, "frames", sess.Recorder.Frames(), "score", sess.Score)
	}
	return nil
}

// openAudio opens the sound device, falling back to silence.
func openAudio(gameCfg config.CowDodgeConfig) audio.Service {
	opts := audio.Options{
		MusicPath:  gameCfg.Assets.Music,
		EffectPath: gameCfg.Assets.Effect,
		Muted:      flagMute,
	}
	if flagMusic != "" {
		opts.MusicPath = flagMusic
	}
	if flagSFX != "" {
		opts.EffectPath = flagSFX
	}

	svc, err := audio.Open(opts)
	if err != nil {
		logger.Warn("sound disabled", "error", err)
	}
	return svc
}
