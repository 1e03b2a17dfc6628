// cowdodge is a terminal arcade game: steer a cow up and down and dodge
// the bugs flying in from the right.
//
// Usage:
//
//	cowdodge play               - Play in this terminal
//	cowdodge list               - List registered games
//	cowdodge serve              - Start SSH server for remote play
//	cowdodge replay list        - Show recorded runs
//	cowdodge replay run <id>    - Re-simulate a recorded run
//	cowdodge replay rm <id>     - Delete a recorded run
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set run database path (default: ~/.cowdodge/runs.db)
//
// Unset flags fall back to COWDODGE_FPS, COWDODGE_SEED, COWDODGE_DB and
// COWDODGE_CONFIG, read from the environment or a .env file.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cowdodge/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/cowdodge/internal/games/cowdodge"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "cowdodge",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cowdodge",
	Short: "Cow Dodge - dodge the bugs in your terminal",
	Long: `Cow Dodge is a side-scrolling arcade game for the terminal.
Press space to start, steer with the up and down arrows, and keep the
cow away from the bugs for as long as you can.

Available commands:
  play     - Play a game in this terminal
  list     - Show all registered games
  serve    - Start SSH server for remote play
  replay   - List, re-simulate and delete recorded runs

Examples:
  cowdodge play
  cowdodge play --seed 42 --record
  cowdodge serve --ssh :2222
  cowdodge replay list`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: applyEnv,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/"+config.AppDir+"/runs.db", "Path to the run database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
}

// applyEnv fills every flag the user did not set from the environment.
func applyEnv(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("ignoring .env", "error", err)
	}

	o, err := config.ReadOverrides()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if o.FPS != nil && !flags.Changed("fps") {
		flagFPS = *o.FPS
	}
	if o.Seed != nil && !flags.Changed("seed") {
		flagSeed = *o.Seed
	}
	if o.DBPath != "" && !flags.Changed("db") {
		flagDBPath = o.DBPath
	}
	if o.ConfigPath != "" && flags.Lookup("config") != nil && !flags.Changed("config") {
		flagConfig = o.ConfigPath
	}

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	return nil
}
