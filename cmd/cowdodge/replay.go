package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cowdodge/internal/games/cowdodge"
	"github.com/vovakirdan/cowdodge/internal/replay"
	"github.com/vovakirdan/cowdodge/internal/storage"
)

var (
	flagReplayLimit   int
	flagReplayVerbose bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Inspect recorded runs",
	Long: `Recorded runs hold the seed, configuration and input log of a session.
Re-simulating a run checks that the game still plays it out to the same
score and final state.

Examples:
  cowdodge replay list
  cowdodge replay run 3f2a
  cowdodge replay rm 3f2a9c1e-...`,
}

var replayListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the most recent runs",
	Args:  cobra.NoArgs,
	RunE:  runReplayList,
}

var replayRunCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Re-simulate a run and compare its score",
	Long:  `Re-simulate a recorded run headlessly. <id> may be a unique prefix.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runReplayRun,
}

var replayRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplayRm,
}

func init() {
	replayListCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Maximum number of runs to show")
	replayRunCmd.Flags().BoolVarP(&flagReplayVerbose, "verbose", "v", false, "Log every phase change")

	replayCmd.AddCommand(replayListCmd)
	replayCmd.AddCommand(replayRunCmd)
	replayCmd.AddCommand(replayRmCmd)
}

func runReplayList(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(flagReplayLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play with 'cowdodge play --record' to record one.")
		return nil
	}

	fmt.Println(runsTable(runs).View())
	return nil
}

// runsTable lays out runs as a static table.
func runsTable(runs []storage.Run) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Date", Width: 16},
		{Title: "Player", Width: 12},
		{Title: "Seed", Width: 20},
		{Title: "FPS", Width: 4},
		{Title: "Frames", Width: 8},
		{Title: "Score", Width: 6},
	}

	rows := make([]table.Row, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, table.Row{
			shortID(r.ID),
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.User,
			strconv.FormatInt(r.Seed, 10),
			strconv.Itoa(r.TickRate),
			strconv.FormatUint(r.Frames, 10),
			strconv.Itoa(r.FinalScore),
		})
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = lipgloss.NewStyle() // Static output, no cursor

	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2), // Header and its border
		table.WithStyles(styles),
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runReplayRun(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	run, inputs, err := store.Run(args[0])
	if err != nil {
		return err
	}

	runLog := logger.With("run", shortID(run.ID))
	var progress func(cowdodge.Snapshot)
	if flagReplayVerbose {
		last := cowdodge.PhaseNotStarted
		progress = func(s cowdodge.Snapshot) {
			if s.Phase != last {
				runLog.Info("phase", "tick", s.Tick, "phase", s.Phase, "score", s.DisplayScore)
				last = s.Phase
			}
		}
	}

	res, err := replay.Simulate(*run, inputs, progress)
	if err != nil {
		return err
	}

	if !res.Match {
		runLog.Error("replay diverged",
			"recorded", run.FinalScore, "replayed", res.Final.DisplayScore,
			"recorded_state", run.Checksum, "replayed_state", res.Final.Checksum)
		return fmt.Errorf("run %s does not replay to its recorded state", shortID(run.ID))
	}
	runLog.Info("replay matches", "frames", res.Final.Tick, "score", res.Final.DisplayScore)
	return nil
}

func runReplayRm(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	run, _, err := store.Run(args[0])
	if err != nil {
		return err
	}
	if err := store.DeleteRun(run.ID); err != nil {
		return err
	}
	logger.Info("run deleted", "id", run.ID)
	return nil
}
