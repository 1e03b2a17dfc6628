package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cowdodge/internal/games/cowdodge"
	"github.com/vovakirdan/cowdodge/internal/platform/tui"
	"github.com/vovakirdan/cowdodge/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeRecord bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Cow Dodge SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection plays its own game. Sound stays on the server side,
so remote sessions are silent. With --record every session is saved to
the run database when it ends.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.cowdodge/host_key

Examples:
  cowdodge serve                           # Listen on :23234 with auto-generated key
  cowdodge serve --ssh :2222               # Listen on port 2222
  cowdodge serve --host-key ./my_host_key  # Use specific host key
  cowdodge serve --record --db ./runs.db   # Record every session
  cowdodge serve --config ./cowdodge.yaml  # Serve a custom game config

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagServeRecord, "record", false, "Record every session for replay")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runServe(_ *cobra.Command, _ []string) error {
	if err := cowdodge.SetConfigPath(flagConfig); err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.GameID = cowdodge.GameID
	cfg.TickRate = flagFPS
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Logger = logger.WithPrefix("cowdodge-ssh")

	if flagServeRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("recording disabled: could not open run database", "error", err)
		} else {
			defer store.Close()
			cfg.Store = store
		}
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Starting Cow Dodge SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
