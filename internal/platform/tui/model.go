package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cowdodge/internal/audio"
	"github.com/vovakirdan/cowdodge/internal/config"
	"github.com/vovakirdan/cowdodge/internal/core"
	"github.com/vovakirdan/cowdodge/internal/registry"
	"github.com/vovakirdan/cowdodge/internal/replay"
)

// statusTicks is how long a status message stays on the help line.
const statusTicks = 120

// queueSizer is implemented by games that choose their input buffer size.
type queueSizer interface {
	QueueSize() int
}

// configEncoder is implemented by games whose runs can be recorded.
type configEncoder interface {
	ConfigYAML() ([]byte, error)
}

// stateHasher is implemented by games that can fingerprint their state.
type stateHasher interface {
	Checksum() string
}

// Options configures a game session.
type Options struct {
	Audio  audio.Service // nil = silent
	Record bool          // Keep an input log for replay
	User   string        // Recorded with the run
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	queue     *core.InputQueue
	audio     audio.Service
	keys      KeyMap
	help      help.Model
	gameState core.GameState
	session   *replay.Session // nil when not recording
	status    string
	statusTTL int
	quitting  bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	svc := opts.Audio
	if svc == nil {
		svc = audio.NewNop()
	}

	m := Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, playfieldRows(cfg.ScreenH)),
		config: cfg,
		audio:  svc,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	m.help.Width = cfg.ScreenW

	// Reset before sizing the queue: the game loads its configuration here.
	game.Reset(cfg)
	m.gameState = game.State()

	size := core.DefaultQueueSize
	if qs, ok := game.(queueSizer); ok && qs.QueueSize() > 0 {
		size = qs.QueueSize()
	}
	m.queue = core.NewInputQueue(size)

	if opts.Record {
		if enc, ok := game.(configEncoder); ok {
			if data, err := enc.ConfigYAML(); err == nil {
				m.session = &replay.Session{
					User:     opts.User,
					Runtime:  cfg,
					Config:   data,
					Recorder: replay.NewRecorder(),
				}
			}
		}
	}
	return m
}

// playfieldRows leaves the last terminal row for the help line.
func playfieldRows(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues game actions and runs platform commands.
// Actions take effect at the start of the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.keys.MapKey(msg)

	switch cmd {
	case CommandQuit:
		m.quitting = true
		return m, tea.Quit
	case CommandMute:
		if audio.ToggleMute(m.audio) {
			m.setStatus("muted")
		} else {
			m.setStatus("sound on")
		}
		return m, nil
	case CommandScreenshot:
		if path, err := m.saveScreenshot(); err != nil {
			m.setStatus("screenshot failed: " + err.Error())
		} else {
			m.setStatus("saved " + path)
		}
		return m, nil
	}

	m.queue.Push(action)
	return m, nil
}

// handleResize rescales the playfield. The game keeps running: it
// simulates in logical units, independent of the terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldRows(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick drains the queue into one input frame, steps the game and
// performs the resulting audio effects.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	frame := m.queue.Drain()
	if m.session != nil {
		m.session.Recorder.Record(frame)
	}

	result := m.game.Step(frame)
	m.gameState = result.State
	audio.Perform(m.audio, result.Effects)

	if m.session != nil {
		m.session.Score = m.gameState.Score
		if h, ok := m.game.(stateHasher); ok {
			m.session.Checksum = h.Checksum()
		}
	}

	if m.statusTTL > 0 {
		m.statusTTL--
		if m.statusTTL == 0 {
			m.status = ""
		}
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusTTL = statusTicks
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, config.AppDir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	line := m.status
	if line == "" {
		line = m.help.View(m.keys)
	}
	if m.session != nil {
		line = "● rec  " + line
	}
	return RenderScreen(m.screen) + "\n" + statusStyle.Render(line)
}

// State returns the last game state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// Session returns the recording, or nil when not recording.
func (m Model) Session() *replay.Session {
	return m.session
}

// Dropped returns how many inputs were discarded because the queue was full.
func (m Model) Dropped() int {
	return m.queue.Dropped()
}

// Run starts the Bubble Tea program and returns the final model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (Model, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		model = m
	}
	return model, err
}
