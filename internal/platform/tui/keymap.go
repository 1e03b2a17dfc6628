package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cowdodge/internal/core"
)

// KeyMap holds the key bindings for a game session.
// It satisfies help.KeyMap so the bindings document themselves.
type KeyMap struct {
	Start      key.Binding
	Up         key.Binding
	Down       key.Binding
	Mute       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Up, k.Down, k.Mute, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Up, k.Down},
		{k.Mute, k.Screenshot, k.Quit},
	}
}

// Command is a platform-level request that never reaches the game.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandMute
	CommandScreenshot
)

// MapKey translates a key message to a game action or a platform command.
// Unbound keys yield ActionNone and CommandNone.
func (k KeyMap) MapKey(msg tea.KeyMsg) (core.Action, Command) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionNone, CommandQuit
	case key.Matches(msg, k.Mute):
		return core.ActionNone, CommandMute
	case key.Matches(msg, k.Screenshot):
		return core.ActionNone, CommandScreenshot
	case key.Matches(msg, k.Start):
		return core.ActionPrimary, CommandNone
	case key.Matches(msg, k.Up):
		return core.ActionUp, CommandNone
	case key.Matches(msg, k.Down):
		return core.ActionDown, CommandNone
	}
	return core.ActionNone, CommandNone
}
