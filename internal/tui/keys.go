package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/raceme/internal/session"
)

type keyMap struct {
	Restart key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Restart: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// keyIdentifier maps a key message to the identifier the session expects.
func keyIdentifier(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyBackspace:
		return session.KeyBackspace
	case tea.KeySpace:
		return session.KeySpace
	case tea.KeyRunes:
		if msg.Alt {
			return msg.String()
		}
		return string(msg.Runes)
	default:
		return msg.String()
	}
}
