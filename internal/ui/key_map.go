package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the sync view.
type keyMap struct {
	retry key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		retry: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.retry, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.retry, k.quit}}
}
