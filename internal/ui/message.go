package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"readmark/internal/models"
)

// MsgKind enumerates all message types in the sync view.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var _ tea.Msg = Msg{}

const (
	MsgRefreshTick MsgKind = iota
	MsgReloadReady
	MsgBooksFetched
)

// refreshTickMsg is the constructor for [MsgRefreshTick]
func refreshTickMsg() Msg {
	return Msg{kind: MsgRefreshTick}
}

// reloadReadyMsg is the constructor for [MsgReloadReady]
func reloadReadyMsg() Msg {
	return Msg{kind: MsgReloadReady}
}

// booksFetchedMsg is the constructor for [MsgBooksFetched]
func booksFetchedMsg(books []models.Book, err error) Msg {
	return Msg{
		kind: MsgBooksFetched,
		data: struct {
			books []models.Book
			err   error
		}{books, err},
	}
}
