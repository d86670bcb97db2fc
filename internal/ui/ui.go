package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"readmark/internal/library"
	"readmark/internal/models"
	"readmark/internal/syncjob"
)

const refreshEvery = 200 * time.Millisecond

// Model represents the sync view state.
type Model struct {
	ctx      context.Context
	orch     *syncjob.Orchestrator
	lib      *library.Client
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
	books    []models.Book
	fetchErr error
	width    int
	quitting bool
}

// NewModel builds the sync view. Starting the orchestrator happens in Init,
// the bubbletea analog of mount.
func NewModel(ctx context.Context, orch *syncjob.Orchestrator, lib *library.Client) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		ctx:     ctx,
		orch:    orch,
		lib:     lib,
		spinner: sp,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	m.orch.Start()
	return tea.Batch(m.spinner.Tick, m.refreshCmd(), m.awaitReloadCmd())
}

func (m Model) refreshCmd() tea.Cmd {
	return tea.Tick(refreshEvery, func(time.Time) tea.Msg { return refreshTickMsg() })
}

// awaitReloadCmd blocks on the orchestrator's one-shot reload signal.
func (m Model) awaitReloadCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.orch.Reload():
			return reloadReadyMsg()
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m Model) fetchBooksCmd() tea.Cmd {
	return func() tea.Msg {
		books, err := m.lib.ListBooks(m.ctx)
		return booksFetchedMsg(books, err)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			m.quitting = true
			m.orch.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.retry):
			if m.orch.State().Status == syncjob.StatusError {
				m.orch.Start()
				return m, tea.Batch(m.refreshCmd(), m.awaitReloadCmd())
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		switch msg.kind {
		case MsgRefreshTick:
			if m.quitting {
				return m, nil
			}
			return m, m.refreshCmd()
		case MsgReloadReady:
			return m, m.fetchBooksCmd()
		case MsgBooksFetched:
			data := msg.data.(struct {
				books []models.Book
				err   error
			})
			m.books = data.books
			m.fetchErr = data.err
			return m, nil
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	view := styles.title.Render("readmark sync") + "\n"

	state := m.orch.State()
	switch state.Status {
	case syncjob.StatusChecking, syncjob.StatusDownloading:
		line := fmt.Sprintf("%s %s", m.spinner.View(), state.Message)
		if state.Progress != nil {
			line += fmt.Sprintf(" (%.0f%%)", *state.Progress)
		}
		view += line + "\n"
	case syncjob.StatusError:
		view += styles.err.Render("sync failed: "+state.ErrorDetail) + "\n"
	case syncjob.StatusUpToDate:
		view += styles.ok.Render("library up to date") + "\n"
	case syncjob.StatusCompleted:
		view += styles.ok.Render("sync complete") + "\n"
	default:
		view += styles.warn.Render("idle") + "\n"
	}

	if m.fetchErr != nil {
		view += styles.warn.Render("could not refresh books") + "\n"
	} else if m.books != nil {
		view += fmt.Sprintf("%d books in library\n", len(m.books))
	}

	view += "\n" + styles.help.Render(m.help.View(m.keys))
	return view
}
