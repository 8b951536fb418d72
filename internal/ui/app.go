package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/partysync/internal/logtail"
	"github.com/five82/partysync/internal/party"
	"github.com/five82/partysync/internal/prefs"
	"github.com/five82/partysync/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewParty View = iota
	ViewLogs
)

// Dispatcher runs fn against the party client on the goroutine that owns
// it. It returns false once the session has stopped.
type Dispatcher interface {
	Do(name string, fn func(*party.Client) error) bool
}

// Options configures the UI.
type Options struct {
	Store        *state.Store
	Actions      Dispatcher
	Prefs        *prefs.Store // optional; theme changes are not persisted without it
	LogPath      string
	RefreshEvery time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	store   *state.Store
	actions Dispatcher
	prefs   *prefs.Store
	logPath string
	refresh time.Duration

	// UI state
	theme       Theme
	keys        keyMap
	help        help.Model
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	snapshot state.Snapshot

	// Party view state
	selected      int
	group         party.MatchGroup
	partyViewport viewport.Model
	chatInput     textinput.Model
	chatting      bool

	// Log state
	logViewport viewport.Model
	logEntries  []logtail.Entry
	logFollow   bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	refresh := opts.RefreshEvery
	if refresh <= 0 {
		refresh = DefaultUIInterval
	}

	themeName := ""
	if opts.Prefs != nil {
		themeName = opts.Prefs.Prefs().Theme
	}

	ti := textinput.New()
	ti.Placeholder = "Say something..."
	ti.CharLimit = chatCharLimit

	return Model{
		store:       opts.Store,
		actions:     opts.Actions,
		prefs:       opts.Prefs,
		logPath:     opts.LogPath,
		refresh:     refresh,
		theme:       GetTheme(themeName),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		currentView: ViewParty,
		group:       party.MatchGroupCasual12v12,
		chatInput:   ti,
		logFollow:   true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.refresh)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.partyViewport = viewport.New(m.width, m.contentHeight())
			m.logViewport = viewport.New(m.width, m.contentHeight())
			m.ready = true
		}
		m.resizeViewports()
		m.updatePartyViewport()
		m.updateLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.clampSelection()
		m.updatePartyViewport()
		return m, nil

	case logEntriesMsg:
		m.logEntries = msg
		m.updateLogViewport()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.chatting {
		return m.handleChatKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefs != nil {
			_ = m.prefs.SetTheme(m.theme.Name)
		}
		m.updatePartyViewport()
		m.updateLogViewport()
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		if m.currentView == ViewParty {
			m.currentView = ViewLogs
			return m, m.refreshLogs()
		}
		m.currentView = ViewParty
		return m, nil
	case key.Matches(msg, m.keys.ViewLogs):
		m.currentView = ViewLogs
		return m, m.refreshLogs()
	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewParty
		return m, nil
	}

	switch m.currentView {
	case ViewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handlePartyKey(msg)
	}
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.chatting = false
		m.chatInput.Blur()
		m.chatInput.Reset()
		return m, nil
	case tea.KeyEnter:
		text := m.chatInput.Value()
		m.chatting = false
		m.chatInput.Blur()
		m.chatInput.Reset()
		return m, m.dispatch("chat", func(c *party.Client) error { return c.SendChat(text) })
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewLogs && m.logFollow {
		if cmd := m.refreshLogs(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, tickCmd(m.refresh))
	return m, tea.Batch(cmds...)
}

// dispatch hands an action to the session off the UI goroutine, since the
// loop inbox may briefly be full.
func (m Model) dispatch(name string, fn func(*party.Client) error) tea.Cmd {
	if m.actions == nil {
		return nil
	}
	actions := m.actions
	return func() tea.Msg {
		actions.Do(name, fn)
		return nil
	}
}

func (m Model) contentHeight() int {
	return max(m.height-chromeHeight, 1)
}

func (m *Model) resizeViewports() {
	m.partyViewport.Width = m.width
	m.partyViewport.Height = m.contentHeight()
	m.logViewport.Width = m.width
	m.logViewport.Height = m.contentHeight()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type logEntriesMsg []logtail.Entry

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
