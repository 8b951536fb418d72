package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	Escape     key.Binding
	ViewLogs   key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Queue actions
	PrevGroup     key.Binding
	NextGroup     key.Binding
	Queue         key.Binding
	CancelQueue   key.Binding
	ToggleStandby key.Binding

	// Criteria
	ToggleLateJoin key.Binding
	ToggleSurplus  key.Binding

	// Social
	Accept  key.Binding
	Decline key.Binding
	Promote key.Binding
	Leave   key.Binding
	Chat    key.Binding

	// Preferences
	CycleJoinMode key.Binding
	ToggleIgnore  key.Binding

	// Logs
	ToggleFollow key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Party/logs"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Return to party"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Logs"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		PrevGroup: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous queue"),
		),
		NextGroup: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next queue"),
		),
		Queue: key.NewBinding(
			key.WithKeys("Q"),
			key.WithHelp("Q", "Queue"),
		),
		CancelQueue: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Leave queue"),
		),
		ToggleStandby: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Toggle standby"),
		),

		ToggleLateJoin: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "Toggle late join"),
		),
		ToggleSurplus: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Toggle squad surplus"),
		),

		Accept: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Accept"),
		),
		Decline: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Decline/cancel/kick"),
		),
		Promote: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Promote"),
		),
		Leave: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Leave party"),
		),
		Chat: key.NewBinding(
			key.WithKeys("c", ":"),
			key.WithHelp("c", "Chat"),
		),

		CycleJoinMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Join request mode"),
		),
		ToggleIgnore: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "Ignore invites"),
		),

		ToggleFollow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle follow mode"),
		),
	}
}

// ShortHelp returns key bindings for the command bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Queue, k.CancelQueue, k.Accept, k.Decline, k.Chat, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ViewLogs, k.Escape, k.Up, k.Down, k.Top, k.Bottom},
		{k.PrevGroup, k.NextGroup, k.Queue, k.CancelQueue, k.ToggleStandby},
		{k.ToggleLateJoin, k.ToggleSurplus},
		{k.Accept, k.Decline, k.Promote, k.Leave, k.Chat},
		{k.CycleJoinMode, k.ToggleIgnore, k.ToggleFollow},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
