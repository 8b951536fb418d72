// Package ui provides the partysync terminal interface, built on Bubble Tea.
//
// # Views
//
//   - Party: roster, queue gates, standby, criteria, pending invites and
//     join requests, preferences and recent chat
//   - Logs: the tail of the session's zap log, refreshed while following
//
// # Data Flow
//
// The model never touches the party client. On every tick it reads a copy
// of the latest view from state.Store, and every key that changes something
// becomes a named action handed to a Dispatcher, which runs it on the loop
// goroutine that owns the client. Action outcomes come back through the
// store and show on the status line.
//
// Selection in the party view runs over a flat list of rows (members,
// incoming invites, join requests, outgoing invites and requests). The same
// accept and decline keys act on whatever kind of row is selected.
//
// # Themes
//
// Nightfox, Kanagawa and Slate. T cycles them and the choice is saved to the
// preferences file.
package ui
