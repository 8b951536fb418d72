// Package app is the composition root of a partysync session.
//
// # Components
//
//   - app.go: Run loads config, opens the log and preferences, and starts
//     everything under one errgroup
//   - loop.go: Loop owns the party.Client and serializes all access to it
//   - poller.go: Poller reads the coordinator and posts results to the loop
//
// # Data Flow
//
//	Poller ──PollResult──┐
//	UI ──────Action──────┼──> Loop inbox ──> party.Client ──> bus ──> coordinator
//	bus ─────reply───────┘                        │
//	                                              └──View──> state.Store ──> UI
//
// The loop also ticks the client on a clockwork ticker so criteria sync runs
// without outside input. After every message or tick it publishes a fresh
// View.
//
// # Connectivity
//
// A successful poll marks the bus connected. state.OfflineAfter consecutive
// failures mark it disconnected and Reset the client, which drops every
// pending queue request and criteria send; the next successful poll rebuilds
// the party from scratch. Poll failures back off exponentially up to 30s.
//
// # Shutdown
//
// Quitting the UI cancels the session context. The loop, bus, poller and
// metrics server all return nil on cancellation, so Run reports only the UI's
// error.
package app
