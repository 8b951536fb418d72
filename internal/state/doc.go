// Package state shares the loop's latest party view and the poller's
// connectivity with the UI.
//
// # Overview
//
// The loop goroutine is the only writer and the UI the only reader:
//
//	loop ──Publish(view)──────┐
//	loop ──RecordPoll(err)────┼──> Store ──Snapshot()──> UI
//	loop ──RecordAction(..)───┘
//
// The party.Client itself is owned by the loop and never touched by the UI;
// the UI only ever sees copies published through the Store.
//
// # Update Semantics
//
// Publish replaces the view wholesale. RecordPoll keeps the last view on
// failure and counts consecutive failures; OfflineAfter or more mark the
// snapshot offline, which the app answers with a party reset.
//
// Both Publish and Snapshot copy slices and criteria maps, so a rendered
// snapshot never aliases data the loop is still mutating.
//
// The zero Store is ready to use.
package state
