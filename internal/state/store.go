package state

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/five82/partysync/internal/party"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	View                party.View
	HasView             bool
	LastUpdated         time.Time
	LastPoll            time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures

	// Outcome of the most recent user action.
	LastAction      string
	LastActionError error
	LastActionAt    time.Time
}

// OfflineAfter is the failure streak at which the coordinator counts as
// unreachable.
const OfflineAfter = 2

// IsOffline returns true when the coordinator has been unreachable for
// multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= OfflineAfter
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Publish replaces the stored view. Views are built on the loop goroutine.
func (s *Store) Publish(view party.View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.View = cloneView(view)
	s.snapshot.HasView = true
	s.snapshot.LastUpdated = time.Now()
}

// RecordPoll records the outcome of one coordinator poll. When err is
// non-nil the previous view is kept but the error is recorded for
// visibility. It returns the resulting failure streak.
func (s *Store) RecordPoll(err error) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastPoll = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return s.snapshot.ConsecutiveFailures
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	return 0
}

// RecordAction records the result of a user action for the status line.
func (s *Store) RecordAction(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastAction = name
	s.snapshot.LastActionError = err
	s.snapshot.LastActionAt = time.Now()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.View = cloneView(s.snapshot.View)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneView(v party.View) party.View {
	v.Members = slices.Clone(v.Members)
	v.Queues = slices.Clone(v.Queues)
	v.GroupCriteria = v.GroupCriteria.Clone()
	v.Local.Group = v.Local.Group.Clone()
	v.IncomingInvites = slices.Clone(v.IncomingInvites)
	v.OutgoingJoinRequests = slices.Clone(v.OutgoingJoinRequests)
	v.OutgoingInvites = slices.Clone(v.OutgoingInvites)
	v.IncomingJoinRequests = slices.Clone(v.IncomingJoinRequests)
	v.Chat = slices.Clone(v.Chat)
	return v
}
