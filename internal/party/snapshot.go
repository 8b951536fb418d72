package party

import (
	"cmp"
	"slices"

	"go.uber.org/zap"
)

// SnapshotStore owns the current and previous party snapshots. With no real
// party it holds a synthesized solo party-of-one.
type SnapshotStore struct {
	self     Identity
	current  Snapshot
	previous Snapshot
}

// NewSnapshotStore starts solo.
func NewSnapshotStore(self Identity) *SnapshotStore {
	s := &SnapshotStore{self: self}
	s.current = s.Solo()
	s.previous = s.current
	return s
}

// Solo returns the snapshot used when no party object exists.
func (s *SnapshotStore) Solo() Snapshot {
	return Snapshot{
		Members: []Member{{Identity: s.self, Online: true}},
		Leader:  s.self,
	}
}

// Current returns a copy of the latest snapshot.
func (s *SnapshotStore) Current() Snapshot {
	return s.current.Clone()
}

// Previous returns a copy of the snapshot replaced by the last Replace.
func (s *SnapshotStore) Previous() Snapshot {
	return s.previous.Clone()
}

// Replace installs next and returns the snapshot it replaced.
func (s *SnapshotStore) Replace(next Snapshot) Snapshot {
	s.previous = s.current
	s.current = next.Clone()
	return s.previous.Clone()
}

// Normalize sorts and deduplicates next. A snapshot without a party ID is
// replaced by the solo snapshot.
func (s *SnapshotStore) Normalize(next Snapshot, logger *zap.Logger) Snapshot {
	if !next.IsReal() {
		return s.Solo()
	}
	next = next.Clone()

	slices.SortStableFunc(next.Members, func(a, b Member) int { return cmp.Compare(a.Identity, b.Identity) })
	next.Members = slices.CompactFunc(next.Members, func(a, b Member) bool {
		if a.Identity == b.Identity {
			logger.Warn("duplicate member in snapshot",
				zap.Uint64("party", uint64(next.PartyID)), zap.Uint64("member", uint64(a.Identity)))
			return true
		}
		return false
	})

	slices.SortStableFunc(next.Pending, func(a, b PendingPlayer) int {
		if c := cmp.Compare(a.Identity, b.Identity); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind, b.Kind)
	})
	next.Pending = slices.Compact(next.Pending)

	if !next.IsMember(s.self) {
		logger.Warn("snapshot does not list us as a member", zap.Uint64("party", uint64(next.PartyID)))
	}
	return next
}
