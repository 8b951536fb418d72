package party

import (
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/five82/partysync/internal/criteria"
)

const (
	// DefaultCoalesceWindow is how long non-urgent criteria edits are batched.
	DefaultCoalesceWindow = 2 * time.Second
	// DefaultMinSendInterval is the floor between two criteria messages.
	DefaultMinSendInterval = 500 * time.Millisecond
)

// Criteria groups the three synchronized criteria values.
type Criteria struct {
	UIState UIState
	Group   GroupCriteria
	Player  PlayerCriteria
}

func (c Criteria) clone() Criteria {
	c.Group = c.Group.Clone()
	return c
}

type dirtyField uint8

const (
	dirtyUIState dirtyField = 1 << iota
	dirtyGroup
	dirtyPlayer

	dirtyAll = dirtyUIState | dirtyGroup | dirtyPlayer
)

type ackGuard struct {
	seq   uint64
	party PartyID
}

// CriteriaSync tracks local, last-sent and last-confirmed criteria and
// decides when a delta goes out.
type CriteriaSync struct {
	logger      *zap.Logger
	clock       clockwork.Clock
	coalesce    time.Duration
	minInterval time.Duration

	local     Criteria
	lastSent  Criteria
	confirmed Criteria

	dirty      dirtyField
	overwrite  bool
	synced     bool
	firstDirty time.Time
	lastSend   time.Time
	retryAt    time.Time
	seq        uint64
	unacked    *ackGuard

	effectiveNotify bool
}

func newCriteriaSync(logger *zap.Logger, clock clockwork.Clock, coalesce, minInterval time.Duration) *CriteriaSync {
	c := &CriteriaSync{
		logger:      logger,
		clock:       clock,
		coalesce:    coalesce,
		minInterval: minInterval,
	}
	c.resync()
	return c
}

// resync forces the next message to carry every field.
func (c *CriteriaSync) resync() {
	c.unacked = nil
	c.overwrite = true
	c.synced = false
	c.markDirty(dirtyAll)
}

func (c *CriteriaSync) markDirty(f dirtyField) {
	if c.dirty == 0 {
		c.firstDirty = c.clock.Now()
	}
	c.dirty |= f
}

func (c *CriteriaSync) mutateGroup(fn func(*GroupCriteria), effective bool) {
	fn(&c.local.Group)
	c.markDirty(dirtyGroup)
	c.effectiveNotify = c.effectiveNotify || effective
}

func (c *CriteriaSync) mutatePlayer(fn func(*PlayerCriteria)) {
	fn(&c.local.Player)
	c.markDirty(dirtyPlayer)
	c.effectiveNotify = true
}

func (c *CriteriaSync) mutateUIState(fn func(*UIState), effective bool) {
	fn(&c.local.UIState)
	c.markDirty(dirtyUIState)
	c.effectiveNotify = c.effectiveNotify || effective
}

func (c *CriteriaSync) takeEffectiveNotify() bool {
	n := c.effectiveNotify
	c.effectiveNotify = false
	return n
}

// confirm records what the coordinator reports for us in snap.
func (c *CriteriaSync) confirm(snap Snapshot, self Identity) {
	if !snap.IsReal() {
		return
	}
	c.confirmed.Group = snap.GroupCriteria.Clone()
	c.confirmed.UIState = snap.UIState
	if m, ok := snap.Member(self); ok {
		c.confirmed.Player = m.Criteria
	}
}

// adoptParty makes our group criteria and UI state the party's after we
// become leader. They are diffed against what the party currently holds.
func (c *CriteriaSync) adoptParty() {
	c.lastSent.Group = c.confirmed.Group.Clone()
	c.lastSent.UIState = c.confirmed.UIState
	c.markDirty(dirtyGroup | dirtyUIState)
}

// due reports whether a SetOptions message may go out now.
func (c *CriteriaSync) due(urgent bool) bool {
	if c.dirty == 0 && c.synced {
		return false
	}
	if c.unacked != nil {
		return false
	}
	now := c.clock.Now()
	if now.Before(c.retryAt) {
		return false
	}
	if !urgent && now.Sub(c.firstDirty) < max(c.coalesce, c.minInterval) {
		return false
	}
	if !c.lastSend.IsZero() && now.Sub(c.lastSend) < c.minInterval {
		return false
	}
	return true
}

// delta builds the outstanding changes against lastSent. Dirty fields whose
// diff is empty are left out.
func (c *CriteriaSync) delta() (OptionsDelta, dirtyField) {
	d := OptionsDelta{Overwrite: c.overwrite}
	var included dirtyField
	if c.overwrite || c.dirty&dirtyUIState != 0 {
		if p := patch(c.lastSent.UIState, c.local.UIState, c.overwrite); !p.Empty() {
			d.UIState = &p
			included |= dirtyUIState
		}
	}
	if c.overwrite || c.dirty&dirtyGroup != 0 {
		if p := patch(c.lastSent.Group, c.local.Group, c.overwrite); !p.Empty() {
			d.GroupCriteria = &p
			included |= dirtyGroup
		}
	}
	if c.overwrite || c.dirty&dirtyPlayer != 0 {
		if p := patch(c.lastSent.Player, c.local.Player, c.overwrite); !p.Empty() {
			d.PlayerCriteria = &p
			included |= dirtyPlayer
		}
	}
	return d, included
}

func patch[T criteria.Cloner[T]](from, to T, overwrite bool) criteria.Patch[T] {
	if overwrite {
		return criteria.Full(from, to)
	}
	return criteria.Diff(from, to)
}

// commit advances lastSent for the included fields after a successful
// enqueue. Every evaluated dirty bit is cleared, including those whose diff
// turned out empty.
func (c *CriteriaSync) commit(included dirtyField, guard *ackGuard) {
	if included&dirtyUIState != 0 {
		c.lastSent.UIState = c.local.UIState
	}
	if included&dirtyGroup != 0 {
		c.lastSent.Group = c.local.Group.Clone()
	}
	if included&dirtyPlayer != 0 {
		c.lastSent.Player = c.local.Player
	}
	if c.overwrite {
		c.synced = true
	}
	c.overwrite = false
	c.dirty = 0
	if guard != nil {
		c.lastSend = c.clock.Now()
		c.unacked = guard
	}
}

// failed holds off the next attempt after the bus refused a message.
func (c *CriteriaSync) failed() {
	c.retryAt = c.clock.Now().Add(max(c.coalesce, c.minInterval))
}

// discard drops dirty bits whose diffs were all empty.
func (c *CriteriaSync) discard() {
	c.dirty = 0
}

func (c *CriteriaSync) nextSeq() uint64 {
	c.seq++
	return c.seq
}

// acknowledge clears the unacked guard when seq matches it.
func (c *CriteriaSync) acknowledge(seq uint64) bool {
	if c.unacked == nil || c.unacked.seq != seq {
		return false
	}
	c.unacked = nil
	return true
}

// reset returns to the state of a fresh session, keeping local edits.
func (c *CriteriaSync) reset() {
	c.lastSent = Criteria{}
	c.confirmed = Criteria{}
	c.lastSend = time.Time{}
	c.retryAt = time.Time{}
	c.resync()
}

// Local returns the criteria the user wants.
func (c *CriteriaSync) Local() Criteria { return c.local.clone() }

// LastSent returns the criteria last transmitted.
func (c *CriteriaSync) LastSent() Criteria { return c.lastSent.clone() }

// Confirmed returns the criteria last reported by the coordinator.
func (c *CriteriaSync) Confirmed() Criteria { return c.confirmed.clone() }

// Dirty reports whether local edits are waiting to be sent.
func (c *CriteriaSync) Dirty() bool { return c.dirty != 0 || !c.synced }

// InFlight reports whether a criteria message awaits acknowledgment.
func (c *CriteriaSync) InFlight() bool { return c.unacked != nil }
