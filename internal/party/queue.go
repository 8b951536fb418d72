package party

import "go.uber.org/zap"

// QueueState is the gate state of one queue.
type QueueState int

const (
	QueueIdle QueueState = iota
	QueuePendingEnqueue
	QueueQueued
	QueuePendingDequeue
)

func (s QueueState) String() string {
	switch s {
	case QueuePendingEnqueue:
		return "pending_enqueue"
	case QueueQueued:
		return "queued"
	case QueuePendingDequeue:
		return "pending_dequeue"
	}
	return "idle"
}

// gate holds the pending flags of one queue. An acknowledged enqueue stays
// predicted until the next pushed snapshot says otherwise.
type gate struct {
	enqueueInFlight bool
	enqueueAcked    bool
	dequeueInFlight bool
	reported        bool
}

// effective stays true across a pending dequeue until the snapshot drops
// the queue, so a match offer racing the cancel can still be honored.
func (g *gate) effective(confirmed bool) bool {
	return g.enqueueInFlight || g.enqueueAcked || confirmed
}

func (g *gate) state(confirmed bool) QueueState {
	eff := g.effective(confirmed)
	switch {
	case eff && g.dequeueInFlight:
		return QueuePendingDequeue
	case confirmed || g.enqueueAcked:
		return QueueQueued
	case g.enqueueInFlight:
		return QueuePendingEnqueue
	}
	return QueueIdle
}

func (g *gate) canRequest(confirmed bool) bool {
	return !g.enqueueInFlight && !g.effective(confirmed)
}

func (g *gate) canCancel(confirmed bool) bool {
	return !g.dequeueInFlight && g.effective(confirmed)
}

// observe folds a snapshot into the gate and reports whether the effective
// value changed since it was last reported.
func (g *gate) observe(confirmed, pushed bool) bool {
	// Only a pushed snapshot showing us out of the queue settles a dequeue.
	// Local passes keep it outstanding until its reply.
	if pushed {
		g.enqueueAcked = false
		if !confirmed && !g.enqueueInFlight {
			g.dequeueInFlight = false
		}
	}
	eff := g.effective(confirmed)
	if eff == g.reported {
		return false
	}
	g.reported = eff
	return true
}

// QueueManager tracks pending queue requests per match group and for the
// standby queue.
type QueueManager struct {
	logger  *zap.Logger
	groups  [NumMatchGroups]gate
	standby gate
	// epoch invalidates replies to requests sent before a reset.
	epoch uint64
}

func newQueueManager(logger *zap.Logger) *QueueManager {
	return &QueueManager{logger: logger}
}

// InQueue reports effective membership of g.
func (q *QueueManager) InQueue(g MatchGroup, snap Snapshot) bool {
	return g.Valid() && q.groups[g].effective(snap.Queued[g])
}

// InStandby reports effective standby queue membership.
func (q *QueueManager) InStandby(snap Snapshot) bool {
	return q.standby.effective(snap.StandbyQueued)
}

// InAnyQueue reports whether we are effectively in any queue.
func (q *QueueManager) InAnyQueue(snap Snapshot) bool {
	for g := MatchGroup(0); g < NumMatchGroups; g++ {
		if q.InQueue(g, snap) {
			return true
		}
	}
	return q.InStandby(snap)
}

// State returns the gate state of g.
func (q *QueueManager) State(g MatchGroup, snap Snapshot) QueueState {
	if !g.Valid() {
		return QueueIdle
	}
	return q.groups[g].state(snap.Queued[g])
}

// StandbyState returns the gate state of the standby queue.
func (q *QueueManager) StandbyState(snap Snapshot) QueueState {
	return q.standby.state(snap.StandbyQueued)
}

func (q *QueueManager) canRequest(g MatchGroup, snap Snapshot) bool {
	return g.Valid() && q.groups[g].canRequest(snap.Queued[g])
}

func (q *QueueManager) canCancel(g MatchGroup, snap Snapshot) bool {
	return g.Valid() && q.groups[g].canCancel(snap.Queued[g])
}

func (q *QueueManager) markEnqueue(g MatchGroup) { q.groups[g].enqueueInFlight = true }
func (q *QueueManager) markDequeue(g MatchGroup) { q.groups[g].dequeueInFlight = true }
func (q *QueueManager) markStandbyEnqueue()      { q.standby.enqueueInFlight = true }
func (q *QueueManager) markStandbyDequeue()      { q.standby.dequeueInFlight = true }

// enqueueReplied clears the in-flight flag. A successful reply holds the
// queue as predicted until the next pushed snapshot.
func (g *gate) enqueueReplied(ok bool) {
	g.enqueueInFlight = false
	g.enqueueAcked = ok
}

func (g *gate) dequeueReplied() {
	g.dequeueInFlight = false
}

// observe folds snap into every gate and returns the resulting events.
func (q *QueueManager) observe(snap Snapshot, pushed bool) []Event {
	var events []Event
	for g := MatchGroup(0); g < NumMatchGroups; g++ {
		if q.groups[g].observe(snap.Queued[g], pushed) {
			events = append(events, Event{Kind: QueueStateChanged, MatchGroup: g})
		}
	}
	if q.standby.observe(snap.StandbyQueued, pushed) {
		events = append(events, Event{Kind: StandbyQueueChanged})
	}
	return events
}

// reset clears every pending flag. Reported values are kept so the next
// observe reports what the reset changed.
func (q *QueueManager) reset() {
	q.epoch++
	for g := range q.groups {
		q.groups[g] = gate{reported: q.groups[g].reported}
	}
	q.standby = gate{reported: q.standby.reported}
}
