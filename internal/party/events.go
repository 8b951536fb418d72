package party

import "fmt"

// Kind discriminates UI-facing events.
type Kind int

const (
	NewParty Kind = iota
	MemberOnlineStateChanged
	MemberGained
	MemberLost
	LeaderChanged
	EffectiveCriteriaChanged
	QueueStateChanged
	StandbyQueueChanged
	OutgoingInvitesChanged
	IncomingJoinRequestsChanged
	IncomingInvitesChanged
	OutgoingJoinRequestsChanged
	PartyUpdated
	PreferenceChanged
	ChatReceived
	CoordinatorError
	numKinds
)

var kindNames = [numKinds]string{
	NewParty:                    "new_party",
	MemberOnlineStateChanged:    "member_online_state_changed",
	MemberGained:                "member_gained",
	MemberLost:                  "member_lost",
	LeaderChanged:               "leader_changed",
	EffectiveCriteriaChanged:    "effective_criteria_changed",
	QueueStateChanged:           "queue_state_changed",
	StandbyQueueChanged:         "standby_queue_changed",
	OutgoingInvitesChanged:      "outgoing_invites_changed",
	IncomingJoinRequestsChanged: "incoming_join_requests_changed",
	IncomingInvitesChanged:      "incoming_invites_changed",
	OutgoingJoinRequestsChanged: "outgoing_join_requests_changed",
	PartyUpdated:                "party_updated",
	PreferenceChanged:           "preference_changed",
	ChatReceived:                "chat_received",
	CoordinatorError:            "coordinator_error",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Event is a notification for the UI layer. Only the field matching Kind is
// meaningful: Member for member events, MatchGroup for QueueStateChanged,
// Leader for LeaderChanged, Code for CoordinatorError.
type Event struct {
	Kind       Kind
	Member     Identity
	MatchGroup MatchGroup
	Leader     bool
	Code       int
}

func (e Event) String() string {
	switch e.Kind {
	case MemberOnlineStateChanged, MemberGained, MemberLost:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Member)
	case QueueStateChanged:
		return fmt.Sprintf("%s(%s)", e.Kind, e.MatchGroup)
	case LeaderChanged:
		return fmt.Sprintf("%s(%t)", e.Kind, e.Leader)
	case CoordinatorError:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Code)
	}
	return e.Kind.String()
}

// ChangeSet is the outcome of one reconciliation pass.
type ChangeSet struct {
	PartyChanged bool
	Events       []Event
}

// Empty reports whether the pass produced no events.
func (cs ChangeSet) Empty() bool {
	return len(cs.Events) == 0
}

// Kinds returns the event kinds in firing order.
func (cs ChangeSet) Kinds() []Kind {
	out := make([]Kind, len(cs.Events))
	for i, e := range cs.Events {
		out[i] = e.Kind
	}
	return out
}

// Has reports whether an event of the given kind was produced.
func (cs ChangeSet) Has(kind Kind) bool {
	for _, e := range cs.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func (cs *ChangeSet) add(e Event) {
	cs.Events = append(cs.Events, e)
}

// Handler observes events.
type Handler func(Event)

type subscription struct {
	id int
	fn Handler
}

// Dispatcher keeps one observer list per event kind plus a list of observers
// for every kind.
type Dispatcher struct {
	byKind [numKinds][]subscription
	any    []subscription
	nextID int
}

// On registers h for one kind. The returned func unregisters it.
func (d *Dispatcher) On(kind Kind, h Handler) func() {
	if kind < 0 || kind >= numKinds {
		return func() {}
	}
	id := d.add(&d.byKind[kind], h)
	return func() { d.remove(&d.byKind[kind], id) }
}

// OnAny registers h for every kind.
func (d *Dispatcher) OnAny(h Handler) func() {
	id := d.add(&d.any, h)
	return func() { d.remove(&d.any, id) }
}

func (d *Dispatcher) add(list *[]subscription, h Handler) int {
	d.nextID++
	*list = append(*list, subscription{id: d.nextID, fn: h})
	return d.nextID
}

func (d *Dispatcher) remove(list *[]subscription, id int) {
	for i, s := range *list {
		if s.id == id {
			*list = append((*list)[:i:i], (*list)[i+1:]...)
			return
		}
	}
}

// Dispatch delivers events in order. Observers of a kind run before
// observers of every kind.
func (d *Dispatcher) Dispatch(events []Event) {
	for _, e := range events {
		for _, s := range d.byKind[e.Kind] {
			s.fn(e)
		}
		for _, s := range d.any {
			s.fn(e)
		}
	}
}
