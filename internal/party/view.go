package party

import "slices"

// QueueView is the UI-facing state of one queue.
type QueueView struct {
	Group     MatchGroup
	State     QueueState
	Effective bool
	CanQueue  bool
	CanCancel bool
}

// View is a deep copy of everything the UI renders.
type View struct {
	Self          Identity
	PartyID       PartyID
	Leader        Identity
	IsLeader      bool
	Members       []Member
	LobbyID       LobbyID
	Queues        []QueueView
	Standby       QueueState
	CanStandby    bool
	GroupCriteria GroupCriteria
	UIState       UIState
	PartySourced  bool
	Local         Criteria
	CriteriaDirty bool
	CriteriaBusy  bool

	IncomingInvites      []Invitation
	OutgoingJoinRequests []Invitation
	OutgoingInvites      []Identity
	IncomingJoinRequests []Identity

	JoinRequestMode JoinRequestMode
	IgnoreInvites   bool
	Chat            []ChatMessage
	LastErrorCode   int
}

// View snapshots the client state for rendering.
func (c *Client) View() View {
	snap := c.store.Current()
	v := View{
		Self:                 c.self,
		PartyID:              snap.PartyID,
		Leader:               snap.Leader,
		IsLeader:             c.IsLeader(),
		Members:              slices.Clone(snap.Members),
		LobbyID:              snap.LobbyID,
		Standby:              c.StandbyState(),
		CanStandby:           c.CanRequestStandby(),
		GroupCriteria:        c.EffectiveGroupCriteria(),
		UIState:              c.EffectiveUIState(),
		PartySourced:         c.partySourced,
		Local:                c.criteria.Local(),
		CriteriaDirty:        c.criteria.Dirty(),
		CriteriaBusy:         c.criteria.InFlight(),
		IncomingInvites:      c.IncomingInvites(),
		OutgoingJoinRequests: c.OutgoingJoinRequests(),
		OutgoingInvites:      c.OutgoingInvites(),
		IncomingJoinRequests: c.IncomingJoinRequests(),
		JoinRequestMode:      c.JoinRequestMode(),
		IgnoreInvites:        c.IgnoreInvites(),
		Chat:                 c.Chat(),
		LastErrorCode:        c.lastError,
	}
	for _, g := range MatchGroups() {
		v.Queues = append(v.Queues, QueueView{
			Group:     g,
			State:     c.QueueState(g),
			Effective: c.InQueue(g),
			CanQueue:  c.CanRequestQueue(g),
			CanCancel: c.CanCancelQueue(g),
		})
	}
	return v
}
