package party

import (
	"cmp"
	"slices"
)

type joinAction int

const (
	joinSurface joinAction = iota
	joinAccept
	joinReject
)

func (a joinAction) String() string {
	switch a {
	case joinAccept:
		return "accept"
	case joinReject:
		return "reject"
	}
	return "surface"
}

// InviteTracker diffs the four pending-player lists between passes and
// applies the join request policy.
type InviteTracker struct {
	incomingInvites      []PartyID
	outgoingJoinRequests []PartyID
	outgoingInvites      []Identity
	incomingJoinRequests []Identity

	// actioned holds join requests already auto-accepted or auto-rejected.
	actioned map[Identity]struct{}
}

func newInviteTracker() *InviteTracker {
	return &InviteTracker{actioned: make(map[Identity]struct{})}
}

// decideJoinRequest applies the policy to one incoming join request. A full
// party surfaces requests it would otherwise accept.
func decideJoinRequest(id Identity, inControl bool, mode JoinRequestMode, ignoreInvites, full bool, rel Relationships) joinAction {
	if !inControl {
		return joinSurface
	}
	if ignoreInvites || mode == ClosedToFriends || !rel.IsFriend(id) {
		return joinReject
	}
	if mode == OpenToFriends && !full {
		return joinAccept
	}
	return joinSurface
}

func (t *InviteTracker) wasActioned(id Identity) bool {
	_, ok := t.actioned[id]
	return ok
}

func (t *InviteTracker) markActioned(id Identity) {
	t.actioned[id] = struct{}{}
}

// prune forgets auto-actioned requests that left the party's pending list.
func (t *InviteTracker) prune(requests []Identity) {
	for id := range t.actioned {
		if _, ok := slices.BinarySearch(requests, id); !ok {
			delete(t.actioned, id)
		}
	}
}

// updateParty stores the party-side lists and reports which changed.
func (t *InviteTracker) updateParty(outgoingInvites, incomingJoinRequests []Identity) (outChanged, inChanged bool) {
	outChanged = keysChanged(t.outgoingInvites, outgoingInvites)
	inChanged = keysChanged(t.incomingJoinRequests, incomingJoinRequests)
	t.outgoingInvites = outgoingInvites
	t.incomingJoinRequests = incomingJoinRequests
	return outChanged, inChanged
}

// updateInvitations stores the invite-object lists and reports which changed.
func (t *InviteTracker) updateInvitations(invitations map[PartyID]Invitation) (inChanged, outChanged bool) {
	var incoming, outgoing []PartyID
	for id, inv := range invitations {
		if inv.Kind == PendingInvite {
			incoming = append(incoming, id)
		} else {
			outgoing = append(outgoing, id)
		}
	}
	slices.Sort(incoming)
	slices.Sort(outgoing)
	inChanged = keysChanged(t.incomingInvites, incoming)
	outChanged = keysChanged(t.outgoingJoinRequests, outgoing)
	t.incomingInvites = incoming
	t.outgoingJoinRequests = outgoing
	return inChanged, outChanged
}

func (t *InviteTracker) reset() {
	clear(t.actioned)
}

func keysChanged[K cmp.Ordered](prev, next []K) bool {
	added, removed := diffKeys(prev, next)
	return len(added) > 0 || len(removed) > 0
}
