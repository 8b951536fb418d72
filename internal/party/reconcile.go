package party

import (
	"go.uber.org/zap"

	"github.com/five82/partysync/internal/criteria"
)

// reconcile installs next as the current snapshot and returns the ordered
// changes. pushed is false for local passes forced by replies or preference
// changes, which re-evaluate derived state against the stored snapshot.
func (c *Client) reconcile(next Snapshot, pushed bool) ChangeSet {
	next = c.store.Normalize(next, c.logger)
	prev := c.store.Replace(next)

	var cs ChangeSet
	cs.PartyChanged = prev.PartyID != next.PartyID
	if cs.PartyChanged {
		c.logger.Info("party changed",
			zap.Uint64("from", uint64(prev.PartyID)),
			zap.Uint64("to", uint64(next.PartyID)),
			zap.Int("members", len(next.Members)))
		c.criteria.resync()
	}

	members := DiffMembers(prev.Members, next.Members)

	isLeader := !next.IsReal() || next.Leader == c.self
	partySourced := next.IsReal() && !isLeader
	effectiveChanged := c.criteria.takeEffectiveNotify()
	switch {
	case partySourced != c.partySourced:
		effectiveChanged = true
	case partySourced && (!criteria.Equal(prev.GroupCriteria, next.GroupCriteria) || prev.UIState != next.UIState):
		effectiveChanged = true
	}
	promoted := c.partySourced && !partySourced && next.IsReal()
	c.partySourced = partySourced
	c.criteria.confirm(next, c.self)
	if promoted {
		c.criteria.adoptParty()
	}

	queueEvents := c.queue.observe(next, pushed)

	// Outbound auto-actions run after derived state is updated.
	surfaced := c.applyJoinRequestPolicy(next, isLeader)
	outInvitesChanged, inRequestsChanged := c.invites.updateParty(next.PendingOf(PendingInvite), surfaced)

	if cs.PartyChanged {
		cs.add(Event{Kind: NewParty})
	}
	for _, id := range members.OnlineChanged {
		cs.add(Event{Kind: MemberOnlineStateChanged, Member: id})
	}
	for _, id := range members.Added {
		cs.add(Event{Kind: MemberGained, Member: id})
	}
	for _, id := range members.Removed {
		cs.add(Event{Kind: MemberLost, Member: id})
	}
	if prev.Leader != next.Leader {
		cs.add(Event{Kind: LeaderChanged, Leader: isLeader})
	}
	if effectiveChanged {
		cs.add(Event{Kind: EffectiveCriteriaChanged})
	}
	cs.Events = append(cs.Events, queueEvents...)
	if outInvitesChanged {
		cs.add(Event{Kind: OutgoingInvitesChanged})
	}
	if inRequestsChanged {
		cs.add(Event{Kind: IncomingJoinRequestsChanged})
	}
	if !cs.Empty() || !criteria.Equal(prev, next) {
		cs.add(Event{Kind: PartyUpdated})
	}
	return cs
}

// applyJoinRequestPolicy auto-accepts or auto-rejects incoming join requests
// and returns the ones left for the user to decide.
func (c *Client) applyJoinRequestPolicy(snap Snapshot, inControl bool) []Identity {
	requests := snap.PendingOf(PendingJoinRequest)
	c.invites.prune(requests)

	mode, ignore := c.prefs.JoinRequestMode(), c.prefs.IgnoreInvites()
	seats := len(snap.Members) + len(snap.PendingOf(PendingInvite))
	var surfaced []Identity
	for _, id := range requests {
		if c.invites.wasActioned(id) {
			continue
		}
		action := decideJoinRequest(id, inControl, mode, ignore, seats >= MaxPartySize, c.rel)
		var req Request
		switch action {
		case joinSurface:
			surfaced = append(surfaced, id)
			continue
		case joinAccept:
			// Accepting is an invite that expects the existing request.
			req = InvitePlayer{Target: id, PartyID: snap.PartyID, ExpectingExistingRequest: true}
		case joinReject:
			req = ClearPendingPlayer{Identity: id}
		}
		if err := c.send(req, nil); err != nil {
			continue
		}
		c.logger.Info("join request handled by policy",
			zap.Uint64("requester", uint64(id)),
			zap.Stringer("action", action),
			zap.Stringer("mode", mode))
		c.invites.markActioned(id)
		if action == joinAccept {
			seats++
		}
	}
	return surfaced
}

// reconcileInvitations diffs the invite objects addressed to us.
func (c *Client) reconcileInvitations() ChangeSet {
	var cs ChangeSet
	inChanged, outChanged := c.invites.updateInvitations(c.invitations)
	if inChanged {
		cs.add(Event{Kind: IncomingInvitesChanged})
	}
	if outChanged {
		cs.add(Event{Kind: OutgoingJoinRequestsChanged})
	}
	return cs
}
