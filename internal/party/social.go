package party

import (
	"fmt"
	"slices"
	"strings"
)

// InControl reports whether we may take party actions: leader or solo.
func (c *Client) InControl() bool { return c.IsLeader() }

// CanInvitePlayer reports whether InvitePlayer(id) is allowed.
func (c *Client) CanInvitePlayer(id Identity) bool {
	snap := c.store.current
	switch {
	case id == c.self || !c.InControl():
		return false
	case !c.rel.IsFriend(id) || snap.IsMember(id):
		return false
	case slices.Contains(c.invites.outgoingInvites, id):
		return false
	}
	return len(snap.Members)+len(c.invites.outgoingInvites) < MaxPartySize
}

// InvitePlayer invites a friend to our party. Inviting someone who asked to
// join accepts their request.
func (c *Client) InvitePlayer(id Identity) error {
	if !c.CanInvitePlayer(id) {
		return fmt.Errorf("invite %d: %w", id, ErrCannotInvite)
	}
	snap := c.store.current
	req := InvitePlayer{
		Target:                   id,
		PartyID:                  snap.PartyID,
		ExpectingExistingRequest: slices.Contains(snap.PendingOf(PendingJoinRequest), id),
	}
	if err := c.send(req, nil); err != nil {
		return fmt.Errorf("invite %d: %w", id, err)
	}
	return nil
}

// CanRequestJoinPlayer reports whether RequestJoinPlayer(id) is allowed.
func (c *Client) CanRequestJoinPlayer(id Identity) bool {
	if id == c.self || !c.rel.IsFriend(id) || c.store.current.IsMember(id) {
		return false
	}
	for _, inv := range c.invitations {
		if inv.Kind == PendingJoinRequest && inv.Sender == id {
			return false
		}
	}
	return true
}

// RequestJoinPlayer asks to join a friend's party. Requesting to join
// someone who invited us accepts their invite.
func (c *Client) RequestJoinPlayer(id Identity) error {
	if !c.CanRequestJoinPlayer(id) {
		return fmt.Errorf("request join %d: %w", id, ErrCannotRequestJoin)
	}
	return c.requestJoin(id, c.hasInviteFrom(id))
}

func (c *Client) requestJoin(id Identity, expectingInvite bool) error {
	req := RequestJoinPlayer{
		Target:                  id,
		CurrentPartyID:          c.store.current.PartyID,
		ExpectingExistingInvite: expectingInvite,
	}
	if err := c.send(req, nil); err != nil {
		return fmt.Errorf("request join %d: %w", id, err)
	}
	return nil
}

func (c *Client) hasInviteFrom(id Identity) bool {
	for _, inv := range c.invitations {
		if inv.Kind == PendingInvite && inv.Sender == id {
			return true
		}
	}
	return false
}

// AcceptInvite accepts an invitation from another party.
func (c *Client) AcceptInvite(party PartyID) error {
	inv, ok := c.invitations[party]
	if !ok || inv.Kind != PendingInvite {
		return fmt.Errorf("accept invite %d: %w", party, ErrNoSuchInvitation)
	}
	return c.requestJoin(inv.Sender, true)
}

// DeclineInvite declines an invitation from another party.
func (c *Client) DeclineInvite(party PartyID) error {
	return c.clearOtherParty(party, PendingInvite)
}

// CancelJoinRequest withdraws our request to join another party.
func (c *Client) CancelJoinRequest(party PartyID) error {
	return c.clearOtherParty(party, PendingJoinRequest)
}

func (c *Client) clearOtherParty(party PartyID, kind PendingKind) error {
	inv, ok := c.invitations[party]
	if !ok || inv.Kind != kind {
		return fmt.Errorf("clear %s %d: %w", kind, party, ErrNoSuchInvitation)
	}
	if err := c.send(ClearOtherPartyRequest{PartyID: party}, nil); err != nil {
		return fmt.Errorf("clear %s %d: %w", kind, party, err)
	}
	return nil
}

// AcceptJoinRequest admits a player who asked to join our party.
func (c *Client) AcceptJoinRequest(id Identity) error {
	if !c.InControl() || !slices.Contains(c.invites.incomingJoinRequests, id) {
		return fmt.Errorf("accept join request %d: %w", id, ErrNoSuchRequest)
	}
	snap := c.store.current
	if len(snap.Members)+len(c.invites.outgoingInvites) >= MaxPartySize {
		return fmt.Errorf("accept join request %d: %w", id, ErrCannotInvite)
	}
	req := InvitePlayer{Target: id, PartyID: snap.PartyID, ExpectingExistingRequest: true}
	if err := c.send(req, nil); err != nil {
		return fmt.Errorf("accept join request %d: %w", id, err)
	}
	return nil
}

// RejectJoinRequest turns down a player who asked to join our party.
func (c *Client) RejectJoinRequest(id Identity) error {
	if !c.InControl() || !slices.Contains(c.invites.incomingJoinRequests, id) {
		return fmt.Errorf("reject join request %d: %w", id, ErrNoSuchRequest)
	}
	return c.clearPending(id)
}

// CancelOutgoingInvite withdraws an invite our party sent.
func (c *Client) CancelOutgoingInvite(id Identity) error {
	if !c.InControl() || !slices.Contains(c.invites.outgoingInvites, id) {
		return fmt.Errorf("cancel invite %d: %w", id, ErrNoSuchRequest)
	}
	return c.clearPending(id)
}

func (c *Client) clearPending(id Identity) error {
	if err := c.send(ClearPendingPlayer{Identity: id}, nil); err != nil {
		return fmt.Errorf("clear pending %d: %w", id, err)
	}
	return nil
}

// LeaveParty leaves the current party.
func (c *Client) LeaveParty() error {
	snap := c.store.current
	if !snap.IsReal() {
		return ErrNotInParty
	}
	if err := c.send(LeaveParty{PartyID: snap.PartyID}, nil); err != nil {
		return fmt.Errorf("leave party: %w", err)
	}
	return nil
}

// CanModerate reports whether KickMember/PromoteLeader may target id.
func (c *Client) CanModerate(id Identity) bool {
	snap := c.store.current
	return snap.IsReal() && snap.Leader == c.self && id != c.self && snap.IsMember(id)
}

// KickMember removes a member from our party.
func (c *Client) KickMember(id Identity) error {
	if !c.CanModerate(id) {
		return fmt.Errorf("kick %d: %w", id, ErrNotLeader)
	}
	if err := c.send(KickMember{PartyID: c.store.current.PartyID, Target: id}, nil); err != nil {
		return fmt.Errorf("kick %d: %w", id, err)
	}
	return nil
}

// PromoteLeader hands leadership to another member.
func (c *Client) PromoteLeader(id Identity) error {
	if !c.CanModerate(id) {
		return fmt.Errorf("promote %d: %w", id, ErrNotLeader)
	}
	if err := c.send(PromoteLeader{PartyID: c.store.current.PartyID, Target: id}, nil); err != nil {
		return fmt.Errorf("promote %d: %w", id, err)
	}
	return nil
}

// SendChat sends a party chat line.
func (c *Client) SendChat(text string) error {
	snap := c.store.current
	if !snap.IsReal() {
		return ErrNotInParty
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyChat
	}
	if err := c.send(SendChat{PartyID: snap.PartyID, Text: text}, nil); err != nil {
		return fmt.Errorf("send chat: %w", err)
	}
	return nil
}
