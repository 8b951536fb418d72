package party

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanInvitePlayer(t *testing.T) {
	friends := NewFriendSet(alice, bob, carol, 500, 600, 700, 800)
	c := newTestClient(t, WithRelationships(friends))
	require.True(t, c.CanInvitePlayer(alice))
	require.False(t, c.CanInvitePlayer(self))
	require.False(t, c.CanInvitePlayer(900), "not a friend")

	snap := partyOf(1, self, self, alice, bob)
	snap.Pending = []PendingPlayer{{Identity: carol, Kind: PendingInvite}}
	c.Reconcile(snap)
	require.False(t, c.CanInvitePlayer(alice), "already a member")
	require.False(t, c.CanInvitePlayer(carol), "already invited")
	require.True(t, c.CanInvitePlayer(500))

	snap.Pending = append(snap.Pending,
		PendingPlayer{Identity: 500, Kind: PendingInvite},
		PendingPlayer{Identity: 600, Kind: PendingInvite},
	)
	c.Reconcile(snap)
	require.False(t, c.CanInvitePlayer(700), "party is full")
	require.ErrorIs(t, c.InvitePlayer(700), ErrCannotInvite)

	snap.Leader = alice
	snap.Pending = nil
	c.Reconcile(snap)
	require.False(t, c.CanInvitePlayer(800), "followers cannot invite")
}

func TestInvitePlayer(t *testing.T) {
	c := newTestClient(t,
		WithRelationships(NewFriendSet(alice, bob)),
		WithPreferences(&MemoryPreferences{Mode: FriendsCanRequestToJoin}),
	)
	c.Reconcile(joinRequestFrom(alice))
	require.NoError(t, c.InvitePlayer(alice))
	require.NoError(t, c.InvitePlayer(bob))
	require.Equal(t, []Request{
		InvitePlayer{Target: alice, PartyID: 1, ExpectingExistingRequest: true},
		InvitePlayer{Target: bob, PartyID: 1},
	}, c.bus.requests())
}

func TestRequestJoinPlayer(t *testing.T) {
	c := newTestClient(t, WithRelationships(NewFriendSet(alice, bob)))
	c.OnInvitationUpdated(Invitation{PartyID: 9, Sender: alice, Kind: PendingInvite})
	c.OnInvitationUpdated(Invitation{PartyID: 8, Sender: bob, Kind: PendingJoinRequest})

	require.True(t, c.CanRequestJoinPlayer(alice))
	require.False(t, c.CanRequestJoinPlayer(bob), "already requested")
	require.False(t, c.CanRequestJoinPlayer(carol), "not a friend")
	require.ErrorIs(t, c.RequestJoinPlayer(carol), ErrCannotRequestJoin)

	require.NoError(t, c.RequestJoinPlayer(alice))
	require.Equal(t, []Request{
		RequestJoinPlayer{Target: alice, ExpectingExistingInvite: true},
	}, c.bus.requests())
}

func TestInvitationActions(t *testing.T) {
	c := newTestClient(t)
	c.Reconcile(partyOf(1, self, self))
	c.OnInvitationUpdated(Invitation{PartyID: 9, Sender: alice, Kind: PendingInvite})
	c.OnInvitationUpdated(Invitation{PartyID: 8, Sender: bob, Kind: PendingJoinRequest})

	require.NoError(t, c.AcceptInvite(9))
	require.NoError(t, c.DeclineInvite(9))
	require.NoError(t, c.CancelJoinRequest(8))
	require.ErrorIs(t, c.AcceptInvite(8), ErrNoSuchInvitation)
	require.ErrorIs(t, c.DeclineInvite(8), ErrNoSuchInvitation)
	require.ErrorIs(t, c.CancelJoinRequest(9), ErrNoSuchInvitation)
	require.ErrorIs(t, c.AcceptInvite(7), ErrNoSuchInvitation)

	require.Equal(t, []Request{
		RequestJoinPlayer{Target: alice, CurrentPartyID: 1, ExpectingExistingInvite: true},
		ClearOtherPartyRequest{PartyID: 9},
		ClearOtherPartyRequest{PartyID: 8},
	}, c.bus.requests())
}

func TestJoinRequestActions(t *testing.T) {
	c := newTestClient(t,
		WithRelationships(NewFriendSet(alice, bob)),
		WithPreferences(&MemoryPreferences{Mode: FriendsCanRequestToJoin}),
	)
	snap := joinRequestFrom(alice, bob)
	snap.Pending = append(snap.Pending, PendingPlayer{Identity: carol, Kind: PendingInvite})
	c.Reconcile(snap)
	require.Empty(t, c.bus.sent)

	require.NoError(t, c.AcceptJoinRequest(alice))
	require.NoError(t, c.RejectJoinRequest(bob))
	require.NoError(t, c.CancelOutgoingInvite(carol))
	require.ErrorIs(t, c.AcceptJoinRequest(carol), ErrNoSuchRequest)
	require.ErrorIs(t, c.CancelOutgoingInvite(alice), ErrNoSuchRequest)
	require.Equal(t, []Request{
		InvitePlayer{Target: alice, PartyID: 1, ExpectingExistingRequest: true},
		ClearPendingPlayer{Identity: bob},
		ClearPendingPlayer{Identity: carol},
	}, c.bus.requests())
}

func TestModeration(t *testing.T) {
	c := newTestClient(t)
	require.ErrorIs(t, c.LeaveParty(), ErrNotInParty)
	require.False(t, c.CanModerate(alice))

	c.Reconcile(partyOf(1, self, self, alice))
	require.True(t, c.CanModerate(alice))
	require.False(t, c.CanModerate(self))
	require.False(t, c.CanModerate(bob))
	require.NoError(t, c.KickMember(alice))
	require.NoError(t, c.PromoteLeader(alice))
	require.ErrorIs(t, c.KickMember(bob), ErrNotLeader)
	require.NoError(t, c.LeaveParty())
	require.Equal(t, []Request{
		KickMember{PartyID: 1, Target: alice},
		PromoteLeader{PartyID: 1, Target: alice},
		LeaveParty{PartyID: 1},
	}, c.bus.requests())

	c.Reconcile(partyOf(1, alice, self, alice))
	require.ErrorIs(t, c.PromoteLeader(alice), ErrNotLeader)
}

func TestSendChat(t *testing.T) {
	c := newTestClient(t)
	require.ErrorIs(t, c.SendChat("hello"), ErrNotInParty)
	c.Reconcile(partyOf(1, self, self))
	require.ErrorIs(t, c.SendChat("   "), ErrEmptyChat)
	require.Empty(t, c.bus.sent)
}
