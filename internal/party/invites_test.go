package party

import (
	"errors"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"
)

func joinRequestFrom(ids ...Identity) Snapshot {
	snap := partyOf(1, self, self)
	for _, id := range ids {
		snap.Pending = append(snap.Pending, PendingPlayer{Identity: id, Kind: PendingJoinRequest})
	}
	return snap
}

func TestJoinRequestPolicy(t *testing.T) {
	accept := func(id Identity) Request {
		return InvitePlayer{Target: id, PartyID: 1, ExpectingExistingRequest: true}
	}
	reject := func(id Identity) Request {
		return ClearPendingPlayer{Identity: id}
	}
	for _, tc := range []struct {
		desc      string
		mode      JoinRequestMode
		ignore    bool
		requester Identity
		expect    Request
	}{
		{desc: "open friend", mode: OpenToFriends, requester: alice, expect: accept(alice)},
		{desc: "open stranger", mode: OpenToFriends, requester: carol, expect: reject(carol)},
		{desc: "request friend", mode: FriendsCanRequestToJoin, requester: alice},
		{desc: "request stranger", mode: FriendsCanRequestToJoin, requester: carol, expect: reject(carol)},
		{desc: "closed friend", mode: ClosedToFriends, requester: alice, expect: reject(alice)},
		{desc: "closed stranger", mode: ClosedToFriends, requester: carol, expect: reject(carol)},
		{desc: "ignoring invites", mode: OpenToFriends, ignore: true, requester: alice, expect: reject(alice)},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			c := newTestClient(t,
				WithPreferences(&MemoryPreferences{Mode: tc.mode, Ignore: tc.ignore}),
				WithRelationships(NewFriendSet(alice)),
			)
			cs := c.Reconcile(joinRequestFrom(tc.requester))
			if tc.expect == nil {
				require.Empty(t, c.bus.sent)
				require.Equal(t, []Identity{tc.requester}, c.IncomingJoinRequests())
				require.True(t, cs.Has(IncomingJoinRequestsChanged))
				return
			}
			require.Equal(t, []Request{tc.expect}, c.bus.requests())
			require.Empty(t, c.IncomingJoinRequests(), "handled requests are never surfaced")
			require.False(t, cs.Has(IncomingJoinRequestsChanged))

			// The request stays in the snapshot until the coordinator
			// processes it; it is not actioned twice.
			c.Reconcile(joinRequestFrom(tc.requester, bob))
			require.Len(t, c.bus.sent, 2)
		})
	}
}

func TestJoinRequestRepeatedAfterRemoval(t *testing.T) {
	c := newTestClient(t, WithPreferences(&MemoryPreferences{Mode: ClosedToFriends}))
	c.Reconcile(joinRequestFrom(carol))
	c.Reconcile(joinRequestFrom())
	c.Reconcile(joinRequestFrom(carol))
	require.Equal(t, []Request{
		ClearPendingPlayer{Identity: carol},
		ClearPendingPlayer{Identity: carol},
	}, c.bus.requests())
}

func TestJoinRequestSurfacedToFollowers(t *testing.T) {
	c := newTestClient(t, WithPreferences(&MemoryPreferences{Mode: ClosedToFriends}))
	snap := partyOf(1, alice, self, alice)
	snap.Pending = []PendingPlayer{{Identity: carol, Kind: PendingJoinRequest}}
	c.Reconcile(snap)
	require.Empty(t, c.bus.sent, "only the leader acts on join requests")
	require.Equal(t, []Identity{carol}, c.IncomingJoinRequests())
	require.ErrorIs(t, c.AcceptJoinRequest(carol), ErrNoSuchRequest)
}

func TestJoinRequestFailedSendRetried(t *testing.T) {
	c := newTestClient(t, WithPreferences(&MemoryPreferences{Mode: ClosedToFriends}))
	c.bus.err = errors.New("offline")
	c.Reconcile(joinRequestFrom(carol))
	require.Empty(t, c.IncomingJoinRequests())

	c.bus.err = nil
	c.Refresh()
	require.Equal(t, []Request{ClearPendingPlayer{Identity: carol}}, c.bus.requests())
}

func TestPreferenceChangeReevaluates(t *testing.T) {
	prefs := &MemoryPreferences{Mode: FriendsCanRequestToJoin}
	c := newTestClient(t, WithPreferences(prefs), WithRelationships(NewFriendSet(alice)))
	c.Reconcile(joinRequestFrom(alice))
	require.Equal(t, []Identity{alice}, c.IncomingJoinRequests())
	c.takeEvents()

	require.NoError(t, c.SetJoinRequestMode(FriendsCanRequestToJoin))
	require.Empty(t, c.takeEvents(), "unchanged preference")

	require.NoError(t, c.SetJoinRequestMode(OpenToFriends))
	require.Equal(t, OpenToFriends, prefs.Mode)
	require.Equal(t, []Kind{PreferenceChanged, IncomingJoinRequestsChanged, PartyUpdated}, kinds(c.takeEvents()))
	require.Equal(t, []Request{InvitePlayer{Target: alice, PartyID: 1, ExpectingExistingRequest: true}}, c.bus.requests())
	require.Empty(t, c.IncomingJoinRequests())
}

func TestIgnoreInvitesPersisted(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockPreferenceStore(ctrl)
	ignore := false
	store.EXPECT().JoinRequestMode().Return(FriendsCanRequestToJoin).AnyTimes()
	store.EXPECT().IgnoreInvites().DoAndReturn(func() bool { return ignore }).AnyTimes()
	store.EXPECT().SetIgnoreInvites(true).DoAndReturn(func(v bool) error {
		ignore = v
		return nil
	})

	bus := &recordingBus{}
	c := NewClient(self, bus,
		WithLogger(zaptest.NewLogger(t)),
		WithClock(clockwork.NewFakeClock()),
		WithPreferences(store),
		WithRelationships(NewFriendSet(alice)),
	)
	c.Reconcile(joinRequestFrom(alice))
	require.Equal(t, []Identity{alice}, c.IncomingJoinRequests())

	require.NoError(t, c.SetIgnoreInvites(true))
	require.True(t, c.IgnoreInvites())
	require.Equal(t, []Request{ClearPendingPlayer{Identity: alice}}, bus.requests())
	require.Empty(t, c.IncomingJoinRequests())
}

func TestPreferenceStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockPreferenceStore(ctrl)
	failed := errors.New("read-only")
	store.EXPECT().JoinRequestMode().Return(OpenToFriends).AnyTimes()
	store.EXPECT().SetJoinRequestMode(ClosedToFriends).Return(failed)

	c := newTestClient(t, WithPreferences(store))
	require.ErrorIs(t, c.SetJoinRequestMode(ClosedToFriends), failed)
	require.Empty(t, c.events)
}

func TestOutgoingInvites(t *testing.T) {
	c := newTestClient(t)
	snap := partyOf(1, self, self)
	snap.Pending = []PendingPlayer{
		{Identity: carol, Kind: PendingInvite},
		{Identity: bob, Kind: PendingInvite},
	}
	cs := c.Reconcile(snap)
	require.True(t, cs.Has(OutgoingInvitesChanged))
	require.Equal(t, []Identity{bob, carol}, c.OutgoingInvites())

	snap.Pending = snap.Pending[:1]
	cs = c.Reconcile(snap)
	require.Equal(t, []Kind{OutgoingInvitesChanged, PartyUpdated}, cs.Kinds())
	require.Equal(t, []Identity{carol}, c.OutgoingInvites())
}

func TestInvitations(t *testing.T) {
	c := newTestClient(t)
	invite := Invitation{PartyID: 9, Sender: alice, Kind: PendingInvite, Members: []Identity{alice, bob}}

	cs := c.OnInvitationUpdated(invite)
	require.Equal(t, []Kind{IncomingInvitesChanged}, cs.Kinds())
	invite.Members = append(invite.Members, carol)
	require.True(t, c.OnInvitationUpdated(invite).Empty(), "membership changes keep the key set")
	require.Len(t, c.IncomingInvites()[0].Members, 3)

	cs = c.OnInvitationUpdated(Invitation{PartyID: 4, Sender: bob, Kind: PendingJoinRequest})
	require.Equal(t, []Kind{OutgoingJoinRequestsChanged}, cs.Kinds())
	require.Equal(t, PartyID(4), c.OutgoingJoinRequests()[0].PartyID)

	cs = c.ReplaceInvitations([]Invitation{{PartyID: 4, Sender: bob, Kind: PendingJoinRequest}})
	require.Equal(t, []Kind{IncomingInvitesChanged}, cs.Kinds())
	require.Empty(t, c.IncomingInvites())

	cs = c.OnInvitationRemoved(4)
	require.Equal(t, []Kind{OutgoingJoinRequestsChanged}, cs.Kinds())
	require.True(t, c.OnInvitationRemoved(4).Empty())
}

func TestDecideJoinRequest(t *testing.T) {
	friends := NewFriendSet(alice)
	require.Equal(t, joinSurface, decideJoinRequest(carol, false, ClosedToFriends, true, false, friends))
	require.Equal(t, joinAccept, decideJoinRequest(alice, true, OpenToFriends, false, false, friends))
	require.Equal(t, joinSurface, decideJoinRequest(alice, true, OpenToFriends, false, true, friends))
	require.Equal(t, joinSurface, decideJoinRequest(alice, true, FriendsCanRequestToJoin, false, false, friends))
	require.Equal(t, joinReject, decideJoinRequest(carol, true, FriendsCanRequestToJoin, false, false, friends))
	require.Equal(t, joinReject, decideJoinRequest(carol, true, OpenToFriends, false, true, friends))
}

func TestJoinRequestToFullParty(t *testing.T) {
	c := newTestClient(t,
		WithPreferences(&MemoryPreferences{Mode: OpenToFriends}),
		WithRelationships(NewFriendSet(alice, bob)),
	)
	snap := partyOf(1, self, self, carol, 10, 11, 12, 13)
	require.Len(t, snap.Members, MaxPartySize)
	snap.Pending = []PendingPlayer{{Identity: alice, Kind: PendingJoinRequest}}

	cs := c.Reconcile(snap)
	require.Empty(t, c.bus.named("invite_player"))
	require.Equal(t, []Identity{alice}, c.IncomingJoinRequests())
	require.True(t, cs.Has(IncomingJoinRequestsChanged))
	require.ErrorIs(t, c.AcceptJoinRequest(alice), ErrCannotInvite)

	// A seat frees up and the request is accepted by policy.
	snap.Members = snap.Members[:MaxPartySize-1]
	c.Reconcile(snap)
	invites := c.bus.named("invite_player")
	require.Len(t, invites, 1)
	require.Equal(t, InvitePlayer{Target: alice, PartyID: 1, ExpectingExistingRequest: true}, invites[0].req)
	require.Empty(t, c.IncomingJoinRequests())
}

func TestJoinRequestsFillLastSeat(t *testing.T) {
	c := newTestClient(t,
		WithPreferences(&MemoryPreferences{Mode: OpenToFriends}),
		WithRelationships(NewFriendSet(alice, bob)),
	)
	snap := partyOf(1, self, self, 10, 11, 12, 13)
	snap.Pending = []PendingPlayer{
		{Identity: alice, Kind: PendingJoinRequest},
		{Identity: bob, Kind: PendingJoinRequest},
	}
	c.Reconcile(snap)
	invites := c.bus.named("invite_player")
	require.Len(t, invites, 1)
	require.Equal(t, alice, invites[0].req.(InvitePlayer).Target)
	require.Equal(t, []Identity{bob}, c.IncomingJoinRequests())
}
