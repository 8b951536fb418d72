package party

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestReconcileSoloToParty(t *testing.T) {
	tc := newTestClient(t)
	cs := tc.Reconcile(partyOf(1, alice, self, alice))
	require.True(t, cs.PartyChanged)
	require.Equal(t, []Event{
		{Kind: NewParty},
		{Kind: MemberGained, Member: alice},
		{Kind: LeaderChanged, Leader: false},
		{Kind: EffectiveCriteriaChanged},
		{Kind: PartyUpdated},
	}, cs.Events)
	require.Equal(t, cs.Events, tc.takeEvents())
	require.False(t, tc.IsLeader())
}

func TestReconcileCreateOwnParty(t *testing.T) {
	tc := newTestClient(t)
	cs := tc.OnPartyCreated(partyOf(1, self, self))
	require.Equal(t, []Kind{NewParty, PartyUpdated}, cs.Kinds())
	require.True(t, tc.IsLeader())
	require.True(t, tc.InRealParty())
}

func TestReconcileIsIdempotent(t *testing.T) {
	tc := newTestClient(t)
	snap := partyOf(1, self, self, alice, bob)
	snap.Queued[MatchGroupCasual12v12] = true
	snap.Pending = []PendingPlayer{
		{Identity: carol, Kind: PendingJoinRequest},
		{Identity: 500, Kind: PendingInvite},
	}
	first := tc.Reconcile(snap)
	require.False(t, first.Empty())
	sent := len(tc.bus.sent)
	require.Equal(t, 1, sent, "carol is not a friend and is rejected once")

	// Same party, members reordered.
	again := snap.Clone()
	again.Members[0], again.Members[2] = again.Members[2], again.Members[0]
	second := tc.Reconcile(again)
	require.True(t, second.Empty(), "unexpected events %v", second.Kinds())
	require.Len(t, tc.bus.sent, sent)

	require.True(t, tc.Refresh().Empty())
}

func TestReconcileDestroyReturnsSolo(t *testing.T) {
	tc := newTestClient(t)
	tc.Reconcile(partyOf(1, alice, self, alice))
	tc.takeEvents()

	require.True(t, tc.OnPartyDestroyed(2).Empty(), "destroy for another party")
	require.True(t, tc.InRealParty())

	cs := tc.OnPartyDestroyed(1)
	require.Equal(t, []Event{
		{Kind: NewParty},
		{Kind: MemberLost, Member: alice},
		{Kind: LeaderChanged, Leader: true},
		{Kind: EffectiveCriteriaChanged},
		{Kind: PartyUpdated},
	}, cs.Events)
	require.False(t, tc.InRealParty())
	require.True(t, tc.IsLeader())
}

func TestReconcileMemberEvents(t *testing.T) {
	tc := newTestClient(t)
	tc.Reconcile(partyOf(1, self, self, alice, bob))
	tc.takeEvents()

	next := partyOf(1, self, self, alice, carol)
	next.Members[1].Online = false
	cs := tc.Reconcile(next)
	require.False(t, cs.PartyChanged)
	require.Equal(t, []Event{
		{Kind: MemberOnlineStateChanged, Member: alice},
		{Kind: MemberGained, Member: carol},
		{Kind: MemberLost, Member: bob},
		{Kind: PartyUpdated},
	}, cs.Events)
}

func TestReconcileDuplicateMembers(t *testing.T) {
	tc := newTestClient(t)
	snap := partyOf(1, self, alice, self, alice)
	cs := tc.Reconcile(snap)
	require.Equal(t, []Kind{NewParty, MemberGained, PartyUpdated}, cs.Kinds())
	require.Len(t, tc.Snapshot().Members, 2)
}

func TestReconcileLeadershipMovesCriteriaSource(t *testing.T) {
	tc := newTestClient(t)
	snap := partyOf(1, self, self, alice)
	snap.GroupCriteria.LateJoinOK = true
	tc.Reconcile(snap)
	tc.takeEvents()
	require.False(t, tc.EffectiveGroupCriteria().LateJoinOK, "leader uses local criteria")

	snap.Leader = alice
	cs := tc.Reconcile(snap)
	require.Equal(t, []Event{
		{Kind: LeaderChanged, Leader: false},
		{Kind: EffectiveCriteriaChanged},
		{Kind: PartyUpdated},
	}, cs.Events)
	require.True(t, tc.EffectiveGroupCriteria().LateJoinOK)

	// The leader edits the party's criteria.
	snap.GroupCriteria.CustomPingLimit = 80
	cs = tc.Reconcile(snap)
	require.Equal(t, []Kind{EffectiveCriteriaChanged, PartyUpdated}, cs.Kinds())
	require.Equal(t, uint32(80), tc.EffectiveGroupCriteria().CustomPingLimit)

	snap.UIState.MenuStep = 3
	cs = tc.Reconcile(snap)
	require.Equal(t, []Kind{EffectiveCriteriaChanged, PartyUpdated}, cs.Kinds())
	require.Equal(t, int32(3), tc.EffectiveUIState().MenuStep)
}

func TestLocalEditsNotifyOnlyWhenEffective(t *testing.T) {
	tc := newTestClient(t)
	tc.MutateLocalGroupCriteria(func(g *GroupCriteria) { g.LateJoinOK = true })
	tc.MutateLocalUIState(func(s *UIState) { s.MenuStep = 2 })
	tc.Tick()
	require.Equal(t, []Event{{Kind: EffectiveCriteriaChanged}}, tc.takeEvents())
	tc.Tick()
	require.Empty(t, tc.takeEvents())

	tc.Reconcile(partyOf(1, alice, self, alice))
	tc.takeEvents()
	tc.MutateLocalGroupCriteria(func(g *GroupCriteria) { g.CustomPingLimit = 50 })
	tc.Tick()
	require.Empty(t, tc.takeEvents(), "followers do not author effective criteria")
	require.Equal(t, uint32(50), tc.Criteria().Local().Group.CustomPingLimit)
}

func TestDispatcher(t *testing.T) {
	var d Dispatcher
	var got []string
	unsub := d.On(MemberGained, func(e Event) { got = append(got, "kind:"+e.String()) })
	d.OnAny(func(e Event) { got = append(got, "any:"+e.String()) })
	d.On(numKinds, func(Event) { t.Fatal("out of range kind registered") })

	d.Dispatch([]Event{{Kind: MemberGained, Member: alice}, {Kind: PartyUpdated}})
	require.Equal(t, []string{
		"kind:member_gained(200)",
		"any:member_gained(200)",
		"any:party_updated",
	}, got)

	got = nil
	unsub()
	d.Dispatch([]Event{{Kind: MemberGained, Member: bob}})
	require.Equal(t, []string{"any:member_gained(300)"}, got)
}

func TestNormalizeSortsPending(t *testing.T) {
	store := NewSnapshotStore(self)
	snap := partyOf(1, self, self)
	snap.Pending = []PendingPlayer{
		{Identity: carol, Kind: PendingJoinRequest},
		{Identity: alice, Kind: PendingInvite},
		{Identity: carol, Kind: PendingJoinRequest},
	}
	out := store.Normalize(snap, zaptest.NewLogger(t))
	require.Equal(t, []PendingPlayer{
		{Identity: alice, Kind: PendingInvite},
		{Identity: carol, Kind: PendingJoinRequest},
	}, out.Pending)
	require.Len(t, snap.Pending, 3, "input is not modified")

	require.Equal(t, store.Solo(), store.Normalize(Snapshot{Leader: alice}, zaptest.NewLogger(t)))
}
