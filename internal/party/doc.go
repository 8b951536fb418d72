// Package party keeps the local view of a matchmaking party consistent with
// the authoritative coordinator while predicting the outcome of local actions.
//
// # Overview
//
// The coordinator pushes party snapshots (create, update, destroy) and invite
// objects on its own schedule. The client sends acknowledged requests (queue,
// criteria, social actions). The two streams interleave arbitrarily, and this
// package reconciles them without ever firing a duplicated or contradictory
// transition.
//
// # Components
//
//   - SnapshotStore: current and previous Snapshot; a solo party-of-one when
//     no party object exists
//   - Reconciler (reconcile.go): sorted-merge member diff, leadership,
//     criteria source, queue gates, join request policy, ordered events
//   - CriteriaSync: local / last-sent / last-confirmed criteria, dirty bits,
//     debounced delta messages built with package criteria
//   - QueueManager: per match group pending flags in a fixed array
//   - InviteTracker: the four pending-player lists and the auto-action policy
//   - Dispatcher: one observer list per event kind
//
// Client ties them together and is the only type hosts talk to.
//
// # Threading
//
// Client has no locks. The host drives it from a single goroutine: pushed
// snapshots, Tick, user actions and MessageBus reply callbacks all run there.
// Replies may arrive before or after the snapshot reflecting their effect.
//
// # Event Order
//
// A reconciliation pass fires, in order:
//
//	NewParty → MemberOnlineStateChanged* → MemberGained* → MemberLost* →
//	LeaderChanged → EffectiveCriteriaChanged → QueueStateChanged* →
//	StandbyQueueChanged → OutgoingInvitesChanged →
//	IncomingJoinRequestsChanged → PartyUpdated
//
// Reconciling the same snapshot twice fires nothing the second time.
//
// # Queue Gates
//
//	Idle ──RequestQueue──> PendingEnqueue ──snapshot or ack──> Queued
//	Queued ──CancelQueue──> PendingDequeue ──snapshot──> Idle
//
// A group is effectively queued while an enqueue is pending or confirmed. It
// stays queued across a pending cancel until a snapshot drops it, so a match
// offer racing the cancel can still be accepted.
//
// # Criteria Timing
//
// Edits mark dirty bits. Tick sends a SetOptions delta against the last sent
// value once no message is unacknowledged, the coalesce window has passed
// (skipped while queued), and the minimum send interval has elapsed since
// the previous send.
package party
