package party

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MaxPartySize bounds members plus outstanding invites.
const MaxPartySize = 6

const chatHistory = 64

var (
	ErrInvalidMatchGroup = errors.New("invalid match group")
	ErrCannotQueue       = errors.New("cannot queue")
	ErrCannotInvite      = errors.New("cannot invite player")
	ErrCannotRequestJoin = errors.New("cannot request to join player")
	ErrNoSuchInvitation  = errors.New("no such invitation")
	ErrNoSuchRequest     = errors.New("no such pending player")
	ErrNotInParty        = errors.New("not in a party")
	ErrNotLeader         = errors.New("not party leader")
	ErrEmptyChat         = errors.New("empty chat message")
)

// ChatMessage is a party chat line.
type ChatMessage struct {
	From Identity
	Text string
	At   time.Time
}

// Opt configures a Client.
type Opt func(*Client)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Opt {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithClock sets the clock driving criteria debounce.
func WithClock(clock clockwork.Clock) Opt {
	return func(c *Client) {
		c.clock = clock
	}
}

// WithPreferences sets the preference store. Defaults to in-memory
// preferences with OpenToFriends.
func WithPreferences(prefs PreferenceStore) Opt {
	return func(c *Client) {
		c.prefs = prefs
	}
}

// WithRelationships sets the relationship oracle. Defaults to nobody being a
// friend.
func WithRelationships(rel Relationships) Opt {
	return func(c *Client) {
		c.rel = rel
	}
}

// WithCoalesceWindow sets how long non-urgent criteria edits are batched.
func WithCoalesceWindow(d time.Duration) Opt {
	return func(c *Client) {
		c.coalesce = d
	}
}

// WithMinSendInterval sets the floor between two criteria messages.
func WithMinSendInterval(d time.Duration) Opt {
	return func(c *Client) {
		c.minInterval = d
	}
}

// Client is the per-session party context. It is not safe for concurrent
// use: the host calls every method, including reply callbacks, from one
// goroutine.
type Client struct {
	self        Identity
	logger      *zap.Logger
	clock       clockwork.Clock
	bus         MessageBus
	prefs       PreferenceStore
	rel         Relationships
	coalesce    time.Duration
	minInterval time.Duration

	events   Dispatcher
	store    *SnapshotStore
	criteria *CriteriaSync
	queue    *QueueManager
	invites  *InviteTracker

	invitations  map[PartyID]Invitation
	partySourced bool
	chat         []ChatMessage
	lastError    int
}

// NewClient creates a solo client for self that talks through bus.
func NewClient(self Identity, bus MessageBus, opts ...Opt) *Client {
	c := &Client{
		self:        self,
		logger:      zap.NewNop(),
		clock:       clockwork.NewRealClock(),
		bus:         bus,
		prefs:       &MemoryPreferences{},
		rel:         noRelationships{},
		coalesce:    DefaultCoalesceWindow,
		minInterval: DefaultMinSendInterval,
		invitations: make(map[PartyID]Invitation),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.store = NewSnapshotStore(self)
	c.criteria = newCriteriaSync(c.logger.Named("criteria"), c.clock, c.coalesce, c.minInterval)
	c.queue = newQueueManager(c.logger.Named("queue"))
	c.invites = newInviteTracker()
	return c
}

// Self returns our identity.
func (c *Client) Self() Identity { return c.self }

// Events returns the dispatcher UI observers subscribe to.
func (c *Client) Events() *Dispatcher { return &c.events }

// Snapshot returns the current snapshot.
func (c *Client) Snapshot() Snapshot { return c.store.Current() }

// Criteria exposes the criteria sync state.
func (c *Client) Criteria() *CriteriaSync { return c.criteria }

// IsLeader reports whether we lead the party. Solo players always do.
func (c *Client) IsLeader() bool {
	snap := c.store.current
	return !snap.IsReal() || snap.Leader == c.self
}

// InRealParty reports whether a coordinator party exists.
func (c *Client) InRealParty() bool { return c.store.current.IsReal() }

// EffectiveGroupCriteria returns the criteria a queue started now would use.
func (c *Client) EffectiveGroupCriteria() GroupCriteria {
	if c.partySourced {
		return c.store.current.GroupCriteria.Clone()
	}
	return c.criteria.local.Group.Clone()
}

// EffectiveUIState returns the leader's UI state for followers and our own
// otherwise.
func (c *Client) EffectiveUIState() UIState {
	if c.partySourced {
		return c.store.current.UIState
	}
	return c.criteria.local.UIState
}

// Reconcile applies a snapshot pushed by the coordinator. A snapshot without
// a party ID means no party.
func (c *Client) Reconcile(next Snapshot) ChangeSet {
	cs := c.reconcile(next, true)
	c.emit(cs)
	return cs
}

// OnPartyCreated handles a party object appearing.
func (c *Client) OnPartyCreated(snap Snapshot) ChangeSet {
	cur := c.store.current
	if cur.IsReal() && cur.PartyID != snap.PartyID {
		c.logger.Warn("party created while another party is active",
			zap.Uint64("active", uint64(cur.PartyID)), zap.Uint64("created", uint64(snap.PartyID)))
	}
	cs := c.Reconcile(snap)
	if !cs.PartyChanged {
		c.logger.Warn("party create did not change the active party", zap.Uint64("party", uint64(snap.PartyID)))
	}
	return cs
}

// OnPartyUpdated handles a party object update.
func (c *Client) OnPartyUpdated(snap Snapshot) ChangeSet {
	return c.Reconcile(snap)
}

// OnPartyDestroyed handles a party object disappearing. A destroy for a
// party other than the active one is logged and ignored.
func (c *Client) OnPartyDestroyed(id PartyID) ChangeSet {
	cur := c.store.current
	if !cur.IsReal() || cur.PartyID != id {
		c.logger.Warn("destroy for a party that is not active",
			zap.Uint64("active", uint64(cur.PartyID)), zap.Uint64("destroyed", uint64(id)))
		return ChangeSet{}
	}
	return c.Reconcile(Snapshot{})
}

// Refresh re-evaluates derived state against the current snapshot.
func (c *Client) Refresh() ChangeSet {
	cs := c.reconcile(c.store.current, false)
	c.emit(cs)
	return cs
}

// OnInvitationUpdated handles an invite object being created or updated.
func (c *Client) OnInvitationUpdated(inv Invitation) ChangeSet {
	c.invitations[inv.PartyID] = inv
	return c.emitInvitations()
}

// OnInvitationRemoved handles an invite object being destroyed.
func (c *Client) OnInvitationRemoved(id PartyID) ChangeSet {
	delete(c.invitations, id)
	return c.emitInvitations()
}

// ReplaceInvitations installs the full set of invite objects, for sources
// that deliver complete lists rather than individual changes.
func (c *Client) ReplaceInvitations(invs []Invitation) ChangeSet {
	clear(c.invitations)
	for _, inv := range invs {
		c.invitations[inv.PartyID] = inv
	}
	return c.emitInvitations()
}

func (c *Client) emitInvitations() ChangeSet {
	cs := c.reconcileInvitations()
	c.emit(cs)
	return cs
}

// OnChatMessage records a party chat line.
func (c *Client) OnChatMessage(msg ChatMessage) {
	if msg.At.IsZero() {
		msg.At = c.clock.Now()
	}
	c.chat = append(c.chat, msg)
	if len(c.chat) > chatHistory {
		c.chat = slices.Clone(c.chat[len(c.chat)-chatHistory:])
	}
	c.emit(ChangeSet{Events: []Event{{Kind: ChatReceived, Member: msg.From}}})
}

// OnCoordinatorError records an error code reported by the coordinator.
func (c *Client) OnCoordinatorError(code int) {
	c.lastError = code
	c.logger.Warn("coordinator reported error", zap.Int("code", code))
	c.emit(ChangeSet{Events: []Event{{Kind: CoordinatorError, Code: code}}})
}

// Tick drives time-based work. Call it once per host loop iteration.
func (c *Client) Tick() {
	if c.criteria.takeEffectiveNotify() {
		c.emit(ChangeSet{Events: []Event{{Kind: EffectiveCriteriaChanged}}})
	}
	c.syncCriteria()
}

func (c *Client) syncCriteria() {
	snap := c.store.current
	if !c.criteria.due(c.queue.InAnyQueue(snap)) {
		return
	}
	delta, included := c.criteria.delta()
	if delta.Empty() {
		c.criteria.discard()
		return
	}
	seq := c.criteria.nextSeq()
	party := snap.PartyID
	req := SetOptions{PartyID: party, Delta: delta}
	if err := c.sendLogged(req, func(r Reply) { c.onOptionsReply(seq, party, r) }, zap.DebugLevel); err != nil {
		c.criteria.failed()
		return
	}
	c.criteria.commit(included, &ackGuard{seq: seq, party: party})
	criteriaSends.WithLabelValues(sendKind(delta)).Inc()
	c.logger.Debug("criteria sent",
		zap.Uint64("party", uint64(party)),
		zap.Uint64("seq", seq),
		zap.Bool("overwrite", delta.Overwrite))
}

func (c *Client) onOptionsReply(seq uint64, party PartyID, r Reply) {
	if !c.criteria.acknowledge(seq) {
		staleReplies.WithLabelValues(SetOptions{}.RequestName()).Inc()
		c.logger.Debug("ignoring stale criteria ack", zap.Uint64("seq", seq), zap.Uint64("party", uint64(party)))
		return
	}
	if r.Err != nil {
		c.logger.Warn("criteria update rejected", zap.Uint64("party", uint64(party)), zap.Error(r.Err))
	}
}

// MutateLocalGroupCriteria edits our group criteria. The change is sent on a
// later Tick.
func (c *Client) MutateLocalGroupCriteria(fn func(*GroupCriteria)) {
	c.criteria.mutateGroup(fn, !c.partySourced)
}

// MutateLocalPlayerCriteria edits our per-player criteria.
func (c *Client) MutateLocalPlayerCriteria(fn func(*PlayerCriteria)) {
	c.criteria.mutatePlayer(fn)
}

// MutateLocalUIState edits our UI state.
func (c *Client) MutateLocalUIState(fn func(*UIState)) {
	c.criteria.mutateUIState(fn, !c.partySourced)
}

// finalOptions returns the criteria changes not yet sent, for attaching to a
// queue request.
func (c *Client) finalOptions() (*OptionsDelta, dirtyField) {
	if !c.criteria.Dirty() {
		return nil, 0
	}
	delta, included := c.criteria.delta()
	if delta.Empty() {
		return nil, 0
	}
	return &delta, included
}

// InQueue reports whether we are effectively queued for g. It stays true
// while a cancel is in flight.
func (c *Client) InQueue(g MatchGroup) bool {
	return c.queue.InQueue(g, c.store.current)
}

// QueueState returns the gate state of g.
func (c *Client) QueueState(g MatchGroup) QueueState {
	return c.queue.State(g, c.store.current)
}

// InStandbyQueue reports effective standby membership.
func (c *Client) InStandbyQueue() bool {
	return c.queue.InStandby(c.store.current)
}

// StandbyState returns the gate state of the standby queue.
func (c *Client) StandbyState() QueueState {
	return c.queue.StandbyState(c.store.current)
}

// CanRequestQueue reports whether RequestQueue(g) would send.
func (c *Client) CanRequestQueue(g MatchGroup) bool {
	return c.IsLeader() && c.queue.canRequest(g, c.store.current)
}

// RequestQueue asks to join the queue for g. It is a no-op while an enqueue
// is in flight or the group is already effectively queued.
func (c *Client) RequestQueue(g MatchGroup) error {
	if !g.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidMatchGroup, g)
	}
	if !c.IsLeader() {
		return fmt.Errorf("queue for %s: %w", g, ErrNotLeader)
	}
	snap := c.store.current
	if !c.queue.canRequest(g, snap) {
		c.logger.Debug("queue request already pending", zap.Stringer("group", g))
		return nil
	}
	final, included := c.finalOptions()
	epoch := c.queue.epoch
	req := QueueForMatch{PartyID: snap.PartyID, MatchGroup: g, FinalOptions: final}
	if err := c.send(req, func(r Reply) { c.onEnqueueReply(epoch, g, r) }); err != nil {
		return fmt.Errorf("queue for %s: %w", g, err)
	}
	if final != nil {
		c.criteria.commit(included, nil)
	}
	c.queue.markEnqueue(g)
	c.Refresh()
	return nil
}

func (c *Client) onEnqueueReply(epoch uint64, g MatchGroup, r Reply) {
	if epoch != c.queue.epoch {
		staleReplies.WithLabelValues(QueueForMatch{}.RequestName()).Inc()
		return
	}
	if r.Err != nil {
		c.logger.Warn("queue request failed", zap.Stringer("group", g), zap.Error(r.Err))
	}
	c.queue.groups[g].enqueueReplied(r.Err == nil)
	c.Refresh()
}

// CanCancelQueue reports whether CancelQueue(g) would send.
func (c *Client) CanCancelQueue(g MatchGroup) bool {
	return c.IsLeader() && c.queue.canCancel(g, c.store.current)
}

// CancelQueue asks to leave the queue for g. The group stays effectively
// queued until a snapshot confirms removal.
func (c *Client) CancelQueue(g MatchGroup) error {
	if !g.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidMatchGroup, g)
	}
	if !c.IsLeader() {
		return fmt.Errorf("leave queue %s: %w", g, ErrNotLeader)
	}
	snap := c.store.current
	if !c.queue.canCancel(g, snap) {
		return nil
	}
	epoch := c.queue.epoch
	req := RemoveFromQueue{PartyID: snap.PartyID, MatchGroup: g}
	if err := c.send(req, func(r Reply) { c.onDequeueReply(epoch, g, r) }); err != nil {
		return fmt.Errorf("leave queue %s: %w", g, err)
	}
	c.queue.markDequeue(g)
	c.Refresh()
	return nil
}

func (c *Client) onDequeueReply(epoch uint64, g MatchGroup, r Reply) {
	if epoch != c.queue.epoch {
		staleReplies.WithLabelValues(RemoveFromQueue{}.RequestName()).Inc()
		return
	}
	if r.Err != nil {
		c.logger.Warn("leave queue failed", zap.Stringer("group", g), zap.Error(r.Err))
	}
	c.queue.groups[g].dequeueReplied()
	c.Refresh()
}

// CanRequestStandby reports whether RequestStandby would send. Standby joins
// our own party's match in progress.
func (c *Client) CanRequestStandby() bool {
	snap := c.store.current
	return snap.IsReal() && snap.LobbyID != 0 && c.queue.standby.canRequest(snap.StandbyQueued)
}

// RequestStandby asks to join the party's in-progress match as a late entrant.
func (c *Client) RequestStandby() error {
	snap := c.store.current
	if !snap.IsReal() || snap.LobbyID == 0 {
		return fmt.Errorf("queue for standby: %w", ErrCannotQueue)
	}
	if !c.queue.standby.canRequest(snap.StandbyQueued) {
		return nil
	}
	final, included := c.finalOptions()
	epoch := c.queue.epoch
	req := QueueForStandby{PartyID: snap.PartyID, LobbyID: snap.LobbyID, FinalOptions: final}
	if err := c.send(req, func(r Reply) { c.onStandbyEnqueueReply(epoch, r) }); err != nil {
		return fmt.Errorf("queue for standby: %w", err)
	}
	if final != nil {
		c.criteria.commit(included, nil)
	}
	c.queue.markStandbyEnqueue()
	c.Refresh()
	return nil
}

func (c *Client) onStandbyEnqueueReply(epoch uint64, r Reply) {
	if epoch != c.queue.epoch {
		staleReplies.WithLabelValues(QueueForStandby{}.RequestName()).Inc()
		return
	}
	if r.Err != nil {
		c.logger.Warn("standby request failed", zap.Error(r.Err))
	}
	c.queue.standby.enqueueReplied(r.Err == nil)
	c.Refresh()
}

// CanCancelStandby reports whether CancelStandby would send.
func (c *Client) CanCancelStandby() bool {
	return c.queue.standby.canCancel(c.store.current.StandbyQueued)
}

// CancelStandby asks to leave the standby queue.
func (c *Client) CancelStandby() error {
	snap := c.store.current
	if !c.queue.standby.canCancel(snap.StandbyQueued) {
		return nil
	}
	epoch := c.queue.epoch
	if err := c.send(RemoveFromStandbyQueue{PartyID: snap.PartyID}, func(r Reply) { c.onStandbyDequeueReply(epoch, r) }); err != nil {
		return fmt.Errorf("leave standby: %w", err)
	}
	c.queue.markStandbyDequeue()
	c.Refresh()
	return nil
}

func (c *Client) onStandbyDequeueReply(epoch uint64, r Reply) {
	if epoch != c.queue.epoch {
		staleReplies.WithLabelValues(RemoveFromStandbyQueue{}.RequestName()).Inc()
		return
	}
	if r.Err != nil {
		c.logger.Warn("leave standby failed", zap.Error(r.Err))
	}
	c.queue.standby.dequeueReplied()
	c.Refresh()
}

// JoinRequestMode returns the stored join request policy.
func (c *Client) JoinRequestMode() JoinRequestMode { return c.prefs.JoinRequestMode() }

// IgnoreInvites returns the stored ignore-invites preference.
func (c *Client) IgnoreInvites() bool { return c.prefs.IgnoreInvites() }

// SetJoinRequestMode stores the policy and re-evaluates pending join requests.
func (c *Client) SetJoinRequestMode(mode JoinRequestMode) error {
	if mode == c.prefs.JoinRequestMode() {
		return nil
	}
	if err := c.prefs.SetJoinRequestMode(mode); err != nil {
		return fmt.Errorf("set join request mode: %w", err)
	}
	c.preferenceChanged()
	return nil
}

// SetIgnoreInvites stores the preference and re-evaluates pending join
// requests.
func (c *Client) SetIgnoreInvites(ignore bool) error {
	if ignore == c.prefs.IgnoreInvites() {
		return nil
	}
	if err := c.prefs.SetIgnoreInvites(ignore); err != nil {
		return fmt.Errorf("set ignore invites: %w", err)
	}
	c.preferenceChanged()
	return nil
}

func (c *Client) preferenceChanged() {
	cs := ChangeSet{Events: []Event{{Kind: PreferenceChanged}}}
	next := c.reconcile(c.store.current, false)
	cs.Events = append(cs.Events, next.Events...)
	c.emit(cs)
}

// Reset drops every pending flag and returns to solo, as after a
// disconnect. Local criteria edits are kept and fully resent.
func (c *Client) Reset() ChangeSet {
	c.logger.Info("resetting party state")
	c.queue.reset()
	c.criteria.reset()
	c.invites.reset()
	clear(c.invitations)

	cs := c.reconcile(Snapshot{}, true)
	cs.Events = append(cs.Events, c.reconcileInvitations().Events...)
	c.emit(cs)
	return cs
}

// IncomingInvites returns invitations from other parties, sorted by party.
func (c *Client) IncomingInvites() []Invitation {
	return c.invitationsOf(PendingInvite)
}

// OutgoingJoinRequests returns our requests to join other parties.
func (c *Client) OutgoingJoinRequests() []Invitation {
	return c.invitationsOf(PendingJoinRequest)
}

func (c *Client) invitationsOf(kind PendingKind) []Invitation {
	var out []Invitation
	for _, inv := range c.invitations {
		if inv.Kind == kind {
			inv.Members = slices.Clone(inv.Members)
			out = append(out, inv)
		}
	}
	slices.SortFunc(out, func(a, b Invitation) int { return cmp.Compare(a.PartyID, b.PartyID) })
	return out
}

// OutgoingInvites returns players our party invited.
func (c *Client) OutgoingInvites() []Identity {
	return slices.Clone(c.invites.outgoingInvites)
}

// IncomingJoinRequests returns join requests awaiting a user decision.
// Requests handled by policy never appear here.
func (c *Client) IncomingJoinRequests() []Identity {
	return slices.Clone(c.invites.incomingJoinRequests)
}

// Chat returns the recent chat history.
func (c *Client) Chat() []ChatMessage { return slices.Clone(c.chat) }

// LastErrorCode returns the last coordinator error code, zero if none.
func (c *Client) LastErrorCode() int { return c.lastError }

func (c *Client) send(req Request, onReply ReplyFunc) error {
	return c.sendLogged(req, onReply, zap.WarnLevel)
}

// sendLogged is send with the level used when the bus refuses req.
func (c *Client) sendLogged(req Request, onReply ReplyFunc, failLevel zapcore.Level) error {
	err := c.bus.Send(req, onReply)
	outboundRequests.WithLabelValues(req.RequestName(), resultLabel(err)).Inc()
	if err != nil {
		c.logger.Log(failLevel, "request not sent", zap.String("request", req.RequestName()), zap.Error(err))
		return err
	}
	c.logger.Debug("request sent", zap.String("request", req.RequestName()))
	return nil
}

func (c *Client) emit(cs ChangeSet) {
	if cs.Empty() {
		return
	}
	for _, e := range cs.Events {
		emittedEvents.WithLabelValues(e.Kind.String()).Inc()
	}
	if ce := c.logger.Check(zap.DebugLevel, "party events"); ce != nil {
		names := make([]string, len(cs.Events))
		for i, e := range cs.Events {
			names[i] = e.String()
		}
		ce.Write(zap.String("events", strings.Join(names, ",")), zap.Bool("party_changed", cs.PartyChanged))
	}
	c.events.Dispatch(cs.Events)
}

type noRelationships struct{}

func (noRelationships) IsFriend(Identity) bool { return false }
