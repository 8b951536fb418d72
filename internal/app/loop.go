package app

import (
	"context"
	"maps"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/five82/partysync/internal/bus"
	"github.com/five82/partysync/internal/coordinator"
	"github.com/five82/partysync/internal/party"
	"github.com/five82/partysync/internal/state"
)

// Msg is anything the loop accepts in its inbox.
type Msg interface{ isLoopMsg() }

// Action runs Do against the party client on the loop goroutine.
type Action struct {
	Name string
	Do   func(*party.Client) error
}

func (Action) isLoopMsg() {}

type reply struct{ fn func() }

func (reply) isLoopMsg() {}

const (
	defaultTick  = 100 * time.Millisecond
	inboxSize    = 64
	loopLogger   = "loop"
	busLogger    = "bus"
	clientLogger = "party"
)

// LoopOpt configures a Loop.
type LoopOpt func(*loopConfig)

type loopConfig struct {
	logger   *zap.Logger
	clock    clockwork.Clock
	tick     time.Duration
	prefs    party.PreferenceStore
	coalesce time.Duration
	minSend  time.Duration
	busOpts  []bus.Opt
}

// WithLoopLogger sets the logger. Sub-loggers are derived for the bus and
// the party client.
func WithLoopLogger(logger *zap.Logger) LoopOpt {
	return func(c *loopConfig) { c.logger = logger }
}

// WithLoopClock sets the clock driving ticks and criteria timing.
func WithLoopClock(clock clockwork.Clock) LoopOpt {
	return func(c *loopConfig) { c.clock = clock }
}

// WithTick sets the interval between party client ticks.
func WithTick(d time.Duration) LoopOpt {
	return func(c *loopConfig) {
		if d > 0 {
			c.tick = d
		}
	}
}

// WithLoopPreferences sets the preference store handed to the party client.
func WithLoopPreferences(prefs party.PreferenceStore) LoopOpt {
	return func(c *loopConfig) { c.prefs = prefs }
}

// WithCriteriaTiming sets the criteria coalesce window and minimum send
// interval.
func WithCriteriaTiming(coalesce, minSend time.Duration) LoopOpt {
	return func(c *loopConfig) {
		c.coalesce = coalesce
		c.minSend = minSend
	}
}

// WithBusOptions passes options through to the message bus.
func WithBusOptions(opts ...bus.Opt) LoopOpt {
	return func(c *loopConfig) { c.busOpts = append(c.busOpts, opts...) }
}

// Loop owns the party client. Every call into the client happens on the
// goroutine running Run; everything else talks to it through the inbox.
type Loop struct {
	logger *zap.Logger
	clock  clockwork.Clock
	tick   time.Duration
	store  *state.Store

	inbox chan Msg
	done  chan struct{}

	bus     *bus.Bus
	client  *party.Client
	friends party.FriendSet
	offline bool
}

// NewLoop builds the loop, its message bus and the party client for self.
func NewLoop(self party.Identity, submitter coordinator.Submitter, store *state.Store, opts ...LoopOpt) *Loop {
	cfg := loopConfig{
		logger: zap.NewNop(),
		clock:  clockwork.NewRealClock(),
		tick:   defaultTick,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	l := &Loop{
		logger:  cfg.logger.Named(loopLogger),
		clock:   cfg.clock,
		tick:    cfg.tick,
		store:   store,
		inbox:   make(chan Msg, inboxSize),
		done:    make(chan struct{}),
		friends: party.NewFriendSet(),
	}

	busOpts := append([]bus.Opt{bus.WithLogger(cfg.logger.Named(busLogger))}, cfg.busOpts...)
	l.bus = bus.New(submitter, l.postReply, busOpts...)

	clientOpts := []party.Opt{
		party.WithLogger(cfg.logger.Named(clientLogger)),
		party.WithClock(cfg.clock),
		party.WithRelationships(l.friends),
	}
	if cfg.prefs != nil {
		clientOpts = append(clientOpts, party.WithPreferences(cfg.prefs))
	}
	if cfg.coalesce > 0 {
		clientOpts = append(clientOpts, party.WithCoalesceWindow(cfg.coalesce))
	}
	if cfg.minSend > 0 {
		clientOpts = append(clientOpts, party.WithMinSendInterval(cfg.minSend))
	}
	l.client = party.NewClient(self, l.bus, clientOpts...)
	l.client.Events().OnAny(func(e party.Event) {
		l.logger.Debug("party event", zap.Stringer("event", e))
	})
	return l
}

// Bus returns the message bus. Its Run must be started alongside the loop.
func (l *Loop) Bus() *bus.Bus { return l.bus }

// Post enqueues m. It blocks while the inbox is full and returns false once
// the loop has stopped.
func (l *Loop) Post(m Msg) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.inbox <- m:
		return true
	case <-l.done:
		return false
	}
}

// DeliverPoll posts a poll result. It matches the poller's deliver func.
func (l *Loop) DeliverPoll(res PollResult) bool { return l.Post(res) }

// Do posts a named action. It is what the UI calls.
func (l *Loop) Do(name string, fn func(*party.Client) error) bool {
	return l.Post(Action{Name: name, Do: fn})
}

func (l *Loop) postReply(fn func()) { l.Post(reply{fn: fn}) }

// Run processes the inbox and ticks the party client until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	ticker := l.clock.NewTicker(l.tick)
	defer ticker.Stop()

	l.publish()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			l.client.Tick()
		case m := <-l.inbox:
			l.handle(m)
		}
		l.publish()
	}
}

func (l *Loop) handle(m Msg) {
	switch msg := m.(type) {
	case reply:
		msg.fn()
	case Action:
		err := msg.Do(l.client)
		l.store.RecordAction(msg.Name, err)
		actions.WithLabelValues(msg.Name, resultLabel(err)).Inc()
		if err != nil {
			l.logger.Info("action failed", zap.String("action", msg.Name), zap.Error(err))
		}
	case PollResult:
		l.applyPoll(msg)
	default:
		l.logger.Warn("unknown loop message", zap.Any("msg", m))
	}
}

func (l *Loop) applyPoll(res PollResult) {
	failures := l.store.RecordPoll(res.Err)
	if res.Err != nil {
		if failures >= state.OfflineAfter && !l.offline {
			l.goOffline()
		}
		return
	}
	if l.offline || !l.bus.Connected() {
		l.offline = false
		l.bus.SetConnected(true)
		l.logger.Info("coordinator reachable")
	}

	friendsChanged := l.updateFriends(res.Friends)
	l.applyParty(res.Party.Party.Snapshot())
	l.client.ReplaceInvitations(res.Invitations)
	if friendsChanged {
		l.client.Refresh()
	}
	for _, line := range res.Party.Chat {
		l.client.OnChatMessage(line.Message())
	}
	for _, code := range res.Party.Errors {
		l.client.OnCoordinatorError(code)
	}
}

// applyParty turns a polled snapshot into the create, update or destroy
// notification the party client expects.
func (l *Loop) applyParty(next party.Snapshot) {
	cur := l.client.Snapshot()
	switch {
	case !cur.IsReal() && !next.IsReal():
	case !cur.IsReal():
		l.client.OnPartyCreated(next)
	case !next.IsReal():
		l.client.OnPartyDestroyed(cur.PartyID)
	case cur.PartyID != next.PartyID:
		l.client.OnPartyDestroyed(cur.PartyID)
		l.client.OnPartyCreated(next)
	default:
		l.client.OnPartyUpdated(next)
	}
}

func (l *Loop) updateFriends(ids []party.Identity) bool {
	next := party.NewFriendSet(ids...)
	if maps.Equal(l.friends, next) {
		return false
	}
	clear(l.friends)
	maps.Copy(l.friends, next)
	return true
}

func (l *Loop) goOffline() {
	l.offline = true
	l.bus.SetConnected(false)
	l.client.Reset()
	resets.WithLabelValues().Inc()
	l.logger.Warn("coordinator unreachable, party state reset")
}

func (l *Loop) publish() {
	l.store.Publish(l.client.View())
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
