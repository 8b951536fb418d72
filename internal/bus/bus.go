// Package bus delivers party requests to the coordinator.
//
// Send never blocks: it fails with ErrNotConnected while the coordinator is
// unreachable and with ErrBackpressure when the outbound queue is full. A
// single worker submits requests in order, so the coordinator observes them
// in the order the party client issued them. Replies are handed to a post
// function that runs them on the goroutine owning the party client.
package bus

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/partysync/internal/coordinator"
	"github.com/five82/partysync/internal/party"
)

var (
	// ErrNotConnected is returned by Send while the coordinator is offline.
	ErrNotConnected = errors.New("coordinator not connected")
	// ErrBackpressure is returned by Send when the outbound queue is full.
	ErrBackpressure = errors.New("outbound queue full")
)

const (
	defaultCapacity = 32
	defaultTimeout  = 5 * time.Second
)

// PostFunc runs fn on the goroutine that owns the party client.
type PostFunc func(fn func())

type job struct {
	id       string
	req      party.Request
	onReply  party.ReplyFunc
	enqueued time.Time
}

// Opt configures a Bus.
type Opt func(*Bus)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Opt {
	return func(b *Bus) {
		b.logger = logger
	}
}

// WithCapacity sets the outbound queue length.
func WithCapacity(n int) Opt {
	return func(b *Bus) {
		if n > 0 {
			b.capacity = n
		}
	}
}

// WithTimeout bounds each submission.
func WithTimeout(d time.Duration) Opt {
	return func(b *Bus) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// Bus implements party.MessageBus.
type Bus struct {
	logger    *zap.Logger
	submitter coordinator.Submitter
	post      PostFunc
	capacity  int
	timeout   time.Duration

	queue     chan job
	connected atomic.Bool
	newID     func() string
}

var _ party.MessageBus = (*Bus)(nil)

// New builds a Bus. Run must be called to start delivery.
func New(submitter coordinator.Submitter, post PostFunc, opts ...Opt) *Bus {
	b := &Bus{
		logger:    zap.NewNop(),
		submitter: submitter,
		post:      post,
		capacity:  defaultCapacity,
		timeout:   defaultTimeout,
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(b)
	}
	b.queue = make(chan job, b.capacity)
	return b
}

// SetConnected marks the coordinator reachable or not.
func (b *Bus) SetConnected(connected bool) {
	if b.connected.Swap(connected) != connected {
		b.logger.Info("coordinator connectivity changed", zap.Bool("connected", connected))
		connectedGauge.WithLabelValues().Set(boolGauge(connected))
	}
}

// Connected reports the last value passed to SetConnected.
func (b *Bus) Connected() bool { return b.connected.Load() }

// Send enqueues req for delivery.
func (b *Bus) Send(req party.Request, onReply party.ReplyFunc) error {
	if !b.connected.Load() {
		return fmt.Errorf("send %s: %w", req.RequestName(), ErrNotConnected)
	}
	j := job{id: b.newID(), req: req, onReply: onReply, enqueued: time.Now()}
	select {
	case b.queue <- j:
		queueDepth.WithLabelValues().Set(float64(len(b.queue)))
		return nil
	default:
		rejected.WithLabelValues(req.RequestName()).Inc()
		return fmt.Errorf("send %s: %w", req.RequestName(), ErrBackpressure)
	}
}

// Run delivers queued requests until ctx is cancelled. Requests still queued
// at that point are dropped without a reply.
func (b *Bus) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			if n := len(b.queue); n > 0 {
				b.logger.Warn("dropping undelivered requests", zap.Int("count", n))
			}
			return nil
		case j := <-b.queue:
			queueDepth.WithLabelValues().Set(float64(len(b.queue)))
			b.deliver(ctx, j)
		}
	}
}

func (b *Bus) deliver(ctx context.Context, j job) {
	name := j.req.RequestName()
	reqCtx, cancel := context.WithTimeout(ctx, b.timeout)
	start := time.Now()
	err := b.submitter.Submit(reqCtx, j.id, j.req)
	cancel()

	requestDuration.WithLabelValues(name, resultLabel(err)).Observe(time.Since(start).Seconds())
	queueWait.WithLabelValues(name).Observe(start.Sub(j.enqueued).Seconds())
	if err != nil {
		b.logger.Debug("request failed",
			zap.String("request", name),
			zap.String("request_id", j.id),
			zap.Error(err),
		)
	}
	if ctx.Err() != nil {
		return
	}
	if j.onReply != nil {
		onReply := j.onReply
		b.post(func() { onReply(party.Reply{Err: err}) })
	}
}

func resultLabel(err error) string {
	var rerr *coordinator.RequestError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &rerr):
		return "rejected"
	default:
		return "error"
	}
}

func boolGauge(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
