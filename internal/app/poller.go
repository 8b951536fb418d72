package app

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/partysync/internal/coordinator"
	"github.com/five82/partysync/internal/party"
)

const (
	defaultPollInterval = time.Second
	maxBackoff          = 30 * time.Second
)

// PollResult is one round of coordinator reads.
type PollResult struct {
	Party       coordinator.PartyResponse
	Invitations []party.Invitation
	Friends     []party.Identity
	Err         error
}

func (PollResult) isLoopMsg() {}

// Poller reads the coordinator at a fixed cadence and hands each result to
// deliver. Failures back off exponentially.
type Poller struct {
	fetcher  coordinator.Fetcher
	deliver  func(PollResult) bool
	interval time.Duration
	clock    clockwork.Clock
	logger   *zap.Logger

	since    uint64
	failures int
}

// NewPoller builds a Poller. deliver returns false once nobody is listening.
func NewPoller(fetcher coordinator.Fetcher, deliver func(PollResult) bool, interval time.Duration, clock clockwork.Clock, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		fetcher:  fetcher,
		deliver:  deliver,
		interval: interval,
		clock:    clock,
		logger:   logger,
	}
}

// Run polls until ctx is cancelled or deliver refuses a result.
func (p *Poller) Run(ctx context.Context) error {
	for {
		res := p.poll(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if !p.deliver(res) {
			return nil
		}

		wait := p.interval
		if res.Err != nil {
			p.failures++
			wait = calculateBackoff(p.failures, p.interval)
			p.logger.Warn("coordinator poll failed",
				zap.Error(res.Err),
				zap.Int("failures", p.failures),
				zap.Duration("retry_in", wait),
			)
		} else {
			p.failures = 0
		}

		select {
		case <-ctx.Done():
			return nil
		case <-p.clock.After(wait):
		}
	}
}

// poll fetches the party, invitations and friends concurrently. Any failure
// fails the whole round so the loop never applies a partial view.
func (p *Poller) poll(ctx context.Context) PollResult {
	start := p.clock.Now()
	var res PollResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := p.fetcher.FetchParty(gctx, p.since)
		res.Party = resp
		return err
	})
	g.Go(func() error {
		invs, err := p.fetcher.FetchInvitations(gctx)
		res.Invitations = invs
		return err
	})
	g.Go(func() error {
		friends, err := p.fetcher.FetchFriends(gctx)
		res.Friends = friends
		return err
	})
	if err := g.Wait(); err != nil {
		pollDuration.WithLabelValues("error").Observe(p.clock.Since(start).Seconds())
		return PollResult{Err: err}
	}
	pollDuration.WithLabelValues("ok").Observe(p.clock.Since(start).Seconds())
	if res.Party.Next > p.since {
		p.since = res.Party.Next
	}
	return res
}

// calculateBackoff returns the poll interval after the given number of
// consecutive failures, doubling per failure up to maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
