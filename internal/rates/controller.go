package rates

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RatesProvider fetches the full rate table from an external source.
type RatesProvider interface {
	FetchRates(ctx context.Context) ([]ExchangeRate, error)
}

// RateControllerInterface defines the operations the presentation layer and
// the scheduler consume.
type RateControllerInterface interface {
	Refresh(ctx context.Context) (State, error)
	State() State
	LastFetchedAt() time.Time
	Ready() bool
}

// Controller owns the fetch, throttle, and state-derivation logic. It
// publishes an immutable State snapshot that is replaced atomically on every
// completed refresh attempt.
type Controller struct {
	provider RatesProvider
	log      *zap.SugaredLogger
	window   time.Duration
	now      func() time.Time

	mu            sync.Mutex
	state         State
	lastFetchedAt time.Time
	seq           uint64 // increments per accepted refresh; stale completions are discarded
	completions   uint64 // completed attempts, used for readiness
}

var _ RateControllerInterface = (*Controller)(nil)

// NewController creates a Controller in the initial Loading state. The first
// refresh is expected to be issued immediately by the caller; until it
// completes, Ready reports false.
func NewController(provider RatesProvider, logger *zap.SugaredLogger, window time.Duration) *Controller {
	if window <= 0 {
		window = DefaultRefreshWindow
	}
	return &Controller{
		provider: provider,
		log:      logger,
		window:   window,
		now:      time.Now,
		state:    LoadingState(),
	}
}

// State returns the current state snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastFetchedAt returns the throttle clock: the completion time of the last
// successful fetch, or the zero time if none succeeded yet.
func (c *Controller) LastFetchedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastFetchedAt
}

// Ready reports whether at least one refresh attempt has completed, in either
// direction. Used by the readiness probe.
func (c *Controller) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completions > 0
}

// Refresh performs one rate fetch attempt and returns the resulting state.
//
// When the local throttle suppresses the attempt, the current state is
// returned unchanged together with a *ThrottledError advisory and no network
// activity happens. Otherwise the state transitions to Loading, exactly one
// provider call is made, and the outcome (Loaded or Error) is published
// atomically. Fetch failures are folded into the Error state, not returned.
//
// Only a fetch that succeeded end to end (HTTP 200 and a parseable body)
// advances the throttle clock. A server-side 429 in particular leaves the
// clock untouched.
func (c *Controller) Refresh(ctx context.Context) (State, error) {
	c.mu.Lock()
	now := c.now()
	if !CanRefresh(now, c.lastFetchedAt, c.window) {
		wait := SecondsUntilNextRefresh(now, c.lastFetchedAt, c.window)
		current := c.state
		c.mu.Unlock()
		c.log.Infow("Refresh throttled", "seconds_remaining", wait)
		return current, &ThrottledError{SecondsRemaining: wait}
	}

	c.seq++
	seq := c.seq
	c.state = LoadingState()
	c.mu.Unlock()

	rows, err := c.provider.FetchRates(ctx)
	fetchedAt := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		// A newer refresh was accepted while this one was in flight; its
		// completion wins and this one must not touch state or clock.
		c.log.Warnw("Discarding stale refresh completion", "seq", seq, "current_seq", c.seq)
		return c.state, nil
	}
	c.completions++

	if err != nil {
		c.state = ErrorState(errorMessage(err))
		c.log.Errorw("Refresh failed", "error", err)
		return c.state, nil
	}

	c.state = LoadedState(rows, fetchedAt)
	c.lastFetchedAt = fetchedAt
	c.log.Infow("Rates refreshed", "pairs", len(rows))
	return c.state, nil
}
