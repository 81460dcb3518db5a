package rates

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

// Mock provider
type mockRatesProvider struct {
	mu        sync.Mutex
	calls     int
	fetchFunc func(ctx context.Context) ([]ExchangeRate, error)
}

func (m *mockRatesProvider) FetchRates(ctx context.Context) ([]ExchangeRate, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.fetchFunc(ctx)
}

func (m *mockRatesProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// fakeClock lets tests move the controller's notion of "now".
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestController(t *testing.T, p RatesProvider) (*Controller, *fakeClock) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	clock := &fakeClock{t: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)}
	c := NewController(p, logger.Sugar(), DefaultRefreshWindow)
	c.now = clock.Now
	return c, clock
}

func usdUahRow() ExchangeRate {
	return ExchangeRate{CurrencyCodeA: 840, CurrencyCodeB: 980, RateBuy: fptr(41.0), RateSell: fptr(41.5)}
}

func TestController_InitialState(t *testing.T) {
	c, _ := newTestController(t, &mockRatesProvider{})

	if st := c.State(); st.Kind != KindLoading {
		t.Errorf("initial state = %v, want loading", st.Kind)
	}
	if c.Ready() {
		t.Error("controller must not be ready before the first attempt completes")
	}
	if !c.LastFetchedAt().IsZero() {
		t.Error("throttle clock must start unset")
	}
}

func TestController_RefreshSuccess(t *testing.T) {
	p := &mockRatesProvider{fetchFunc: func(ctx context.Context) ([]ExchangeRate, error) {
		return []ExchangeRate{usdUahRow()}, nil
	}}
	c, clock := newTestController(t, p)

	st, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if st.Kind != KindLoaded {
		t.Fatalf("state = %v, want loaded", st.Kind)
	}
	if len(st.Rates) != 1 {
		t.Fatalf("got %d rates, want 1", len(st.Rates))
	}
	row := st.Rates[0]
	if row.PairLabel() != "USD → UAH" {
		t.Errorf("pair label = %q, want %q", row.PairLabel(), "USD → UAH")
	}
	if row.RateDescription() != "buy: 41.00 / sell: 41.50" {
		t.Errorf("rate description = %q", row.RateDescription())
	}
	if !c.LastFetchedAt().Equal(clock.Now()) {
		t.Errorf("throttle clock = %v, want %v", c.LastFetchedAt(), clock.Now())
	}
	if !c.Ready() {
		t.Error("controller must be ready after a completed attempt")
	}
}

func TestController_SecondRefreshWithinWindowIsThrottled(t *testing.T) {
	p := &mockRatesProvider{fetchFunc: func(ctx context.Context) ([]ExchangeRate, error) {
		return []ExchangeRate{usdUahRow()}, nil
	}}
	c, clock := newTestController(t, p)

	first, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("first Refresh() error = %v", err)
	}

	clock.Advance(90 * time.Second)

	second, err := c.Refresh(context.Background())
	var throttled *ThrottledError
	if !errors.As(err, &throttled) {
		t.Fatalf("second Refresh() error = %v, want *ThrottledError", err)
	}
	if throttled.SecondsRemaining != 210 {
		t.Errorf("SecondsRemaining = %d, want 210", throttled.SecondsRemaining)
	}
	if p.callCount() != 1 {
		t.Errorf("provider called %d times, want exactly 1", p.callCount())
	}
	if !second.FetchedAt.Equal(first.FetchedAt) || second.Kind != first.Kind {
		t.Error("throttled attempt must leave the state unchanged")
	}
	if !c.LastFetchedAt().Equal(first.FetchedAt) {
		t.Error("throttled attempt must leave the throttle clock unchanged")
	}
}

func TestController_RefreshAllowedAtWindowBoundary(t *testing.T) {
	p := &mockRatesProvider{fetchFunc: func(ctx context.Context) ([]ExchangeRate, error) {
		return []ExchangeRate{usdUahRow()}, nil
	}}
	c, clock := newTestController(t, p)

	if _, err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("first Refresh() error = %v", err)
	}

	clock.Advance(300 * time.Second)

	if _, err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() at boundary error = %v", err)
	}
	if p.callCount() != 2 {
		t.Errorf("provider called %d times, want 2", p.callCount())
	}
}

func TestController_ServerRateLimitKeepsThrottleClock(t *testing.T) {
	var fail bool
	p := &mockRatesProvider{fetchFunc: func(ctx context.Context) ([]ExchangeRate, error) {
		if fail {
			return nil, ErrServerRateLimited
		}
		return []ExchangeRate{usdUahRow()}, nil
	}}
	c, clock := newTestController(t, p)

	if _, err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("first Refresh() error = %v", err)
	}
	firstFetch := c.LastFetchedAt()

	clock.Advance(301 * time.Second)
	fail = true

	st, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if st.Kind != KindError {
		t.Fatalf("state = %v, want error", st.Kind)
	}
	if st.Err != "rate limited by server" {
		t.Errorf("error message = %q, want %q", st.Err, "rate limited by server")
	}
	if !c.LastFetchedAt().Equal(firstFetch) {
		t.Error("a 429 must not advance the throttle clock")
	}
	// The pre-429 clock is long expired, so another refresh is immediately allowed.
	if !CanRefresh(clock.Now(), c.LastFetchedAt(), DefaultRefreshWindow) {
		t.Error("refresh must remain allowed after a server-side 429")
	}
}

func TestController_ErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"server rate limit", ErrServerRateLimited, "rate limited by server"},
		{"http status", &StatusError{Code: 503}, "http status 503"},
		{"transport failure", errors.New("dial tcp: connection refused"), "connection failure: dial tcp: connection refused"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &mockRatesProvider{fetchFunc: func(ctx context.Context) ([]ExchangeRate, error) {
				return nil, tc.err
			}}
			c, _ := newTestController(t, p)

			st, err := c.Refresh(context.Background())
			if err != nil {
				t.Fatalf("Refresh() error = %v", err)
			}
			if st.Kind != KindError || st.Err != tc.wantMsg {
				t.Errorf("state = %+v, want error %q", st, tc.wantMsg)
			}
			if !c.LastFetchedAt().IsZero() {
				t.Error("failed fetch must not advance the throttle clock")
			}
		})
	}
}

func TestController_ErrorClearedOnNextRefresh(t *testing.T) {
	var fail = true
	p := &mockRatesProvider{fetchFunc: func(ctx context.Context) ([]ExchangeRate, error) {
		if fail {
			return nil, errors.New("timeout")
		}
		return []ExchangeRate{usdUahRow()}, nil
	}}
	c, _ := newTestController(t, p)

	if st, _ := c.Refresh(context.Background()); st.Kind != KindError {
		t.Fatalf("state = %v, want error", st.Kind)
	}

	fail = false
	st, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if st.Kind != KindLoaded || st.Err != "" {
		t.Errorf("state = %+v, want loaded with no error", st)
	}
}

// A completion from a superseded in-flight request must not overwrite the
// newer request's state or throttle clock.
func TestController_StaleCompletionDiscarded(t *testing.T) {
	slowStarted := make(chan struct{})
	slowRelease := make(chan struct{})
	slowRow := ExchangeRate{CurrencyCodeA: 840, CurrencyCodeB: 980, RateBuy: fptr(1.0)}
	fastRow := usdUahRow()

	var call int
	var mu sync.Mutex
	p := &mockRatesProvider{}
	p.fetchFunc = func(ctx context.Context) ([]ExchangeRate, error) {
		mu.Lock()
		call++
		current := call
		mu.Unlock()
		if current == 1 {
			close(slowStarted)
			<-slowRelease
			return []ExchangeRate{slowRow}, nil
		}
		return []ExchangeRate{fastRow}, nil
	}
	c, _ := newTestController(t, p)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Refresh(context.Background())
	}()
	<-slowStarted

	// Second refresh is accepted because no fetch has succeeded yet; it
	// supersedes the slow one.
	st, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("second Refresh() error = %v", err)
	}
	if st.Kind != KindLoaded {
		t.Fatalf("state = %v, want loaded", st.Kind)
	}
	newerFetch := c.LastFetchedAt()

	close(slowRelease)
	<-done

	final := c.State()
	if len(final.Rates) != 1 || final.Rates[0].RateDescription() != fastRow.RateDescription() {
		t.Errorf("stale completion overwrote the newer state: %+v", final.Rates)
	}
	if !c.LastFetchedAt().Equal(newerFetch) {
		t.Error("stale completion must not touch the throttle clock")
	}
}
