package api

import (
	"context"
	"time"

	"ratewatch/internal/rates"
)

// mockController implements rates.RateControllerInterface for handler tests.
type mockController struct {
	refreshFunc func(ctx context.Context) (rates.State, error)
	stateFunc   func() rates.State
	ready       bool
	fetchedAt   time.Time
}

func (m *mockController) Refresh(ctx context.Context) (rates.State, error) {
	return m.refreshFunc(ctx)
}

func (m *mockController) State() rates.State {
	return m.stateFunc()
}

func (m *mockController) LastFetchedAt() time.Time {
	return m.fetchedAt
}

func (m *mockController) Ready() bool {
	return m.ready
}
