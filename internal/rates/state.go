package rates

import (
	"fmt"
	"time"
)

// Kind identifies which variant of the refresh state currently holds.
type Kind string

// Refresh state variants. Exactly one holds at any time.
const (
	KindLoading Kind = "loading"
	KindError   Kind = "error"
	KindLoaded  Kind = "loaded"
)

// State is an immutable snapshot of the refresh state machine. It is replaced
// wholesale on every completed refresh attempt; callers must not mutate the
// Rates slice.
//
//   - KindLoading: a fetch is in flight, Err and Rates are unset.
//   - KindError:   Err carries the failure message, Rates is unset.
//   - KindLoaded:  Rates and FetchedAt are set, Err is unset.
type State struct {
	Kind      Kind
	Err       string
	Rates     []ExchangeRate
	FetchedAt time.Time
}

// LoadingState returns the in-flight variant.
func LoadingState() State {
	return State{Kind: KindLoading}
}

// ErrorState returns the failed variant carrying the given message.
func ErrorState(msg string) State {
	return State{Kind: KindError, Err: msg}
}

// LoadedState returns the successful variant with the fetched rates.
func LoadedState(rows []ExchangeRate, fetchedAt time.Time) State {
	return State{Kind: KindLoaded, Rates: rows, FetchedAt: fetchedAt}
}

// LastUpdateDescription renders a human-readable age of the last successful
// fetch. Returns an empty string when fetchedAt is unset.
func LastUpdateDescription(now, fetchedAt time.Time) string {
	if fetchedAt.IsZero() {
		return ""
	}

	elapsed := now.Sub(fetchedAt)
	switch {
	case elapsed < time.Minute:
		return "updated just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("updated %d minutes ago", int(elapsed.Minutes()))
	default:
		return fmt.Sprintf("updated %d hours ago", int(elapsed.Hours()))
	}
}
