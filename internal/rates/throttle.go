package rates

import "time"

// DefaultRefreshWindow is the minimum interval between successive provider
// fetches documented by the provider's rate-limit policy.
const DefaultRefreshWindow = 300 * time.Second

// CanRefresh reports whether a refresh is allowed at the given moment. A
// refresh is allowed when there was no successful fetch yet (lastFetchedAt is
// zero) or when at least the full window elapsed since the last one. Pure
// function, no side effects.
func CanRefresh(now, lastFetchedAt time.Time, window time.Duration) bool {
	if lastFetchedAt.IsZero() {
		return true
	}
	return now.Sub(lastFetchedAt) >= window
}

// SecondsUntilNextRefresh returns how many whole seconds remain until the next
// refresh is allowed, floored at zero. Used for user-facing messaging only;
// CanRefresh is authoritative for the throttle decision.
func SecondsUntilNextRefresh(now, lastFetchedAt time.Time, window time.Duration) int {
	if lastFetchedAt.IsZero() {
		return 0
	}
	elapsed := int(now.Sub(lastFetchedAt).Seconds())
	remaining := int(window.Seconds()) - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}
