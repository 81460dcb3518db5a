package rates

import (
	"errors"
	"fmt"
)

// ErrServerRateLimited indicates the provider answered with HTTP 429. It is a
// persistent error state for the current attempt, but it does not advance the
// local throttle clock.
var ErrServerRateLimited = errors.New("rate limited by server")

// StatusError indicates the provider answered with an unexpected HTTP status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http status %d", e.Code)
}

// ThrottledError is returned by Refresh when the attempt was suppressed by the
// local throttle. It is an advisory, not a failure: the current state and the
// throttle clock are left untouched and no network activity happens.
type ThrottledError struct {
	SecondsRemaining int
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("refresh throttled, next allowed in %ds", e.SecondsRemaining)
}

// errorMessage maps a provider failure onto the user-facing message carried by
// the error state.
func errorMessage(err error) string {
	if errors.Is(err, ErrServerRateLimited) {
		return ErrServerRateLimited.Error()
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}
	return "connection failure: " + err.Error()
}
