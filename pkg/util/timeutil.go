package util

import "time"

// Clock reports the current time. Components take one so tests can pin it.
type Clock func() time.Time

// Now is the production Clock. The returned time keeps its monotonic reading,
// so durations measured between two calls ignore wall-clock steps.
func Now() time.Time {
	return time.Now()
}
