package util //nolint:revive // shared display helpers for the CLIs

import "time"

// FormatRemaining renders the time left until a deadline, truncated to seconds.
// Returns "expired" once the deadline has passed.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "expired"
	}
	if d < time.Second {
		return "<1s"
	}
	return d.Truncate(time.Second).String()
}
