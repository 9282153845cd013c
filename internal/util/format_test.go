package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRemaining(t *testing.T) {
	tests := map[time.Duration]string{
		-time.Minute:                           "expired",
		0:                                      "expired",
		300 * time.Millisecond:                 "<1s",
		90*time.Minute + 1500*time.Millisecond: "1h30m1s",
	}
	for d, want := range tests {
		assert.Equal(t, want, FormatRemaining(d), d.String())
	}
}
