package config

import (
	"strings"
	"time"
)

// CLIConfig configures the adminctl client. Variables use the ADMINCTL_ prefix
// and are overridden by command-line flags.
type CLIConfig struct {
	APIURL    string        `env:"API_URL"    envDefault:"http://localhost:8080"`
	StateFile string        `env:"STATE_FILE"`
	Timeout   time.Duration `env:"TIMEOUT"    envDefault:"15s"`

	BreakerEnabled     bool          `env:"BREAKER_ENABLED"      envDefault:"false"`
	BreakerFailures    uint32        `env:"BREAKER_FAILURES"     envDefault:"5"`
	BreakerOpenTimeout time.Duration `env:"BREAKER_OPEN_TIMEOUT" envDefault:"30s"`
}

// Sanitize trims the API URL and restores a positive timeout.
func (c *CLIConfig) Sanitize() {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	c.StateFile = strings.TrimSpace(c.StateFile)
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
}
