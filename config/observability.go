package config

import "strings"

const defaultMetricsPrefix = "adminpanel"

// ObservabilityConfig groups configuration that controls metrics emission.
type ObservabilityConfig struct {
	Metrics ObservabilityMetricsConfig
}

// Sanitize applies guardrails to observability sub-configs.
func (c *ObservabilityConfig) Sanitize() {
	c.Metrics.Sanitize()
}

// ObservabilityMetricsConfig controls metrics. Prometheus is served on
// /metrics unless disabled; StatsD mirroring is opt-in.
type ObservabilityMetricsConfig struct {
	PrometheusEnabled bool   `env:"OBSERVABILITY_PROMETHEUS_ENABLED"     envDefault:"true"`
	Enabled           bool   `env:"OBSERVABILITY_METRICS_ENABLED"        envDefault:"false"`
	StatsdAddress     string `env:"OBSERVABILITY_METRICS_STATSD_ADDRESS" envDefault:"127.0.0.1:8125"`
	StatsdPrefix      string `env:"OBSERVABILITY_METRICS_STATSD_PREFIX"  envDefault:"adminpanel"`
	// StatsdTags is a comma-separated list of key:value pairs added to every metric.
	StatsdTags map[string]string `env:"OBSERVABILITY_METRICS_STATSD_TAGS"`
}

// Sanitize normalises derived fields and enforces safe defaults.
func (c *ObservabilityMetricsConfig) Sanitize() {
	c.StatsdAddress = strings.TrimSpace(c.StatsdAddress)
	if c.StatsdAddress == "" {
		c.Enabled = false
	}
	if c.StatsdPrefix = strings.TrimSpace(c.StatsdPrefix); c.StatsdPrefix == "" {
		c.StatsdPrefix = defaultMetricsPrefix
	}
}

// IsEnabled returns true when StatsD emission is active after sanitisation.
func (c *ObservabilityMetricsConfig) IsEnabled() bool {
	return c.Enabled && c.StatsdAddress != ""
}
