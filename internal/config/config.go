// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers file and env overrides on top.
// - All blocking functions accept context.Context as the first parameter.
// - External errors must be wrapped via this package's sentinel kinds.
package config

import (
	"time"
)

// Default values applied before file and env overrides.
const (
	defaultLogLevel       = "info"
	defaultAddr           = ":9180"
	defaultFetchTimeoutMS = 10_000
	defaultTopN           = 5
	defaultPollIntervalMS = 2_000
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// Addr configures the status HTTP listen address, e.g. ":9180".
	Addr string `koanf:"addr" validate:"required"`

	// FeedURL locates the competition results document. Required: the
	// service has nothing to poll without it.
	FeedURL string `koanf:"feed_url" validate:"required,url"`

	// FeedAuthToken is sent as the Authorization header when set.
	FeedAuthToken string `koanf:"feed_auth_token"`

	// FetchTimeoutMS bounds a single feed fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms" validate:"gt=0"`

	// TopN sets how many leading entrants each snapshot keeps.
	TopN int `koanf:"top_n" validate:"gt=0"`

	// PollIntervalMS sets the pause between poll cycles.
	PollIntervalMS int `koanf:"poll_interval_ms" validate:"gt=0"`

	// WebhookURL, when set, receives changed snapshots via POST.
	WebhookURL string `koanf:"webhook_url" validate:"omitempty,url"`
}

// New creates a Config holding the service defaults.
func New() *Config {
	return &Config{
		LogLevel:       defaultLogLevel,
		Addr:           defaultAddr,
		FetchTimeoutMS: defaultFetchTimeoutMS,
		TopN:           defaultTopN,
		PollIntervalMS: defaultPollIntervalMS,
	}
}

// PollInterval returns the inter-cycle pause as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// FetchTimeout returns the per-fetch bound as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}
