package testsupport

import (
	"path/filepath"
	"testing"

	"callsheet/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithCurrency overrides the invoice currency on the test config.
func WithCurrency(code string) ConfigOption {
	return func(c *config.Config) {
		c.Studio.Currency = code
	}
}

// WithTravelRate overrides the per-kilometre travel rate on the test config.
func WithTravelRate(rate float64) ConfigOption {
	return func(c *config.Config) {
		c.Studio.TravelRatePerKm = rate
	}
}

// WithAPIToken sets a bearer token on the test config's HTTP API.
func WithAPIToken(token string) ConfigOption {
	return func(c *config.Config) {
		c.Paths.APIToken = token
	}
}
