package config

import "time"

// Config holds runtime settings for the Kinship terminal client.
//
// The per-resource TTLs parameterize cache staleness: chat tolerates seconds,
// matches tens of seconds, feed and profile minutes.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DatabaseDSN    string

	FeedTTL     time.Duration
	MatchesTTL  time.Duration
	MessagesTTL time.Duration
	ProfileTTL  time.Duration

	ChatPollInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.DatabaseDSN = "kinship.db"
	c.FeedTTL = 2 * time.Minute
	c.MatchesTTL = 30 * time.Second
	c.MessagesTTL = 5 * time.Second
	c.ProfileTTL = 2 * time.Minute
	c.ChatPollInterval = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
