package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerBaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "kinship.db", c.DatabaseDSN)
	assert.Equal(t, 2*time.Minute, c.FeedTTL)
	assert.Equal(t, 30*time.Second, c.MatchesTTL)
	assert.Equal(t, 5*time.Second, c.MessagesTTL)
	assert.Equal(t, 2*time.Minute, c.ProfileTTL)
	assert.Equal(t, 10*time.Second, c.ChatPollInterval)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerBaseURL)
	assert.Equal(t, 10*time.Second, cfg.ChatPollInterval)
}
