package config

import (
	"encoding/json"
	"os"

	"github.com/kinshipapp/kinship/internal/flagx"
	"github.com/kinshipapp/kinship/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "30s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerBaseURL    string         `json:"server_base_url"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	DatabaseDSN      string         `json:"database_dsn"`
	FeedTTL          timex.Duration `json:"feed_ttl"`
	MatchesTTL       timex.Duration `json:"matches_ttl"`
	MessagesTTL      timex.Duration `json:"messages_ttl"`
	ProfileTTL       timex.Duration `json:"profile_ttl"`
	ChatPollInterval timex.Duration `json:"chat_poll_interval"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Only fields present in the file override the current Config values.
// Panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeout != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Std()
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.FeedTTL != 0 {
		cfg.FeedTTL = jc.FeedTTL.Std()
	}
	if jc.MatchesTTL != 0 {
		cfg.MatchesTTL = jc.MatchesTTL.Std()
	}
	if jc.MessagesTTL != 0 {
		cfg.MessagesTTL = jc.MessagesTTL.Std()
	}
	if jc.ProfileTTL != 0 {
		cfg.ProfileTTL = jc.ProfileTTL.Std()
	}
	if jc.ChatPollInterval != 0 {
		cfg.ChatPollInterval = jc.ChatPollInterval.Std()
	}
}
