// Package config loads runtime configuration for the Kinship terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend HTTP API
//	-d string   path to the local sqlite credential database
//	-p int      chat poll interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals and TTLs, so values can
// be either strings like "30s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "database_dsn": "kinship.db",
//	  "feed_ttl": "2m",
//	  "matches_ttl": "30s",
//	  "messages_ttl": "5s",
//	  "profile_ttl": "2m",
//	  "chat_poll_interval": "10s"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
