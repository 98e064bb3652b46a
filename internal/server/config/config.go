// Package config holds the mock backend's runtime settings, read from the
// environment.
package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// OTP delivery modes. In mock mode any well-formed code is accepted, which
// keeps local development friction-free. In issue mode a real code is
// generated, stored hashed, and written to the server log in lieu of an
// email provider.
const (
	OTPModeMock  = "mock"
	OTPModeIssue = "issue"
)

type Config struct {
	Addr      string        `env:"KINSHIP_ADDR,       default=:8080"`
	JWTSecret string        `env:"KINSHIP_JWT_SECRET, default=dev-secret-change-me"`
	TokenTTL  time.Duration `env:"KINSHIP_TOKEN_TTL,  default=24h"`
	LogLevel  string        `env:"KINSHIP_LOG_LEVEL,  default=info"`

	OTPMode string        `env:"KINSHIP_OTP_MODE, default=mock"`
	OTPTTL  time.Duration `env:"KINSHIP_OTP_TTL,  default=5m"`

	// SimulateReplies makes seeded users answer incoming chat messages after
	// a short delay, so the client's polling path can be exercised locally.
	SimulateReplies bool          `env:"KINSHIP_SIMULATE_REPLIES, default=true"`
	ReplyDelay      time.Duration `env:"KINSHIP_REPLY_DELAY,      default=3s"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
