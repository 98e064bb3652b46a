// Package api contains the thin HTTP client the Kinship app uses to talk to
// the backend. It owns the bearer token for the process and maps transport
// failures onto the shared sentinel errors.
package api

import (
	"context"

	"github.com/kinshipapp/kinship/internal/models"
)

// Client defines the backend operations the app depends on.
//
// Contract:
//   - SendCode / ConfirmCode: OTP verification round-trip.
//   - Feed / Like / Pass: discovery operations.
//   - Matches / Messages / SendMessage: match list and per-match chat.
//   - GetProfile / UpdateProfile: profile reads and writes.
//   - Ping: backend liveness probe.
//   - SetToken: install the bearer token after a successful confirmation.
//
// All methods must honor context cancellation/timeouts. Network and backend
// failures are reported as errors wrapping common.ErrExternalCall; a rejected
// token is reported as common.ErrUnauthorized.
type Client interface {
	SendCode(ctx context.Context, identifier string) error
	ConfirmCode(ctx context.Context, identifier, code string) (*models.AuthResult, error)
	Me(ctx context.Context) (*models.User, error)

	Feed(ctx context.Context) ([]models.Profile, error)
	Like(ctx context.Context, profileID string) (*models.LikeResult, error)
	Pass(ctx context.Context, profileID string) error

	Matches(ctx context.Context) ([]models.MatchSummary, error)
	Messages(ctx context.Context, matchID string) ([]models.Message, error)
	SendMessage(ctx context.Context, matchID, content string) (*models.Message, error)

	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Profile, error)

	Ping(ctx context.Context) error
	SetToken(token string)
}
