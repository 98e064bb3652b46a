// Package otp implements the backend's verification-code issue/verify cycle.
//
// Two modes exist. Mock mode accepts any well-formed code, which is what
// local development wants. Issue mode generates a real code, keeps only a
// bcrypt hash of it, and logs the plaintext once in place of an email
// provider.
package otp

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kinshipapp/kinship/internal/common"
	"github.com/kinshipapp/kinship/internal/logging"
	"github.com/kinshipapp/kinship/internal/server/config"
)

type issued struct {
	hash      []byte
	expiresAt time.Time
}

// Service issues and verifies one-time codes, one pending code per email.
// Issuing a new code replaces any previous one.
type Service struct {
	mode   string
	ttl    time.Duration
	logger logging.Logger

	mu      sync.Mutex
	pending map[string]issued

	now func() time.Time
}

func NewService(cfg *config.Config, logger logging.Logger) *Service {
	return &Service{
		mode:    cfg.OTPMode,
		ttl:     cfg.OTPTTL,
		logger:  logger.With("component", "otp"),
		pending: make(map[string]issued),
		now:     time.Now,
	}
}

// Issue generates and records a code for email. In mock mode it is a no-op.
func (s *Service) Issue(ctx context.Context, email string) error {
	if s.mode == config.OTPModeMock {
		return nil
	}

	code, err := common.MakeRandDigitString(common.VerificationCodeLength)
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash code: %w", err)
	}

	s.mu.Lock()
	s.pending[normalize(email)] = issued{hash: hash, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()

	// Stand-in for an email provider.
	s.logger.Info(ctx, "verification code issued", "email", email, "code", code)
	return nil
}

// Verify checks code against the pending entry for email. A successful
// verification consumes the code.
func (s *Service) Verify(ctx context.Context, email, code string) error {
	if !common.IsVerificationCode(code) {
		return common.ErrInvalidCode
	}
	if s.mode == config.OTPModeMock {
		return nil
	}

	key := normalize(email)

	s.mu.Lock()
	entry, ok := s.pending[key]
	s.mu.Unlock()

	if !ok || s.now().After(entry.expiresAt) {
		return common.ErrInvalidCode
	}
	if bcrypt.CompareHashAndPassword(entry.hash, []byte(code)) != nil {
		return common.ErrInvalidCode
	}

	s.mu.Lock()
	delete(s.pending, key)
	s.mu.Unlock()
	return nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
