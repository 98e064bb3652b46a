package otp

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinshipapp/kinship/internal/common"
	"github.com/kinshipapp/kinship/internal/logging"
	"github.com/kinshipapp/kinship/internal/server/config"
)

type captureLogger struct {
	logging.Logger
	lastArgs []any
}

func (c *captureLogger) Info(ctx context.Context, msg string, args ...any) {
	c.lastArgs = args
}

func (c *captureLogger) With(args ...any) logging.Logger { return c }

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newService(mode string, logger logging.Logger) *Service {
	return NewService(&config.Config{OTPMode: mode, OTPTTL: 5 * time.Minute}, logger)
}

func TestMockMode_AcceptsAnyWellFormedCode(t *testing.T) {
	s := newService(config.OTPModeMock, discardLogger())

	require.NoError(t, s.Issue(context.Background(), "sarah@school.edu"))
	assert.NoError(t, s.Verify(context.Background(), "sarah@school.edu", "000000"))
	assert.ErrorIs(t, s.Verify(context.Background(), "sarah@school.edu", "12345"), common.ErrInvalidCode)
	assert.ErrorIs(t, s.Verify(context.Background(), "sarah@school.edu", "12a456"), common.ErrInvalidCode)
}

func issuedCode(t *testing.T, logger *captureLogger) string {
	t.Helper()
	for i := 0; i+1 < len(logger.lastArgs); i += 2 {
		if logger.lastArgs[i] == "code" {
			return logger.lastArgs[i+1].(string)
		}
	}
	t.Fatal("no code logged")
	return ""
}

func TestIssueMode_VerifiesAndConsumesIssuedCode(t *testing.T) {
	logger := &captureLogger{Logger: discardLogger()}
	s := newService(config.OTPModeIssue, logger)

	require.NoError(t, s.Issue(context.Background(), "sarah@school.edu"))
	code := issuedCode(t, logger)
	require.Len(t, code, common.VerificationCodeLength)

	require.NoError(t, s.Verify(context.Background(), "sarah@school.edu", code))
	assert.ErrorIs(t, s.Verify(context.Background(), "sarah@school.edu", code), common.ErrInvalidCode,
		"a code can be used only once")
}

func TestIssueMode_RejectsWrongCodeAndUnknownEmail(t *testing.T) {
	logger := &captureLogger{Logger: discardLogger()}
	s := newService(config.OTPModeIssue, logger)

	require.NoError(t, s.Issue(context.Background(), "sarah@school.edu"))
	assert.ErrorIs(t, s.Verify(context.Background(), "sarah@school.edu", "999999"), common.ErrInvalidCode)
	assert.ErrorIs(t, s.Verify(context.Background(), "mike@school.edu", "123456"), common.ErrInvalidCode)
}

func TestIssueMode_ExpiredCodeRejected(t *testing.T) {
	logger := &captureLogger{Logger: discardLogger()}
	s := newService(config.OTPModeIssue, logger)
	require.NoError(t, s.Issue(context.Background(), "sarah@school.edu"))
	code := issuedCode(t, logger)

	s.now = func() time.Time { return time.Now().Add(10 * time.Minute) }
	assert.ErrorIs(t, s.Verify(context.Background(), "sarah@school.edu", code), common.ErrInvalidCode)
}

func TestIssueMode_ReissueReplacesCode(t *testing.T) {
	logger := &captureLogger{Logger: discardLogger()}
	s := newService(config.OTPModeIssue, logger)

	require.NoError(t, s.Issue(context.Background(), "sarah@school.edu"))
	first := issuedCode(t, logger)

	require.NoError(t, s.Issue(context.Background(), "sarah@school.edu"))
	second := issuedCode(t, logger)

	if first != second {
		assert.ErrorIs(t, s.Verify(context.Background(), "sarah@school.edu", first), common.ErrInvalidCode)
	}
	assert.NoError(t, s.Verify(context.Background(), "sarah@school.edu", second))
}
