package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/kinshipapp/kinship/internal/logging"
	"github.com/kinshipapp/kinship/internal/models"
)

// fakeClient implements api.Client for service tests.
type fakeClient struct {
	mu sync.Mutex

	FeedRet  []models.Profile
	FeedErr  error
	FeedCalls int

	LikeRet   *models.LikeResult
	LikeErr   error
	LastLiked string

	PassErr    error
	LastPassed string

	MatchesRet   []models.MatchSummary
	MatchesErr   error
	MatchesCalls int

	MessagesRet   []models.Message
	MessagesErr   error
	MessagesCalls int

	SendRet     *models.Message
	SendErr     error
	LastSentTo  string
	LastContent string

	ProfileRet *models.Profile
	ProfileErr error

	UpdateRet  *models.Profile
	UpdateErr  error
	LastUpdate models.ProfileUpdate

	Token string
}

func (f *fakeClient) SendCode(ctx context.Context, identifier string) error { return nil }
func (f *fakeClient) ConfirmCode(ctx context.Context, identifier, code string) (*models.AuthResult, error) {
	return nil, nil
}
func (f *fakeClient) Me(ctx context.Context) (*models.User, error) { return nil, nil }

func (f *fakeClient) Feed(ctx context.Context) ([]models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FeedCalls++
	return f.FeedRet, f.FeedErr
}

func (f *fakeClient) Like(ctx context.Context, profileID string) (*models.LikeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastLiked = profileID
	return f.LikeRet, f.LikeErr
}

func (f *fakeClient) Pass(ctx context.Context, profileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastPassed = profileID
	return f.PassErr
}

func (f *fakeClient) Matches(ctx context.Context) ([]models.MatchSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.MatchesCalls++
	return f.MatchesRet, f.MatchesErr
}

func (f *fakeClient) Messages(ctx context.Context, matchID string) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.MessagesCalls++
	return f.MessagesRet, f.MessagesErr
}

func (f *fakeClient) SendMessage(ctx context.Context, matchID, content string) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastSentTo = matchID
	f.LastContent = content
	return f.SendRet, f.SendErr
}

func (f *fakeClient) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastUpdate = update
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return nil }
func (f *fakeClient) SetToken(token string)          { f.Token = token }

func (f *fakeClient) setMessages(msgs []models.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.MessagesRet = msgs
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
