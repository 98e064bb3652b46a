package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/kinshipapp/kinship/internal/common"
	"github.com/kinshipapp/kinship/internal/models"
)

// HTTPClient is the concrete Client backed by net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient constructs an HTTPClient for the given base URL. The timeout
// bounds every request end to end.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token used on subsequent requests. An empty
// string clears it.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// do performs one JSON request/response round-trip. A nil in means no request
// body; a nil out discards the response body. Transport errors and 5xx map to
// common.ErrExternalCall, 401 to common.ErrUnauthorized, 404 to
// common.ErrNotFound.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", common.ErrExternalCall, method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return common.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, path)
	case resp.StatusCode >= 400:
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && eb.Error != "" {
			return fmt.Errorf("%w: %s", common.ErrExternalCall, eb.Error)
		}
		return fmt.Errorf("%w: status %d", common.ErrExternalCall, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", common.ErrExternalCall, err)
	}
	return nil
}

type sendCodeRequest struct {
	Email string `json:"email"`
}

type confirmCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type likeRequest struct {
	ProfileID string `json:"profile_id"`
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

func (c *HTTPClient) SendCode(ctx context.Context, identifier string) error {
	return c.do(ctx, http.MethodPost, "/auth/otp/send", sendCodeRequest{Email: identifier}, nil)
}

func (c *HTTPClient) ConfirmCode(ctx context.Context, identifier, code string) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/otp/verify", confirmCodeRequest{Email: identifier, Code: code}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Feed(ctx context.Context) ([]models.Profile, error) {
	var feed []models.Profile
	if err := c.do(ctx, http.MethodGet, "/discover/feed", nil, &feed); err != nil {
		return nil, err
	}
	return feed, nil
}

func (c *HTTPClient) Like(ctx context.Context, profileID string) (*models.LikeResult, error) {
	var res models.LikeResult
	if err := c.do(ctx, http.MethodPost, "/discover/like", likeRequest{ProfileID: profileID}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Pass(ctx context.Context, profileID string) error {
	return c.do(ctx, http.MethodPost, "/discover/pass", likeRequest{ProfileID: profileID}, nil)
}

func (c *HTTPClient) Matches(ctx context.Context) ([]models.MatchSummary, error) {
	var matches []models.MatchSummary
	if err := c.do(ctx, http.MethodGet, "/matches", nil, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (c *HTTPClient) Messages(ctx context.Context, matchID string) ([]models.Message, error) {
	var msgs []models.Message
	path := fmt.Sprintf("/matches/%s/messages", url.PathEscape(matchID))
	if err := c.do(ctx, http.MethodGet, path, nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *HTTPClient) SendMessage(ctx context.Context, matchID, content string) (*models.Message, error) {
	var msg models.Message
	path := fmt.Sprintf("/matches/%s/messages", url.PathEscape(matchID))
	if err := c.do(ctx, http.MethodPost, path, sendMessageRequest{Content: content}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	path := fmt.Sprintf("/profile/%s", url.PathEscape(userID))
	if err := c.do(ctx, http.MethodGet, path, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, http.MethodPut, "/profile", update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}
