package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinshipapp/kinship/internal/logging"
	"github.com/kinshipapp/kinship/internal/models"
	"github.com/kinshipapp/kinship/internal/server/config"
	"github.com/kinshipapp/kinship/internal/server/otp"
	"github.com/kinshipapp/kinship/internal/server/store"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:       "test-secret",
		TokenTTL:        time.Hour,
		OTPMode:         config.OTPModeMock,
		OTPTTL:          5 * time.Minute,
		SimulateReplies: false,
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewRouter(store.New(), otp.NewService(cfg, logger), cfg, logger)
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func signIn(t *testing.T, e *echo.Echo, email string) (string, models.User) {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/auth/otp/verify", "",
		`{"email":"`+email+`","code":"123456"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res models.AuthResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token, res.User
}

func TestHealth_NoAuthRequired(t *testing.T) {
	e := newTestRouter(t)
	rec := doJSON(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSendCode_RejectsNonCollegeEmail(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(e, http.MethodPost, "/auth/otp/send", "", `{"email":"alex@gmail.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "college email")
}

func TestSendCode_AcceptsCollegeEmail(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(e, http.MethodPost, "/auth/otp/send", "", `{"email":"alex@school.edu"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestVerifyCode_RejectsMalformedCode(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(e, http.MethodPost, "/auth/otp/verify", "",
		`{"email":"alex@school.edu","code":"12345"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyCode_SignsInAndIssuesUsableToken(t *testing.T) {
	e := newTestRouter(t)

	token, user := signIn(t, e, "alex@school.edu")
	assert.Equal(t, "alex@school.edu", user.Email)

	rec := doJSON(e, http.MethodGet, "/auth/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var me models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, user.ID, me.ID)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	e := newTestRouter(t)

	for _, path := range []string{"/auth/me", "/discover/feed", "/matches"} {
		rec := doJSON(e, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := doJSON(e, http.MethodGet, "/discover/feed", "garbage-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDiscover_LikeToMutualMatch(t *testing.T) {
	e := newTestRouter(t)
	token, _ := signIn(t, e, "alex@school.edu")

	rec := doJSON(e, http.MethodGet, "/discover/feed", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var feed []models.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	require.Len(t, feed, 3)

	rec = doJSON(e, http.MethodPost, "/discover/like", token, `{"profile_id":"p-sarah"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res models.LikeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Matched)
	require.NotEmpty(t, res.MatchID)

	rec = doJSON(e, http.MethodGet, "/matches", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var matches []models.MatchSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, res.MatchID, matches[0].ID)
}

func TestDiscover_UnknownProfileIs404(t *testing.T) {
	e := newTestRouter(t)
	token, _ := signIn(t, e, "alex@school.edu")

	rec := doJSON(e, http.MethodPost, "/discover/like", token, `{"profile_id":"p-ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChat_SendAndFetchMessages(t *testing.T) {
	e := newTestRouter(t)
	token, user := signIn(t, e, "alex@school.edu")

	rec := doJSON(e, http.MethodPost, "/discover/like", token, `{"profile_id":"p-sarah"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var res models.LikeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	rec = doJSON(e, http.MethodPost, "/matches/"+res.MatchID+"/messages", token, `{"content":"hi Sarah!"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodGet, "/matches/"+res.MatchID+"/messages", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var msgs []models.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi Sarah!", msgs[0].Content)
	assert.Equal(t, user.ID, msgs[0].SenderID)
}

func TestChat_EmptyMessageRejected(t *testing.T) {
	e := newTestRouter(t)
	token, _ := signIn(t, e, "alex@school.edu")

	rec := doJSON(e, http.MethodPost, "/discover/like", token, `{"profile_id":"p-sarah"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var res models.LikeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	rec = doJSON(e, http.MethodPost, "/matches/"+res.MatchID+"/messages", token, `{"content":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_ForeignMatchIs404(t *testing.T) {
	e := newTestRouter(t)

	tokenA, _ := signIn(t, e, "alex@school.edu")
	rec := doJSON(e, http.MethodPost, "/discover/like", tokenA, `{"profile_id":"p-sarah"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var res models.LikeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	tokenB, _ := signIn(t, e, "blake@school.edu")
	rec = doJSON(e, http.MethodGet, "/matches/"+res.MatchID+"/messages", tokenB, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfile_GetAndUpdate(t *testing.T) {
	e := newTestRouter(t)
	token, user := signIn(t, e, "alex@school.edu")

	rec := doJSON(e, http.MethodPut, "/profile", token, `{"name":"Alexandra","bio":"hi there","age":22}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/profile/"+user.ID, token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var p models.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Alexandra", p.Name)
	assert.Equal(t, "hi there", p.Bio)
	assert.Equal(t, 22, p.Age)
}
