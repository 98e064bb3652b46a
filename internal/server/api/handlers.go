package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kinshipapp/kinship/internal/logging"
	"github.com/kinshipapp/kinship/internal/models"
	"github.com/kinshipapp/kinship/internal/server/auth"
	"github.com/kinshipapp/kinship/internal/server/config"
	"github.com/kinshipapp/kinship/internal/server/otp"
	"github.com/kinshipapp/kinship/internal/server/store"
)

// Handlers holds the dependencies shared by all route handlers.
type Handlers struct {
	store  *store.Store
	otp    *otp.Service
	cfg    *config.Config
	logger logging.Logger
}

func NewHandlers(st *store.Store, otpSvc *otp.Service, cfg *config.Config, logger logging.Logger) *Handlers {
	return &Handlers{store: st, otp: otpSvc, cfg: cfg, logger: logger.With("component", "api")}
}

type sendCodeRequest struct {
	Email string `json:"email" validate:"required,collegeemail"`
}

type verifyCodeRequest struct {
	Email string `json:"email" validate:"required,collegeemail"`
	Code  string `json:"code"  validate:"required,otpcode"`
}

type likeRequest struct {
	ProfileID string `json:"profile_id" validate:"required"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// SendCode issues a verification code for a college email.
func (h *Handlers) SendCode(c echo.Context) error {
	var req sendCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.otp.Issue(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// VerifyCode checks the code and signs the user in, creating the account on
// first verification.
func (h *Handlers) VerifyCode(c echo.Context) error {
	var req verifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.otp.Verify(c.Request().Context(), req.Email, req.Code); err != nil {
		return err
	}

	user, created := h.store.FindOrCreateUser(req.Email)
	if created {
		h.logger.Info(c.Request().Context(), "new user signed up", "user_id", user.ID)
	}

	token, err := auth.GenerateToken(user.ID, []byte(h.cfg.JWTSecret), h.cfg.TokenTTL)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.AuthResult{User: *user, Token: token})
}

// Me returns the authenticated user.
func (h *Handlers) Me(c echo.Context) error {
	user, err := h.store.User(currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Feed returns the caller's discovery feed.
func (h *Handlers) Feed(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.FeedFor(currentUserID(c)))
}

// Like records a like and reports whether it produced a mutual match.
func (h *Handlers) Like(c echo.Context) error {
	var req likeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.store.Like(currentUserID(c), req.ProfileID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Pass records a pass.
func (h *Handlers) Pass(c echo.Context) error {
	var req likeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.store.Pass(currentUserID(c), req.ProfileID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Matches returns the caller's match list.
func (h *Handlers) Matches(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.MatchesFor(currentUserID(c)))
}

// Messages returns the conversation for a match the caller participates in.
func (h *Handlers) Messages(c echo.Context) error {
	msgs, err := h.store.MessagesFor(c.Param("id"), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

// SendMessage appends a message to the conversation. With simulated replies
// enabled, the other participant answers after a short delay.
func (h *Handlers) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	matchID := c.Param("id")
	senderID := currentUserID(c)

	msg, err := h.store.AppendMessage(matchID, senderID, req.Content)
	if err != nil {
		return err
	}

	if h.cfg.SimulateReplies {
		h.scheduleReply(matchID, senderID)
	}

	return c.JSON(http.StatusCreated, msg)
}

// GetProfile returns the profile owned by the given user.
func (h *Handlers) GetProfile(c echo.Context) error {
	p, err := h.store.ProfileByUserID(c.Param("userID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// UpdateProfile merges the submitted changes into the caller's profile.
func (h *Handlers) UpdateProfile(c echo.Context) error {
	var update models.ProfileUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	p, err := h.store.UpdateProfile(currentUserID(c), update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Health is the liveness probe.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// scheduleReply makes the other participant answer with a canned line after
// the configured delay. Errors are ignored; this is demo scaffolding.
func (h *Handlers) scheduleReply(matchID, senderID string) {
	time.AfterFunc(h.cfg.ReplyDelay, func() {
		matches := h.store.MatchesFor(senderID)
		for _, m := range matches {
			if m.ID != matchID || m.OtherUser == nil {
				continue
			}
			reply := store.CannedReply(m.OtherUser.ID)
			if _, err := h.store.AppendMessage(matchID, m.OtherUser.ID, reply); err != nil {
				h.logger.Warn(context.Background(), "simulated reply failed", "match_id", matchID, "error", err)
			}
			return
		}
	})
}
