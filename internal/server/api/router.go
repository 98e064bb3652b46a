// Package api exposes the mock backend's REST surface over Echo.
package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/kinshipapp/kinship/internal/logging"
	"github.com/kinshipapp/kinship/internal/server/config"
	"github.com/kinshipapp/kinship/internal/server/otp"
	"github.com/kinshipapp/kinship/internal/server/store"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(st *store.Store, otpSvc *otp.Service, cfg *config.Config, logger logging.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	h := NewHandlers(st, otpSvc, cfg, logger)
	authRequired := Auth([]byte(cfg.JWTSecret))

	e.GET("/health", h.Health)

	e.POST("/auth/otp/send", h.SendCode)
	e.POST("/auth/otp/verify", h.VerifyCode)
	e.GET("/auth/me", h.Me, authRequired)

	e.GET("/discover/feed", h.Feed, authRequired)
	e.POST("/discover/like", h.Like, authRequired)
	e.POST("/discover/pass", h.Pass, authRequired)

	e.GET("/matches", h.Matches, authRequired)
	e.GET("/matches/:id/messages", h.Messages, authRequired)
	e.POST("/matches/:id/messages", h.SendMessage, authRequired)

	e.GET("/profile/:userID", h.GetProfile, authRequired)
	e.PUT("/profile", h.UpdateProfile, authRequired)

	return e
}
