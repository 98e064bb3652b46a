// Package server initializes and runs the Kinship mock backend. It wires
// the in-memory dataset, the OTP service, and the HTTP router, and handles
// graceful shutdown on OS signals.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kinshipapp/kinship/internal/logging"
	"github.com/kinshipapp/kinship/internal/server/api"
	"github.com/kinshipapp/kinship/internal/server/config"
	"github.com/kinshipapp/kinship/internal/server/otp"
	"github.com/kinshipapp/kinship/internal/server/store"
)

type App struct {
	config *config.Config
	logger logging.Logger
	router *echo.Echo
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	})))

	st := store.New()
	otpSvc := otp.NewService(cfg, logger)
	router := api.NewRouter(st, otpSvc, cfg, logger)

	return &App{config: cfg, logger: logger, router: router}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting server", "addr", app.config.Addr, "otp_mode", app.config.OTPMode)

	app.initSignalHandler(cancelFunc)

	go func() {
		if err := app.router.Start(app.config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "server stopped", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.router.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown failed", "error", err)
	}
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
