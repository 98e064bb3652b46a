package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/kinshipapp/kinship/internal/client/api"
	"github.com/kinshipapp/kinship/internal/client/cache"
	"github.com/kinshipapp/kinship/internal/client/config"
	"github.com/kinshipapp/kinship/internal/client/notify"
	"github.com/kinshipapp/kinship/internal/client/services"
	"github.com/kinshipapp/kinship/internal/client/session"
	"github.com/kinshipapp/kinship/internal/client/storage"
	"github.com/kinshipapp/kinship/internal/logging"

	_ "modernc.org/sqlite"
)

// App bundles everything the REPL needs. One instance exists per process.
type App struct {
	config   *config.Config
	session  *session.Manager
	feed     *services.FeedService
	matches  *services.MatchesService
	chat     *services.ChatService
	profile  *services.ProfileService
	cache    *cache.Store
	notifier *notify.Notifier
	logger   logging.Logger
	reader   *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	db, err := storage.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	store := storage.NewSQLiteStore(db)
	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	queryCache := cache.New()
	notifier := notify.New()

	return &App{
		config:   c,
		session:  session.NewManager(store, apiClient, logger),
		feed:     services.NewFeedService(apiClient, queryCache, notifier, logger, c.FeedTTL),
		matches:  services.NewMatchesService(apiClient, queryCache, c.MatchesTTL),
		chat:     services.NewChatService(apiClient, queryCache, notifier, logger, c.MessagesTTL),
		profile:  services.NewProfileService(apiClient, queryCache, c.ProfileTTL),
		cache:    queryCache,
		notifier: notifier,
		logger:   logger,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the persisted session and hands control to the REPL. It
// blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	a.session.Hydrate(ctx)
	a.subscribeAlerts()
	a.Root(ctx)
}

// subscribeAlerts prints bus events as bracketed status lines so they stay
// visible between prompts.
func (a *App) subscribeAlerts() {
	_ = a.notifier.Subscribe(notify.TopicMatch, func(e notify.Event) {
		fmt.Printf("\n[match] %s: %s\n", e.Title, e.Body)
	})
	_ = a.notifier.Subscribe(notify.TopicMessage, func(e notify.Event) {
		fmt.Printf("\n[message] %s: %s\n", e.Title, e.Body)
	})
}
