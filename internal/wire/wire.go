// Package wire provides dependency injection for the missionctl application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"time"

	cliadapter "github.com/example/missionctl/internal/adapters/cli"
	"github.com/example/missionctl/internal/adapters/memory"
	"github.com/example/missionctl/internal/adapters/persistence"
	redisadapter "github.com/example/missionctl/internal/adapters/redis"
	"github.com/example/missionctl/internal/adapters/sqlite"
	"github.com/example/missionctl/internal/app"
	"github.com/example/missionctl/internal/config"
	corenotification "github.com/example/missionctl/internal/core/notification"
	coresession "github.com/example/missionctl/internal/core/session"
	"github.com/example/missionctl/internal/db"
	"github.com/example/missionctl/internal/logging"
	"github.com/example/missionctl/internal/ports/primary"
	"github.com/example/missionctl/internal/ports/secondary"
)

// App holds the services of one running missionctl process.
type App struct {
	Home   string
	Config *config.Config
	Logger *slog.Logger

	Missions      *app.MissionServiceImpl
	Sessions      *app.SessionServiceImpl
	Notifications *app.NotificationServiceImpl
	Preferences   *app.PreferenceServiceImpl

	closer io.Closer
}

// NewApp opens the configured store and builds the services on top of it.
// The persisted session is restored and the mission collection loaded before
// it returns; storage failures during that start-up are logged, not returned.
func NewApp(ctx context.Context, home string, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, closer, err := openStore(ctx, home, cfg)
	if err != nil {
		return nil, err
	}

	credentials, err := coresession.DemoCredentials()
	if err != nil {
		closeStore(closer, logger)
		return nil, fmt.Errorf("failed to build credential table: %w", err)
	}

	env := app.Env{Logger: logger}
	repo := persistence.NewStateRepository(store)

	a := &App{
		Home:   home,
		Config: cfg,
		Logger: logger,
		closer: closer,
	}
	a.Missions = app.NewMissionService(repo, env)
	a.Sessions = app.NewSessionService(repo, credentials, time.Duration(cfg.Session.LoginDelay), env)
	a.Notifications = app.NewNotificationService(app.NotificationOptions{
		Dedup:            corenotification.DedupMode(cfg.Notifications.Dedup),
		Max:              cfg.Notifications.Max,
		CompletionWindow: time.Duration(cfg.Notifications.CompletionWindow),
	}, env)
	a.Preferences = app.NewPreferenceService(repo, env, a.Missions, a.Sessions, a.Notifications)

	// The deriver must be listening before the first session and mission events.
	a.Notifications.Attach(a.Missions, a.Sessions)

	if _, err := a.Sessions.RestoreSession(ctx); err != nil {
		logger.Warn("starting without a session", "error", err)
	}
	if err := a.Missions.Load(ctx); err != nil {
		logger.Warn("missions loaded but not saved", "error", err)
	}

	return a, nil
}

// Close releases the underlying store.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// closeStore releases the store after a failed start-up. A close failure is
// logged so the start-up error stays the one returned.
func closeStore(closer io.Closer, logger *slog.Logger) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Warn("failed to close store", "error", err)
	}
}

func openStore(ctx context.Context, home string, cfg *config.Config) (secondary.KeyValueStore, io.Closer, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.NewKVStore(), nil, nil
	case config.BackendRedis:
		store, err := redisadapter.Dial(ctx, redisadapter.Options{
			Addr:   cfg.Storage.RedisAddr,
			DB:     cfg.Storage.RedisDB,
			Prefix: cfg.Storage.RedisPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		database, err := db.Open(cfg.SQLitePath(home))
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewKVStore(database), database, nil
	}
}

var (
	current *App
	once    sync.Once
)

// Default returns the process-wide App, building it on first use from the
// configuration in the missionctl home directory.
func Default() *App {
	once.Do(initApp)
	return current
}

// SetDefault installs a as the process-wide App. Used by tests.
func SetDefault(a *App) {
	once.Do(func() {})
	current = a
}

// initApp initializes all services and their dependencies.
// This is called once via sync.Once.
func initApp() {
	home, err := config.HomeDir()
	if err != nil {
		log.Fatalf("failed to resolve home directory: %v", err)
	}

	cfg, err := config.LoadConfig(home)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})

	current, err = NewApp(context.Background(), home, cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}
}

// MissionService returns the singleton MissionService instance.
func MissionService() primary.MissionService {
	return Default().Missions
}

// SessionService returns the singleton SessionService instance.
func SessionService() primary.SessionService {
	return Default().Sessions
}

// NotificationService returns the singleton NotificationService instance.
func NotificationService() primary.NotificationService {
	return Default().Notifications
}

// PreferenceService returns the singleton PreferenceService instance.
func PreferenceService() primary.PreferenceService {
	return Default().Preferences
}

// MissionAdapterWithOutput returns a new MissionAdapter writing to the given output.
// Each call creates a new adapter (adapters are stateless translators).
func MissionAdapterWithOutput(out io.Writer) *cliadapter.MissionAdapter {
	return cliadapter.NewMissionAdapter(MissionService(), out)
}

// SessionAdapterWithOutput returns a new SessionAdapter writing to the given output.
func SessionAdapterWithOutput(out io.Writer) *cliadapter.SessionAdapter {
	return cliadapter.NewSessionAdapter(SessionService(), out)
}

// NotificationAdapterWithOutput returns a new NotificationAdapter writing to the given output.
func NotificationAdapterWithOutput(out io.Writer) *cliadapter.NotificationAdapter {
	return cliadapter.NewNotificationAdapter(NotificationService(), out)
}

// PreferenceAdapterWithOutput returns a new PreferenceAdapter writing to the given output.
func PreferenceAdapterWithOutput(out io.Writer) *cliadapter.PreferenceAdapter {
	return cliadapter.NewPreferenceAdapter(PreferenceService(), out)
}
