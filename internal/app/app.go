package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	dbpkg "github.com/yungbote/people-notes-backend/internal/data/db"
	"github.com/yungbote/people-notes-backend/internal/data/repos"
	"github.com/yungbote/people-notes-backend/internal/data/seed"
	httpx "github.com/yungbote/people-notes-backend/internal/http"
	httpH "github.com/yungbote/people-notes-backend/internal/http/handlers"
	"github.com/yungbote/people-notes-backend/internal/observability"
	"github.com/yungbote/people-notes-backend/internal/platform/logger"
	"github.com/yungbote/people-notes-backend/internal/platform/ratelimit"
	"github.com/yungbote/people-notes-backend/internal/services"
)

const Version = "0.1.0"

type Repos struct {
	Person repos.PersonRepo
	Note   repos.NoteRepo
}

type Services struct {
	People services.PeopleService
	Notes  services.NoteService
}

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Store    *dbpkg.Service
	DB       *gorm.DB
	Redis    *redis.Client
	Metrics  *observability.Metrics
	Repos    Repos
	Services Services
	Server   *httpx.Server

	otelShutdown func(context.Context) error
}

// New opens storage and wires every layer. It does not migrate; see Migrate.
func New(ctx context.Context, cfg Config) (*App, error) {
	log, err := logger.NewWithLevel(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a := &App{Log: log, Cfg: cfg}
	a.otelShutdown = observability.InitOTel(ctx, log, cfg.OtelSettings(Version))

	store, err := dbpkg.NewService(log, dbpkg.Options{
		Driver: cfg.Database.Driver,
		Path:   cfg.Database.Path,
		DSN:    cfg.Database.URL,
	})
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("init database: %w", err)
	}
	a.Store = store
	a.DB = store.DB()

	if cfg.Redis.Addr != "" {
		a.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	a.Metrics = observability.New(cfg.Metrics.Enabled)

	a.Repos = Repos{
		Person: repos.NewPersonRepo(a.DB, log),
		Note:   repos.NewNoteRepo(a.DB, log),
	}
	a.Services = Services{
		People: services.NewPeopleService(a.DB, log, a.Repos.Person, a.Repos.Note),
		Notes:  services.NewNoteService(a.DB, log, a.Repos.Person, a.Repos.Note),
	}

	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	a.Server = httpx.NewServer(httpx.RouterConfig{
		HomeHandler:   httpH.NewHomeHandler(),
		HealthHandler: httpH.NewHealthHandler(store),
		PeopleHandler: httpH.NewPeopleHandler(a.Services.People),
		NoteHandler:   httpH.NewNoteHandler(a.Services.Notes),
		Log:           log,
		Metrics:       a.Metrics,
		Limiter:       a.newLimiter(),
		CORSOrigins:   cfg.Server.CORSOrigins,
		ServiceName:   serviceName,
	}, cfg.ShutdownTimeout())

	return a, nil
}

// newLimiter returns a nil interface when rate limiting is off.
func (a *App) newLimiter() ratelimit.Limiter {
	perMinute := a.Cfg.RateLimit.PerMinute
	if perMinute <= 0 {
		return nil
	}
	if a.Redis != nil {
		a.Log.Info("rate limiting via redis", "per_minute", perMinute, "addr", a.Cfg.Redis.Addr)
		return ratelimit.NewRedisLimiter(a.Redis, perMinute, time.Minute)
	}
	a.Log.Info("rate limiting in memory", "per_minute", perMinute)
	return ratelimit.NewMemoryLimiter(perMinute, time.Minute)
}

func (a *App) Migrate() error {
	a.Log.Info("Running auto migrations...", "driver", a.Store.Driver())
	return a.Store.AutoMigrateAll()
}

func (a *App) Seed(ctx context.Context) error {
	return seed.NewSeeder(a.DB, a.Log).Reset(ctx, seed.Sample)
}

// Run migrates, then serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return errors.New("app not initialized")
	}
	if err := a.Migrate(); err != nil {
		return err
	}
	a.Metrics.StartCollectors(ctx, a.Log, a.DB, a.redisForMetrics(), a.Cfg.ScrapeInterval())
	return a.Server.Run(ctx, a.Cfg.Addr())
}

func (a *App) redisForMetrics() redis.UniversalClient {
	if a.Redis == nil {
		return nil
	}
	return a.Redis
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		if err := a.otelShutdown(shutdownCtx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	a.Log.Sync()
}
