package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/berckan/domainwishlist/internal/cache"
	"github.com/berckan/domainwishlist/internal/checker"
	"github.com/berckan/domainwishlist/internal/config"
	"github.com/berckan/domainwishlist/internal/notify"
	"github.com/berckan/domainwishlist/internal/settings"
	"github.com/berckan/domainwishlist/internal/wishlist"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg      config.Config
	redis    *redis.Client
	settings *settings.Repository
	runner   *wishlist.Runner
	wishlist *wishlist.Service
	router   *gin.Engine
}

func New(cfg config.Config) (*App, error) {
	a := &App{cfg: cfg}

	if cfg.Redis.Enabled() {
		rdb, err := newRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.redis = rdb
	}

	repo, err := settings.Open(cfg.Settings.Path)
	if err != nil {
		a.closeRedis()
		return nil, fmt.Errorf("settings: %w", err)
	}
	a.settings = repo

	domainChecker := checker.New(checker.Options{
		Timeout:     cfg.Checker.Timeout.Duration(),
		Concurrency: cfg.Checker.Concurrency,
		Resolver:    cfg.Checker.Resolver,
	})
	whois := cache.NewWhoisCache(domainChecker, a.redis, cfg.Redis.TTL.Duration())

	var notifier wishlist.Notifier = notify.Log{}
	if cfg.Email.Enabled() {
		notifier = notify.NewResend(cfg.Email.ResendAPIKey, cfg.Email.To)
	}

	store := wishlist.NewStore(nil)
	refresher := wishlist.NewRefresher(store, domainChecker, whois, notifier, wishlist.Options{
		WholeStore:       cfg.Wishlist.WholeStore,
		WhoisConcurrency: cfg.Checker.Concurrency,
	})
	a.runner = wishlist.NewRunner(refresher)
	a.wishlist = wishlist.NewService(store, refresher, a.runner)

	if cfg.Wishlist.SeedDemo {
		if err := a.wishlist.Seed(); err != nil {
			a.Close()
			return nil, fmt.Errorf("seeding demo wishlist: %w", err)
		}
	}

	a.router = newRouter(cfg, domainChecker, whois, a.wishlist, a.settings)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

// Run serves wishlist refresh requests until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	return a.runner.Run(ctx)
}

// Close releases the Redis client and the settings database.
func (a *App) Close() error {
	a.closeRedis()
	if a.settings != nil {
		if err := a.settings.Close(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) closeRedis() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	slog.Info("Connected to Redis.", "addr", cfg.Addr)
	return rdb, nil
}

func newRouter(cfg config.Config, c *checker.Checker, whois *cache.WhoisCache, svc *wishlist.Service, st *settings.Repository) *gin.Engine {
	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.HTTP.Origins(),
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, cfg, c, whois, svc, st)
	return r
}

// requestLogger logs each request through slog.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("HTTP request.",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
