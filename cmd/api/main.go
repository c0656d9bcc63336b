package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hotelbooking/internal/app"
	"hotelbooking/internal/cache"
	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/notification"
	"hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/pkg/logger"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/tasks"
)

const (
	shutdownTimeout = 10 * time.Second
	redisQueueKey   = "hotelbooking:tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if cfg.AutoMigrate {
		if err := repository.AutoMigrate(db); err != nil {
			return err
		}
		log.Info("database migrated")
	}
	repos := repository.NewManager(db)

	if err := os.MkdirAll(cfg.ImagesDir, 0o755); err != nil {
		return err
	}

	var (
		store cache.Store
		queue tasks.Queue
	)
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		store = cache.NewRedisStore(client)
		queue = tasks.NewRedisQueue(client, redisQueueKey)
		log.Info("using redis for cache and task queue")
	} else {
		store = cache.NewMemoryStore()
		queue = tasks.NewMemoryQueue(cfg.QueueBuffer)
		log.Info("REDIS_URL is empty, using in-process cache and task queue")
	}

	hub := notification.NewHub(log, middleware.AllowedOrigin)
	tokens := jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	router := app.NewRouter(app.Deps{
		DB:           repos,
		Tokens:       tokens,
		Cache:        store,
		CacheTTL:     cfg.CacheTTL,
		Queue:        queue,
		Hub:          hub,
		ImagesDir:    cfg.ImagesDir,
		MaxImageSize: cfg.MaxImageSize,
		CookieSecure: cfg.CookieSecure,
		Log:          log,
	})
	pool, scheduler := app.NewWorkers(repos, queue, hub, cfg.Workers, cfg.CheckinInterval, log)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return pool.Run(gctx)
	})
	g.Go(func() error {
		return scheduler.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		scheduler.Stop()
		err := srv.Shutdown(shutdownCtx)
		_ = queue.Close()
		return err
	})

	return g.Wait()
}
