package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/apperror"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/cache"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/config"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/handler"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/metrics"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/repository"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/seed"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/service"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/store"
)

func main() {
	cfg, err := config.Load(".", "..")
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	logOpts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	m := metrics.New()

	db, err := repository.Open(context.Background(), cfg, m.RedisHook())
	if err != nil {
		slog.Error("failed to open storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("storage ready", "backend", cfg.StorageBackend)

	st := store.New(db,
		store.WithLogger(logger),
		store.WithRecorder(m),
		store.WithHasher(store.NewBcryptHasher(cfg.BcryptCost)),
	)
	if err := st.Load(context.Background()); err != nil {
		slog.Error("failed to load state", "error", err)
		os.Exit(1)
	}

	if cfg.DemoSeedUsers > 0 {
		users, err := seed.Users(context.Background(), st, cfg.DemoSeedUsers, seed.Options{})
		if err != nil {
			slog.Error("failed to seed demo users", "error", err)
			os.Exit(1)
		}
		slog.Info("demo users seeded", "count", len(users))
	}

	directory := service.NewDirectoryService(st,
		cache.WithTTL(time.Duration(cfg.CacheTTLSeconds)*time.Second),
		cache.WithMaxSize(cfg.CacheMaxSize),
		cache.WithObserver(m),
	)
	defer directory.Close()
	broadcasts := service.NewBroadcaster(st, m)
	defer broadcasts.Close()
	limiter := service.NewTokenBucket(cfg.LoginRatePerSecond, cfg.LoginBurst)
	defer limiter.Close()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Deps{
		Auth:         service.NewAuthService(st, cfg.JWTSecret, m),
		Directory:    directory,
		Swaps:        service.NewSwapService(st, m),
		Ratings:      service.NewRatingService(st),
		Admin:        service.NewAdminService(st),
		Broadcasts:   broadcasts,
		Errors:       apperror.NewHandler(logger, apperror.DefaultLogSize),
		Metrics:      m,
		LoginLimiter: limiter,
		CookieSecure: cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	// Open message streams end when their listeners close.
	broadcasts.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
