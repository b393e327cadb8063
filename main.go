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

	"lg/nutrichat-api/coach"
	"lg/nutrichat-api/internal/config"
	"lg/nutrichat-api/internal/logger"
	"lg/nutrichat-api/internal/scheduler"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	gin.SetMode(gin.ReleaseMode)

	pool, err := newDBPool(context.Background(), cfg.DB.URL)
	if err != nil {
		baseLogger.Fatal("failed to init database pool", zap.Error(err))
	}
	defer pool.Close()
	baseLogger.Info("db pool ready")

	if cfg.AI.APIKey == "" {
		baseLogger.Warn("OPENAI_API_KEY missing, coach will serve fallback advice only")
	}
	aiCoach := coach.New(coach.NewClient(cfg.AI), logger.Named(baseLogger, "coach"))

	h := &Handler{
		db:         pool,
		coach:      aiCoach,
		logger:     logger.Named(baseLogger, "handlers"),
		sessionTTL: cfg.Session.TTL,
	}
	engine := newRouter(h, logger.Named(baseLogger, "router"))

	sched := scheduler.New(cfg.Session.PruneSchedule, h, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: withCORS(engine, cfg.Server.CORSOrigins),
		// Coach calls can take up to the AI timeout.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AI.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
