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

	adapterHTTP "github.com/comitanigiacomo/kanso-demo-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/app"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/config"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/workers"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/logger"
)

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		// The logger depends on the config, so this is the one plain write.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := app.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open storage", zap.Error(err))
	}
	defer res.Close()

	client, demo, err := app.NewClient(cfg, res, log)
	if err != nil {
		log.Fatal("failed to build client", zap.Error(err))
	}

	deps := adapterHTTP.RouterDependencies{
		Mode:      cfg.Mode,
		Client:    client,
		Redis:     res.Redis,
		RateLimit: cfg.RateLimit,
		Logger:    log,
		StartTime: startTime,
	}

	if cfg.Auth.JWTSecret != "" {
		deps.TokenService = services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenDuration, client)
	}

	var worker *workers.RefreshWorker
	if demo != nil {
		if err := demo.Initialize(ctx); err != nil {
			log.Fatal("failed to initialize demo data", zap.Error(err))
		}

		worker = workers.NewRefreshWorker(demo, cfg.Demo.RefreshInterval, log.Named("refresh"))
		worker.Start(ctx)

		deps.Demo = demo
		deps.Jobs = worker
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      adapterHTTP.NewRouter(deps),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second + cfg.Demo.SyncDelay,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("kanso demo engine listening", zap.String("addr", srv.Addr), zap.String("mode", cfg.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	if worker != nil {
		<-worker.Done()
	}

	log.Info("server stopped gracefully")
}
