package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Na-Rajan/compareremittance/internal/bootstrap"
	"github.com/Na-Rajan/compareremittance/internal/config"
	infraconfig "github.com/Na-Rajan/compareremittance/internal/infrastructure/config"
	"github.com/Na-Rajan/compareremittance/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	logger := logx.L()
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api, cleanup, err := bootstrap.InitAPI(ctx, cfg)
	if err != nil {
		logger.Fatal("bootstrap api", zap.Error(err))
	}
	defer cleanup()
	logger = api.Log

	workerDone := make(chan struct{})
	if api.Prober != nil {
		go func() {
			defer close(workerDone)
			api.Prober.Start(ctx)
		}()
	} else {
		close(workerDone)
	}

	go func() {
		logger.Info("server started", zap.String("addr", api.Server.Addr))
		if err := api.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = infraconfig.DefaultShutdownTimeout
	}
	shutdownCtx, shCancel := context.WithTimeout(context.Background(), timeout)
	defer shCancel()
	if err := api.Server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}
	select {
	case <-workerDone:
	case <-time.After(timeout):
		logger.Warn("probe worker did not stop in time")
	}
	logger.Info("server stopped")
}
