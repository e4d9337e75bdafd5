package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/Na-Rajan/compareremittance/internal/bootstrap"
	"github.com/Na-Rajan/compareremittance/internal/config"
	"github.com/Na-Rajan/compareremittance/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	once := flag.Bool("once", false, "probe every pair once and exit")
	flag.Parse()

	log := logx.L()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, cleanup, err := bootstrap.InitWorker(ctx, cfg)
	if err != nil {
		log.Fatal("init worker", zap.Error(err))
	}
	defer cleanup()

	if *once {
		w.RunOnce(ctx)
		return
	}
	w.Start(ctx)
}
