package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mkosheleva/qr-attendance/internal/config"
	"github.com/mkosheleva/qr-attendance/internal/db"
	"github.com/mkosheleva/qr-attendance/internal/jobs"
	"github.com/mkosheleva/qr-attendance/internal/logging"
	"github.com/mkosheleva/qr-attendance/internal/metrics"
	"github.com/mkosheleva/qr-attendance/internal/observability"
	"github.com/mkosheleva/qr-attendance/internal/web"
)

var release = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("нет .env, используем переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("конфигурация: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("логгер: %v", err)
	}
	defer lg.Closer()

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		lg.Base.Warn("sentry init", zap.Error(err))
	}
	defer flushSentry()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Base.Fatal("подключение к БД", zap.Error(err))
	}
	defer func() { _ = database.Close() }()

	if err := db.Migrate(ctx, database); err != nil {
		lg.Base.Fatal("миграции", zap.Error(err))
	}

	runner := jobs.New(ctx)
	runner.Every(30*time.Second, "db_ping", func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 800*time.Millisecond)
		defer cancel()
		t0 := time.Now()
		if err := database.PingContext(pingCtx); err != nil {
			return err
		}
		metrics.ObserveDBPing(time.Since(t0))
		return nil
	})

	srv := web.New(cfg, database, lg.Base)
	srv.Start(ctx)
	lg.Base.Info("сервер запущен", zap.String("addr", cfg.HTTPAddr), zap.String("base_url", cfg.BaseURL))

	<-ctx.Done()
	lg.Base.Info("останавливаемся")
}
