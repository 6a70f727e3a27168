package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"guildsports-bot/internal/config"
	"guildsports-bot/internal/logger"
	"guildsports-bot/internal/report"
	"guildsports-bot/internal/scheduler"
	"guildsports-bot/internal/server"
	"guildsports-bot/internal/store"
	"guildsports-bot/internal/tgbot"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		stdlog.Fatalf("config: %v", err)
	}

	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	st := store.New(db)
	if err := st.AutoMigrate(); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	rep := report.NewBuilder(st)

	botApp, err := tgbot.New(cfg, st, rep, log)
	if err != nil {
		log.Fatal("telegram", zap.Error(err))
	}

	sched, err := scheduler.Start(cfg, rep, botApp.SendText, log)
	if err != nil {
		log.Fatal("scheduler", zap.Error(err))
	}

	httpSrv := server.New(cfg, st, log)
	go func() {
		log.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := botApp.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("bot stopped", zap.Error(err))
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")

	cancel()
	_ = sched.Shutdown()
	ctxTimeout, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = httpSrv.Shutdown(ctxTimeout)

	log.Info("bye")
}
