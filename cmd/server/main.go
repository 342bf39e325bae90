package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/home-accessories/backend/internal/app"
	"github.com/home-accessories/backend/internal/config"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	cfg, errLoad := config.Load()
	if errLoad != nil {
		log.Fatalf("configuration error: %v", errLoad)
	}
	setupLogging(cfg.LogFile)
	log.Info("environment variables validated")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if errRun := app.Run(ctx, cfg); errRun != nil {
		log.Fatalf("server error: %v", errRun)
	}
}

// setupLogging tees logs into a rotating file when LOG_FILE is set.
func setupLogging(logFile string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if logFile == "" {
		return
	}
	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
}
