// Package app boots the storefront server: config is already validated,
// so startup is database, migration, router, serve.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/home-accessories/backend/internal/chat"
	"github.com/home-accessories/backend/internal/config"
	"github.com/home-accessories/backend/internal/db"
	internalhttp "github.com/home-accessories/backend/internal/http"
	"github.com/home-accessories/backend/internal/mail"
	"github.com/home-accessories/backend/internal/upload"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds graceful shutdown after ctx is cancelled.
const shutdownTimeout = 10 * time.Second

// Run starts the server and blocks until ctx is cancelled or the listener
// fails. Any startup failure is returned before traffic is served.
func Run(ctx context.Context, cfg config.Config) error {
	conn, errOpen := db.Open(cfg.DatabaseURL)
	if errOpen != nil {
		return errOpen
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	log.Info("database connected")

	storage, errStorage := upload.NewStorage(cfg.UploadDir)
	if errStorage != nil {
		return errStorage
	}

	mailer := mail.NewClient(cfg.ResendAPIKey, "")
	chatClient := chat.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, cfg.OpenRouterModel)

	router := internalhttp.NewRouter(conn, cfg, storage, mailer, chatClient)
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("server running on port %s", cfg.Port)
		if errServe := server.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			return errServe
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
