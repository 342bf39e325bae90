// Package http wires the gin router for the storefront API.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/home-accessories/backend/internal/chat"
	"github.com/home-accessories/backend/internal/config"
	"github.com/home-accessories/backend/internal/http/handlers"
	"github.com/home-accessories/backend/internal/mail"
	"github.com/home-accessories/backend/internal/upload"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewRouter builds the full route table. Mutating catalog routes sit behind
// the admin bearer middleware; listing and stored files are public.
func NewRouter(db *gorm.DB, cfg config.Config, storage *upload.Storage, mailer *mail.Client, chatClient *chat.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.Static("/uploads", storage.Dir())

	authHandler := handlers.NewAuthHandler(db, cfg.JWTSecret)
	r.POST("/api/admin/login", authHandler.Login)

	productHandler := handlers.NewProductHandler(db, storage)
	r.GET("/api/products", productHandler.List)

	authed := r.Group("/api/products", AdminAuthMiddleware(cfg.JWTSecret))
	authed.POST("", productHandler.Create)
	authed.PUT("/:id", productHandler.Update)
	authed.DELETE("/:id", productHandler.Delete)

	contactHandler := handlers.NewContactHandler(mailer, cfg.EmailUser)
	r.POST("/send-email", contactHandler.Send)

	chatHandler := handlers.NewChatHandler(chatClient)
	r.POST("/chat", chatHandler.Chat)

	return r
}

// requestLogger logs each request through logrus.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).String(),
		}).Info("request")
	}
}
