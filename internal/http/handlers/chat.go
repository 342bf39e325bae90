package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/home-accessories/backend/internal/chat"
	log "github.com/sirupsen/logrus"
)

// ChatHandler proxies visitor questions to the chat-completion client.
type ChatHandler struct {
	client *chat.Client
}

// NewChatHandler constructs a ChatHandler.
func NewChatHandler(client *chat.Client) *ChatHandler {
	return &ChatHandler{client: client}
}

// chatRequest defines the chat body.
type chatRequest struct {
	Message string `json:"message"`
}

// Chat forwards the message upstream and returns the single reply. An
// upstream non-2xx status is passed through to the caller.
func (h *ChatHandler) Chat(c *gin.Context) {
	var body chatRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil || strings.TrimSpace(body.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	reply, errComplete := h.client.Complete(c.Request.Context(), body.Message)
	if errComplete != nil {
		var apiErr *chat.APIError
		if errors.As(errComplete, &apiErr) {
			log.Errorf("openrouter error: %v", apiErr)
			c.JSON(apiErr.StatusCode, gin.H{"error": "Failed to get AI response"})
			return
		}
		log.Errorf("chat completion failed: %v", errComplete)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
