package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/home-accessories/backend/internal/mail"
	log "github.com/sirupsen/logrus"
)

// ContactHandler relays contact-form submissions through the mail client.
type ContactHandler struct {
	mailer    *mail.Client
	emailUser string
}

// NewContactHandler constructs a ContactHandler. emailUser is both the
// verified sender and the recipient.
func NewContactHandler(mailer *mail.Client, emailUser string) *ContactHandler {
	return &ContactHandler{mailer: mailer, emailUser: emailUser}
}

// contactRequest defines the contact-form body.
type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Send validates the form and forwards it as one email. Failures surface
// immediately; there are no retries.
func (h *ContactHandler) Send(c *gin.Context) {
	var body contactRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email, and message are required"})
		return
	}
	if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Email) == "" || strings.TrimSpace(body.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email, and message are required"})
		return
	}

	phone := body.Phone
	if strings.TrimSpace(phone) == "" {
		phone = "Not provided"
	}

	text := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\nMessage:\n%s", body.Name, body.Email, phone, body.Message)
	html := fmt.Sprintf(
		"<h3>New Contact Form Submission</h3>"+
			"<p><strong>Name:</strong> %s</p>"+
			"<p><strong>Email:</strong> %s</p>"+
			"<p><strong>Phone:</strong> %s</p>"+
			"<p><strong>Message:</strong></p>"+
			"<p>%s</p>",
		body.Name, body.Email, phone, strings.ReplaceAll(body.Message, "\n", "<br>"),
	)

	id, errSend := h.mailer.Send(c.Request.Context(), mail.Message{
		From:    h.emailUser,
		To:      []string{h.emailUser},
		ReplyTo: body.Email,
		Subject: "Contact Form Message from " + body.Name,
		Text:    text,
		HTML:    html,
	})
	if errSend != nil {
		log.Errorf("send email failed: %v", errSend)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	log.Infof("email sent: id=%s", id)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email sent successfully"})
}
