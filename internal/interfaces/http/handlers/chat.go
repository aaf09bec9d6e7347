package handlers

import (
	"net/http"

	"github.com/ayuraa/wellness-backend/internal/domain/chat"
	"github.com/ayuraa/wellness-backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ChatHandler handles the wellness assistant
type ChatHandler struct {
	chat   *chat.Service
	logger *logrus.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *chat.Service, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{chat: chatService, logger: logger}
}

// SendMessage handles POST /chat. Signed-in users without a conversation id
// continue their own conversation.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req chat.Request
	if !bindJSON(c, &req) {
		return
	}
	if req.ConversationID == "" {
		if userID, ok := middleware.GetUserIDFromContext(c); ok {
			req.ConversationID = userID
		}
	}

	resp, err := h.chat.Respond(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Greeting handles GET /chat/greeting
func (h *ChatHandler) Greeting(c *gin.Context) {
	c.JSON(http.StatusOK, h.chat.Greet())
}
