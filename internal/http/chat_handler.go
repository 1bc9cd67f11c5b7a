package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tutor-llm/internal/domain"
	"tutor-llm/internal/repository"
	"tutor-llm/internal/service"
)

// ChatHandler mantiene dependencias para los endpoints de chats y mensajes.
type ChatHandler struct {
	logger  *zap.Logger
	chatSvc *service.ChatService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, chatSvc *service.ChatService) *ChatHandler {
	return &ChatHandler{
		logger:  logger,
		chatSvc: chatSvc,
	}
}

// Health maneja GET /healthz.
func (h *ChatHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SaveMessage maneja POST /api/message.
func (h *ChatHandler) SaveMessage(c *gin.Context) {
	var req struct {
		ChatID  string `json:"chat_id"`
		Content string `json:"content" binding:"required"`
		Type    string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid save message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing content or type"})
		return
	}

	role, err := domain.ParseRole(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message type"})
		return
	}

	saved, err := h.chatSvc.SaveMessage(c.Request.Context(), req.ChatID, req.Content, role)
	if err != nil {
		h.respondError(c, "save message failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"chat_id":    saved.ChatID,
		"message_id": saved.MessageID,
		"timestamp":  saved.Timestamp,
		"chat_title": saved.ChatTitle,
	})
}

// ListChats maneja GET /api/chats.
func (h *ChatHandler) ListChats(c *gin.Context) {
	chats, err := h.chatSvc.ListChats(c.Request.Context())
	if err != nil {
		h.respondError(c, "list chats failed", err)
		return
	}
	if chats == nil {
		chats = []domain.Chat{}
	}
	c.JSON(http.StatusOK, chats)
}

// CreateChat maneja POST /api/chats.
func (h *ChatHandler) CreateChat(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
	}
	// Body vacio es valido; se usa el titulo default.
	_ = c.ShouldBindJSON(&req)

	chat, err := h.chatSvc.CreateChat(c.Request.Context(), req.Title)
	if err != nil {
		h.respondError(c, "create chat failed", err)
		return
	}

	c.JSON(http.StatusCreated, chat)
}

// GetChat maneja GET /api/chat/:id.
func (h *ChatHandler) GetChat(c *gin.Context) {
	chat, messages, err := h.chatSvc.GetChatWithMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "get chat failed", err)
		return
	}
	if messages == nil {
		messages = []domain.Message{}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       chat.ID,
		"title":    chat.Title,
		"messages": messages,
	})
}

// DeleteChat maneja DELETE /api/chat/:id.
func (h *ChatHandler) DeleteChat(c *gin.Context) {
	id := c.Param("id")
	if err := h.chatSvc.DeleteChat(c.Request.Context(), id); err != nil {
		h.respondError(c, "delete chat failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Chat %s deleted successfully.", id)})
}

// Converse maneja POST /chat: el turno conversacional completo.
func (h *ChatHandler) Converse(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
		ChatID  string `json:"chat_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid converse request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing message"})
		return
	}

	result, err := h.chatSvc.Converse(c.Request.Context(), req.ChatID, req.Message)
	if err != nil {
		h.respondError(c, "converse failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"chat_id": result.ChatID,
		"reply":   result.Reply,
	})
}

func (h *ChatHandler) respondError(c *gin.Context, logMsg string, err error) {
	switch {
	case errors.Is(err, repository.ErrChatNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
	case errors.Is(err, service.ErrChatInvalidInput), errors.Is(err, domain.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	default:
		h.logger.Error(logMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
