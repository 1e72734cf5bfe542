package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stash-connect/internal/domain"
	"stash-connect/internal/service"
)

// MessageSyncer es la parte de MessageService que usa el handler.
type MessageSyncer interface {
	Sync(ctx context.Context, target domain.Addressing, limit, offset int) ([]domain.Message, error)
	Archived(ctx context.Context, target domain.Addressing) ([]domain.Message, error)
	Conversations(ctx context.Context, limit, offset int) ([]domain.Conversation, error)
}

// MessageActioner reenvía acciones sobre mensajes.
type MessageActioner interface {
	Message(ctx context.Context, action service.Action, messageID int64) error
}

// MessageHandler expone mensajes descifrados y acciones sobre ellos.
type MessageHandler struct {
	logger   *zap.Logger
	messages MessageSyncer
	actions  MessageActioner
}

func NewMessageHandler(logger *zap.Logger, messages MessageSyncer, actions MessageActioner) *MessageHandler {
	return &MessageHandler{logger: logger, messages: messages, actions: actions}
}

// Sync maneja GET /messages/:type/:id.
func (h *MessageHandler) Sync(c *gin.Context) {
	target, ok := parseTarget(c)
	if !ok {
		return
	}
	limit, offset, ok := pageParams(c)
	if !ok {
		return
	}

	msgs, err := h.messages.Sync(c.Request.Context(), target, limit, offset)
	if err != nil {
		writeServiceError(c, h.logger, "sync messages", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"target": target, "messages": msgs})
}

// Archived maneja GET /archive/:type/:id.
func (h *MessageHandler) Archived(c *gin.Context) {
	target, ok := parseTarget(c)
	if !ok {
		return
	}
	msgs, err := h.messages.Archived(c.Request.Context(), target)
	if err != nil {
		writeServiceError(c, h.logger, "archived messages", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"target": target, "messages": msgs})
}

// Conversations maneja GET /conversations.
func (h *MessageHandler) Conversations(c *gin.Context) {
	limit, offset, ok := pageParams(c)
	if !ok {
		return
	}
	convs, err := h.messages.Conversations(c.Request.Context(), limit, offset)
	if err != nil {
		writeServiceError(c, h.logger, "list conversations", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}

// MessageAction maneja POST /messages/:id/:action (like, unlike, flag, unflag).
func (h *MessageHandler) MessageAction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	action := service.Action(c.Param("action"))
	switch action {
	case service.ActionLikeMessage, service.ActionUnlikeMessage, service.ActionFlagMessage, service.ActionUnflagMessage:
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown action"})
		return
	}

	if err := h.actions.Message(c.Request.Context(), action, id); err != nil {
		writeServiceError(c, h.logger, "message action", err)
		return
	}
	operator, _ := CurrentOperator(c)
	h.logger.Info("message action forwarded",
		zap.String("operator", operator),
		zap.Int64("message_id", id),
		zap.String("action", string(action)),
	)
	c.JSON(http.StatusOK, gin.H{"id": id, "action": action})
}

func pageParams(c *gin.Context) (int, int, bool) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return 0, 0, false
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
		return 0, 0, false
	}
	return limit, offset, true
}
