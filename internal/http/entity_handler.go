package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stash-connect/internal/domain"
)

// EntityHydrator resuelve entidades completas a partir de su id.
type EntityHydrator interface {
	User(ctx context.Context, raw any) (domain.User, error)
	Channel(ctx context.Context, raw any) (domain.Channel, error)
	File(ctx context.Context, raw any) (domain.File, error)
	CompanyByID(ctx context.Context, id int64) (domain.Company, error)
}

// EntityHandler expone usuarios, canales, ficheros y empresas hidratados.
type EntityHandler struct {
	logger   *zap.Logger
	hydrator EntityHydrator
}

func NewEntityHandler(logger *zap.Logger, hydrator EntityHydrator) *EntityHandler {
	return &EntityHandler{logger: logger, hydrator: hydrator}
}

// GetUser maneja GET /users/:id.
func (h *EntityHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	u, err := h.hydrator.User(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.logger, "get user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// GetChannel maneja GET /channels/:id.
func (h *EntityHandler) GetChannel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ch, err := h.hydrator.Channel(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.logger, "get channel", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"channel": ch})
}

// GetFile maneja GET /files/:id.
func (h *EntityHandler) GetFile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	f, err := h.hydrator.File(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.logger, "get file", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"file": f})
}

// GetCompany maneja GET /companies/:id.
func (h *EntityHandler) GetCompany(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	company, err := h.hydrator.CompanyByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.logger, "get company", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}
