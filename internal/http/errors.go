package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stash-connect/internal/crypto"
	"stash-connect/internal/domain"
	"stash-connect/internal/payload"
	"stash-connect/internal/repository"
	"stash-connect/internal/service"
	"stash-connect/internal/stash"
)

// writeServiceError traduce los errores del núcleo a respuestas HTTP.
func writeServiceError(c *gin.Context, logger *zap.Logger, op string, err error) {
	var (
		kre *service.KeyResolutionError
		de  *service.DecryptionError
		he  *service.HydrationError
	)
	status := http.StatusBadGateway
	msg := "upstream failure"
	switch {
	case errors.Is(err, service.ErrMessageInvalidInput), errors.Is(err, service.ErrActionInvalidInput):
		status, msg = http.StatusBadRequest, "invalid request"
	case errors.Is(err, service.ErrArchiveNotConfigured):
		status, msg = http.StatusNotImplemented, "archive not configured"
	case errors.Is(err, service.ErrMessageServiceNotConfigured), errors.Is(err, service.ErrActionServiceNotConfigured):
		status, msg = http.StatusInternalServerError, "service not configured"
	case errors.As(err, &kre):
		status, msg = keyResolutionStatus(kre)
	case errors.As(err, &he) && errors.Is(err, stash.ErrNotFound):
		status, msg = http.StatusNotFound, "not found"
	case errors.As(err, &he) && payload.IsIncomplete(he.Err):
		status, msg = http.StatusBadGateway, "incomplete "+string(he.Kind)+" from service"
	case errors.As(err, &de):
		status, msg = http.StatusUnprocessableEntity, "could not decrypt "+de.Field
	case errors.Is(err, stash.ErrNotFound):
		status, msg = http.StatusNotFound, "not found"
	case errors.Is(err, stash.ErrPermission):
		status, msg = http.StatusForbidden, "forbidden"
	}

	fields := []zap.Field{zap.String("op", op), zap.Int("status", status), zap.Error(err)}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", fields...)
	} else {
		logger.Warn("request rejected", fields...)
	}
	c.JSON(status, gin.H{"error": msg})
}

// keyResolutionStatus solo responde 403 cuando la clave está realmente denegada
// o ausente; los fallos de transporte o del servicio siguen siendo 502.
func keyResolutionStatus(kre *service.KeyResolutionError) (int, string) {
	switch {
	case errors.Is(kre.Err, stash.ErrPermission),
		errors.Is(kre.Err, repository.ErrKeyUnavailable),
		errors.Is(kre.Err, service.ErrEmptyKey),
		errors.Is(kre.Err, crypto.ErrNoPrivateKey):
		return http.StatusForbidden, "encryption key unavailable"
	default:
		return http.StatusBadGateway, "encryption key lookup failed"
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func parseTarget(c *gin.Context) (domain.Addressing, bool) {
	typ, err := domain.ParseTargetType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target type"})
		return domain.Addressing{}, false
	}
	id, ok := parseID(c)
	if !ok {
		return domain.Addressing{}, false
	}
	return domain.Addressing{Type: typ, ID: id}, true
}
