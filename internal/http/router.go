package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"stash-connect/internal/service"
)

const requestIDKey = "request_id"

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	limiter service.ActionLimiter,
	messageH *MessageHandler,
	entityH *EntityHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: request id, logging, recovery y JSON content-type.
	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("", OperatorAuthMiddleware(jwtSvc))

	api.GET("/messages/:type/:id", messageH.Sync)
	api.GET("/archive/:type/:id", messageH.Archived)
	api.GET("/conversations", messageH.Conversations)
	api.POST("/messages/:id/:action", actionRateLimitMiddleware(limiter), messageH.MessageAction)

	api.GET("/users/:id", entityH.GetUser)
	api.GET("/channels/:id", entityH.GetChannel)
	api.GET("/files/:id", entityH.GetFile)
	api.GET("/companies/:id", entityH.GetCompany)

	return r
}

// requestIDMiddleware respeta X-Request-ID entrante o genera uno nuevo.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// actionRateLimitMiddleware limita acciones por operador autenticado. Sin limiter no limita.
func actionRateLimitMiddleware(limiter service.ActionLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		operator, _ := CurrentOperator(c)
		if !limiter.Allow(c.Request.Context(), operator) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many actions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
