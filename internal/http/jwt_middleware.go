package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stash-connect/internal/service"
)

const (
	operatorKey       = "operator"
	operatorClaimsKey = "operator_claims"
)

// OperatorAuthMiddleware exige un token de operador emitido por JWTService.
// Deja el operador y sus claims en el contexto para el limitador y los handlers.
func OperatorAuthMiddleware(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "operator auth not configured"})
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Header("WWW-Authenticate", `Bearer realm="stash-connect"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "operator token required"})
			return
		}

		claims, err := jwtSvc.ParseAccessToken(token)
		if err != nil {
			c.Header("WWW-Authenticate", `Bearer realm="stash-connect", error="invalid_token"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "operator token rejected"})
			return
		}

		c.Set(operatorKey, claims.Operator)
		c.Set(operatorClaimsKey, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentOperator devuelve el operador autenticado de la petición.
func CurrentOperator(c *gin.Context) (string, bool) {
	op := c.GetString(operatorKey)
	return op, op != ""
}

// OperatorClaims devuelve las claims completas del token del operador.
func OperatorClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(operatorClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}
