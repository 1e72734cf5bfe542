package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"stash-connect/internal/service"
)

func newOperatorRouter(jwtSvc *service.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", OperatorAuthMiddleware(jwtSvc), func(c *gin.Context) {
		op, ok := CurrentOperator(c)
		claims, claimsOK := OperatorClaims(c)
		if !ok || !claimsOK || claims.Operator != op {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, op)
	})
	return r
}

func serveWithAuth(r *gin.Engine, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestOperatorAuthMiddleware_StoresOperator(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", 15*time.Minute)
	tok, err := jwtSvc.Issue("ops")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for _, scheme := range []string{"Bearer ", "bearer ", "BEARER  "} {
		rec := serveWithAuth(newOperatorRouter(jwtSvc), scheme+tok.AccessToken)
		if rec.Code != http.StatusOK || rec.Body.String() != "ops" {
			t.Fatalf("%q: expected 200 ops, got %d %q", scheme, rec.Code, rec.Body.String())
		}
	}
}

func TestOperatorAuthMiddleware_RejectsMissingToken(t *testing.T) {
	r := newOperatorRouter(service.NewJWTService("secret", 15*time.Minute))

	for _, auth := range []string{"", "Bearer", "Bearer   ", "Basic b3BzOnB3"} {
		rec := serveWithAuth(r, auth)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%q: expected 401, got %d", auth, rec.Code)
		}
		if rec.Header().Get("WWW-Authenticate") == "" {
			t.Fatalf("%q: expected WWW-Authenticate challenge", auth)
		}
	}
}

func TestOperatorAuthMiddleware_RejectsForeignToken(t *testing.T) {
	tok, err := service.NewJWTService("other", 15*time.Minute).Issue("ops")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec := serveWithAuth(newOperatorRouter(service.NewJWTService("secret", 15*time.Minute)), "Bearer "+tok.AccessToken)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestOperatorAuthMiddleware_NotConfigured(t *testing.T) {
	rec := serveWithAuth(newOperatorRouter(nil), "Bearer x")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
