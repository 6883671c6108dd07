package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbyteai/BetStack-sub001/pkg/jwt"
	"github.com/devbyteai/BetStack-sub001/pkg/logger"
)

func authRouter(t *testing.T, svc *jwt.JWTService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("development")

	r := gin.New()
	r.GET("/me", AuthMiddleware(svc), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": userID.String()})
	})
	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", time.Hour)
	r := authRouter(t, svc)

	userID := uuid.New()
	token, err := svc.GenerateToken(userID, "punter@example.com", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := authRouter(t, jwt.NewJWTService("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is required")
}

func TestAuthMiddleware_BadFormat(t *testing.T) {
	r := authRouter(t, jwt.NewJWTService("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthorizationHeader, "Basic abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid authorization format")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	r := authRouter(t, jwt.NewJWTService("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+"not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", -time.Minute)
	r := authRouter(t, svc)

	token, err := svc.GenerateToken(uuid.New(), "punter@example.com", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/internal", func(c *gin.Context) {
		c.Set(UserRoleKey, "service")
		c.Next()
	}, RequireService(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/forbidden", func(c *gin.Context) {
		c.Set(UserRoleKey, "user")
		c.Next()
	}, RequireService(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/norole", RequireService(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/internal", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/forbidden", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/norole", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserID_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUserID(c)
	assert.False(t, ok)
}
