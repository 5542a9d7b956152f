package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dariolp/escuela/internal/app/models"
	"github.com/dariolp/escuela/internal/pkg/auth"
)

func newTestAuthMiddleware() (*AuthMiddleware, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "escuela.test",
	})
	return NewAuthMiddleware(jwtService, nil), jwtService
}

func performRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m, jwtService := newTestAuthMiddleware()

	var gotUserID int64
	var gotRole models.RoleType
	router := gin.New()
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) {
		gotUserID = GetUserID(c)
		gotRole = GetUserRole(c)
		c.Status(http.StatusOK)
	})

	user := &models.User{ID: 7, Email: "ana@escuela.edu.ar", Role: models.RoleStudent}
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(user)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		w := performRequest(router, "Bearer "+accessToken)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(7), gotUserID)
		assert.Equal(t, models.RoleStudent, gotRole)
	})

	t.Run("missing header", func(t *testing.T) {
		w := performRequest(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		w := performRequest(router, "Basic "+accessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := performRequest(router, "Bearer not.a.token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m, _ := newTestAuthMiddleware()

	router := gin.New()
	router.GET("/protected", func(c *gin.Context) {
		// Simulate JWTAuth having run
		c.Set(ContextRole, c.GetHeader("X-Test-Role"))
	}, m.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		role       string
		wantStatus int
	}{
		{role: "ADMIN", wantStatus: http.StatusOK},
		{role: "STUDENT", wantStatus: http.StatusForbidden},
		{role: "GUEST", wantStatus: http.StatusForbidden},
		{role: "", wantStatus: http.StatusForbidden},
	}
	for _, tt := range tests {
		name := tt.role
		if name == "" {
			name = "no role"
		}
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("X-Test-Role", tt.role)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestGetUserIDUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, int64(0), GetUserID(c))
	assert.False(t, IsAdmin(c))
}
