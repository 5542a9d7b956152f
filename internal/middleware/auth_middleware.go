package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dariolp/escuela/internal/app/models"
	"github.com/dariolp/escuela/internal/app/models/dto"
	"github.com/dariolp/escuela/internal/app/repositories"
	"github.com/dariolp/escuela/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   *repositories.UserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo *repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message, details string) {
	errorDetail := dto.NewErrorDetail(code, message)
	errorDetail = errorDetail.WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// JWTAuth validates the bearer token and stores the claims in the context
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Authentication failed", "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Authentication failed", "Invalid token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// RequireRoles allows only the listed roles past
func (m *AuthMiddleware) RequireRoles(roles ...models.RoleType) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[string(role)] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if _, ok := allowed[role]; !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
			errorDetail = errorDetail.WithDetails("Insufficient role for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}
		c.Next()
	}
}

// RequireAdmin allows only administrators past
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRoles(models.RoleAdmin)
}

// PasswordChangeGate blocks users flagged with must_change_password from
// everything except the password change endpoint itself.
func (m *AuthMiddleware) PasswordChangeGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.FullPath() == "/api/v1/auth/change-password" {
			c.Next()
			return
		}

		user, err := m.userRepo.GetByID(c, GetUserID(c))
		if err != nil {
			c.Next()
			return
		}

		if user.MustChangePassword {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodePasswordChange, "Password change required")
			errorDetail = errorDetail.WithDetails("Change your password before using the API")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// GetUserID returns the authenticated user's ID, or zero when unauthenticated
func GetUserID(c *gin.Context) int64 {
	if id, ok := c.Get(ContextUserID); ok {
		if userID, ok := id.(int64); ok {
			return userID
		}
	}
	return 0
}

// GetUserRole returns the authenticated user's role
func GetUserRole(c *gin.Context) models.RoleType {
	return models.RoleType(c.GetString(ContextRole))
}

// IsAdmin reports whether the authenticated user is an administrator
func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == models.RoleAdmin
}
