package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dariolp/escuela/internal/app/models"
	"github.com/dariolp/escuela/internal/app/models/dto"
	"github.com/dariolp/escuela/internal/app/services"
	"github.com/dariolp/escuela/internal/middleware"
)

// AuthController handles authentication operations
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:                 user.ID,
		Email:              user.Email,
		FirstName:          user.FirstName,
		LastName:           user.LastName,
		DNI:                user.DNI,
		Role:               string(user.Role),
		MustChangePassword: user.MustChangePassword,
	}
}

func toAuthResponse(result *services.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           result.AccessToken,
			TokenType:             "Bearer",
			ExpiresIn:             result.ExpiresIn,
			RefreshToken:          result.RefreshToken,
			RefreshTokenExpiresIn: result.RefreshTokenExpiresIn,
		},
		User: toUserResponse(result.User),
	}
}

// Login authenticates a user
// @Summary Log in
// @Description Authenticates a user by email, DNI and password and returns a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Authentication successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 423 {object} dto.ErrorResponse "Account temporarily locked"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	result, err := c.authService.Login(ctx, req.Email, req.DNI, req.Password, ctx.ClientIP())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      toAuthResponse(result),
		Timestamp: time.Now(),
	})
}

// RefreshToken exchanges a refresh token for a new token pair
// @Summary Refresh tokens
// @Description Exchanges a valid refresh token for a new access and refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Tokens refreshed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid, revoked or expired refresh token"
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	result, err := c.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      toAuthResponse(result),
		Timestamp: time.Now(),
	})
}

// Logout revokes a refresh token
// @Summary Log out
// @Description Revokes the given refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LogoutRequest true "Refresh token to revoke"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Logged out"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid refresh token"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.authService.Logout(ctx, req.RefreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Logged out successfully"},
		Timestamp: time.Now(),
	})
}

// ChangePassword changes the password of the authenticated user
// @Summary Change password
// @Description Verifies the current password and sets a new one
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Password changed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Current password is wrong"
// @Router /auth/change-password [post]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID := middleware.GetUserID(ctx)
	if err := c.authService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Password changed successfully"},
		Timestamp: time.Now(),
	})
}

// GetProfile returns the authenticated user's profile
// @Summary Get profile
// @Description Returns the profile of the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /auth/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	user, err := c.authService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      toUserResponse(user),
		Timestamp: time.Now(),
	})
}
