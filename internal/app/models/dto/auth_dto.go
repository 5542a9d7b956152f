package dto

// LoginRequest represents login credentials. Login requires the registered
// DNI in addition to email and password.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	DNI      string `json:"dni" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int    `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int    `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest revokes a refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ChangePasswordRequest represents a password change for the logged-in user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID                 int64  `json:"id"`
	Email              string `json:"email"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	DNI                string `json:"dni"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"mustChangePassword"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}
