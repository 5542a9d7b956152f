package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dariolp/escuela/internal/app/models"
	"github.com/dariolp/escuela/internal/app/repositories"
	"github.com/dariolp/escuela/internal/pkg/apperrors"
	"github.com/dariolp/escuela/internal/pkg/auth"
	"github.com/dariolp/escuela/internal/pkg/logger"
)

// LockoutPolicy controls how failed logins are throttled, both per account
// and per source IP.
type LockoutPolicy struct {
	MaxFailedAttempts int
	LockoutDuration   time.Duration
	IPMaxAttempts     int
	IPWindow          time.Duration
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo         *repositories.UserRepository
	tokenRepo        *repositories.TokenRepository
	loginAttemptRepo *repositories.LoginAttemptRepository
	jwtService       *auth.JWTService
	policy           LockoutPolicy
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	loginAttemptRepo *repositories.LoginAttemptRepository,
	jwtService *auth.JWTService,
	policy LockoutPolicy,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		tokenRepo:        tokenRepo,
		loginAttemptRepo: loginAttemptRepo,
		jwtService:       jwtService,
		policy:           policy,
	}
}

// AuthResult bundles the authenticated user with a fresh token pair
type AuthResult struct {
	User                  *models.User
	AccessToken           string
	RefreshToken          string
	ExpiresIn             int
	RefreshTokenExpiresIn int
}

// Login authenticates a user by email, DNI and password. All three factors
// must match the same account. Failures are indistinguishable to the caller
// and recorded against both the account and the source IP.
func (s *AuthService) Login(ctx context.Context, email, dni, password, clientIP string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	dni = strings.TrimSpace(dni)

	if s.policy.IPMaxAttempts > 0 && clientIP != "" {
		count, err := s.loginAttemptRepo.CountByIP(ctx, clientIP, s.policy.IPWindow)
		if err != nil {
			return nil, fmt.Errorf("failed to check login attempts: %w", err)
		}
		if count >= s.policy.IPMaxAttempts {
			logger.Warn().Str("ip", clientIP).Msg("Login blocked: too many attempts from IP")
			return nil, apperrors.ErrAccountLocked
		}
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Burn a bcrypt comparison so unknown emails take as long as bad
		// passwords, then record the attempt.
		auth.CheckDummyPassword(password)
		s.recordFailure(ctx, clientIP, email)
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.IsLocked(time.Now()) {
		logger.Warn().Int64("userId", user.ID).Msg("Login blocked: account locked")
		return nil, apperrors.ErrAccountLocked
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if !credentialsMatch(user, dni, password) {
		s.recordFailure(ctx, clientIP, email)
		if err := s.userRepo.RecordFailedLogin(ctx, user.ID, s.policy.MaxFailedAttempts, s.policy.LockoutDuration); err != nil {
			logger.Error().Err(err).Int64("userId", user.ID).Msg("Failed to record failed login")
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.RecordSuccessfulLogin(ctx, user.ID, clientIP); err != nil {
		logger.Error().Err(err).Int64("userId", user.ID).Msg("Failed to record successful login")
	}
	if clientIP != "" {
		if err := s.loginAttemptRepo.ClearForIP(ctx, clientIP); err != nil {
			logger.Error().Err(err).Str("ip", clientIP).Msg("Failed to clear login attempts")
		}
	}

	return s.issueTokens(ctx, user)
}

// credentialsMatch verifies the DNI and password factors. A DNI mismatch
// burns a dummy bcrypt comparison in place of the skipped real one, so every
// failure path costs exactly one hash and timing does not tell the factors
// apart.
func credentialsMatch(user *models.User, dni, password string) bool {
	if user.DNI != dni {
		auth.CheckDummyPassword(password)
		return false
	}
	return auth.CheckPassword(user.Password, password)
}

func (s *AuthService) recordFailure(ctx context.Context, clientIP, email string) {
	if clientIP == "" {
		return
	}
	if err := s.loginAttemptRepo.Record(ctx, clientIP, email); err != nil {
		logger.Error().Err(err).Str("ip", clientIP).Msg("Failed to record login attempt")
	}
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*AuthResult, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &AuthResult{
		User:                  user,
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		ExpiresIn:             expiresIn,
		RefreshTokenExpiresIn: refreshExpiresIn,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// The used token is revoked so each refresh token works exactly once.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	userID, expiryDate, isRevoked, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	if isRevoked {
		return nil, apperrors.ErrTokenRevoked
	}

	if time.Now().After(expiryDate) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the given refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return apperrors.ErrTokenInvalid
	}
	return nil
}

// ChangePassword verifies the current password and sets a new one, then
// revokes every outstanding refresh token of the user.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	if currentPassword == newPassword {
		return apperrors.NewValidationError("new password must differ from the current one")
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		logger.Error().Err(err).Int64("userId", userID).Msg("Failed to revoke user tokens after password change")
	}

	return nil
}

// GetProfile returns the user behind an access token's userID claim
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// CleanupExpired removes expired refresh tokens and stale login attempts.
// Meant to run periodically in the background.
func (s *AuthService) CleanupExpired(ctx context.Context) {
	if deleted, err := s.tokenRepo.DeleteExpiredTokens(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to delete expired tokens")
	} else if deleted > 0 {
		logger.Info().Int64("deleted", deleted).Msg("Deleted expired refresh tokens")
	}

	if deleted, err := s.loginAttemptRepo.DeleteOlderThan(ctx, s.policy.IPWindow); err != nil {
		logger.Error().Err(err).Msg("Failed to prune login attempts")
	} else if deleted > 0 {
		logger.Info().Int64("deleted", deleted).Msg("Pruned stale login attempts")
	}
}
