package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dariolp/escuela/internal/app/models"
)

func newTestJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "escuela.test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	user := &models.User{
		ID:    42,
		Email: "ana@escuela.edu.ar",
		Role:  models.RoleStudent,
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	assert.Equal(t, int(time.Hour.Seconds()), expiresIn)
	assert.Equal(t, int((24 * time.Hour).Seconds()), refreshExpiresIn)

	claims, err := svc.ValidateAndExtractClaims(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ana@escuela.edu.ar", claims.Email)
	assert.Equal(t, string(models.RoleStudent), claims.Role)
	assert.Equal(t, "escuela.test", claims.Issuer)

	// The refresh token is opaque, not a JWT
	_, err = svc.ValidateToken(refreshToken)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)
	user := &models.User{ID: 1, Email: "ana@escuela.edu.ar", Role: models.RoleAdmin}

	accessToken, _, _, _, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(accessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	user := &models.User{ID: 1, Email: "ana@escuela.edu.ar", Role: models.RoleAdmin}

	accessToken, _, _, _, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:       "another-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "escuela.test",
	})
	_, err = other.ValidateToken(accessToken)
	assert.Error(t, err)
}

func TestValidateAndExtractClaimsEmpty(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	_, err := svc.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "empty header", header: "", wantErr: true},
		{name: "missing scheme", header: "abc.def.ghi", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
