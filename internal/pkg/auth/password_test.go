package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("cambiar.123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "cambiar.123", hash)

	assert.True(t, CheckPassword(hash, "cambiar.123"))
	assert.False(t, CheckPassword(hash, "cambiar.124"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestHashPasswordUnique(t *testing.T) {
	first, err := HashPassword("cambiar.123")
	require.NoError(t, err)
	second, err := HashPassword("cambiar.123")
	require.NoError(t, err)

	// bcrypt salts every hash
	assert.NotEqual(t, first, second)
}

func TestCheckDummyPassword(t *testing.T) {
	assert.False(t, CheckDummyPassword("anything"))
	assert.False(t, CheckDummyPassword("escuela-dummy-password"))
}
