package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_HashAndCheck(t *testing.T) {
	auth := NewAuthService()

	hash, err := auth.HashPassword("Secr3t!")
	require.NoError(t, err)
	require.NotEqual(t, "Secr3t!", hash)
	require.True(t, strings.HasPrefix(hash, "$2"))

	assert.True(t, auth.CheckPassword("Secr3t!", hash))
	assert.False(t, auth.CheckPassword("wrong", hash))
}

func TestAuthService_CheckMalformedHash(t *testing.T) {
	auth := NewAuthService()

	// битый токен — просто false, без паники и без ошибки наружу
	assert.False(t, auth.CheckPassword("Secr3t!", "not-a-bcrypt-hash"))
	assert.False(t, auth.CheckPassword("Secr3t!", ""))
}

func TestAuthService_HashIsSalted(t *testing.T) {
	auth := NewAuthService()

	h1, err := auth.HashPassword("Secr3t!")
	require.NoError(t, err)
	h2, err := auth.HashPassword("Secr3t!")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
