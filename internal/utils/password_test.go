package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)

	assert.True(t, VerifyPassword(hash, "secret"))
	assert.False(t, VerifyPassword(hash, "Secret"))
	assert.False(t, VerifyPassword("not-a-hash", "secret"))
}

func TestHashPassword_ClampsInvalidCost(t *testing.T) {
	hash, err := HashPassword("secret", 99)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "secret"))

	c, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, c)
}
