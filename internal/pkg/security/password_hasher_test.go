package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, CheckPasswordHash("s3cret-pass", hash))
	assert.Error(t, CheckPasswordHash("wrong-pass", hash))
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestHashPasswordRejectsTooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", maxPasswordBytes+1))
	assert.Error(t, err)
}
