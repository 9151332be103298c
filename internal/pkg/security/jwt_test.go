package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42, []string{"admin", "user"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, []string{"admin", "user"}, claims.Roles)
	assert.Equal(t, "WikiStars", claims.Issuer)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken(7, nil)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA"

	_, err = ValidateToken(tampered)
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	token, err := GenerateToken(7, nil)
	require.NoError(t, err)

	sig, err := ExtractSignature(token)
	require.NoError(t, err)
	assert.Equal(t, strings.Split(token, ".")[2], sig)

	_, err = ExtractSignature("not-a-jwt")
	assert.Error(t, err)
}
