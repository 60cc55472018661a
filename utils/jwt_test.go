package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

// The signing secret must come from the environment as it stands at first
// use, not at package load, or a .env-supplied secret is silently ignored
// and every token falls back to the development default.
func TestTokenSignedWithEnvSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret-for-tests")

	tokenString, err := GenerateToken(7, "staff")
	assert.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("env-secret-for-tests"), nil
	})
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)

	claims := parsed.Claims.(*CustomClaims)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "staff", claims.Role)

	// And not with the development fallback.
	_, err = jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("PosAppDevSecret2209"), nil
	})
	assert.Error(t, err)
}

func TestGenerateAndValidateRoundTrip(t *testing.T) {
	tokenString, err := GenerateToken(3, "admin")
	assert.NoError(t, err)

	claims, err := ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	// Revocation wins over a valid signature.
	BlacklistToken(tokenString)
	_, err = ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}
