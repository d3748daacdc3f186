package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gemveil-backend/internal/auth"
)

func TestGenerateAndParseToken(t *testing.T) {
	userID := uuid.New()

	tokenStr, err := auth.GenerateToken("test-secret-key-for-jwt-signing-must-be-long-enough", userID, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := auth.ParseToken("test-secret-key-for-jwt-signing-must-be-long-enough", tokenStr)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "gemveil", claims.Issuer)
}

func TestParseToken_WrongSecret(t *testing.T) {
	tokenStr, err := auth.GenerateToken("secret-one", uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = auth.ParseToken("secret-two", tokenStr)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	claims := auth.Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = auth.ParseToken("test-secret", tokenStr)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := auth.ParseToken("test-secret", "not-a-token")
	assert.Error(t, err)
}
