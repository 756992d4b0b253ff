package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, VerifyPassword("password123", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestGenerateJWTRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID().Hex()

	tokenString, err := GenerateJWT("secret", userID, "publisher", time.Hour)
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, userID, claims["user_id"])
	assert.Equal(t, "publisher", claims["role"])
}

func TestGenerateJWTRejectsWrongSecret(t *testing.T) {
	tokenString, err := GenerateJWT("secret", primitive.NewObjectID().Hex(), "user", time.Hour)
	require.NoError(t, err)

	_, err = jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	assert.Error(t, err)
}

func TestSecureTokenIsRandom(t *testing.T) {
	a, err := generateSecureToken()
	require.NoError(t, err)
	b, err := generateSecureToken()
	require.NoError(t, err)

	assert.Len(t, a, 40)
	assert.NotEqual(t, a, b)
}

func TestHashResetTokenIsDeterministic(t *testing.T) {
	assert.Equal(t, hashResetToken("abc"), hashResetToken("abc"))
	assert.NotEqual(t, hashResetToken("abc"), hashResetToken("abd"))
	assert.Len(t, hashResetToken("abc"), 64)
}
