package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("secret", "alice", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateJWT("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, jwtIssuer, claims.Issuer)
}

func TestValidateJWTRejects(t *testing.T) {
	valid, err := GenerateJWT("secret", "alice", time.Hour)
	require.NoError(t, err)
	expired, err := GenerateJWT("secret", "alice", -time.Minute)
	require.NoError(t, err)
	noSubject, err := GenerateJWT("secret", "", time.Hour)
	require.NoError(t, err)
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{name: "wrong secret", secret: "other", token: valid},
		{name: "expired", secret: "secret", token: expired},
		{name: "empty subject", secret: "secret", token: noSubject},
		{name: "wrong issuer", secret: "secret", token: foreign},
		{name: "garbage", secret: "secret", token: "not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateJWT(tt.secret, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestGenerateJWTRequiresSecret(t *testing.T) {
	_, err := GenerateJWT("", "alice", time.Hour)
	assert.Error(t, err)
}
