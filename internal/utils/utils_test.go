package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	at, err := NewAccessToken("secret", 12, "john.doe@example.com", "guest", 60)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), at.Exp, 5*time.Second)

	c, err := ParseAccessToken("secret", at.Token)
	require.NoError(t, err)
	assert.Equal(t, Claims{UserID: 12, Email: "john.doe@example.com", Role: "guest"}, c)
}

func TestParseAccessTokenRejects(t *testing.T) {
	good, err := NewAccessToken("secret", 1, "a@b.c", "admin", 60)
	require.NoError(t, err)
	expired, err := NewAccessToken("secret", 1, "a@b.c", "admin", -5)
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "1", "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"wrong secret": good.Token,
		"expired":      expired.Token,
		"alg none":     none,
		"garbage":      "not-a-jwt",
	} {
		secret := "secret"
		if name == "wrong secret" {
			secret = "other"
		}
		_, err := ParseAccessToken(secret, raw)
		assert.ErrorIs(t, err, ErrInvalidToken, name)
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	rt, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96)
	assert.Len(t, HashRefreshRaw(rt.Raw), 64)
	assert.Equal(t, HashRefreshRaw(rt.Raw), HashRefreshRaw(rt.Raw))
	assert.NotEqual(t, rt.Raw, HashRefreshRaw(rt.Raw))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123", 4)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "password123"))
	assert.False(t, VerifyPassword(hash, "password124"))
}
