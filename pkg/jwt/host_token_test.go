package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	svc := NewHostTokenService("test-secret", 3600)

	token, err := svc.Generate("host")
	require.NoError(t, err)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "host", claims["sub"])
	assert.Equal(t, HostRole, claims["role"])
	assert.Equal(t, 3600, svc.ExpiresIn())
}

func TestParseRejectsOtherSecret(t *testing.T) {
	token, err := NewHostTokenService("secret-a", 3600).Generate("host")
	require.NoError(t, err)

	_, err = NewHostTokenService("secret-b", 3600).Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	svc := NewHostTokenService("test-secret", 60)
	issued := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.Generate("host")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = svc.Parse(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestParseRejectsNonHostRole(t *testing.T) {
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "player",
		"role": "player",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	token, err := raw.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewHostTokenService("test-secret", 3600).Parse(token)
	assert.Error(t, err)
}
