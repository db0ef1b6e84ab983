package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	sid := NewSessionID()

	token, err := svc.GenerateSessionToken(sid)
	require.NoError(t, err)

	got, err := svc.ExtractSessionID(token)
	require.NoError(t, err)
	assert.Equal(t, sid, got)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, err := NewJWTService("other-secret", time.Hour).GenerateSessionToken(NewSessionID())
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", time.Hour).ExtractSessionID(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        NewSessionID(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", time.Hour).ExtractSessionID(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsMissingID(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", 0).ExtractSessionID(token)
	assert.Error(t, err)
}
