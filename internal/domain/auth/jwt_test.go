package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, expires, err := svc.GenerateAccessToken(TokenRequest{
		UserID:      "u-42",
		Email:       "it@example.com",
		Roles:       []string{"staff"},
		Permissions: []string{"device:read"},
	})
	require.NoError(t, err)
	assert.True(t, expires.After(time.Now()))

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-42", user.UserID)
	assert.Equal(t, "it@example.com", user.Email)
	assert.True(t, user.HasPermission("device:read"))
	assert.False(t, user.HasPermission("device:delete"))
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTService(DefaultJWTConfig("one")).GenerateAccessToken(TokenRequest{UserID: "u"})
	require.NoError(t, err)

	_, err = NewJWTService(DefaultJWTConfig("two")).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	cfg := DefaultJWTConfig("s")
	cfg.AccessTokenTTL = -time.Minute
	svc := NewJWTService(cfg)

	token, _, err := svc.GenerateAccessToken(TokenRequest{UserID: "u"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_RejectsForeignIssuer(t *testing.T) {
	other := DefaultJWTConfig("s")
	other.Issuer = "someone-else"
	token, _, err := NewJWTService(other).GenerateAccessToken(TokenRequest{UserID: "u"})
	require.NoError(t, err)

	_, err = NewJWTService(DefaultJWTConfig("s")).ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{UserID: "u", RegisteredClaims: jwt.RegisteredClaims{Issuer: "devinventory"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService(DefaultJWTConfig("s")).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_SubjectFallback(t *testing.T) {
	cfg := DefaultJWTConfig("s")
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Subject:   "from-sub",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	user, err := NewJWTService(cfg).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "from-sub", user.UserID)
}
