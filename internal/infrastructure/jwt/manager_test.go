package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseSessionToken(t *testing.T) {
	mgr := NewJWTManager("test-secret", 2400*time.Hour)
	svc := NewJWTService(mgr)

	token, expiresAt, err := svc.GenerateToken("user-1", entity.UserRoleGuide)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2400*time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, entity.UserRoleGuide, claims.Role)
	require.NotNil(t, claims.IssuedAt)
}

func TestVerifyTokenExpired(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour)
	mgr.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := mgr.GenerateSessionToken("user-1", "user")
	require.NoError(t, err)

	mgr.now = time.Now
	_, err = mgr.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, _, err := NewJWTManager("secret-a", time.Hour).GenerateSessionToken("user-1", "user")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour).VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := CustomClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTManager("secret", time.Hour).VerifyToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenGarbage(t *testing.T) {
	_, err := NewJWTManager("secret", time.Hour).VerifyToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
