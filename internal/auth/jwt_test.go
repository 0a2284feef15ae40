package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GenerateAndVerify(t *testing.T) {
	m := NewManager("test-secret", 0)

	token, expiresAt, err := m.GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.VerifyAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, time.Second)
	assert.WithinDuration(t, claims.IssuedAt.Time.Add(DefaultAccessTTL), claims.ExpiresAt.Time, time.Second)
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }

	token, _, err := m.GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.VerifyAccessToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestManager_RejectsForeignSignature(t *testing.T) {
	token, _, err := NewManager("secret-a", time.Hour).GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).VerifyAccessToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestManager_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		UserID:    "user-1",
		Email:     "a@b.com",
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewManager("test-secret", time.Hour).VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsWrongTokenType(t *testing.T) {
	claims := Claims{
		UserID:    "user-1",
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewManager("test-secret", time.Hour).VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestPeekClaims(t *testing.T) {
	token, _, err := NewManager("server-only", time.Hour).GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)

	claims, err := PeekClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email)

	_, err = PeekClaims("not.a.token")
	assert.Error(t, err)
}
