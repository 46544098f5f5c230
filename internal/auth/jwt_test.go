package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(
		"test-secret-key-for-testing-purposes",
		30*24*time.Hour,
		12*time.Hour,
	)
}

func TestNewJWTService(t *testing.T) {
	service := newTestJWTService()
	assert.NotNil(t, service)
	assert.Equal(t, 30*24*time.Hour, service.GetSessionTokenExpiry())
	assert.Equal(t, 12*time.Hour, service.GetAdminTokenExpiry())
}

// ============================================
// Session Token Tests
// ============================================

func TestJWTService_GenerateSessionToken_Success(t *testing.T) {
	service := newTestJWTService()

	token, expiresAt, err := service.GenerateSessionToken("sess-123")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now().Add(29*24*time.Hour)))
	assert.True(t, expiresAt.Before(time.Now().Add(31*24*time.Hour)))
}

func TestJWTService_ValidateSessionToken_Valid(t *testing.T) {
	service := newTestJWTService()

	token, _, err := service.GenerateSessionToken("sess-456")
	require.NoError(t, err)

	sessionID, err := service.ValidateSessionToken(token)

	require.NoError(t, err)
	assert.Equal(t, "sess-456", sessionID)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RoleShopper, claims.Role)
	assert.Equal(t, "sess-456", claims.Subject)
}

func TestJWTService_ValidateSessionToken_Expired(t *testing.T) {
	service := NewJWTService("test-secret", 1*time.Millisecond, time.Hour)

	token, _, err := service.GenerateSessionToken("sess-123")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	sessionID, err := service.ValidateSessionToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Empty(t, sessionID)
}

func TestJWTService_AdminTokenIsNotASessionToken(t *testing.T) {
	service := newTestJWTService()

	token, _, err := service.GenerateAdminToken("admin@flygear.ua")
	require.NoError(t, err)

	sessionID, err := service.ValidateSessionToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, sessionID)
}

// ============================================
// Admin Token Tests
// ============================================

func TestJWTService_GenerateAdminToken(t *testing.T) {
	service := newTestJWTService()

	token, expiresAt, err := service.GenerateAdminToken("admin@flygear.ua")
	require.NoError(t, err)
	assert.True(t, expiresAt.Before(time.Now().Add(13*time.Hour)))

	claims, err := service.ValidateToken(token)

	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "admin@flygear.ua", claims.Email)
	assert.Empty(t, claims.SessionID)
}

// ============================================
// Invalid Token Tests
// ============================================

func TestJWTService_ValidateToken_Invalid(t *testing.T) {
	service := newTestJWTService()

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"random string", "not-a-valid-token"},
		{"malformed JWT", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_ValidateToken_WrongSignature(t *testing.T) {
	service1 := NewJWTService("secret-key-1", time.Hour, time.Hour)
	service2 := NewJWTService("secret-key-2", time.Hour, time.Hour)

	token, _, err := service1.GenerateSessionToken("sess-123")
	require.NoError(t, err)

	claims, err := service2.ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTService_ValidateToken_WrongAlgorithm(t *testing.T) {
	service := newTestJWTService()

	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Email: "admin@flygear.ua",
		Role:  RoleAdmin,
	})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := service.ValidateToken(tokenString)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTService_TokensAreDifferentPerSession(t *testing.T) {
	service := newTestJWTService()

	first, _, err := service.GenerateSessionToken("sess-1")
	require.NoError(t, err)
	second, _, err := service.GenerateSessionToken("sess-2")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
