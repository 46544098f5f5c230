package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// Hashing Tests
// ============================================

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"minimum length", "fpv-2025", nil},
		{"ukrainian", "пропелер-5045", nil},
		{"long", strings.Repeat("quad", 16), nil},
		{"too short", "fpv-25", ErrPasswordTooShort},
		{"empty", "", ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(hash, "$2a$12$"), "unexpected hash %q", hash)
			assert.True(t, CheckPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("whoop-freestyle")
	require.NoError(t, err)
	second, err := HashPassword("whoop-freestyle")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("Cinewhoop85")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{"match", "Cinewhoop85", hash, true},
		{"different case", "cinewhoop85", hash, false},
		{"wrong", "Cinewhoop86", hash, false},
		{"empty password", "", hash, false},
		{"malformed hash", "Cinewhoop85", "not-a-bcrypt-hash", false},
		{"empty hash", "Cinewhoop85", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPassword(tt.password, tt.hash))
		})
	}
}

// ============================================
// Admin Account Tests
// ============================================

func TestAdminAccount_Authenticate(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	account := AdminAccount{Email: "admin@flygear.ua", PasswordHash: hash}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "admin@flygear.ua", "correct-horse", false},
		{"email case and spaces", "  Admin@FlyGear.ua ", "correct-horse", false},
		{"wrong password", "admin@flygear.ua", "wrong-horse", true},
		{"wrong email", "other@flygear.ua", "correct-horse", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := account.Authenticate(tt.email, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAdminAccount_NotConfigured(t *testing.T) {
	account := AdminAccount{Email: "admin@flygear.ua"}

	assert.ErrorIs(t, account.Authenticate("admin@flygear.ua", ""), ErrInvalidCredentials)
}
