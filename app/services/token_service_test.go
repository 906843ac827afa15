package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "test-secret-key-with-32-characters-minimum"

func createTestTokenService(t *testing.T) TokenService {
	t.Helper()
	service, err := NewTokenService(time.Hour, "deskquote", testSecretKey)
	require.NoError(t, err)
	return service
}

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name        string
		secretKey   string
		expectError bool
	}{
		{
			name:        "valid secret key",
			secretKey:   testSecretKey,
			expectError: false,
		},
		{
			name:        "short secret key",
			secretKey:   "too-short",
			expectError: true,
		},
		{
			name:        "empty secret key",
			secretKey:   "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := NewTokenService(time.Hour, "deskquote", tt.secretKey)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, service)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, service)
			}
		})
	}
}

func TestGenerateToken(t *testing.T) {
	service := createTestTokenService(t)

	t.Run("issues a signed token", func(t *testing.T) {
		token, err := service.GenerateToken("alice")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("empty author fails", func(t *testing.T) {
		_, err := service.GenerateToken("")
		assert.Error(t, err)
	})

	t.Run("tokens carry unique ids", func(t *testing.T) {
		first, err := service.GenerateToken("alice")
		require.NoError(t, err)
		second, err := service.GenerateToken("alice")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestValidateToken(t *testing.T) {
	service := createTestTokenService(t)

	t.Run("round trip restores the claims", func(t *testing.T) {
		token, err := service.GenerateToken("alice")
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)

		assert.Equal(t, "alice", claims.Author)
		assert.NotEmpty(t, claims.TokenID)
		assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
	})

	t.Run("garbage token fails", func(t *testing.T) {
		_, err := service.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("token signed with another key fails", func(t *testing.T) {
		other, err := NewTokenService(time.Hour, "deskquote", "another-secret-key-with-32-characters")
		require.NoError(t, err)

		token, err := other.GenerateToken("alice")
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("expired token fails", func(t *testing.T) {
		shortLived, err := NewTokenService(-time.Minute, "deskquote", testSecretKey)
		require.NoError(t, err)

		token, err := shortLived.GenerateToken("alice")
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("wrong issuer fails", func(t *testing.T) {
		other, err := NewTokenService(time.Hour, "someone-else", testSecretKey)
		require.NoError(t, err)

		token, err := other.GenerateToken("alice")
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}
