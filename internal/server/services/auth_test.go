package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/logging"
	"github.com/dmitrijs2005/wastecms/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededAuth(t *testing.T) *AuthService {
	t.Helper()
	fastBcrypt(t)
	s := NewAuthService(nil, repomanager.NewMemoryRepositoryManager(), logging.Discard(), "test-secret", time.Hour)
	require.NoError(t, s.SeedAdmin(context.Background(), " Admin@Example.com ", "s3cret"))
	return s
}

func TestAuthService_Login(t *testing.T) {
	s := seededAuth(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"ok", "admin@example.com", "s3cret", nil},
		{"email is case-insensitive", "ADMIN@example.com", "s3cret", nil},
		{"wrong password", "admin@example.com", "nope", common.ErrorUnauthorized},
		{"unknown email", "someone@example.com", "s3cret", common.ErrorUnauthorized},
		{"blank email", "  ", "s3cret", common.ErrorValidation},
		{"blank password", "admin@example.com", "", common.ErrorValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := s.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	s := seededAuth(t)

	token, err := s.Login(context.Background(), "admin@example.com", "s3cret")
	require.NoError(t, err)

	id, err := s.Authenticate(token)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = s.Authenticate("garbage")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	require.ErrorIs(t, err, common.ErrInvalidToken)

	other := NewAuthService(nil, repomanager.NewMemoryRepositoryManager(), logging.Discard(), "other-secret", time.Hour)
	_, err = other.Authenticate(token)
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestAuthService_SeedAdmin_ResetsPassword(t *testing.T) {
	s := seededAuth(t)
	ctx := context.Background()

	first, err := s.Login(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)
	firstID, err := s.Authenticate(first)
	require.NoError(t, err)

	require.NoError(t, s.SeedAdmin(ctx, "admin@example.com", "changed"))

	_, err = s.Login(ctx, "admin@example.com", "s3cret")
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	second, err := s.Login(ctx, "admin@example.com", "changed")
	require.NoError(t, err)
	secondID, err := s.Authenticate(second)
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)
}

func TestAuthService_SeedAdmin_RequiresEmail(t *testing.T) {
	fastBcrypt(t)
	s := NewAuthService(nil, repomanager.NewMemoryRepositoryManager(), logging.Discard(), "k", time.Hour)
	require.ErrorIs(t, s.SeedAdmin(context.Background(), " ", "pw"), common.ErrorValidation)
}
