package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

type MockProfileSource struct {
	mock.Mock
}

func (m *MockProfileSource) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func TestTokenService_GenerateAndValidate(t *testing.T) {
	secret := "super-secret-key-for-testing"
	issuer := "kanso-test"
	userID := "demo-user"
	ctx := context.Background()

	setup := func() (*TokenService, *MockProfileSource) {
		profiles := new(MockProfileSource)
		return NewTokenService(secret, issuer, 1*time.Hour, profiles), profiles
	}

	t.Run("Success: Should issue and validate a demo session", func(t *testing.T) {
		service, profiles := setup()
		profiles.On("GetProfile", mock.Anything).Return(&domain.UserProfile{ID: userID, IsDemo: true}, nil)

		tokenString, profile, err := service.IssueSession(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, tokenString)
		assert.True(t, profile.IsDemo)

		extractedID, err := service.ValidateToken(ctx, tokenString)
		assert.NoError(t, err)
		assert.Equal(t, userID, extractedID)

		profiles.AssertExpectations(t)
	})

	t.Run("Fail: No session without a profile", func(t *testing.T) {
		service, profiles := setup()
		profiles.On("GetProfile", mock.Anything).Return(nil, domain.ErrProfileNotFound)

		_, _, err := service.IssueSession(ctx)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})

	t.Run("Fail: Should reject token once the demo data is cleared", func(t *testing.T) {
		service, profiles := setup()
		profiles.On("GetProfile", mock.Anything).Return(nil, domain.ErrProfileNotFound)

		tokenString, err := service.GenerateToken(userID)
		assert.NoError(t, err)

		extractedID, err := service.ValidateToken(ctx, tokenString)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "profile no longer exists")
		assert.Empty(t, extractedID)
	})

	t.Run("Fail: Should reject a token for another subject", func(t *testing.T) {
		service, profiles := setup()
		profiles.On("GetProfile", mock.Anything).Return(&domain.UserProfile{ID: userID}, nil)

		tokenString, err := service.GenerateToken("someone-else")
		require.NoError(t, err)

		_, err = service.ValidateToken(ctx, tokenString)
		assert.Error(t, err)
	})

	t.Run("Fail: Should reject expired token", func(t *testing.T) {
		service := NewTokenService(secret, issuer, -1*time.Second, new(MockProfileSource))

		tokenString, err := service.GenerateToken(userID)
		assert.NoError(t, err)

		extractedID, err := service.ValidateToken(ctx, tokenString)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "token is expired")
		assert.Empty(t, extractedID)
	})

	t.Run("Fail: Should reject token with wrong secret (Tampered)", func(t *testing.T) {
		service, _ := setup()
		tokenString, _ := service.GenerateToken(userID)

		attackerService := NewTokenService("wrong-key", issuer, 1*time.Hour, new(MockProfileSource))

		extractedID, err := attackerService.ValidateToken(ctx, tokenString)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid token")
		assert.Empty(t, extractedID)
	})

	t.Run("Fail: Should reject token with wrong issuer", func(t *testing.T) {
		profiles := new(MockProfileSource)
		serviceA := NewTokenService(secret, "correct-issuer", 1*time.Hour, profiles)
		tokenString, _ := serviceA.GenerateToken(userID)

		serviceB := NewTokenService(secret, "wrong-issuer", 1*time.Hour, profiles)

		extractedID, err := serviceB.ValidateToken(ctx, tokenString)
		assert.Error(t, err)
		assert.Equal(t, "invalid token issuer", err.Error())
		assert.Empty(t, extractedID)
	})

	t.Run("Fail: Should reject 'None' algorithm attack", func(t *testing.T) {
		token := jwt.New(jwt.SigningMethodNone)
		claims := token.Claims.(jwt.MapClaims)
		claims["sub"] = userID
		claims["iss"] = issuer

		fakeTokenString, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType)

		service, _ := setup()
		_, err := service.ValidateToken(ctx, fakeTokenString)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected signing method")
	})

	t.Run("Fail: Should reject malformed token string", func(t *testing.T) {
		service, _ := setup()

		extractedID, err := service.ValidateToken(ctx, "this-is-not-a-jwt")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid token")
		assert.Empty(t, extractedID)
	})
}
