package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

// ProfileSource resolves the profile a session token belongs to.
type ProfileSource interface {
	GetProfile(ctx context.Context) (*domain.UserProfile, error)
}

type TokenService struct {
	secretKey     []byte
	issuer        string
	tokenDuration time.Duration
	profiles      ProfileSource
}

func NewTokenService(secretKey string, issuer string, tokenDuration time.Duration, profiles ProfileSource) *TokenService {
	return &TokenService{
		secretKey:     []byte(secretKey),
		issuer:        issuer,
		tokenDuration: tokenDuration,
		profiles:      profiles,
	}
}

// IssueSession signs a token for the current profile.
func (s *TokenService) IssueSession(ctx context.Context) (string, *domain.UserProfile, error) {
	profile, err := s.profiles.GetProfile(ctx)
	if err != nil {
		return "", nil, err
	}
	token, err := s.GenerateToken(profile.ID)
	if err != nil {
		return "", nil, err
	}
	return token, profile, nil
}

func (s *TokenService) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": now.Add(s.tokenDuration).Unix(),
		"iat": now.Unix(),
		"iss": s.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("token service: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateToken checks signature, issuer and that the subject is still the
// stored profile. A cleared demo dataset invalidates outstanding tokens.
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}

	if iss, ok := claims["iss"].(string); !ok || iss != s.issuer {
		return "", fmt.Errorf("invalid token issuer")
	}

	userID, ok := claims["sub"].(string)
	if !ok {
		return "", fmt.Errorf("invalid token subject")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	profile, err := s.profiles.GetProfile(ctx)
	if err != nil {
		return "", fmt.Errorf("profile no longer exists: %w", err)
	}
	if profile.ID != userID {
		return "", fmt.Errorf("token subject does not match the active profile")
	}

	return userID, nil
}
