package mocks

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/ideaflow-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing.
//
// Without function fields it issues readable tokens of the form
// "access:<user id>" and "refresh:<user id>" and validates them back, so
// handler tests can authenticate with MockJWTService.AccessTokenFor.
type MockJWTService struct {
	GenerateTokenFn        func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn        func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateRefreshTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

var _ auth.JWTService = (*MockJWTService)(nil)

// AccessTokenFor returns the access token the default mock accepts for userID.
func (m *MockJWTService) AccessTokenFor(userID uuid.UUID) string {
	return auth.TokenTypeAccess + ":" + userID.String()
}

// GenerateToken implements auth.JWTService.
func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	return m.AccessTokenFor(userID), nil
}

// ValidateToken implements auth.JWTService.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return parseMockToken(tokenString, auth.TokenTypeAccess, auth.ErrInvalidToken)
}

// GenerateRefreshToken implements auth.JWTService.
func (m *MockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateRefreshTokenFn != nil {
		return m.GenerateRefreshTokenFn(ctx, userID)
	}
	return auth.TokenTypeRefresh + ":" + userID.String(), nil
}

// ValidateRefreshToken implements auth.JWTService.
func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, tokenString)
	}
	return parseMockToken(tokenString, auth.TokenTypeRefresh, auth.ErrInvalidRefreshToken)
}

func parseMockToken(token, tokenType string, invalid error) (*auth.Claims, error) {
	kind, id, ok := strings.Cut(token, ":")
	if !ok {
		return nil, invalid
	}
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, invalid
	}
	if kind != tokenType {
		return nil, auth.ErrWrongTokenType
	}
	now := time.Now().UTC()
	return &auth.Claims{
		UserID:    userID,
		TokenType: kind,
		Subject:   userID.String(),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}, nil
}
