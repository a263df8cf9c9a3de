package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/listkeep/listkeep-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	// Function fields for customizable behavior
	GenerateTokenFn        func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn        func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateRefreshTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Defaults returned when the function fields are nil
	Token        string
	RefreshToken string
	UserID       uuid.UUID
	Err          error
}

// Ensure MockJWTService implements auth.JWTService
var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements the JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if m.Token != "" {
		return m.Token, nil
	}
	return "mock-access-token", nil
}

// ValidateToken implements the JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &auth.Claims{
		UserID:    m.UserID,
		TokenType: auth.TokenTypeAccess,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

// GenerateRefreshToken implements the JWTService interface
func (m *MockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateRefreshTokenFn != nil {
		return m.GenerateRefreshTokenFn(ctx, userID)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if m.RefreshToken != "" {
		return m.RefreshToken, nil
	}
	return "mock-refresh-token", nil
}

// ValidateRefreshToken implements the JWTService interface
func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, tokenString)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &auth.Claims{
		UserID:    m.UserID,
		TokenType: auth.TokenTypeRefresh,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}, nil
}

// MockPasswordHasher implements auth.PasswordHasher and auth.PasswordVerifier
// with plaintext-equality semantics so tests can avoid bcrypt's cost.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	HashErr    error
	CompareErr error
}

// Ensure MockPasswordHasher satisfies both password interfaces
var (
	_ auth.PasswordHasher   = (*MockPasswordHasher)(nil)
	_ auth.PasswordVerifier = (*MockPasswordHasher)(nil)
)

// Hash implements the PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "hashed:" + password, nil
}

// Compare implements the PasswordVerifier interface
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.CompareErr != nil {
		return m.CompareErr
	}
	if hashedPassword != "hashed:"+password {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return nil
}

// MockGoogleVerifier implements auth.GoogleVerifier for testing
type MockGoogleVerifier struct {
	VerifyFn func(ctx context.Context, token string) (string, error)

	Email string
	Err   error
}

// Ensure MockGoogleVerifier implements auth.GoogleVerifier
var _ auth.GoogleVerifier = (*MockGoogleVerifier)(nil)

// Verify implements the GoogleVerifier interface
func (m *MockGoogleVerifier) Verify(ctx context.Context, token string) (string, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, token)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Email, nil
}
