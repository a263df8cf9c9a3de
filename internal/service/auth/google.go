package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleVerifier verifies Google sign-in ID tokens.
type GoogleVerifier interface {
	// Verify checks the given ID token against Google's public keys and the
	// configured client ID, returning the account's email address.
	// Returns ErrGoogleTokenInvalid when the token does not verify.
	Verify(ctx context.Context, token string) (email string, err error)
}

// GoogleIDTokenVerifier implements GoogleVerifier against Google's token
// endpoint.
type GoogleIDTokenVerifier struct {
	clientID string
}

// NewGoogleIDTokenVerifier creates a verifier expecting tokens issued for
// the given OAuth client ID.
func NewGoogleIDTokenVerifier(clientID string) *GoogleIDTokenVerifier {
	return &GoogleIDTokenVerifier{clientID: clientID}
}

// Ensure GoogleIDTokenVerifier implements GoogleVerifier
var _ GoogleVerifier = (*GoogleIDTokenVerifier)(nil)

// Verify implements GoogleVerifier.Verify.
func (v *GoogleIDTokenVerifier) Verify(ctx context.Context, token string) (string, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGoogleTokenInvalid, err)
	}

	email, ok := payload.Claims["email"].(string)
	if !ok || email == "" {
		return "", fmt.Errorf("%w: token carries no email claim", ErrGoogleTokenInvalid)
	}

	return email, nil
}
