// Package auth provides authentication services: JWT token management,
// password hashing/verification, and Google sign-in token verification.
package auth

import "errors"

// Authentication errors returned by the services in this package.
var (
	// ErrInvalidToken indicates the token is malformed, has a bad signature,
	// or otherwise fails validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates the token's expiry time has passed.
	ErrExpiredToken = errors.New("token expired")

	// ErrWrongTokenType indicates an access token was presented where a
	// refresh token was required, or vice versa.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrInvalidRefreshToken indicates the refresh token is malformed or
	// fails validation.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrExpiredRefreshToken indicates the refresh token's expiry time has passed.
	ErrExpiredRefreshToken = errors.New("refresh token expired")

	// ErrGoogleTokenInvalid indicates a Google ID token failed verification.
	ErrGoogleTokenInvalid = errors.New("invalid google ID token")
)
