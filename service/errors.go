// file: service/errors.go

package service

import "errors"

var (
	// ErrInvalidCredentials is returned on login when the username or
	// password is wrong. Callers must not be able to tell which.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken covers malformed or badly signed access tokens,
	// wrong issuer or audience, and refresh secrets that resolve to no
	// session.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpiredOrRevoked is returned when a refresh secret resolves
	// to a session that is past its validity window or already revoked.
	// The session is revoked defensively as a side effect.
	ErrTokenExpiredOrRevoked = errors.New("refresh token has expired or been revoked")
)
