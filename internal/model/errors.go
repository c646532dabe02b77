package model

import "errors"

var (
	// Authentication errors, all surfaced as 401.
	ErrMissingToken       = errors.New("missing token")
	ErrMalformedToken     = errors.New("malformed token")
	ErrExpiredToken       = errors.New("expired token")
	ErrWrongTokenKind     = errors.New("wrong token kind")
	ErrRevokedToken       = errors.New("revoked token")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// User related errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Content related errors
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")

	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)

// IsAuthError reports whether err belongs to the authentication family.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrWrongTokenKind) ||
		errors.Is(err, ErrRevokedToken) ||
		errors.Is(err, ErrInvalidCredentials)
}
