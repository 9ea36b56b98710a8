// Package common defines shared constants and sentinel errors used across
// the client and server layers of PhoneSaver. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrStore           = errors.New("store error")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors. Wrap with field context, e.g.
	// fmt.Errorf("%w: phone: must be 10-15 digits", ErrValidation).
	ErrValidation = errors.New("validation error")

	// Crypto errors. ErrDecryptionFailed covers malformed, truncated, and
	// authentication-failed ciphertexts; it is never coerced into an empty
	// plaintext. ErrKeyUnavailable means the local key store is inaccessible
	// and encryption/decryption must not proceed.
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrKeyUnavailable   = errors.New("encryption key unavailable")

	// Token lifecycle errors.
	ErrInvalidToken        = errors.New("invalid token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
