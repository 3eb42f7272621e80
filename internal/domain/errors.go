package domain

import "errors"

// Failure kinds for the protocol boundary. Every core operation either
// succeeds or fails with exactly one of these; callers match with
// errors.Is and map to their own transport errors.
var (
	// ErrValidation reports bad session-creation parameters.
	ErrValidation = errors.New("invalid parameters")

	// ErrNotFound reports an unknown session id.
	ErrNotFound = errors.New("session not found")

	// ErrInvalidState reports a phase run before its prerequisites held,
	// e.g. authenticate before enroll or operate before provision.
	ErrInvalidState = errors.New("invalid session state")

	// ErrAuthentication reports an AEAD tag verification failure:
	// tampered ciphertext or a wrong key. Never ignored.
	ErrAuthentication = errors.New("authentication failed")

	// ErrIntegrity reports a Diffie-Hellman shared-secret mismatch. With
	// correct group arithmetic this cannot happen; it aborts the key
	// exchange and never falls back to a default key.
	ErrIntegrity = errors.New("integrity violation")
)
