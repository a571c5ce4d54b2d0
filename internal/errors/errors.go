// Package errors defines the tagged failure kinds used across cryptoflip.
// These provide detailed context for debugging while maintaining security
// by never embedding key material or plaintext in an error message.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for stream session state.
var (
	// ErrMissingKey indicates a stream was started with no key available,
	// neither a default from construction nor an override to Start.
	ErrMissingKey = errors.New("stream: missing key")

	// ErrMissingNonce indicates a decryption stream was started without
	// the nonce the matching encryption stream produced.
	ErrMissingNonce = errors.New("stream: missing nonce")

	// ErrNotStarted indicates Encrypt/Decrypt/Finalize was called on a
	// stream that is not in the Open state.
	ErrNotStarted = errors.New("stream: not started")
)

// Sentinel errors for AEAD operations.
var (
	// ErrAuthenticationFailed indicates a GCM tag or check-tag comparison
	// failed on decrypt.
	ErrAuthenticationFailed = errors.New("aead: authentication failed")

	// ErrInvalidKeySize indicates a raw key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.New("aead: invalid key size")

	// ErrInvalidNonce indicates the nonce size is incorrect.
	ErrInvalidNonce = errors.New("aead: invalid nonce size")

	// ErrCheckTagMismatch indicates an externally-supplied check-tag
	// function's recomputed output does not match the check tag handed to
	// DecryptWithCheckTag, distinct from a GCM tag failure.
	ErrCheckTagMismatch = errors.New("aead: check tag mismatch")
)

// Sentinel errors for key derivation.
var (
	// ErrInvalidSalt indicates a salt is not 16 bytes after decoding.
	ErrInvalidSalt = errors.New("kdf: invalid salt")

	// ErrInvalidArgument indicates an empty passphrase, a zero-length
	// file, or other malformed caller input.
	ErrInvalidArgument = errors.New("kdf: invalid argument")
)

// Sentinel errors for the flip protocol and wire framing.
var (
	// ErrMarkerMismatch indicates a flip decrypt's caller-supplied marker
	// disagrees with the marker embedded in the session data.
	ErrMarkerMismatch = errors.New("flip: marker mismatch")

	// ErrMalformed indicates a blob or session-data record is too short,
	// carries an unknown version byte, or has inconsistent length fields.
	ErrMalformed = errors.New("wire: malformed input")
)

// ErrIO indicates a file or CSPRNG read/write failure.
var ErrIO = errors.New("io: operation failed")

// CryptoError wraps a sentinel error with the operation that produced it.
type CryptoError struct {
	Op  string // Operation that failed
	Err error  // Underlying sentinel
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

// NewCryptoError wraps err with the operation name op.
func NewCryptoError(op string, err error) *CryptoError {
	return &CryptoError{Op: op, Err: err}
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
