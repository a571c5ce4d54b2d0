// Package primitive binds cryptoflip's operations directly to AES-256-GCM
// building blocks. Go's standard library only exposes GCM as a monolithic
// cipher.AEAD (Seal/Open on a complete message), but the streaming engine in
// pkg/stream needs to authenticate a message one chunk at a time as it
// arrives. Ctx drives crypto/aes.NewCipher directly and maintains its own
// CTR keystream position and GHASH accumulator so callers can feed it
// incrementally, matching the shape of the incremental AEAD construction in
// NIST SP 800-38D.
package primitive

import (
	"crypto/rand"
	"io"

	qerrors "github.com/anderwick/cryptoflip/internal/errors"
)

// SecureRandom reads cryptographically secure random bytes into b. It
// sources entropy from the OS CSPRNG via crypto/rand.
func SecureRandom(b []byte) error {
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return qerrors.NewCryptoError("SecureRandom", err)
	}
	return nil
}

// SecureRandomBytes returns n cryptographically secure random bytes.
func SecureRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if err := SecureRandom(b); err != nil {
		return nil, err
	}
	return b, nil
}

// MustSecureRandom reads cryptographically secure random bytes into b. It
// panics if the CSPRNG fails, which indicates the system is in a state
// where no cryptographic guarantee can be made.
func MustSecureRandom(b []byte) {
	if err := SecureRandom(b); err != nil {
		panic("primitive: failed to read from CSPRNG: " + err.Error())
	}
}

// Reader is an io.Reader returning cryptographically secure random bytes.
var Reader = rand.Reader

// ConstantTimeCompare reports whether a and b are equal without leaking
// timing information about the position of the first differing byte. Use
// this for any comparison involving a GCM tag, a check-tag, or key
// material.
func ConstantTimeCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var result byte
	for i := range a {
		result |= a[i] ^ b[i]
	}
	return result == 0
}

// Zeroize overwrites b with zeros. Call this on key material and derived
// secrets once they are no longer needed.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ZeroizeMultiple zeroizes every slice passed to it.
func ZeroizeMultiple(slices ...[]byte) {
	for _, s := range slices {
		Zeroize(s)
	}
}
