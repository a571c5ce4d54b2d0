// Package constants defines the fixed-width and protocol parameters shared
// by cryptoflip's packages. Every constant here is a protocol invariant:
// changing one of the "fixed across versions" values breaks wire
// compatibility with data produced by a previous build.
package constants

// Protocol identification.
const (
	// SessionDataVersion is the version byte embedded in flip session data.
	SessionDataVersion byte = 1
)

// Symmetric encryption parameters (AES-256-GCM).
const (
	// KeySize is the size of AES-256 keys in bytes.
	KeySize = 32

	// NonceSize is the size of the GCM nonce in bytes (96 bits).
	NonceSize = 12

	// TagSize is the size of the GCM authentication tag in bytes.
	TagSize = 16

	// BlobNonceFieldSize is the width of the nonce field in the
	// self-contained one-shot blob. It is wider than NonceSize so the
	// framing stays uniform even if a future nonce scheme needs more room;
	// the trailing bytes are zero on write and ignored on read.
	BlobNonceFieldSize = 16
)

// Key derivation parameters (PBKDF2-HMAC-SHA-512).
const (
	// SaltSize is the size of a PBKDF2 salt in bytes.
	SaltSize = 16

	// PBKDF2Iterations is the fixed iteration count baked into the
	// protocol. It must stay stable across versions: any data derived
	// under the old count cannot be reproduced under a new one.
	PBKDF2Iterations = 64000

	// DerivedKeySize is the output length of a passphrase-derived key.
	DerivedKeySize = KeySize
)

// File AEAD parameters.
const (
	// FileChunkSize is the buffer size used when streaming a file through
	// the AEAD engine.
	FileChunkSize = 64 * 1024
)

// Flip protocol parameters.
const (
	// GarbageMinSize is the minimum number of random padding bytes added
	// around the real ciphertext when add_garbage is requested.
	GarbageMinSize = 16

	// GarbageMaxSize is the maximum number of random padding bytes added
	// around the real ciphertext when add_garbage is requested.
	GarbageMaxSize = 255
)
