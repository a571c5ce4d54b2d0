// Package cryptoflip provides a streaming AES-256-GCM toolkit together
// with a three-channel "flip" transmission protocol for splitting an
// encrypted message across independent transports.
//
// Cryptoflip builds authenticated encryption directly on crypto/aes
// rather than crypto/cipher's GCM wrapper, so ciphertext can be produced
// and consumed a chunk at a time instead of requiring the whole message
// in memory. The same primitive backs one-shot blob encryption, in-place
// file encryption, and the flip protocol's per-channel payloads.
//
// # Quick Start
//
// One-shot encryption of a self-contained blob:
//
//	import "github.com/anderwick/cryptoflip/pkg/aead"
//
//	blob, err := aead.Encrypt(plaintext, key, marker)
//	plaintext, err := aead.Decrypt(blob, key, marker)
//
// Streaming a message in chunks without buffering the whole thing:
//
//	import "github.com/anderwick/cryptoflip/pkg/stream"
//
//	enc := stream.NewEncryptionStream(key, marker)
//	nonce, _ := enc.Start(nil, nil)
//	for chunk := range chunks {
//		ciphertext, _ := enc.Encrypt(chunk)
//		send(ciphertext)
//	}
//	tag, _ := enc.Finalize()
//
// Deriving a key from a passphrase:
//
//	import "github.com/anderwick/cryptoflip/pkg/kdf"
//
//	keyHex, salt, err := kdf.CreateSaltedKey(passphrase)
//	keyHex, err = kdf.GetSaltedKey(passphrase, salt[:])
//
// Splitting a message across three independent channels:
//
//	import "github.com/anderwick/cryptoflip/pkg/flip"
//
//	cipherData, sessionData, instantKey, err := flip.Encrypt(plaintext, passphrase, marker, true)
//	// send cipherData, sessionData, and instantKey over three separate transports
//	plaintext, err = flip.Decrypt(cipherData, passphrase, sessionData, marker, instantKey)
//
// # Package Structure
//
// The library is organized into several packages:
//
//   - pkg/primitive: the AES-256-GCM context (CTR keystream + incremental
//     GHASH), PBKDF2 key stretching, and constant-time comparison
//   - pkg/stream: the stateful EncryptionStream/DecryptionStream state
//     machine for chunk-at-a-time streaming AEAD
//   - pkg/aead: one-shot blob encryption and in-place file encryption
//     built on pkg/primitive
//   - pkg/kdf: passphrase-to-key derivation with per-call salts
//   - pkg/flip: the three-channel cipher_data/session_data/instant_key
//     transmission protocol
//   - pkg/metrics: counters, histograms, structured logging, and a
//     Prometheus/health HTTP surface for services embedding this toolkit
//   - internal/constants: key sizes, nonce sizes, and protocol constants
//   - internal/errors: sentinel errors and the CryptoError wrapping type
//
// # Security Properties
//
//   - Authenticated encryption: AES-256-GCM, 256-bit keys, 128-bit tags
//   - Streaming: chunk boundaries never affect the final ciphertext or tag
//   - Key derivation: PBKDF2-HMAC-SHA-512 with a fixed, protocol-stable
//     iteration count and a random salt per derivation
//   - Channel separation: the flip protocol never places both the nonce
//     and the ciphertext's decrypting key on the same channel
//
// # Testing
//
// The library includes unit tests alongside each package and integration
// tests covering the AEAD/flip round trip and file-replace semantics:
//
//	go test ./...
//	go test ./test/integration/...
//	go test -fuzz=FuzzFlipDecrypt ./test/fuzz/...
//
// # References
//
//   - NIST SP 800-38D: Galois/Counter Mode (GCM) and GMAC
//   - RFC 8018: PKCS #5 Password-Based Cryptography Specification (PBKDF2)
package cryptoflip
