// Package aead provides self-contained, one-shot AES-256-GCM encryption
// for messages and files, layered on top of pkg/primitive. Where
// pkg/stream hands the caller a nonce and a tag to carry separately, this
// package bundles everything a decryptor needs into a single blob (or, for
// files, into the file itself plus a tag returned to the caller) — mirroring
// the aes_encrypt/aes_decrypt and aes_encrypt_file/aes_decrypt_file pairs
// from the underlying C++ library.
package aead

import (
	qerrors "github.com/anderwick/cryptoflip/internal/errors"
	"github.com/anderwick/cryptoflip/internal/constants"
	"github.com/anderwick/cryptoflip/pkg/primitive"
)

// blobOverhead is the fixed framing cost of the self-contained blob format:
// a zero-padded nonce field followed by the trailing tag.
const blobOverhead = constants.BlobNonceFieldSize + constants.TagSize

// Encrypt seals plaintext under key, authenticating marker as additional
// data, and returns a self-contained blob: a zero-padded nonce field,
// followed by the ciphertext, followed by the authentication tag. The blob
// is exactly what Decrypt expects back.
func Encrypt(plaintext, key, marker []byte) ([]byte, error) {
	if len(key) != constants.KeySize {
		return nil, qerrors.NewCryptoError("aead.Encrypt", qerrors.ErrInvalidKeySize)
	}

	nonce, err := primitive.SecureRandomBytes(constants.NonceSize)
	if err != nil {
		return nil, qerrors.NewCryptoError("aead.Encrypt", err)
	}

	ctx, err := primitive.EncryptInit(key, nonce)
	if err != nil {
		return nil, qerrors.NewCryptoError("aead.Encrypt", err)
	}
	if len(marker) > 0 {
		ctx.SetAAD(marker)
	}

	ciphertext := ctx.EncryptChunk(plaintext)
	tag := ctx.EncryptFinal()

	blob := make([]byte, blobOverhead+len(ciphertext))
	copy(blob[:constants.NonceSize], nonce)
	// blob[constants.NonceSize:constants.BlobNonceFieldSize] stays zero.
	copy(blob[constants.BlobNonceFieldSize:], ciphertext)
	copy(blob[constants.BlobNonceFieldSize+len(ciphertext):], tag[:])
	return blob, nil
}

// Decrypt opens a blob produced by Encrypt, verifying marker as additional
// data. It returns ErrAuthenticationFailed if the tag does not match, or
// ErrMalformed if blob is too short to have been produced by Encrypt.
func Decrypt(blob, key, marker []byte) ([]byte, error) {
	if len(key) != constants.KeySize {
		return nil, qerrors.NewCryptoError("aead.Decrypt", qerrors.ErrInvalidKeySize)
	}
	if len(blob) < blobOverhead {
		return nil, qerrors.NewCryptoError("aead.Decrypt", qerrors.ErrMalformed)
	}

	nonce := blob[:constants.NonceSize]
	ciphertext := blob[constants.BlobNonceFieldSize : len(blob)-constants.TagSize]
	var tag [constants.TagSize]byte
	copy(tag[:], blob[len(blob)-constants.TagSize:])

	ctx, err := primitive.DecryptInit(key, nonce)
	if err != nil {
		return nil, qerrors.NewCryptoError("aead.Decrypt", err)
	}
	if len(marker) > 0 {
		ctx.SetAAD(marker)
	}

	plaintext := ctx.DecryptChunk(ciphertext)
	if err := ctx.DecryptFinal(tag); err != nil {
		return nil, qerrors.NewCryptoError("aead.Decrypt", err)
	}
	return plaintext, nil
}

// CheckTagFunc computes an application-level tag from key and the blob's
// ciphertext bytes. EncryptWithCheckTag invokes it once, after encryption,
// over already-produced ciphertext — it never sees the plaintext and is
// never called more than once per blob, so it cannot be used to re-scan
// data the caller wants to avoid touching twice.
type CheckTagFunc func(key, cipher []byte) []byte

// EncryptWithCheckTag behaves like Encrypt — the returned blob still
// carries its own GCM tag internally — but additionally invokes tagFn on
// (key, ciphertext) and returns the result as a separate check tag. This
// lets a higher-level protocol bind the ciphertext to an application-level
// MAC (e.g. HMAC over a key the GCM layer never sees) without re-deriving
// or re-scanning the plaintext.
func EncryptWithCheckTag(plaintext, key, marker []byte, tagFn CheckTagFunc) (blob, checkTag []byte, err error) {
	blob, err = Encrypt(plaintext, key, marker)
	if err != nil {
		return nil, nil, err
	}
	checkTag = tagFn(key, blobCipher(blob))
	return blob, checkTag, nil
}

// DecryptWithCheckTag recomputes tagFn over blob's ciphertext and key,
// comparing the result against checkTag in constant time before decrypting
// and verifying blob's own GCM tag as Decrypt does. It returns
// ErrCheckTagMismatch if tagFn's output disagrees, distinct from
// ErrAuthenticationFailed for a bad GCM tag.
func DecryptWithCheckTag(blob, key, marker, checkTag []byte, tagFn CheckTagFunc) ([]byte, error) {
	if len(blob) < blobOverhead {
		return nil, qerrors.NewCryptoError("aead.DecryptWithCheckTag", qerrors.ErrMalformed)
	}
	if !primitive.ConstantTimeCompare(tagFn(key, blobCipher(blob)), checkTag) {
		return nil, qerrors.NewCryptoError("aead.DecryptWithCheckTag", qerrors.ErrCheckTagMismatch)
	}
	return Decrypt(blob, key, marker)
}

// blobCipher extracts the ciphertext span from a blob framed by Encrypt,
// the same slice CheckTagFunc is invoked over on both sides.
func blobCipher(blob []byte) []byte {
	return blob[constants.BlobNonceFieldSize : len(blob)-constants.TagSize]
}
