// Package flip implements the three-channel "flip" transmission protocol
// from the underlying C++ library: a message is split into cipher_data (the
// real ciphertext, optionally padded with random garbage), session_data (a
// passphrase-encrypted record carrying the nonce, tag, marker, and garbage
// offsets needed to make sense of cipher_data), and instant_key (a raw
// ephemeral AES-256 key). Each piece is meant to travel over an independent
// transport channel; an attacker who intercepts only one or two of the
// three channels learns nothing about the plaintext.
package flip

import (
	qerrors "github.com/anderwick/cryptoflip/internal/errors"
	"github.com/anderwick/cryptoflip/internal/constants"
	"github.com/anderwick/cryptoflip/pkg/aead"
	"github.com/anderwick/cryptoflip/pkg/primitive"
)

// Encrypt splits plaintext into the three flip channels. marker is
// authenticated alongside the real ciphertext and is embedded (in the
// clear, inside the passphrase-encrypted session data) so Decrypt can
// confirm the caller supplied the expected one. If addGarbage is true,
// cipherData is padded on both sides with a random amount of garbage in
// [constants.GarbageMinSize, constants.GarbageMaxSize] bytes, so the real
// ciphertext's length and position within cipherData are not obvious from
// its size alone.
func Encrypt(plaintext []byte, passphrase string, marker []byte, addGarbage bool) (cipherData, sessionData, instantKey []byte, err error) {
	if len(passphrase) == 0 {
		return nil, nil, nil, qerrors.NewCryptoError("flip.Encrypt", qerrors.ErrInvalidArgument)
	}

	instantKey, err = primitive.SecureRandomBytes(constants.KeySize)
	if err != nil {
		return nil, nil, nil, qerrors.NewCryptoError("flip.Encrypt", err)
	}

	nonce, err := primitive.SecureRandomBytes(constants.NonceSize)
	if err != nil {
		return nil, nil, nil, qerrors.NewCryptoError("flip.Encrypt", err)
	}

	ctx, err := primitive.EncryptInit(instantKey, nonce)
	if err != nil {
		return nil, nil, nil, qerrors.NewCryptoError("flip.Encrypt", err)
	}
	if len(marker) > 0 {
		ctx.SetAAD(marker)
	}
	rawCipher := ctx.EncryptChunk(plaintext)
	tag := ctx.EncryptFinal()

	var garbagePre, garbagePost uint32
	if addGarbage {
		garbagePre, err = randomGarbageLength()
		if err != nil {
			return nil, nil, nil, qerrors.NewCryptoError("flip.Encrypt", err)
		}
		garbagePost, err = randomGarbageLength()
		if err != nil {
			return nil, nil, nil, qerrors.NewCryptoError("flip.Encrypt", err)
		}
	}

	cipherData, err = assembleCipherData(garbagePre, rawCipher, garbagePost)
	if err != nil {
		return nil, nil, nil, qerrors.NewCryptoError("flip.Encrypt", err)
	}

	rec := &record{
		nonce:       nonce,
		tag:         tag,
		marker:      marker,
		garbagePre:  garbagePre,
		cipherLen:   uint32(len(rawCipher)),
		garbagePost: garbagePost,
	}

	sessionData, err = encodeSessionData(rec, passphrase)
	if err != nil {
		return nil, nil, nil, qerrors.NewCryptoError("flip.Encrypt", err)
	}

	return cipherData, sessionData, instantKey, nil
}

// Decrypt recombines the three flip channels back into the original
// plaintext. It returns ErrAuthenticationFailed if passphrase is wrong or
// sessionData was tampered with, ErrMarkerMismatch if marker does not match
// the one embedded at Encrypt time, and ErrMalformed if sessionData or
// cipherData is not shaped the way Encrypt produces it. A nil marker skips
// the marker comparison.
func Decrypt(cipherData []byte, passphrase string, sessionData []byte, marker []byte, instantKey []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, qerrors.NewCryptoError("flip.Decrypt", qerrors.ErrInvalidArgument)
	}
	if len(instantKey) != constants.KeySize {
		return nil, qerrors.NewCryptoError("flip.Decrypt", qerrors.ErrInvalidKeySize)
	}

	rec, err := decodeSessionData(sessionData, passphrase)
	if err != nil {
		return nil, err
	}

	if marker != nil && !primitive.ConstantTimeCompare(rec.marker, marker) {
		return nil, qerrors.NewCryptoError("flip.Decrypt", qerrors.ErrMarkerMismatch)
	}

	rawCipher, err := extractCipherData(cipherData, rec.garbagePre, rec.cipherLen, rec.garbagePost)
	if err != nil {
		return nil, err
	}

	ctx, err := primitive.DecryptInit(instantKey, rec.nonce)
	if err != nil {
		return nil, qerrors.NewCryptoError("flip.Decrypt", err)
	}
	if len(rec.marker) > 0 {
		ctx.SetAAD(rec.marker)
	}
	plaintext := ctx.DecryptChunk(rawCipher)
	if err := ctx.DecryptFinal(rec.tag); err != nil {
		return nil, qerrors.NewCryptoError("flip.Decrypt", qerrors.ErrAuthenticationFailed)
	}

	return plaintext, nil
}

// randomGarbageLength picks a uniform length in
// [constants.GarbageMinSize, constants.GarbageMaxSize] from random bytes,
// redrawing any byte at or above the largest multiple of the span so that
// every length is equally likely.
func randomGarbageLength() (uint32, error) {
	span := constants.GarbageMaxSize - constants.GarbageMinSize + 1
	limit := 256 - 256%span
	for {
		b, err := primitive.SecureRandomBytes(1)
		if err != nil {
			return 0, err
		}
		if int(b[0]) < limit {
			return uint32(int(b[0])%span + constants.GarbageMinSize), nil
		}
	}
}

// assembleCipherData builds the cipher_data channel contents: random
// garbage, the real ciphertext, more random garbage.
func assembleCipherData(garbagePre uint32, rawCipher []byte, garbagePost uint32) ([]byte, error) {
	pre, err := primitive.SecureRandomBytes(int(garbagePre))
	if err != nil {
		return nil, err
	}
	post, err := primitive.SecureRandomBytes(int(garbagePost))
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(pre)+len(rawCipher)+len(post))
	out = append(out, pre...)
	out = append(out, rawCipher...)
	out = append(out, post...)
	return out, nil
}

// extractCipherData recovers the real ciphertext from cipherData using the
// offsets recorded in the session-data record.
func extractCipherData(cipherData []byte, garbagePre, cipherLen, garbagePost uint32) ([]byte, error) {
	start := int(garbagePre)
	end := start + int(cipherLen)
	want := start + int(cipherLen) + int(garbagePost)
	if start < 0 || end < start || want != len(cipherData) || end > len(cipherData) {
		return nil, qerrors.NewCryptoError("flip.extractCipherData", qerrors.ErrMalformed)
	}
	return cipherData[start:end], nil
}

// encodeSessionData derives a fresh PBKDF2 salt, encrypts rec's wire
// encoding under the passphrase-derived key, and prepends the salt in the
// clear — a PBKDF2 salt carries no secrecy requirement, and the decryptor
// needs it before it can derive the key to decrypt anything else.
func encodeSessionData(rec *record, passphrase string) ([]byte, error) {
	salt, err := primitive.SecureRandomBytes(constants.SaltSize)
	if err != nil {
		return nil, err
	}
	key := primitive.PBKDF2([]byte(passphrase), salt, constants.PBKDF2Iterations, constants.DerivedKeySize)

	blob, err := aead.Encrypt(rec.encode(), key, nil)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(salt)+len(blob))
	out = append(out, salt...)
	out = append(out, blob...)
	return out, nil
}

// decodeSessionData reverses encodeSessionData.
func decodeSessionData(sessionData []byte, passphrase string) (*record, error) {
	if len(sessionData) < constants.SaltSize {
		return nil, qerrors.NewCryptoError("flip.decodeSessionData", qerrors.ErrMalformed)
	}
	salt := sessionData[:constants.SaltSize]
	blob := sessionData[constants.SaltSize:]

	key := primitive.PBKDF2([]byte(passphrase), salt, constants.PBKDF2Iterations, constants.DerivedKeySize)

	plain, err := aead.Decrypt(blob, key, nil)
	if qerrors.Is(err, qerrors.ErrMalformed) {
		return nil, qerrors.NewCryptoError("flip.decodeSessionData", qerrors.ErrMalformed)
	}
	if err != nil {
		return nil, qerrors.NewCryptoError("flip.decodeSessionData", qerrors.ErrAuthenticationFailed)
	}

	return decodeRecord(plain)
}
