// Package kdf derives AES keys from user passphrases, mirroring the
// aes_create_salted_key/aes_get_salted_key pair from the underlying C++
// library this toolkit is modeled on: one call picks a fresh random salt
// and derives a key from it, the other re-derives the same key given the
// salt it produced.
package kdf

import (
	"encoding/hex"

	qerrors "github.com/anderwick/cryptoflip/internal/errors"
	"github.com/anderwick/cryptoflip/internal/constants"
	"github.com/anderwick/cryptoflip/pkg/primitive"
)

// CreateSaltedKey derives a new AES-256 key from passphrase under a freshly
// generated random salt. It returns the key as a hex string (matching the
// underlying library's convention of handing keys around as hex) alongside
// the raw salt, which the caller must persist to re-derive the same key
// later via GetSaltedKey.
func CreateSaltedKey(passphrase string) (keyHex string, salt [constants.SaltSize]byte, err error) {
	if len(passphrase) == 0 {
		return "", salt, qerrors.NewCryptoError("kdf.CreateSaltedKey", qerrors.ErrInvalidArgument)
	}

	saltBytes, err := primitive.SecureRandomBytes(constants.SaltSize)
	if err != nil {
		return "", salt, qerrors.NewCryptoError("kdf.CreateSaltedKey", err)
	}
	copy(salt[:], saltBytes)

	key := primitive.PBKDF2([]byte(passphrase), saltBytes, constants.PBKDF2Iterations, constants.DerivedKeySize)
	return hex.EncodeToString(key), salt, nil
}

// GetSaltedKey re-derives the key CreateSaltedKey produced, given the same
// passphrase and the salt returned alongside it. salt may be passed either
// as constants.SaltSize raw bytes or as its hex encoding.
func GetSaltedKey(passphrase string, salt []byte) (string, error) {
	if len(passphrase) == 0 {
		return "", qerrors.NewCryptoError("kdf.GetSaltedKey", qerrors.ErrInvalidArgument)
	}

	raw, err := decodeSalt(salt)
	if err != nil {
		return "", err
	}

	key := primitive.PBKDF2([]byte(passphrase), raw, constants.PBKDF2Iterations, constants.DerivedKeySize)
	return hex.EncodeToString(key), nil
}

// decodeSalt accepts a salt either as raw bytes or as its hex-encoded form
// and returns the raw bytes, rejecting anything that doesn't decode to
// exactly constants.SaltSize bytes.
func decodeSalt(salt []byte) ([]byte, error) {
	if len(salt) == constants.SaltSize {
		return salt, nil
	}
	if len(salt) == constants.SaltSize*2 {
		decoded, err := hex.DecodeString(string(salt))
		if err == nil && len(decoded) == constants.SaltSize {
			return decoded, nil
		}
	}
	return nil, qerrors.NewCryptoError("kdf.decodeSalt", qerrors.ErrInvalidSalt)
}
