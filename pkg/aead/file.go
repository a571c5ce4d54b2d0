package aead

import (
	"io"
	"os"
	"path/filepath"

	qerrors "github.com/anderwick/cryptoflip/internal/errors"
	"github.com/anderwick/cryptoflip/internal/constants"
	"github.com/anderwick/cryptoflip/pkg/primitive"
)

// fileNonce is the nonce used for every EncryptFile/DecryptFile call. The
// file variant never stores a nonce in the output — the file must stay
// exactly the same size as the input — so it relies on the caller
// supplying a single-use key per file, as pkg/kdf.CreateSaltedKey is meant
// to produce. A fixed nonce is sound only because the key must never be
// reused across two different files.
var fileNonce = make([]byte, constants.NonceSize)

// EncryptFile encrypts the file at path in place under key, authenticating
// marker as additional data. It streams the file through
// constants.FileChunkSize chunks using a pooled buffer, writes the
// ciphertext to a sibling temporary file, and renames it onto path only
// once the whole file has been read and encrypted successfully — so a
// failure partway through (a read error, a full disk) leaves the original
// file untouched. It returns the authentication tag, which the caller must
// keep to decrypt later. A zero-length file is rejected with
// ErrInvalidArgument.
func EncryptFile(path string, key, marker []byte) ([16]byte, error) {
	var zeroTag [16]byte
	if len(key) != constants.KeySize {
		return zeroTag, qerrors.NewCryptoError("aead.EncryptFile", qerrors.ErrInvalidKeySize)
	}

	in, err := os.Open(path)
	if err != nil {
		return zeroTag, qerrors.NewCryptoError("aead.EncryptFile", err)
	}
	defer in.Close()
	if info, err := in.Stat(); err == nil && info.Size() == 0 {
		return zeroTag, qerrors.NewCryptoError("aead.EncryptFile", qerrors.ErrInvalidArgument)
	}

	tmpPath, tmp, err := openSiblingTemp(path)
	if err != nil {
		return zeroTag, qerrors.NewCryptoError("aead.EncryptFile", err)
	}
	defer os.Remove(tmpPath)

	ctx, err := primitive.EncryptInit(key, fileNonce)
	if err != nil {
		tmp.Close()
		return zeroTag, qerrors.NewCryptoError("aead.EncryptFile", err)
	}
	if len(marker) > 0 {
		ctx.SetAAD(marker)
	}

	buf := globalChunkPool.get()
	defer globalChunkPool.put(buf)

	for {
		n, readErr := in.Read(buf)
		if n > 0 {
			out := ctx.EncryptChunk(buf[:n])
			if _, err := tmp.Write(out); err != nil {
				tmp.Close()
				return zeroTag, qerrors.NewCryptoError("aead.EncryptFile", qerrors.ErrIO)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			tmp.Close()
			return zeroTag, qerrors.NewCryptoError("aead.EncryptFile", qerrors.ErrIO)
		}
	}

	tag := ctx.EncryptFinal()

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return zeroTag, qerrors.NewCryptoError("aead.EncryptFile", qerrors.ErrIO)
	}
	if err := tmp.Close(); err != nil {
		return zeroTag, qerrors.NewCryptoError("aead.EncryptFile", qerrors.ErrIO)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return zeroTag, qerrors.NewCryptoError("aead.EncryptFile", qerrors.ErrIO)
	}
	return tag, nil
}

// DecryptFile reverses EncryptFile, verifying tag against the decrypted
// contents. On authentication failure the temporary file is discarded and
// path is left exactly as it was; only a verified decryption is renamed
// into place.
func DecryptFile(path string, key []byte, tag [16]byte, marker []byte) error {
	if len(key) != constants.KeySize {
		return qerrors.NewCryptoError("aead.DecryptFile", qerrors.ErrInvalidKeySize)
	}

	in, err := os.Open(path)
	if err != nil {
		return qerrors.NewCryptoError("aead.DecryptFile", err)
	}
	defer in.Close()

	tmpPath, tmp, err := openSiblingTemp(path)
	if err != nil {
		return qerrors.NewCryptoError("aead.DecryptFile", err)
	}
	defer os.Remove(tmpPath)

	ctx, err := primitive.DecryptInit(key, fileNonce)
	if err != nil {
		tmp.Close()
		return qerrors.NewCryptoError("aead.DecryptFile", err)
	}
	if len(marker) > 0 {
		ctx.SetAAD(marker)
	}

	buf := globalChunkPool.get()
	defer globalChunkPool.put(buf)

	for {
		n, readErr := in.Read(buf)
		if n > 0 {
			out := ctx.DecryptChunk(buf[:n])
			if _, err := tmp.Write(out); err != nil {
				tmp.Close()
				return qerrors.NewCryptoError("aead.DecryptFile", qerrors.ErrIO)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			tmp.Close()
			return qerrors.NewCryptoError("aead.DecryptFile", qerrors.ErrIO)
		}
	}

	verifyErr := ctx.DecryptFinal(tag)
	if verifyErr != nil {
		tmp.Close()
		return qerrors.NewCryptoError("aead.DecryptFile", qerrors.ErrAuthenticationFailed)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return qerrors.NewCryptoError("aead.DecryptFile", qerrors.ErrIO)
	}
	if err := tmp.Close(); err != nil {
		return qerrors.NewCryptoError("aead.DecryptFile", qerrors.ErrIO)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return qerrors.NewCryptoError("aead.DecryptFile", qerrors.ErrIO)
	}
	return nil
}

// openSiblingTemp creates a temporary file in the same directory as path,
// so the final rename is within a single filesystem and therefore atomic.
func openSiblingTemp(path string) (string, *os.File, error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", nil, err
	}
	return f.Name(), f, nil
}
