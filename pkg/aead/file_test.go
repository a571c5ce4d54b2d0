package aead

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	qerrors "github.com/anderwick/cryptoflip/internal/errors"
	"github.com/anderwick/cryptoflip/internal/constants"
)

func writeTempFile(t *testing.T, contents []byte) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "payload.bin")
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestEncryptDecryptFileRoundTrip(t *testing.T) {
	key := testKey()
	marker := []byte("file-marker")
	original := bytes.Repeat([]byte("0123456789abcdef"), 5000) // spans multiple chunks
	path := writeTempFile(t, original)

	tag, err := EncryptFile(path, key, marker)
	if err != nil {
		t.Fatalf("EncryptFile: %v", err)
	}

	encrypted, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile after encrypt: %v", err)
	}
	if len(encrypted) != len(original) {
		t.Fatalf("encrypted file size = %d, want %d (same size as input)", len(encrypted), len(original))
	}
	if bytes.Equal(encrypted, original) {
		t.Fatal("file contents unchanged after EncryptFile")
	}

	if err := DecryptFile(path, key, tag, marker); err != nil {
		t.Fatalf("DecryptFile: %v", err)
	}

	decrypted, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile after decrypt: %v", err)
	}
	if !bytes.Equal(decrypted, original) {
		t.Fatal("decrypted file contents do not match original")
	}
}

func TestDecryptFileLeavesFileUntouchedOnFailure(t *testing.T) {
	key := testKey()
	original := []byte("small file contents")
	path := writeTempFile(t, original)

	tag, err := EncryptFile(path, key, nil)
	if err != nil {
		t.Fatalf("EncryptFile: %v", err)
	}

	encryptedContents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var wrongTag [16]byte
	copy(wrongTag[:], tag[:])
	wrongTag[0] ^= 0xff

	if err := DecryptFile(path, key, wrongTag, nil); !qerrors.Is(err, qerrors.ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}

	afterFailure, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile after failed decrypt: %v", err)
	}
	if !bytes.Equal(afterFailure, encryptedContents) {
		t.Fatal("file was modified despite a failed decrypt")
	}

	// Cleanup: no leftover temp files should remain in the directory.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 file in temp dir, found %d", len(entries))
	}
}

func TestEncryptFileRejectsBadKeySize(t *testing.T) {
	path := writeTempFile(t, []byte("data"))
	if _, err := EncryptFile(path, []byte("short"), nil); !qerrors.Is(err, qerrors.ErrInvalidKeySize) {
		t.Fatalf("expected ErrInvalidKeySize, got %v", err)
	}
}

func TestEncryptFileHandlesExactChunkBoundary(t *testing.T) {
	key := testKey()
	original := bytes.Repeat([]byte{0x5a}, constants.FileChunkSize*2)
	path := writeTempFile(t, original)

	tag, err := EncryptFile(path, key, nil)
	if err != nil {
		t.Fatalf("EncryptFile: %v", err)
	}
	if err := DecryptFile(path, key, tag, nil); err != nil {
		t.Fatalf("DecryptFile: %v", err)
	}

	decrypted, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(decrypted, original) {
		t.Fatal("decrypted contents do not match original at exact chunk boundary")
	}
}
