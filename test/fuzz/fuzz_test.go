// Package fuzz provides fuzz tests for the parsing and decryption paths
// that handle untrusted input: flip session-data records and one-shot
// AEAD blobs.
//
// Run fuzz tests with:
//
//	go test -fuzz=FuzzAEADDecrypt -fuzztime=30s ./test/fuzz/
//	go test -fuzz=FuzzFlipDecrypt -fuzztime=30s ./test/fuzz/
//	go test -fuzz=FuzzFlipDecryptWithGarbage -fuzztime=30s ./test/fuzz/
package fuzz

import (
	"testing"

	"github.com/anderwick/cryptoflip/pkg/aead"
	"github.com/anderwick/cryptoflip/pkg/flip"
)

// FuzzAEADDecrypt fuzzes the one-shot blob decoder/decryptor against
// arbitrary input, which is exactly the trust boundary a service
// accepting encrypted blobs from a network peer sits at.
func FuzzAEADDecrypt(f *testing.F) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	marker := []byte("fuzz-marker")

	validBlob, err := aead.Encrypt([]byte("fuzz seed plaintext"), key, marker)
	if err != nil {
		f.Fatalf("failed to build seed blob: %v", err)
	}
	f.Add(validBlob)

	f.Add([]byte{})
	f.Add(make([]byte, 16))
	f.Add(make([]byte, 31))
	f.Add(make([]byte, 32))

	f.Fuzz(func(t *testing.T, data []byte) {
		// Must never panic regardless of input shape.
		_, _ = aead.Decrypt(data, key, marker)
	})
}

// FuzzFlipDecrypt fuzzes flip.Decrypt's sessionData argument, the
// passphrase-encrypted record that carries the nonce, tag, marker, and
// garbage offsets — the most structurally complex untrusted input in the
// protocol.
func FuzzFlipDecrypt(f *testing.F) {
	passphrase := "fuzz passphrase"
	marker := []byte("fuzz-flip-marker")

	cipherData, sessionData, instantKey, err := flip.Encrypt([]byte("fuzz flip seed"), passphrase, marker, true)
	if err != nil {
		f.Fatalf("failed to build seed flip message: %v", err)
	}
	f.Add(sessionData)

	f.Add([]byte{})
	f.Add(make([]byte, 1))
	f.Add(make([]byte, 33))
	f.Add(make([]byte, 64))

	f.Fuzz(func(t *testing.T, session []byte) {
		_, _ = flip.Decrypt(cipherData, passphrase, session, marker, instantKey)
	})
}

// FuzzFlipDecryptWithGarbage fuzzes flip.Decrypt's cipherData argument
// given a validly shaped sessionData, exercising the garbage-offset
// bounds checks in extractCipherData against arbitrary ciphertext
// channel contents.
func FuzzFlipDecryptWithGarbage(f *testing.F) {
	passphrase := "fuzz passphrase two"
	marker := []byte("fuzz-flip-marker-two")

	cipherData, sessionData, instantKey, err := flip.Encrypt([]byte("fuzz flip seed two"), passphrase, marker, true)
	if err != nil {
		f.Fatalf("failed to build seed flip message: %v", err)
	}
	f.Add(cipherData)

	f.Add([]byte{})
	f.Add(make([]byte, 1))
	f.Add(make([]byte, 8))

	f.Fuzz(func(t *testing.T, cipher []byte) {
		_, _ = flip.Decrypt(cipher, passphrase, sessionData, marker, instantKey)
	})
}
