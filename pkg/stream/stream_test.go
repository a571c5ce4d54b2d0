package stream

import (
	"bytes"
	"testing"

	qerrors "github.com/anderwick/cryptoflip/internal/errors"
)

func TestStreamRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x11}, 32)
	marker := []byte("session-marker")

	enc := NewEncryptionStream(nil, nil)
	nonce, err := enc.Start(key, marker)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	parts := [][]byte{[]byte("first chunk "), []byte("second chunk "), []byte("third")}
	var ciphertext []byte
	for _, p := range parts {
		ct, err := enc.Encrypt(p)
		if err != nil {
			t.Fatalf("Encrypt: %v", err)
		}
		ciphertext = append(ciphertext, ct...)
	}
	tag, err := enc.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	dec := NewDecryptionStream(nil, nil)
	if err := dec.Start(key, marker, nonce); err != nil {
		t.Fatalf("decrypt Start: %v", err)
	}
	plaintext, err := dec.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if err := dec.Finalize(tag); err != nil {
		t.Fatalf("decrypt Finalize: %v", err)
	}

	var want []byte
	for _, p := range parts {
		want = append(want, p...)
	}
	if !bytes.Equal(plaintext, want) {
		t.Fatalf("plaintext = %q, want %q", plaintext, want)
	}
}

func TestStreamUsesDefaultsFromConstruction(t *testing.T) {
	key := bytes.Repeat([]byte{0x22}, 32)
	marker := []byte("default-marker")

	enc := NewEncryptionStream(key, marker)
	nonce, err := enc.Start(nil, nil)
	if err != nil {
		t.Fatalf("Start with defaults: %v", err)
	}
	ct, _ := enc.Encrypt([]byte("payload"))
	tag, _ := enc.Finalize()

	dec := NewDecryptionStream(key, marker)
	if err := dec.Start(nil, nil, nonce); err != nil {
		t.Fatalf("decrypt Start with defaults: %v", err)
	}
	pt, _ := dec.Decrypt(ct)
	if err := dec.Finalize(tag); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if string(pt) != "payload" {
		t.Fatalf("plaintext = %q, want %q", pt, "payload")
	}
}

func TestStreamRestartsAfterFinalize(t *testing.T) {
	key := bytes.Repeat([]byte{0x33}, 32)
	enc := NewEncryptionStream(key, nil)

	nonce1, _ := enc.Start(nil, nil)
	ct1, _ := enc.Encrypt([]byte("first session"))
	tag1, _ := enc.Finalize()

	nonce2, _ := enc.Start(nil, nil)
	ct2, _ := enc.Encrypt([]byte("second session"))
	tag2, _ := enc.Finalize()

	if bytes.Equal(nonce1, nonce2) {
		t.Fatal("two Start calls produced the same nonce")
	}

	dec := NewDecryptionStream(key, nil)
	if err := dec.Start(nil, nil, nonce2); err != nil {
		t.Fatalf("Start: %v", err)
	}
	pt2, _ := dec.Decrypt(ct2)
	if err := dec.Finalize(tag2); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if string(pt2) != "second session" {
		t.Fatalf("plaintext = %q, want %q", pt2, "second session")
	}

	_ = ct1
	_ = tag1
}

func TestEncryptBeforeStartFails(t *testing.T) {
	enc := NewEncryptionStream(nil, nil)
	if _, err := enc.Encrypt([]byte("x")); !qerrors.Is(err, qerrors.ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
}

func TestFinalizeBeforeStartFails(t *testing.T) {
	enc := NewEncryptionStream(nil, nil)
	if _, err := enc.Finalize(); !qerrors.Is(err, qerrors.ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
}

func TestStartWithoutKeyFails(t *testing.T) {
	enc := NewEncryptionStream(nil, nil)
	if _, err := enc.Start(nil, nil); !qerrors.Is(err, qerrors.ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
}

func TestDecryptStartWithoutNonceFails(t *testing.T) {
	key := bytes.Repeat([]byte{0x44}, 32)
	dec := NewDecryptionStream(key, nil)
	if err := dec.Start(nil, nil, nil); !qerrors.Is(err, qerrors.ErrMissingNonce) {
		t.Fatalf("expected ErrMissingNonce, got %v", err)
	}
}

func TestMismatchedMarkerFailsAuthentication(t *testing.T) {
	key := bytes.Repeat([]byte{0x55}, 32)

	enc := NewEncryptionStream(key, []byte("marker-a"))
	nonce, _ := enc.Start(nil, nil)
	ct, _ := enc.Encrypt([]byte("payload"))
	tag, _ := enc.Finalize()

	dec := NewDecryptionStream(key, []byte("marker-b"))
	if err := dec.Start(nil, nil, nonce); err != nil {
		t.Fatalf("Start: %v", err)
	}
	dec.Decrypt(ct)
	if err := dec.Finalize(tag); !qerrors.Is(err, qerrors.ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
}
