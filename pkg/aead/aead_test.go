package aead

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"testing"

	qerrors "github.com/anderwick/cryptoflip/internal/errors"
)

// hmacCheckTag is a CheckTagFunc an application layer might plug in: an
// HMAC over the ciphertext keyed with the GCM key itself, bound to
// the blob but computed by a mechanism the GCM layer knows nothing about.
func hmacCheckTag(key, cipher []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(cipher)
	return mac.Sum(nil)
}

func testKey() []byte {
	return bytes.Repeat([]byte{0x77}, 32)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := testKey()
	marker := []byte("blob-marker")
	plaintext := []byte("a self-contained message")

	blob, err := Encrypt(plaintext, key, marker)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	got, err := Decrypt(blob, key, marker)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("plaintext = %q, want %q", got, plaintext)
	}
}

func TestDecryptDetectsTampering(t *testing.T) {
	key := testKey()
	blob, _ := Encrypt([]byte("payload"), key, nil)
	blob[len(blob)-1] ^= 0xff

	if _, err := Decrypt(blob, key, nil); !qerrors.Is(err, qerrors.ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestDecryptRejectsShortBlob(t *testing.T) {
	key := testKey()
	if _, err := Decrypt([]byte("too short"), key, nil); !qerrors.Is(err, qerrors.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestEncryptRejectsBadKeySize(t *testing.T) {
	if _, err := Encrypt([]byte("x"), []byte("short"), nil); !qerrors.Is(err, qerrors.ErrInvalidKeySize) {
		t.Fatalf("expected ErrInvalidKeySize, got %v", err)
	}
}

func TestCheckTagRoundTrip(t *testing.T) {
	key := testKey()
	plaintext := []byte("the real payload")

	blob, checkTag, err := EncryptWithCheckTag(plaintext, key, nil, hmacCheckTag)
	if err != nil {
		t.Fatalf("EncryptWithCheckTag: %v", err)
	}

	got, err := DecryptWithCheckTag(blob, key, nil, checkTag, hmacCheckTag)
	if err != nil {
		t.Fatalf("DecryptWithCheckTag: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("plaintext = %q, want %q", got, plaintext)
	}
}

func TestCheckTagMismatchRejected(t *testing.T) {
	key := testKey()
	blob, checkTag, err := EncryptWithCheckTag([]byte("payload"), key, nil, hmacCheckTag)
	if err != nil {
		t.Fatalf("EncryptWithCheckTag: %v", err)
	}
	wrongTag := append([]byte(nil), checkTag...)
	wrongTag[0] ^= 0xff

	if _, err := DecryptWithCheckTag(blob, key, nil, wrongTag, hmacCheckTag); !qerrors.Is(err, qerrors.ErrCheckTagMismatch) {
		t.Fatalf("expected ErrCheckTagMismatch, got %v", err)
	}
}

func TestCheckTagFuncNeverSeesPlaintext(t *testing.T) {
	key := testKey()
	plaintext := []byte("secret contents the tag function must not see")

	var capturedCipher []byte
	spy := func(key, cipher []byte) []byte {
		capturedCipher = append([]byte(nil), cipher...)
		return hmacCheckTag(key, cipher)
	}

	if _, _, err := EncryptWithCheckTag(plaintext, key, nil, spy); err != nil {
		t.Fatalf("EncryptWithCheckTag: %v", err)
	}
	if bytes.Contains(capturedCipher, plaintext) {
		t.Fatal("tag function observed plaintext instead of ciphertext")
	}
}

func TestMarkerMismatchFailsAuthentication(t *testing.T) {
	key := testKey()
	blob, _ := Encrypt([]byte("payload"), key, []byte("marker-a"))
	if _, err := Decrypt(blob, key, []byte("marker-b")); !qerrors.Is(err, qerrors.ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestEncryptProducesUniqueNonces(t *testing.T) {
	key := testKey()
	b1, _ := Encrypt([]byte("same plaintext"), key, nil)
	b2, _ := Encrypt([]byte("same plaintext"), key, nil)
	if bytes.Equal(b1[:12], b2[:12]) {
		t.Fatal("two Encrypt calls produced the same nonce")
	}
}
