package primitive

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("invalid hex %q: %v", s, err)
	}
	return b
}

// TestVectorsZeroKeyEmptyMessage exercises the all-zero-key, all-zero-IV,
// empty-plaintext case from the GCM specification (McGrew & Viega, "The
// Galois/Counter Mode of Operation", test case 13).
func TestVectorsZeroKeyEmptyMessage(t *testing.T) {
	key := make([]byte, 32)
	nonce := make([]byte, 12)
	wantTag := mustHex(t, "530f8afbc74536b9a963b4f1c4cb738b")

	ctx, err := EncryptInit(key, nonce)
	if err != nil {
		t.Fatalf("EncryptInit: %v", err)
	}
	tag := ctx.EncryptFinal()
	if !bytes.Equal(tag[:], wantTag) {
		t.Fatalf("tag = %x, want %x", tag, wantTag)
	}
}

// TestVectorsZeroKeyOneBlock exercises a one-block all-zero plaintext under
// an all-zero key and IV (test case 14 from the same specification).
func TestVectorsZeroKeyOneBlock(t *testing.T) {
	key := make([]byte, 32)
	nonce := make([]byte, 12)
	plaintext := make([]byte, 16)
	wantCiphertext := mustHex(t, "cea7403d4d606b6e074ec5d3baf39d18")
	wantTag := mustHex(t, "d0d1c8a799996bf0265b98b5d48ab919")

	ctx, err := EncryptInit(key, nonce)
	if err != nil {
		t.Fatalf("EncryptInit: %v", err)
	}
	ct := ctx.EncryptChunk(plaintext)
	tag := ctx.EncryptFinal()

	if !bytes.Equal(ct, wantCiphertext) {
		t.Fatalf("ciphertext = %x, want %x", ct, wantCiphertext)
	}
	if !bytes.Equal(tag[:], wantTag) {
		t.Fatalf("tag = %x, want %x", tag, wantTag)
	}

	dctx, err := DecryptInit(key, nonce)
	if err != nil {
		t.Fatalf("DecryptInit: %v", err)
	}
	pt := dctx.DecryptChunk(ct)
	if err := dctx.DecryptFinal(tag); err != nil {
		t.Fatalf("DecryptFinal: %v", err)
	}
	if !bytes.Equal(pt, plaintext) {
		t.Fatalf("plaintext = %x, want %x", pt, plaintext)
	}
}

// TestMatchesStandardLibraryGCMWithUnalignedAAD checks this package's
// incremental GHASH against crypto/cipher's stock GCM implementation — an
// independent, conformant reference — using AAD lengths that are not
// multiples of 16 bytes. GHASH pads AAD and ciphertext to the 16-byte
// boundary independently (SP 800-38D, section 6.4); a construction that
// instead concatenates AAD and ciphertext before padding agrees with the
// standard library only when len(AAD) happens to already be block-aligned,
// which the first three marker strings are not; the last two are the
// aligned edge cases.
func TestMatchesStandardLibraryGCMWithUnalignedAAD(t *testing.T) {
	markers := [][]byte{
		[]byte("v1"),               // 2 bytes
		[]byte("associated-data"),  // 15 bytes
		[]byte("integration"),      // 11 bytes
		[]byte(""),                 // 0 bytes, the aligned edge case
		bytes.Repeat([]byte{0}, 16), // exactly one block, also aligned
	}

	key := bytes.Repeat([]byte{0x42}, 32)
	nonce := bytes.Repeat([]byte{0x24}, 12)
	plaintext := []byte("a message whose length also isn't block aligned")

	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}
	refGCM, err := cipher.NewGCM(block)
	if err != nil {
		t.Fatalf("cipher.NewGCM: %v", err)
	}

	for _, aad := range markers {
		sealed := refGCM.Seal(nil, nonce, plaintext, aad)
		wantCiphertext := sealed[:len(sealed)-16]
		wantTag := sealed[len(sealed)-16:]

		ctx, err := EncryptInit(key, nonce)
		if err != nil {
			t.Fatalf("EncryptInit: %v", err)
		}
		if len(aad) > 0 {
			ctx.SetAAD(aad)
		}
		ct := ctx.EncryptChunk(plaintext)
		tag := ctx.EncryptFinal()

		if !bytes.Equal(ct, wantCiphertext) {
			t.Fatalf("aad=%q: ciphertext = %x, want %x", aad, ct, wantCiphertext)
		}
		if !bytes.Equal(tag[:], wantTag) {
			t.Fatalf("aad=%q: tag = %x, want %x", aad, tag, wantTag)
		}

		dctx, err := DecryptInit(key, nonce)
		if err != nil {
			t.Fatalf("DecryptInit: %v", err)
		}
		if len(aad) > 0 {
			dctx.SetAAD(aad)
		}
		pt := dctx.DecryptChunk(ct)
		if err := dctx.DecryptFinal(tag); err != nil {
			t.Fatalf("aad=%q: DecryptFinal: %v", aad, err)
		}
		if !bytes.Equal(pt, plaintext) {
			t.Fatalf("aad=%q: plaintext = %x, want %x", aad, pt, plaintext)
		}
	}
}

func TestRoundTripChunked(t *testing.T) {
	key, err := SecureRandomBytes(32)
	if err != nil {
		t.Fatalf("SecureRandomBytes: %v", err)
	}
	nonce, err := SecureRandomBytes(12)
	if err != nil {
		t.Fatalf("SecureRandomBytes: %v", err)
	}
	aad := []byte("associated-data")

	chunks := [][]byte{
		[]byte("the quick brown "),
		[]byte("fox jumps over t"),
		[]byte("he lazy dog"),
	}

	ectx, err := EncryptInit(key, nonce)
	if err != nil {
		t.Fatalf("EncryptInit: %v", err)
	}
	ectx.SetAAD(aad)

	var ciphertext []byte
	for _, c := range chunks {
		ciphertext = append(ciphertext, ectx.EncryptChunk(c)...)
	}
	tag := ectx.EncryptFinal()

	dctx, err := DecryptInit(key, nonce)
	if err != nil {
		t.Fatalf("DecryptInit: %v", err)
	}
	dctx.SetAAD(aad)

	// Decrypt with a different chunk boundary than encryption used, to
	// confirm the accumulator doesn't depend on matching chunk sizes.
	var plaintext []byte
	for _, n := range []int{7, 23, len(ciphertext) - 30} {
		if n <= 0 || n > len(ciphertext) {
			continue
		}
		plaintext = append(plaintext, dctx.DecryptChunk(ciphertext[:n])...)
		ciphertext = ciphertext[n:]
	}
	plaintext = append(plaintext, dctx.DecryptChunk(ciphertext)...)

	if err := dctx.DecryptFinal(tag); err != nil {
		t.Fatalf("DecryptFinal: %v", err)
	}

	var want []byte
	for _, c := range chunks {
		want = append(want, c...)
	}
	if !bytes.Equal(plaintext, want) {
		t.Fatalf("plaintext = %q, want %q", plaintext, want)
	}
}

func TestDecryptFinalRejectsTamperedCiphertext(t *testing.T) {
	key := make([]byte, 32)
	nonce := make([]byte, 12)

	ectx, _ := EncryptInit(key, nonce)
	ct := ectx.EncryptChunk([]byte("hello world"))
	tag := ectx.EncryptFinal()

	tampered := append([]byte(nil), ct...)
	tampered[0] ^= 0xff

	dctx, _ := DecryptInit(key, nonce)
	dctx.DecryptChunk(tampered)
	if err := dctx.DecryptFinal(tag); err == nil {
		t.Fatal("expected authentication failure on tampered ciphertext")
	}
}

func TestDecryptFinalRejectsTamperedAAD(t *testing.T) {
	key := make([]byte, 32)
	nonce := make([]byte, 12)

	ectx, _ := EncryptInit(key, nonce)
	ectx.SetAAD([]byte("original-aad"))
	ct := ectx.EncryptChunk([]byte("payload"))
	tag := ectx.EncryptFinal()

	dctx, _ := DecryptInit(key, nonce)
	dctx.SetAAD([]byte("tampered-aad"))
	dctx.DecryptChunk(ct)
	if err := dctx.DecryptFinal(tag); err == nil {
		t.Fatal("expected authentication failure on tampered AAD")
	}
}

func TestInitRejectsWrongSizes(t *testing.T) {
	if _, err := EncryptInit(make([]byte, 16), make([]byte, 12)); err == nil {
		t.Error("expected error for short key")
	}
	if _, err := EncryptInit(make([]byte, 32), make([]byte, 8)); err == nil {
		t.Error("expected error for short nonce")
	}
}
