package primitive

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"

	qerrors "github.com/anderwick/cryptoflip/internal/errors"
	"github.com/anderwick/cryptoflip/internal/constants"
)

// Ctx is an incremental AES-256-GCM context. Unlike crypto/cipher's AEAD
// interface, it does not require the whole plaintext or ciphertext up
// front: EncryptChunk or DecryptChunk may be called any number of times with
// chunks of arbitrary length, making it suitable for driving pkg/stream's
// chunk-at-a-time encryption and decryption.
//
// A Ctx is single-use: construct one with EncryptInit or DecryptInit per
// message, call SetAAD at most once before the first chunk, call
// EncryptChunk or DecryptChunk any number of times, then call EncryptFinal
// or DecryptFinal exactly once.
type Ctx struct {
	block   cipher.Block
	ghash   *ghash
	icb     [16]byte // initial counter block, J0
	counter [16]byte // current counter block, starts at J0+1
	tagMask [16]byte // E(K, J0), XORed into the raw GHASH tag at the end
	ks      [16]byte // most recent keystream block
	ksLeft  int      // unused bytes remaining at the end of ks
	aadLen  uint64
	ctLen   uint64
	aadDone bool // true once the AAD/ciphertext GHASH boundary has been flushed
}

// EncryptInit constructs a Ctx for encryption under key and nonce. key must
// be 32 bytes (AES-256) and nonce must be 12 bytes, the standard GCM nonce
// length.
func EncryptInit(key, nonce []byte) (*Ctx, error) {
	return newCtx(key, nonce)
}

// DecryptInit constructs a Ctx for decryption under key and nonce. The same
// validation and setup as EncryptInit applies; encryption and decryption
// contexts differ only in which of EncryptFinal/DecryptFinal is called.
func DecryptInit(key, nonce []byte) (*Ctx, error) {
	return newCtx(key, nonce)
}

func newCtx(key, nonce []byte) (*Ctx, error) {
	if len(key) != constants.KeySize {
		return nil, qerrors.NewCryptoError("primitive.Init", qerrors.ErrInvalidKeySize)
	}
	if len(nonce) != constants.NonceSize {
		return nil, qerrors.NewCryptoError("primitive.Init", qerrors.ErrInvalidNonce)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, qerrors.NewCryptoError("primitive.Init", err)
	}

	var h [16]byte
	block.Encrypt(h[:], h[:])

	var icb [16]byte
	copy(icb[:12], nonce)
	icb[15] = 1

	var tagMask [16]byte
	block.Encrypt(tagMask[:], icb[:])

	counter := icb
	incrementCounter(&counter)

	return &Ctx{
		block:   block,
		ghash:   newGHASH(h),
		icb:     icb,
		counter: counter,
		tagMask: tagMask,
	}, nil
}

// SetAAD authenticates aad as additional authenticated data. It must be
// called before the first call to EncryptChunk or DecryptChunk, if at all;
// aad itself is never
// encrypted and does not appear in the output.
func (c *Ctx) SetAAD(aad []byte) {
	c.ghash.Update(aad)
	c.aadLen = uint64(len(aad)) * 8
}

// flushAAD closes out the AAD span in the running GHASH value with zero
// padding, the boundary SP 800-38D draws between A and C. It runs exactly
// once per Ctx, lazily, on the first chunk or on finalTag if no chunk was
// ever processed (the empty-ciphertext case) — not eagerly inside
// SetAAD, since a Ctx with no ciphertext at all still needs the boundary
// flushed before the final lengths block is absorbed.
func (c *Ctx) flushAAD() {
	if !c.aadDone {
		c.ghash.flush()
		c.aadDone = true
	}
}

// encryptUpdate encrypts plaintext with the CTR keystream and folds the
// resulting ciphertext into the running GHASH value, returning a
// same-length output. decryptUpdate is its mirror: it folds the incoming
// ciphertext into GHASH before decrypting it, so GHASH sees ciphertext
// bytes in both directions.
func (c *Ctx) encryptUpdate(plaintext []byte) []byte {
	c.flushAAD()
	out := c.xorKeystream(plaintext)
	c.ghash.Update(out)
	c.ctLen += uint64(len(out)) * 8
	return out
}

func (c *Ctx) decryptUpdate(ciphertext []byte) []byte {
	c.flushAAD()
	c.ghash.Update(ciphertext)
	c.ctLen += uint64(len(ciphertext)) * 8
	return c.xorKeystream(ciphertext)
}

// EncryptChunk encrypts one chunk of plaintext, folding the resulting
// ciphertext into the running authentication tag computation. Chunks may
// have any length; the keystream position carries over between calls, so
// how a message is split into chunks does not change its ciphertext or tag.
func (c *Ctx) EncryptChunk(plaintext []byte) []byte {
	return c.encryptUpdate(plaintext)
}

// DecryptChunk decrypts one chunk of ciphertext, folding it into the
// running authentication tag computation.
func (c *Ctx) DecryptChunk(ciphertext []byte) []byte {
	return c.decryptUpdate(ciphertext)
}

// xorKeystream XORs in with successive CTR-mode keystream blocks, first
// using up whatever is left of the block the previous call started.
func (c *Ctx) xorKeystream(in []byte) []byte {
	out := make([]byte, len(in))
	i := 0
	for ; i < len(in) && c.ksLeft > 0; i++ {
		out[i] = in[i] ^ c.ks[16-c.ksLeft]
		c.ksLeft--
	}
	for i < len(in) {
		c.block.Encrypt(c.ks[:], c.counter[:])
		incrementCounter(&c.counter)
		n := 16
		if rem := len(in) - i; rem < n {
			n = rem
		}
		for j := 0; j < n; j++ {
			out[i+j] = in[i+j] ^ c.ks[j]
		}
		c.ksLeft = 16 - n
		i += n
	}
	return out
}

// incrementCounter increments the low 32 bits of the counter block, per the
// GCM specification's 32-bit counter wraparound behavior.
func incrementCounter(ctr *[16]byte) {
	c := binary.BigEndian.Uint32(ctr[12:16])
	c++
	binary.BigEndian.PutUint32(ctr[12:16], c)
}

// finalTag computes the authentication tag from the accumulated GHASH
// state, the AAD/ciphertext length block, and the tag mask.
func (c *Ctx) finalTag() [16]byte {
	c.flushAAD()
	c.ghash.flush()

	var lenBlock [16]byte
	binary.BigEndian.PutUint64(lenBlock[0:8], c.aadLen)
	binary.BigEndian.PutUint64(lenBlock[8:16], c.ctLen)
	c.ghash.Update(lenBlock[:])

	s := c.ghash.Sum()
	var tag [16]byte
	for i := 0; i < 16; i++ {
		tag[i] = s[i] ^ c.tagMask[i]
	}
	return tag
}

// EncryptFinal completes an encryption context and returns the
// authentication tag covering every byte passed to SetAAD and
// EncryptChunk. After EncryptFinal, the Ctx must not be reused.
func (c *Ctx) EncryptFinal() [16]byte {
	return c.finalTag()
}

// DecryptFinal completes a decryption context, comparing the computed tag
// against expected in constant time. It returns ErrAuthenticationFailed if
// they differ, meaning the ciphertext or AAD was modified or the wrong key
// was used — any plaintext already returned by DecryptChunk must be
// discarded by the caller in that case.
func (c *Ctx) DecryptFinal(expected [16]byte) error {
	got := c.finalTag()
	if !ConstantTimeCompare(got[:], expected[:]) {
		return qerrors.NewCryptoError("primitive.DecryptFinal", qerrors.ErrAuthenticationFailed)
	}
	return nil
}
