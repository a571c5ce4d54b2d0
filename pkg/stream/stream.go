// Package stream provides a chunk-at-a-time AES-256-GCM engine, mirroring
// the aes_encryption_stream/aes_decryption_stream classes from the
// underlying C++ library: a caller calls Start once, then Encrypt or
// Decrypt any number of times as data arrives, then Finalize once to
// produce or verify the authentication tag. Unlike the one-shot helpers in
// pkg/aead, a stream never needs the complete message in memory.
package stream

import (
	qerrors "github.com/anderwick/cryptoflip/internal/errors"
	"github.com/anderwick/cryptoflip/internal/constants"
	"github.com/anderwick/cryptoflip/pkg/primitive"
)

// state tracks where a stream sits in its Idle -> Open -> Closed lifecycle.
// A stream may be restarted after Closed, returning to Open.
type state int

const (
	stateIdle state = iota
	stateOpen
	stateClosed
)

// EncryptionStream encrypts a message one chunk at a time. The zero value
// is not usable; construct one with NewEncryptionStream.
type EncryptionStream struct {
	defaultKey []byte
	defaultAAD []byte
	state      state
	ctx        *primitive.Ctx
}

// NewEncryptionStream constructs an EncryptionStream with a default key and
// default additional authenticated data. Either may be nil; Start then
// requires the missing value be supplied per-session instead.
func NewEncryptionStream(defaultKey, defaultAAD []byte) *EncryptionStream {
	return &EncryptionStream{
		defaultKey: defaultKey,
		defaultAAD: defaultAAD,
	}
}

// Start begins a new encryption session, generating a fresh random nonce
// and returning it so the caller can transmit it alongside the ciphertext.
// If key is nil, the stream's default key is used; if marker is nil, the
// stream's default AAD is used. Start may be called again after Finalize to
// begin a new session with the same EncryptionStream.
func (s *EncryptionStream) Start(key, marker []byte) ([]byte, error) {
	if key == nil {
		key = s.defaultKey
	}
	if key == nil {
		return nil, qerrors.NewCryptoError("stream.Start", qerrors.ErrMissingKey)
	}
	if marker == nil {
		marker = s.defaultAAD
	}

	nonce, err := primitive.SecureRandomBytes(constants.NonceSize)
	if err != nil {
		return nil, qerrors.NewCryptoError("stream.Start", err)
	}

	ctx, err := primitive.EncryptInit(key, nonce)
	if err != nil {
		return nil, qerrors.NewCryptoError("stream.Start", err)
	}
	if len(marker) > 0 {
		ctx.SetAAD(marker)
	}

	s.ctx = ctx
	s.state = stateOpen
	return nonce, nil
}

// Encrypt authenticates and encrypts chunk, returning ciphertext of the
// same length. Encrypt may be called any number of times between Start and
// Finalize; chunk boundaries carry no meaning to the underlying cipher.
func (s *EncryptionStream) Encrypt(chunk []byte) ([]byte, error) {
	if s.state != stateOpen {
		return nil, qerrors.NewCryptoError("stream.Encrypt", qerrors.ErrNotStarted)
	}
	return s.ctx.EncryptChunk(chunk), nil
}

// Finalize completes the session and returns the authentication tag
// covering every chunk passed to Encrypt since the matching Start. The
// stream moves to the closed state; Start may be called again to begin a
// new session.
func (s *EncryptionStream) Finalize() ([16]byte, error) {
	if s.state != stateOpen {
		return [16]byte{}, qerrors.NewCryptoError("stream.Finalize", qerrors.ErrNotStarted)
	}
	tag := s.ctx.EncryptFinal()
	s.ctx = nil
	s.state = stateClosed
	return tag, nil
}

// DecryptionStream decrypts a message one chunk at a time, mirroring
// EncryptionStream.
type DecryptionStream struct {
	defaultKey []byte
	defaultAAD []byte
	state      state
	ctx        *primitive.Ctx
}

// NewDecryptionStream constructs a DecryptionStream with a default key and
// default additional authenticated data, matching the semantics of
// NewEncryptionStream.
func NewDecryptionStream(defaultKey, defaultAAD []byte) *DecryptionStream {
	return &DecryptionStream{
		defaultKey: defaultKey,
		defaultAAD: defaultAAD,
	}
}

// Start begins a new decryption session using the nonce produced by the
// matching EncryptionStream.Start call. If key is nil, the stream's default
// key is used; if marker is nil, the stream's default AAD is used — both
// must match what the encrypting side used, or Finalize will report
// ErrAuthenticationFailed.
func (s *DecryptionStream) Start(key, marker, nonce []byte) error {
	if key == nil {
		key = s.defaultKey
	}
	if key == nil {
		return qerrors.NewCryptoError("stream.Start", qerrors.ErrMissingKey)
	}
	if marker == nil {
		marker = s.defaultAAD
	}
	if len(nonce) == 0 {
		return qerrors.NewCryptoError("stream.Start", qerrors.ErrMissingNonce)
	}

	ctx, err := primitive.DecryptInit(key, nonce)
	if err != nil {
		return qerrors.NewCryptoError("stream.Start", err)
	}
	if len(marker) > 0 {
		ctx.SetAAD(marker)
	}

	s.ctx = ctx
	s.state = stateOpen
	return nil
}

// Decrypt decrypts chunk, returning plaintext of the same length. The
// plaintext is tentative until Finalize succeeds: if the message has been
// tampered with, Finalize returns ErrAuthenticationFailed and the caller
// must discard everything Decrypt produced for this session.
func (s *DecryptionStream) Decrypt(chunk []byte) ([]byte, error) {
	if s.state != stateOpen {
		return nil, qerrors.NewCryptoError("stream.Decrypt", qerrors.ErrNotStarted)
	}
	return s.ctx.DecryptChunk(chunk), nil
}

// Finalize verifies expected against the tag computed from every chunk
// passed to Decrypt since the matching Start, returning
// ErrAuthenticationFailed on mismatch. The stream moves to the closed state
// regardless of the outcome; Start may be called again to begin a new
// session.
func (s *DecryptionStream) Finalize(expected [16]byte) error {
	if s.state != stateOpen {
		return qerrors.NewCryptoError("stream.Finalize", qerrors.ErrNotStarted)
	}
	err := s.ctx.DecryptFinal(expected)
	s.ctx = nil
	s.state = stateClosed
	if err != nil {
		return qerrors.NewCryptoError("stream.Finalize", err)
	}
	return nil
}
