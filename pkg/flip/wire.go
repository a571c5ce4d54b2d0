package flip

import (
	"encoding/binary"

	qerrors "github.com/anderwick/cryptoflip/internal/errors"
	"github.com/anderwick/cryptoflip/internal/constants"
)

// record is the plaintext structure carried inside session data once its
// outer encryption layer has been removed: everything a decryptor needs to
// locate and authenticate the real ciphertext inside the cipher_data
// channel, except the instant key itself, which travels on its own
// channel.
type record struct {
	nonce       []byte // primitive.EncryptInit nonce for cipher_data
	tag         [constants.TagSize]byte
	marker      []byte
	garbagePre  uint32
	cipherLen   uint32
	garbagePost uint32
}

// encode serializes r per the session-data record layout:
// version(1) || nonce(12) || tag(16) || marker_len(2,BE) || marker ||
// garbage_pre(4,BE) || cipher_len(4,BE) || garbage_post(4,BE).
func (r *record) encode() []byte {
	size := 1 + constants.NonceSize + constants.TagSize + 2 + len(r.marker) + 4 + 4 + 4
	buf := make([]byte, size)
	i := 0

	buf[i] = constants.SessionDataVersion
	i++

	copy(buf[i:], r.nonce)
	i += constants.NonceSize

	copy(buf[i:], r.tag[:])
	i += constants.TagSize

	binary.BigEndian.PutUint16(buf[i:], uint16(len(r.marker)))
	i += 2

	copy(buf[i:], r.marker)
	i += len(r.marker)

	binary.BigEndian.PutUint32(buf[i:], r.garbagePre)
	i += 4

	binary.BigEndian.PutUint32(buf[i:], r.cipherLen)
	i += 4

	binary.BigEndian.PutUint32(buf[i:], r.garbagePost)
	i += 4

	return buf
}

// decodeRecord parses the layout encode produces, returning ErrMalformed if
// buf is too short, carries an unrecognized version byte, or its length
// fields are internally inconsistent.
func decodeRecord(buf []byte) (*record, error) {
	minSize := 1 + constants.NonceSize + constants.TagSize + 2
	if len(buf) < minSize {
		return nil, qerrors.NewCryptoError("flip.decodeRecord", qerrors.ErrMalformed)
	}

	i := 0
	version := buf[i]
	i++
	if version != constants.SessionDataVersion {
		return nil, qerrors.NewCryptoError("flip.decodeRecord", qerrors.ErrMalformed)
	}

	r := &record{}
	r.nonce = append([]byte(nil), buf[i:i+constants.NonceSize]...)
	i += constants.NonceSize

	copy(r.tag[:], buf[i:i+constants.TagSize])
	i += constants.TagSize

	markerLen := int(binary.BigEndian.Uint16(buf[i:]))
	i += 2

	if len(buf) < i+markerLen+12 {
		return nil, qerrors.NewCryptoError("flip.decodeRecord", qerrors.ErrMalformed)
	}
	r.marker = append([]byte(nil), buf[i:i+markerLen]...)
	i += markerLen

	r.garbagePre = binary.BigEndian.Uint32(buf[i:])
	i += 4
	r.cipherLen = binary.BigEndian.Uint32(buf[i:])
	i += 4
	r.garbagePost = binary.BigEndian.Uint32(buf[i:])
	i += 4

	if i != len(buf) {
		return nil, qerrors.NewCryptoError("flip.decodeRecord", qerrors.ErrMalformed)
	}

	return r, nil
}
