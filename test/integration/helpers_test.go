package integration

import (
	"encoding/hex"
	"errors"
)

var errBadRoundTrip = errors.New("integration: round-tripped plaintext did not match original")

func hexDecode(s string) ([]byte, error) {
	return hex.DecodeString(s)
}
