package primitive

import (
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 derives outLen bytes of key material from passphrase and salt
// using PBKDF2-HMAC-SHA-512 with iters rounds. Callers in pkg/kdf fix iters
// at constants.PBKDF2Iterations; this function takes it as a parameter so
// tests can exercise the derivation at a cheap iteration count.
func PBKDF2(passphrase, salt []byte, iters, outLen int) []byte {
	return pbkdf2.Key(passphrase, salt, iters, outLen, sha512.New)
}
