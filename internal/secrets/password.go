package secrets

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// hashSalt separates the verification digest from the encryption key
// derivation. Changing it invalidates every stored password hash.
var hashSalt = []byte("totara/password-hash/v1")

// HashPassword returns a stable hex-encoded digest of the password,
// suitable for persisting. It is one-way and is never used as an
// encryption key.
func HashPassword(password string) string {
	sum := pbkdf2.Key([]byte(password), hashSalt, keyIterations, keySize, sha256.New)
	return hex.EncodeToString(sum)
}

// VerifyPassword reports whether the password matches a digest produced by
// HashPassword. The comparison is constant-time.
func VerifyPassword(password, digest string) bool {
	want, err := hex.DecodeString(digest)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(password), hashSalt, keyIterations, keySize, sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
