package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	terrors "github.com/PolarWolf314/totara/internal/errors"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/pbkdf2"
)

const (
	keyIterations = 4096
	keySize       = 32
	nonceSize     = 24
)

// deriveKey derives a fixed-length secretbox key from the password.
// The password doubles as the salt; see the package documentation for the
// trade-off this makes.
func deriveKey(password string) [keySize]byte {
	var key [keySize]byte
	raw := pbkdf2.Key([]byte(password), []byte(password), keyIterations, keySize, sha256.New)
	copy(key[:], raw)
	return key
}

// Encrypt encrypts plaintext under the password and returns the result as
// base64(nonce ‖ ciphertext). A fresh random nonce is used per call.
func Encrypt(plaintext, password string) (string, error) {
	key := deriveKey(password)

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("%w: %v", terrors.ErrEncryptFailed, err)
	}

	box := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &key)
	return base64.StdEncoding.EncodeToString(box), nil
}

// Decrypt reverses Encrypt. It fails with ErrMalformedCiphertext when the
// input is not a valid encoded blob, and with ErrDecryptFailed when
// authentication fails (wrong password or tampered data).
func Decrypt(ciphertext, password string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", terrors.ErrMalformedCiphertext, err)
	}
	if len(raw) < nonceSize+secretbox.Overhead {
		return "", fmt.Errorf("%w: %d bytes is too short", terrors.ErrMalformedCiphertext, len(raw))
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	key := deriveKey(password)
	plaintext, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &key)
	if !ok {
		return "", terrors.ErrDecryptFailed
	}

	return string(plaintext), nil
}
