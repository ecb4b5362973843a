package errors

import (
	"errors"
	"fmt"
)

// Validation errors indicate malformed construction arguments. They are
// fatal: a document is never created from invalid input.
var (
	// ErrInvalidDirectory indicates the settings directory argument is unusable.
	ErrInvalidDirectory = errors.New("invalid settings directory")

	// ErrInvalidFileName indicates the settings file name argument is unusable.
	ErrInvalidFileName = errors.New("invalid settings file name")

	// ErrNotAStructPointer indicates a settings document was initialized with
	// something other than a pointer to a struct.
	ErrNotAStructPointer = errors.New("settings document must be a pointer to a struct")
)

// Authentication errors indicate password verification failures.
var (
	// ErrAuthenticationFailed indicates the supplied password does not match
	// the stored hash. Fatal at construction; never retried automatically.
	ErrAuthenticationFailed = errors.New("password does not match the stored hash")

	// ErrEmptyPassword indicates an empty password where one is required.
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrPasswordMismatch indicates a new password and its confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrLocked indicates an encrypt or decrypt was attempted without an
	// unlocked session.
	ErrLocked = errors.New("no password session is unlocked")
)

// Cryptographic errors indicate failures during encryption or decryption.
var (
	// ErrDecryptFailed indicates the ciphertext could not be authenticated
	// and decrypted, usually because the password is wrong.
	ErrDecryptFailed = errors.New("failed to decrypt value")

	// ErrMalformedCiphertext indicates the stored value is not a valid
	// encoded ciphertext.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")

	// ErrEncryptFailed indicates a value could not be encrypted.
	ErrEncryptFailed = errors.New("failed to encrypt value")
)

// Persistence errors indicate load or save failures.
var (
	// ErrConversionFailed indicates a stored value could not be converted to
	// its field's declared type. Caught per field; loading continues.
	ErrConversionFailed = errors.New("failed to convert stored value")

	// ErrSaveFailed indicates the settings file could not be written.
	ErrSaveFailed = errors.New("failed to save settings file")
)

// Profile errors indicate invalid key access from the command line.
var (
	// ErrUnknownKey indicates a settings key that no declared field matches.
	ErrUnknownKey = errors.New("unknown settings key")

	// ErrUnsupportedKey indicates a key whose field cannot be read or written
	// as a single command-line value.
	ErrUnsupportedKey = errors.New("settings key cannot be used from the command line")
)

// ParseError indicates a settings file exists but is not parseable
// structured text. This is fatal: the document never silently resets to
// defaults over a corrupted file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("settings file %s is not valid TOML: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
