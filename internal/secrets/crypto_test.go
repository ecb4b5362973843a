package secrets

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	terrors "github.com/PolarWolf314/totara/internal/errors"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
	}{
		{"simple value", "secret"},
		{"empty value", ""},
		{"unicode value", "pāssword with mācrons"},
		{"long value", strings.Repeat("0123456789", 200)},
		{"value resembling ciphertext", base64.StdEncoding.EncodeToString([]byte("not really"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ciphertext, err := Encrypt(tt.plaintext, "hunter2")
			if err != nil {
				t.Fatalf("Encrypt failed: %v", err)
			}
			if ciphertext == tt.plaintext && tt.plaintext != "" {
				t.Fatal("ciphertext equals plaintext")
			}

			plaintext, err := Decrypt(ciphertext, "hunter2")
			if err != nil {
				t.Fatalf("Decrypt failed: %v", err)
			}
			if plaintext != tt.plaintext {
				t.Errorf("round trip got %q, want %q", plaintext, tt.plaintext)
			}
		})
	}
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	first, err := Encrypt("same value", "pw")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	second, err := Encrypt("same value", "pw")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if first == second {
		t.Error("two encryptions of the same value produced identical ciphertext")
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	ciphertext, err := Encrypt("secret", "right")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	_, err = Decrypt(ciphertext, "wrong")
	if !errors.Is(err, terrors.ErrDecryptFailed) {
		t.Errorf("expected ErrDecryptFailed, got %v", err)
	}
}

func TestDecryptMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not base64", "not*base64!"},
		{"too short", base64.StdEncoding.EncodeToString([]byte("short"))},
		{"plain text", "just a plain value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.input, "pw")
			if !errors.Is(err, terrors.ErrMalformedCiphertext) {
				t.Errorf("expected ErrMalformedCiphertext, got %v", err)
			}
		})
	}
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	ciphertext, err := Encrypt("secret", "pw")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	raw[len(raw)-1] ^= 0xff
	tampered := base64.StdEncoding.EncodeToString(raw)

	if _, err := Decrypt(tampered, "pw"); !errors.Is(err, terrors.ErrDecryptFailed) {
		t.Errorf("expected ErrDecryptFailed for tampered input, got %v", err)
	}
}

func TestHashPasswordStable(t *testing.T) {
	first := HashPassword("p1")
	second := HashPassword("p1")
	if first != second {
		t.Error("HashPassword is not deterministic")
	}
	if first == HashPassword("p2") {
		t.Error("different passwords produced the same digest")
	}
	if first == "p1" {
		t.Error("digest equals the password")
	}
}

func TestVerifyPassword(t *testing.T) {
	digest := HashPassword("p1")

	if !VerifyPassword("p1", digest) {
		t.Error("correct password failed verification")
	}
	if VerifyPassword("p2", digest) {
		t.Error("wrong password passed verification")
	}
	if VerifyPassword("p1", "not-hex!") {
		t.Error("malformed digest passed verification")
	}
}

func TestSessionLifecycle(t *testing.T) {
	var nilSession *Session
	if nilSession.Unlocked() {
		t.Error("nil session reports unlocked")
	}

	s := NewSession("pw")
	if !s.Unlocked() {
		t.Error("fresh session reports locked")
	}

	ciphertext, err := s.Encrypt("value")
	if err != nil {
		t.Fatalf("session Encrypt failed: %v", err)
	}
	plaintext, err := s.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("session Decrypt failed: %v", err)
	}
	if plaintext != "value" {
		t.Errorf("session round trip got %q", plaintext)
	}

	s.Clear()
	if s.Unlocked() {
		t.Error("cleared session reports unlocked")
	}
}
