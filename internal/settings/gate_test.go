package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	terrors "github.com/PolarWolf314/totara/internal/errors"
	"github.com/PolarWolf314/totara/internal/prompt"
)

// scriptPrompter replays canned entries; once exhausted, it aborts like a
// user pressing Ctrl-D.
type scriptPrompter struct {
	secrets []string
	lines   []string
}

func (p *scriptPrompter) ReadSecret(label string) (string, error) {
	if len(p.secrets) == 0 {
		return "", prompt.ErrAborted
	}
	v := p.secrets[0]
	p.secrets = p.secrets[1:]
	return v, nil
}

func (p *scriptPrompter) ReadLine(label string) (string, error) {
	if len(p.lines) == 0 {
		return "", prompt.ErrAborted
	}
	v := p.lines[0]
	p.lines = p.lines[1:]
	return v, nil
}

// failPrompter fails the test on any interaction.
type failPrompter struct {
	t *testing.T
}

func (p failPrompter) ReadSecret(label string) (string, error) {
	p.t.Fatalf("unexpected password prompt: %s", label)
	return "", nil
}

func (p failPrompter) ReadLine(label string) (string, error) {
	p.t.Fatalf("unexpected prompt: %s", label)
	return "", nil
}

func TestNoEncryptionNeededNeverPrompts(t *testing.T) {
	tempDir := t.TempDir()

	s := &plainSettings{}
	err := Init(s, tempDir, "plain", WithPrompter(failPrompter{t}))
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if s.state != noEncryptionNeeded {
		t.Errorf("expected noEncryptionNeeded state, got %v", s.state)
	}

	// Save and a reload must not prompt either.
	s.Endpoint = "https://example.test"
	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// The file must not carry the reserved hash key.
	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if strings.Contains(string(data), "password_hash") {
		t.Error("file of a plain type must not contain a password hash")
	}
}

func TestCreatePasswordInteractively(t *testing.T) {
	tempDir := t.TempDir()

	// Empty entry, then mismatched confirmation, then success.
	p := &scriptPrompter{secrets: []string{
		"",
		"first", "typo",
		"p1", "p1",
	}}

	s := &apiSettings{Retries: 3}
	if err := Init(s, tempDir, "api", WithPrompter(p)); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if s.state != unlocked {
		t.Error("expected unlocked state after creating a password")
	}

	// Creating the first password saves immediately, before any other
	// field is populated: the file holds the hash and defaults only.
	data, err := os.ReadFile(filepath.Join(tempDir, "api.toml"))
	if err != nil {
		t.Fatalf("expected an immediate save, read failed: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "password_hash") {
		t.Error("file missing password hash after create")
	}
	if !strings.Contains(content, "retries = 3") {
		t.Error("file missing defaults after create")
	}
	if strings.Contains(content, "api_key") {
		t.Error("empty encrypted field should be absent from the file")
	}
}

func TestPromptLoopsUntilCorrectPassword(t *testing.T) {
	tempDir := t.TempDir()

	first := &apiSettings{}
	if err := Init(first, tempDir, "api", WithPassword("p1")); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	first.APIKey = "secret"
	if err := first.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Three wrong guesses, then the right one. No lockout, no limit.
	p := &scriptPrompter{secrets: []string{"nope", "still no", "p2", "p1"}}
	second := &apiSettings{}
	if err := Init(second, tempDir, "api", WithPrompter(p)); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if second.APIKey != "secret" {
		t.Errorf("expected decrypted api key, got %q", second.APIKey)
	}
	if len(p.secrets) != 0 {
		t.Errorf("expected all scripted entries consumed, %d left", len(p.secrets))
	}
}

func TestAbortedPromptFailsConstruction(t *testing.T) {
	tempDir := t.TempDir()

	s := &apiSettings{}
	err := Init(s, tempDir, "api", WithPrompter(&scriptPrompter{}))
	if !errors.Is(err, prompt.ErrAborted) {
		t.Errorf("expected ErrAborted, got %v", err)
	}
}

func TestProgrammaticWrongPassword(t *testing.T) {
	tempDir := t.TempDir()

	first := &apiSettings{}
	if err := Init(first, tempDir, "api", WithPassword("right")); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := first.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := &apiSettings{}
	err := Init(second, tempDir, "api", WithPassword("wrong"))
	if !errors.Is(err, terrors.ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestProgrammaticFirstUseAcceptsPassword(t *testing.T) {
	tempDir := t.TempDir()

	s := &apiSettings{}
	if err := Init(s, tempDir, "api", WithPassword("p1"), WithPrompter(failPrompter{t})); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if s.state != unlocked {
		t.Error("expected unlocked state on programmatic first use")
	}
	if s.passwordHash == "" {
		t.Error("expected the hash to be remembered for the next save")
	}
}
