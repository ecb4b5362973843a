package cmd

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// executeCommand runs the root command with args and captures stdout.
func executeCommand(t *testing.T, args ...string) string {
	t.Helper()
	ResetGlobalState()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	old := os.Stdout
	os.Stdout = w

	RootCmd.SetArgs(args)
	execErr := RootCmd.Execute()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}
	if execErr != nil {
		t.Fatalf("command %v failed: %v", args, execErr)
	}
	return buf.String()
}

func TestSetThenGet(t *testing.T) {
	tempDir := t.TempDir()

	executeCommand(t, "set", "api_token", "tok-123", "--dir", tempDir, "--password", "pw")

	out := executeCommand(t, "get", "api_token", "--dir", tempDir, "--password", "pw")
	if !strings.Contains(out, "tok-123") {
		t.Errorf("get output = %q, want the stored token", out)
	}
}

func TestShowMasksSecrets(t *testing.T) {
	tempDir := t.TempDir()

	executeCommand(t, "set", "api_token", "tok-123", "--dir", tempDir, "--password", "pw")

	out := executeCommand(t, "show", "--dir", tempDir, "--password", "pw")
	if strings.Contains(out, "tok-123") {
		t.Error("show must mask encrypted values by default")
	}
	if !strings.Contains(out, "encrypted") {
		t.Errorf("show output = %q, want a mask marker", out)
	}

	revealed := executeCommand(t, "show", "--reveal", "--dir", tempDir, "--password", "pw")
	if !strings.Contains(revealed, "tok-123") {
		t.Error("show --reveal must print the plaintext")
	}
}

func TestLogRecordsChanges(t *testing.T) {
	tempDir := t.TempDir()

	executeCommand(t, "set", "endpoint", "https://x.test", "--dir", tempDir, "--password", "pw")

	out := executeCommand(t, "log", "--json", "--dir", tempDir)
	if !strings.Contains(out, `"op": "set"`) || !strings.Contains(out, "endpoint") {
		t.Errorf("journal output = %q, want a set entry for endpoint", out)
	}
	// Values never reach the journal.
	if strings.Contains(out, "x.test") {
		t.Error("journal must not record values")
	}
}

func TestInitCreatesProfile(t *testing.T) {
	tempDir := t.TempDir()

	out := executeCommand(t, "init", "--dir", tempDir, "--password", "pw")
	if !strings.Contains(out, "Profile ready") {
		t.Errorf("init output = %q", out)
	}
	if _, err := os.Stat(tempDir + "/profile.toml"); err != nil {
		t.Errorf("profile file missing: %v", err)
	}
}
