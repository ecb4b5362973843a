package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExists(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "settings.toml")

	ok, err := Exists(testFile)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if ok {
		t.Error("Exists reported true for a missing file")
	}

	if err := WriteFile(testFile, []byte("retries = 3\n")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	ok, err = Exists(testFile)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !ok {
		t.Error("Exists reported false for an existing file")
	}

	// A directory at the path is an error, not "exists".
	if _, err := Exists(tempDir); err == nil {
		t.Error("Exists should fail when the path is a directory")
	}
}

func TestWriteAndReadFile(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "settings.toml")

	want := []byte("api_token = \"abc\"\n")
	if err := WriteFile(testFile, want); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := ReadFile(testFile)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("ReadFile got %q, want %q", got, want)
	}

	info, err := os.Stat(testFile)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %o", info.Mode().Perm())
	}
}

func TestEnsureDir(t *testing.T) {
	tempDir := t.TempDir()
	nested := filepath.Join(tempDir, "a", "b", "c")

	if err := EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}

	info, err := os.Stat(nested)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !info.IsDir() {
		t.Error("EnsureDir did not create a directory")
	}

	// Second call on an existing directory is a no-op.
	if err := EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir on existing dir failed: %v", err)
	}
}

func TestShred(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "secret.toml")

	if err := WriteFile(testFile, []byte("api_token = \"plaintext\"\n")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := Shred(testFile); err != nil {
		t.Fatalf("Shred failed: %v", err)
	}

	if _, err := os.Stat(testFile); !os.IsNotExist(err) {
		t.Error("shredded file still exists")
	}

	// Shredding a missing file is not an error.
	if err := Shred(testFile); err != nil {
		t.Errorf("Shred on missing file failed: %v", err)
	}
}

func TestShredDir(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "settings")

	if err := EnsureDir(filepath.Join(target, "nested")); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	if err := WriteFile(filepath.Join(target, "profile.toml"), []byte("a = 1\n")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := WriteFile(filepath.Join(target, "nested", "proxy.toml"), []byte("b = 2\n")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := ShredDir(target); err != nil {
		t.Fatalf("ShredDir failed: %v", err)
	}

	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("shredded directory still exists")
	}

	// Shredding a missing directory is not an error.
	if err := ShredDir(target); err != nil {
		t.Errorf("ShredDir on missing dir failed: %v", err)
	}
}
