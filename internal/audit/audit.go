package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// logName is the journal file, stored alongside the profile.
const logName = "audit.log"

// Entry represents a single journal entry.
type Entry struct {
	Timestamp string `json:"ts"`     // RFC3339 with microseconds.
	Device    string `json:"device"` // Device ID of the profile.
	Operation string `json:"op"`     // Operation name.

	// Optional fields depending on operation.
	Key  string `json:"key,omitempty"`  // For set.
	File string `json:"file,omitempty"` // For init/passwd.
}

// New returns an entry stamped with the current time.
func New(device, op string) Entry {
	return Entry{
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000000Z07:00"),
		Device:    device,
		Operation: op,
	}
}

// Log appends an entry to the journal under dir. Failures are swallowed:
// an operation should not fail just because its journal entry could not
// be written.
func Log(dir string, entry Entry) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	path := filepath.Join(dir, logName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data = append(data, '\n')
	_, _ = f.Write(data)
}

// Path returns the journal location under dir.
func Path(dir string) string {
	return filepath.Join(dir, logName)
}

// ReadEntries reads all entries from the journal under dir. A missing
// journal is an empty history, not an error.
func ReadEntries(dir string) ([]Entry, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}
	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into journal entries. Malformed
// lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	entries := []Entry{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}
