package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"golang.org/x/term"
)

// Terminal prompts on the controlling terminal. Reading from /dev/tty
// (CON on Windows) instead of stdin keeps prompts working when stdin is
// being used for piped data.
type Terminal struct{}

// NewTerminal returns a Prompter backed by the controlling terminal.
func NewTerminal() Terminal {
	return Terminal{}
}

func ttyPath() string {
	if runtime.GOOS == "windows" {
		return "CON"
	}
	return "/dev/tty"
}

// ReadLine prompts with label and reads one line of visible input.
func (Terminal) ReadLine(label string) (string, error) {
	tty, err := os.Open(ttyPath())
	if err != nil {
		return "", fmt.Errorf("%w: cannot open %s: %v", ErrAborted, ttyPath(), err)
	}
	defer tty.Close()

	fmt.Fprint(os.Stderr, label)
	line, err := bufio.NewReader(tty).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(os.Stderr)
			return "", ErrAborted
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// ReadSecret prompts with label and reads one line without echoing it.
func (Terminal) ReadSecret(label string) (string, error) {
	tty, err := os.Open(ttyPath())
	if err != nil {
		return "", fmt.Errorf("%w: cannot open %s: %v", ErrAborted, ttyPath(), err)
	}
	defer tty.Close()

	fd := int(tty.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("%w: %s is not a terminal", ErrAborted, ttyPath())
	}

	fmt.Fprint(os.Stderr, label)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	return string(secret), nil
}

// IsTTYAvailable returns true if the controlling terminal can be opened
// for prompting.
func IsTTYAvailable() bool {
	tty, err := os.Open(ttyPath())
	if err != nil {
		return false
	}
	defer tty.Close()

	return term.IsTerminal(int(tty.Fd()))
}
