package prompt

import "errors"

// ErrAborted indicates the user cancelled the prompt (EOF or an unusable
// terminal) rather than entering a value.
var ErrAborted = errors.New("prompt aborted")

// Prompter reads interactive input. ReadSecret must not echo the entered
// value. Both methods return ErrAborted when input is cancelled.
type Prompter interface {
	ReadLine(label string) (string, error)
	ReadSecret(label string) (string, error)
}
