// Package prompt provides interactive line and password reading for the
// settings engine.
//
// The Prompter interface is the only thing the engine depends on; the
// Terminal implementation reads from the controlling terminal (/dev/tty,
// or CON on Windows) so that stdin remains free for piped input.
// ReadSecret masks input using the terminal's no-echo mode.
//
// Cancellation (EOF, closed TTY) is reported as ErrAborted, distinct from
// an entered value, so callers can tell "user gave up" apart from "user
// entered an empty string".
package prompt
