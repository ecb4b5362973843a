package settings

import (
	"fmt"

	terrors "github.com/PolarWolf314/totara/internal/errors"
	"github.com/PolarWolf314/totara/internal/secrets"
)

// gateState tracks whether a document needs, has, or will never need a
// password.
type gateState int

const (
	noEncryptionNeeded gateState = iota
	needPassword
	unlocked
)

// unlock obtains and validates the document password. It returns created
// = true when a brand-new password was set up interactively, in which
// case the caller must persist the document immediately so the hash is
// never lost.
func (d *Document) unlock(password string) (created bool, err error) {
	switch {
	case password != "" && d.passwordHash != "":
		if !secrets.VerifyPassword(password, d.passwordHash) {
			return false, fmt.Errorf("%w: %s", terrors.ErrAuthenticationFailed, d.fileName)
		}
		d.session = secrets.NewSession(password)

	case password != "":
		// First use with a programmatic password: accept as-is and remember
		// its hash for the next save.
		d.passwordHash = secrets.HashPassword(password)
		d.session = secrets.NewSession(password)

	case d.passwordHash != "":
		if err := d.promptExisting(); err != nil {
			return false, err
		}

	default:
		if err := d.promptCreate(); err != nil {
			return false, err
		}
		created = true
	}

	d.state = unlocked
	return created, nil
}

// promptExisting asks for the password until it verifies against the
// stored hash. There is no lockout, attempt limit, or timeout; only
// cancelling the prompt exits the loop.
func (d *Document) promptExisting() error {
	label := fmt.Sprintf("Password for %s: ", d.fileName)
	for {
		entry, err := d.prompter.ReadSecret(label)
		if err != nil {
			return err
		}
		if secrets.VerifyPassword(entry, d.passwordHash) {
			d.session = secrets.NewSession(entry)
			return nil
		}
		d.log.WarnfAlways("incorrect password for %s, try again", d.fileName)
	}
}

// promptCreate asks for a new password with mandatory confirmation. The
// entry must be non-empty and match its confirmation.
func (d *Document) promptCreate() error {
	for {
		entry, err := d.prompter.ReadSecret(fmt.Sprintf("New password for %s: ", d.fileName))
		if err != nil {
			return err
		}
		if entry == "" {
			d.log.WarnfAlways("%v", terrors.ErrEmptyPassword)
			continue
		}

		confirm, err := d.prompter.ReadSecret("Confirm password: ")
		if err != nil {
			return err
		}
		if confirm != entry {
			d.log.WarnfAlways("%v, try again", terrors.ErrPasswordMismatch)
			continue
		}

		d.passwordHash = secrets.HashPassword(entry)
		d.session = secrets.NewSession(entry)
		return nil
	}
}
