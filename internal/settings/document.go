package settings

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	terrors "github.com/PolarWolf314/totara/internal/errors"
	logger "github.com/PolarWolf314/totara/internal/logging"
	"github.com/PolarWolf314/totara/internal/prompt"
	"github.com/PolarWolf314/totara/internal/secrets"
	"github.com/PolarWolf314/totara/internal/store"
)

// settingsSuffix is the conventional suffix settings file names are
// normalized to.
const settingsSuffix = ".toml"

// Persistable is the capability satisfied by every settings type, by
// virtue of embedding Document. The walker dispatches on it to find
// nested settings documents, instead of guessing from structure.
type Persistable interface {
	Save() error
	document() *Document
}

// Document is the embeddable base of a settings type. It is identified by
// its (directory, file name) pair and owns the password session and the
// persisted password hash.
//
// A document belongs to a single owning goroutine; the internal mutex only
// guards against overlapping Save/Load calls, not concurrent field access.
type Document struct {
	mu sync.Mutex

	dir      string
	fileName string

	// passwordHash is the persisted verification digest. The password
	// itself lives only in the session.
	passwordHash string

	owner     any
	ownerType reflect.Type

	session  *secrets.Session
	state    gateState
	prompter prompt.Prompter
	log      logger.Logger
}

func (d *Document) document() *Document { return d }

// Option configures a document at Init time.
type Option func(*options)

type options struct {
	password string
	prompter prompt.Prompter
	log      logger.Logger
}

// WithPassword supplies the password programmatically, suppressing
// interactive prompting.
func WithPassword(password string) Option {
	return func(o *options) { o.password = password }
}

// WithPrompter replaces the interactive prompt source. Tests use this to
// script password entry.
func WithPrompter(p prompt.Prompter) Option {
	return func(o *options) { o.prompter = p }
}

// WithLogger sets the logger used for load/save diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// Init wires a settings document to its file and performs the initial
// load. owner must be a pointer to the concrete settings struct embedding
// Document. fileName is normalized to a .toml suffix.
//
// If the settings type has encrypted fields, Init runs the password gate
// before anything is decrypted: a supplied password is verified against
// the stored hash (mismatch is fatal), and with no supplied password the
// user is prompted. On first use the prompt creates the password instead,
// and the file is written immediately so the hash persists. That
// implicit save happens before the caller has populated any other field;
// this is expected behavior.
func Init(owner Persistable, dir, fileName string, opts ...Option) error {
	d := owner.document()

	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("%w: directory must not be empty", terrors.ErrInvalidDirectory)
	}
	name := strings.TrimSpace(fileName)
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", terrors.ErrInvalidFileName, fileName)
	}
	if !strings.HasSuffix(name, settingsSuffix) {
		name += settingsSuffix
	}

	rv := reflect.ValueOf(owner)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %T", terrors.ErrNotAStructPointer, owner)
	}

	o := &options{prompter: prompt.NewTerminal()}
	for _, opt := range opts {
		opt(o)
	}

	d.dir = dir
	d.fileName = name
	d.owner = owner
	d.ownerType = rv.Elem().Type()
	d.prompter = o.prompter
	d.log = o.log

	d.state = needPassword
	if !HasEncryptedFields(d.ownerType) {
		// No field ever needs a password; no prompt must ever occur.
		d.state = noEncryptionNeeded
	}

	path := d.Path()
	exists, err := store.Exists(path)
	if err != nil {
		return err
	}

	var file *parsedFile
	if exists {
		// The stored hash must be known before the gate runs, and an
		// unreadable file is fatal before anything else happens.
		file, err = parseFile(path)
		if err != nil {
			return err
		}
		d.passwordHash = file.takeHash()
	}

	if d.state != noEncryptionNeeded {
		created, err := d.unlock(o.password)
		if err != nil {
			return err
		}
		if created {
			if err := d.Save(); err != nil {
				return err
			}
		}
	}

	if file != nil {
		d.applyFields(file)
	}
	return nil
}

// Path returns the absolute or relative location of the settings file.
func (d *Document) Path() string {
	return filepath.Join(d.dir, d.fileName)
}

// Dir returns the settings directory.
func (d *Document) Dir() string { return d.dir }

// FileName returns the normalized settings file name.
func (d *Document) FileName() string { return d.fileName }

// Load re-reads the settings file into the live instance. A missing file
// leaves every field at its default (first run, not an error). An optional
// password re-runs the gate first: a wrong password fails verification
// before any field is decrypted.
func (d *Document) Load(password ...string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	path := d.Path()
	exists, err := store.Exists(path)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	file, err := parseFile(path)
	if err != nil {
		return err
	}
	if hash := file.takeHash(); hash != "" {
		d.passwordHash = hash
	}

	if d.state != noEncryptionNeeded {
		supplied := ""
		if len(password) > 0 {
			supplied = password[0]
		}
		if supplied != "" || d.state != unlocked {
			if supplied != "" {
				d.session = nil
				d.state = needPassword
			}
			created, err := d.unlock(supplied)
			if err != nil {
				return err
			}
			if created {
				if err := d.save(make(visitedSet)); err != nil {
					return err
				}
			}
		}
	}

	d.applyFields(file)
	return nil
}

// Save re-encrypts the live instance, writes the settings file, and then
// cascades into every nested settings document reachable through the
// instance's fields. The in-memory object is left encrypted afterwards.
func (d *Document) Save() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.save(make(visitedSet))
}

func (d *Document) save(visited visitedSet) error {
	visited.visit(docKey(d))

	if err := store.EnsureDir(d.dir); err != nil {
		d.log.Errorf("failed to prepare settings directory %s: %v", d.dir, err)
		return fmt.Errorf("%w: %v", terrors.ErrSaveFailed, err)
	}

	ownerValue := reflect.ValueOf(d.owner).Elem()
	if d.state != noEncryptionNeeded {
		for _, fd := range descriptorFor(d.ownerType) {
			if err := d.encryptGraph(ownerValue.Field(fd.Index), fd.Encrypted, visited); err != nil {
				return err
			}
		}
	}

	data, err := d.encode()
	if err != nil {
		d.log.Errorf("failed to encode %s: %v", d.fileName, err)
		return fmt.Errorf("%w: %v", terrors.ErrSaveFailed, err)
	}
	if err := store.WriteFile(d.Path(), data); err != nil {
		d.log.Errorf("failed to write %s: %v", d.Path(), err)
		return fmt.Errorf("%w: %v", terrors.ErrSaveFailed, err)
	}

	d.saveChildren(ownerValue, visited)
	return nil
}

// Rekey replaces the document password and immediately saves. Call it
// right after a load, while encrypted fields are still plaintext in
// memory, so they are re-encrypted under the new password.
func (d *Document) Rekey(newPassword string) error {
	if newPassword == "" {
		return terrors.ErrEmptyPassword
	}

	d.mu.Lock()
	if d.state == noEncryptionNeeded {
		d.mu.Unlock()
		return nil
	}
	if d.state != unlocked {
		d.mu.Unlock()
		return terrors.ErrLocked
	}
	d.passwordHash = secrets.HashPassword(newPassword)
	d.session = secrets.NewSession(newPassword)
	d.mu.Unlock()

	return d.Save()
}

// Unlocked reports whether encrypted fields can currently be decrypted.
// It is trivially true for types without encrypted fields.
func (d *Document) Unlocked() bool {
	return d.state == unlocked || d.state == noEncryptionNeeded
}
