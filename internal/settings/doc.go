// Package settings is Totara's encryption-aware settings-persistence
// engine.
//
// A settings type is any struct that embeds Document and carries toml
// tags for its on-disk keys. Fields holding secrets opt into encryption
// with the `totara:"encrypted"` tag:
//
//	type AppSettings struct {
//	    settings.Document `toml:"-"`
//
//	    APIKey  string `toml:"api_key,omitempty" totara:"encrypted"`
//	    Retries int    `toml:"retries"`
//	}
//
//	app := &AppSettings{Retries: 3}
//	if err := settings.Init(app, dir, "app", settings.WithPassword(pw)); err != nil {
//	    // handle error
//	}
//
// Init validates the path, decides whether a password is needed at all
// (types with zero encrypted fields never prompt), obtains and verifies
// the password, and loads the file if one exists. Save re-encrypts the
// live instance, writes the file, and cascades into any nested settings
// documents reachable through composition.
//
// # Encryption Markers
//
// The encrypted marker is declared per field and applies to string slots:
// plain string fields, elements of string collections, and strings inside
// nested composite types. It is never inherited through a type hierarchy.
// Field descriptors are built once per type by reflection and cached, so
// the per-call cost is a map lookup.
//
// # Nested Documents
//
// A composite field type that itself embeds Document is a nested settings
// document. The engine treats it as a boundary: the parent's file never
// inlines it (tag such fields `toml:"-"`), its own password gate governs
// its secrets, and a parent Save cascades into it. An identity-based
// visited set scoped to one save pass guarantees each document is written
// at most once and each shared value is encrypted at most once, so graphs
// with back-references terminate.
//
// # Concurrency
//
// A document belongs to a single owning goroutine. Save and Load hold an
// internal mutex against accidental overlap, but concurrent mutation of
// the owning struct's fields is the caller's problem, and there is no
// cross-process file locking. Writes are plain, non-atomic writes.
//
// # After Save
//
// Save leaves the in-memory instance in its encrypted form; there is no
// automatic re-decrypt. Reload the document to get plaintext values back.
package settings
