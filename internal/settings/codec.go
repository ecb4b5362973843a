package settings

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	terrors "github.com/PolarWolf314/totara/internal/errors"
	"github.com/PolarWolf314/totara/internal/store"

	"github.com/BurntSushi/toml"
)

// reservedHashKey is the top-level key holding the password hash. It is
// present only once any field has ever required encryption, and never
// collides with a declared field.
const reservedHashKey = "password_hash"

// parsedFile is a settings file decoded to its raw key → value mapping,
// with conversion to declared field types deferred per field.
type parsedFile struct {
	keys map[string]toml.Primitive
	meta toml.MetaData
}

// parseFile reads and decodes the settings file. A file that is not
// parseable TOML at all is a fatal ParseError naming the path; the
// document never silently resets to defaults over a corrupted file.
func parseFile(path string) (*parsedFile, error) {
	data, err := store.ReadFile(path)
	if err != nil {
		return nil, err
	}

	raw := make(map[string]toml.Primitive)
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, &terrors.ParseError{Path: path, Err: err}
	}

	keys := make(map[string]toml.Primitive, len(raw))
	for k, v := range raw {
		keys[strings.ToLower(k)] = v
	}
	return &parsedFile{keys: keys, meta: md}, nil
}

// takeHash extracts and removes the reserved password-hash key, so the
// field loop never sees it.
func (f *parsedFile) takeHash() string {
	prim, ok := f.keys[reservedHashKey]
	if !ok {
		return ""
	}
	delete(f.keys, reservedHashKey)

	var hash string
	if err := f.meta.PrimitiveDecode(prim, &hash); err != nil {
		return ""
	}
	return hash
}

// applyFields converts each stored value to its field's declared type,
// runs it through the decrypt walk, and assigns it. Key comparison is
// case-insensitive; keys with no matching field are ignored; a field
// whose value cannot be converted is logged and skipped while the rest
// of the document loads.
func (d *Document) applyFields(file *parsedFile) {
	ownerValue := reflect.ValueOf(d.owner).Elem()
	visited := make(visitedSet)

	for _, fd := range descriptorFor(d.ownerType) {
		prim, ok := file.keys[strings.ToLower(fd.Key)]
		if !ok {
			prim, ok = file.keys[strings.ToLower(fd.Name)]
		}
		if !ok {
			// Absent on disk: the field keeps its default.
			continue
		}

		target := reflect.New(fd.Type)
		if err := file.meta.PrimitiveDecode(prim, target.Interface()); err != nil {
			d.log.WarnfAlways("skipping field %s of %s: %v: %v",
				fd.Key, d.fileName, terrors.ErrConversionFailed, err)
			continue
		}

		value := target.Elem()
		d.decryptGraph(value, fd.Encrypted, visited)
		ownerValue.Field(fd.Index).Set(value)
	}
}

// encode serializes the live instance. The reserved hash key goes first:
// TOML top-level keys must precede any table the concrete type's
// composite fields open.
func (d *Document) encode() ([]byte, error) {
	var buf bytes.Buffer
	if d.passwordHash != "" {
		fmt.Fprintf(&buf, "%s = %q\n\n", reservedHashKey, d.passwordHash)
	}
	if err := toml.NewEncoder(&buf).Encode(d.owner); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", d.fileName, err)
	}
	return buf.Bytes(), nil
}
