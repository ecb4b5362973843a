package settings

import (
	"reflect"
	"strings"
	"sync"
)

// encryptTag is the struct tag namespace for encryption markers:
// `totara:"encrypted"`.
const encryptTag = "totara"

// FieldDescriptor describes one declared field of a settings type.
type FieldDescriptor struct {
	// Owner is the struct type declaring the field.
	Owner reflect.Type
	// Name is the Go field name.
	Name string
	// Key is the on-disk key, taken from the toml tag when present.
	Key string
	// Type is the declared field type.
	Type reflect.Type
	// Index is the field's position within Owner.
	Index int
	// Encrypted reports whether the field carries the encryption marker.
	Encrypted bool
	// Collection reports whether the field is a non-text collection.
	Collection bool
	// Elem is the element type for collections, nil otherwise.
	Elem reflect.Type
}

var (
	descMu    sync.Mutex
	descCache = map[reflect.Type][]FieldDescriptor{}
	encCache  = map[reflect.Type]bool{}

	documentType    = reflect.TypeOf(Document{})
	persistableType = reflect.TypeOf((*Persistable)(nil)).Elem()
)

// descriptorFor returns the field descriptors of a settings struct type.
// The table is built by reflection once per type and reused; fields that
// are unexported, tagged toml:"-", or the embedded Document are excluded.
func descriptorFor(t reflect.Type) []FieldDescriptor {
	descMu.Lock()
	defer descMu.Unlock()

	if cached, ok := descCache[t]; ok {
		return cached
	}

	var fields []FieldDescriptor
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			// Unexported fields never persist.
			continue
		}
		if f.Anonymous && f.Type == documentType {
			continue
		}

		key := f.Name
		if tag, ok := f.Tag.Lookup("toml"); ok {
			name := strings.Split(tag, ",")[0]
			if name == "-" {
				continue
			}
			if name != "" {
				key = name
			}
		}

		fd := FieldDescriptor{
			Owner:     t,
			Name:      f.Name,
			Key:       key,
			Type:      f.Type,
			Index:     i,
			Encrypted: hasEncryptedMarker(f),
		}
		if k := f.Type.Kind(); (k == reflect.Slice || k == reflect.Array) && f.Type.Elem().Kind() != reflect.Uint8 {
			fd.Collection = true
			fd.Elem = f.Type.Elem()
		}
		fields = append(fields, fd)
	}

	descCache[t] = fields
	return fields
}

func hasEncryptedMarker(f reflect.StructField) bool {
	for _, opt := range strings.Split(f.Tag.Get(encryptTag), ",") {
		if opt == "encrypted" {
			return true
		}
	}
	return false
}

// Fields returns the declared field descriptors of a settings struct
// type, in declaration order. Callers use it to enumerate on-disk keys.
func Fields(t reflect.Type) []FieldDescriptor {
	return descriptorFor(derefType(t))
}

// EncryptedFields returns every field of t carrying the encryption marker,
// at any nesting depth, recursing into collection element types (excluding
// text types) and non-system composite field types. Nested settings
// documents are boundaries: their own gate governs their fields.
func EncryptedFields(t reflect.Type) []FieldDescriptor {
	var out []FieldDescriptor
	collectEncrypted(derefType(t), map[reflect.Type]bool{}, &out)
	return out
}

func collectEncrypted(t reflect.Type, seen map[reflect.Type]bool, out *[]FieldDescriptor) {
	if t.Kind() != reflect.Struct || seen[t] || isSystemType(t) {
		return
	}
	seen[t] = true

	for _, fd := range descriptorFor(t) {
		if fd.Encrypted {
			*out = append(*out, fd)
		}
		if child := childStructType(fd); child != nil {
			collectEncrypted(child, seen, out)
		}
	}
}

// HasEncryptedFields is a short-circuiting existence check over the same
// recursion as EncryptedFields. It is called once at document construction
// to decide whether password interaction is needed at all.
func HasEncryptedFields(t reflect.Type) bool {
	t = derefType(t)

	descMu.Lock()
	cached, ok := encCache[t]
	descMu.Unlock()
	if ok {
		return cached
	}

	has := hasEncrypted(t, map[reflect.Type]bool{})

	descMu.Lock()
	encCache[t] = has
	descMu.Unlock()
	return has
}

func hasEncrypted(t reflect.Type, seen map[reflect.Type]bool) bool {
	if t.Kind() != reflect.Struct || seen[t] || isSystemType(t) {
		return false
	}
	seen[t] = true

	for _, fd := range descriptorFor(t) {
		if fd.Encrypted {
			return true
		}
		if child := childStructType(fd); child != nil && hasEncrypted(child, seen) {
			return true
		}
	}
	return false
}

// childStructType resolves the composite type the descriptor recursion
// should descend into, or nil when there is none: text types carry no
// markers of their own, system types are opaque, and nested settings
// documents are handled by their own document.
func childStructType(fd FieldDescriptor) reflect.Type {
	child := fd.Type
	if fd.Collection {
		child = fd.Elem
	}
	child = derefType(child)
	for child.Kind() == reflect.Slice || child.Kind() == reflect.Array || child.Kind() == reflect.Map {
		child = derefType(child.Elem())
	}
	if child.Kind() != reflect.Struct || isSystemType(child) || isNestedDocumentType(child) {
		return nil
	}
	return child
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// isSystemType reports whether t comes from the standard library (or is
// predeclared). System composites like time.Time are treated as scalar
// values, never recursed into.
func isSystemType(t reflect.Type) bool {
	pkg := t.PkgPath()
	if pkg == "" {
		return false
	}
	root := pkg
	if i := strings.Index(pkg, "/"); i >= 0 {
		root = pkg[:i]
	}
	// Standard library import paths have no dot in their first element.
	return !strings.Contains(root, ".")
}

// isNestedDocumentType reports whether t is itself a settings document,
// meaning *t satisfies the Persistable capability by embedding Document.
func isNestedDocumentType(t reflect.Type) bool {
	return reflect.PointerTo(derefType(t)).Implements(persistableType)
}
