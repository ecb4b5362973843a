package settings

import (
	"reflect"
)

// visitPass namespaces visited-set marks so the encrypt/decrypt walk and
// the nested-save walk over the same graph never shadow each other.
type visitPass int

const (
	passValue visitPass = iota
	passCascade
	passDocument
)

// visitKey identifies one object instance within one traversal pass.
// Identity is the instance's address, so two fields sharing a pointer
// resolve to the same key while equal-but-distinct values do not.
type visitKey struct {
	ptr  uintptr
	pass visitPass
	kind reflect.Kind
}

// visitedSet guarantees each distinct instance is processed at most once
// per traversal pass. One set spans an entire save call, including every
// cascaded nested document, which is what makes self-referencing graphs
// terminate and shared references encrypt exactly once.
type visitedSet map[visitKey]struct{}

// visit marks the key and reports whether this was its first visit.
func (s visitedSet) visit(k visitKey) bool {
	if _, ok := s[k]; ok {
		return false
	}
	s[k] = struct{}{}
	return true
}

func docKey(d *Document) visitKey {
	return visitKey{ptr: reflect.ValueOf(d).Pointer(), pass: passDocument}
}

func valueKey(v reflect.Value) visitKey {
	return visitKey{ptr: v.Addr().Pointer(), pass: passValue, kind: v.Kind()}
}

func refKey(v reflect.Value, pass visitPass) visitKey {
	return visitKey{ptr: v.Pointer(), pass: pass, kind: v.Kind()}
}

// decryptGraph walks a value freshly converted from its stored form and
// replaces ciphertext with plaintext wherever the declared slot carries
// the encryption marker. Failures degrade: a value that cannot be
// decrypted (corrupted, or legacy plaintext from before encryption) is
// logged and left exactly as stored, never destroyed.
func (d *Document) decryptGraph(v reflect.Value, encrypted bool, visited visitedSet) {
	switch v.Kind() {
	case reflect.String:
		if !encrypted {
			return
		}
		if v.CanAddr() && !visited.visit(valueKey(v)) {
			// Already processed in this pass.
			return
		}
		ciphertext := v.String()
		if ciphertext == "" {
			// An empty ciphertext decodes to an explicit absent value.
			return
		}
		if !d.session.Unlocked() {
			// The gate guarantees an unlocked session before any decrypt;
			// reaching here is a programming error, not a data error.
			panic("settings: decrypt of " + d.fileName + " without an unlocked session")
		}
		plaintext, err := d.session.Decrypt(ciphertext)
		if err != nil {
			d.log.WarnfAlways("leaving a stored value of %s untouched: %v", d.fileName, err)
			return
		}
		v.SetString(plaintext)

	case reflect.Pointer:
		if v.IsNil() || !visited.visit(refKey(v, passValue)) {
			return
		}
		d.decryptGraph(v.Elem(), encrypted, visited)

	case reflect.Slice:
		if v.IsNil() || !visited.visit(refKey(v, passValue)) {
			return
		}
		for i := 0; i < v.Len(); i++ {
			d.decryptGraph(v.Index(i), encrypted, visited)
		}

	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			d.decryptGraph(v.Index(i), encrypted, visited)
		}

	case reflect.Map:
		if v.IsNil() || !visited.visit(refKey(v, passValue)) {
			return
		}
		for _, mk := range v.MapKeys() {
			elem := reflect.New(v.Type().Elem()).Elem()
			elem.Set(v.MapIndex(mk))
			d.decryptGraph(elem, encrypted, visited)
			v.SetMapIndex(mk, elem)
		}

	case reflect.Struct:
		t := v.Type()
		if isSystemType(t) || isNestedDocumentType(t) || !HasEncryptedFields(t) {
			return
		}
		if v.CanAddr() && !visited.visit(valueKey(v)) {
			return
		}
		for _, fd := range descriptorFor(t) {
			d.decryptGraph(v.Field(fd.Index), fd.Encrypted, visited)
		}
	}
}

// encryptGraph is the save-time inverse of decryptGraph: every
// encryption-marked string slot holding a non-empty value is replaced in
// place by its ciphertext before serialization.
func (d *Document) encryptGraph(v reflect.Value, encrypted bool, visited visitedSet) error {
	switch v.Kind() {
	case reflect.String:
		if !encrypted || v.String() == "" {
			return nil
		}
		if v.CanAddr() && !visited.visit(valueKey(v)) {
			return nil
		}
		if !d.session.Unlocked() {
			panic("settings: encrypt of " + d.fileName + " without an unlocked session")
		}
		ciphertext, err := d.session.Encrypt(v.String())
		if err != nil {
			return err
		}
		v.SetString(ciphertext)

	case reflect.Pointer:
		if v.IsNil() || !visited.visit(refKey(v, passValue)) {
			return nil
		}
		return d.encryptGraph(v.Elem(), encrypted, visited)

	case reflect.Slice:
		if v.IsNil() || !visited.visit(refKey(v, passValue)) {
			return nil
		}
		for i := 0; i < v.Len(); i++ {
			if err := d.encryptGraph(v.Index(i), encrypted, visited); err != nil {
				return err
			}
		}

	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := d.encryptGraph(v.Index(i), encrypted, visited); err != nil {
				return err
			}
		}

	case reflect.Map:
		if v.IsNil() || !visited.visit(refKey(v, passValue)) {
			return nil
		}
		for _, mk := range v.MapKeys() {
			elem := reflect.New(v.Type().Elem()).Elem()
			elem.Set(v.MapIndex(mk))
			if err := d.encryptGraph(elem, encrypted, visited); err != nil {
				return err
			}
			v.SetMapIndex(mk, elem)
		}

	case reflect.Struct:
		t := v.Type()
		if isSystemType(t) || isNestedDocumentType(t) || !HasEncryptedFields(t) {
			return nil
		}
		if v.CanAddr() && !visited.visit(valueKey(v)) {
			return nil
		}
		for _, fd := range descriptorFor(t) {
			if err := d.encryptGraph(v.Field(fd.Index), fd.Encrypted, visited); err != nil {
				return err
			}
		}
	}
	return nil
}

// saveNested walks the full reachable graph after the primary document is
// written and saves every reachable instance that is itself a settings
// document. The shared visited set guards against duplicate writes and
// infinite loops through back-references.
func (d *Document) saveNested(v reflect.Value, visited visitedSet) {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return
		}
		d.saveNested(v.Elem(), visited)

	case reflect.Pointer:
		if v.IsNil() {
			return
		}
		if p, ok := v.Interface().(Persistable); ok {
			d.saveDocument(p, visited)
			return
		}
		if !visited.visit(refKey(v, passCascade)) {
			return
		}
		d.saveNested(v.Elem(), visited)

	case reflect.Slice:
		if v.IsNil() || !visited.visit(refKey(v, passCascade)) {
			return
		}
		for i := 0; i < v.Len(); i++ {
			d.saveNested(v.Index(i), visited)
		}

	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			d.saveNested(v.Index(i), visited)
		}

	case reflect.Map:
		if v.IsNil() || !visited.visit(refKey(v, passCascade)) {
			return
		}
		for _, mk := range v.MapKeys() {
			d.saveNested(v.MapIndex(mk), visited)
		}

	case reflect.Struct:
		if isSystemType(v.Type()) {
			return
		}
		if v.CanAddr() {
			if p, ok := v.Addr().Interface().(Persistable); ok {
				d.saveDocument(p, visited)
				return
			}
		}
		d.saveChildren(v, visited)
	}
}

// saveChildren runs the cascade over every declared field of a struct
// value. The primary save enters here directly: the owning struct is
// itself Persistable and already written, so only its children matter.
func (d *Document) saveChildren(v reflect.Value, visited visitedSet) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		if f.Anonymous && f.Type == documentType {
			continue
		}
		d.saveNested(v.Field(i), visited)
	}
}

// saveDocument saves one nested settings document at most once per pass.
// A document that was never initialized has nothing to save.
func (d *Document) saveDocument(p Persistable, visited visitedSet) {
	nested := p.document()
	if nested == nil || nested.owner == nil {
		return
	}
	if !visited.visit(docKey(nested)) {
		return
	}
	if err := nested.save(visited); err != nil {
		d.log.Errorf("failed to save nested settings %s: %v", nested.fileName, err)
	}
}
