// Package intern implements BFAST's per-document string interning
// table: the ordered key dictionary that object keys reference by
// position rather than carrying their bytes inline.
package intern

import (
	"github.com/bfastfmt/bfast/errs"
)

// MaxEntries is the largest interning table the wire format can
// represent: the header's count field is a 16-bit unsigned integer.
const MaxEntries = 1<<16 - 1

// MaxKeyLen is the largest UTF-8 byte length a single interned key may
// have.
const MaxKeyLen = 255

// Table is an ordered, duplicate-tolerant string dictionary. Encoders
// build one via Builder; decoders materialize one directly from the
// header with FromEntries.
type Table struct {
	entries []string
}

// FromEntries wraps an already-decoded, ordered slice of key strings as
// a Table. Used by the frame/header reader.
func FromEntries(entries []string) *Table {
	return &Table{entries: entries}
}

// Len returns the number of entries in the table.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns the table's strings in id order (id == index).
func (t *Table) Entries() []string { return t.entries }

// Lookup resolves an interning id to its string, failing with
// errs.ErrBadInternID if id is outside [0, Len()).
func (t *Table) Lookup(id uint32) (string, error) {
	if id >= uint32(len(t.entries)) {
		return "", errs.ErrBadInternID
	}

	return t.entries[id], nil
}

// Builder collects distinct object-key strings during an encoder's
// pre-scan of a value graph, assigning each a deterministic id equal to
// its first-seen position.
//
// Builder mirrors the encoder-side collision tracker pattern used
// elsewhere in this module's ancestry: a map for O(1) membership plus
// an ordered slice for the final, position-indexed table.
type Builder struct {
	ids     map[string]uint32
	ordered []string
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{ids: make(map[string]uint32)}
}

// Intern records key, assigning it a fresh id on first sight and
// returning its id on every call. Keys longer than MaxKeyLen fail with
// errs.ErrKeyTooLong; exceeding MaxEntries distinct keys fails with
// errs.ErrInternOverflow.
func (b *Builder) Intern(key string) (uint32, error) {
	if len(key) > MaxKeyLen {
		return 0, errs.ErrKeyTooLong
	}
	if id, ok := b.ids[key]; ok {
		return id, nil
	}
	if len(b.ordered) >= MaxEntries {
		return 0, errs.ErrInternOverflow
	}

	id := uint32(len(b.ordered))
	b.ids[key] = id
	b.ordered = append(b.ordered, key)

	return id, nil
}

// Len returns the number of distinct keys interned so far.
func (b *Builder) Len() int { return len(b.ordered) }

// IDOf returns the id previously assigned to key by Intern. It fails
// with errs.ErrBadInternID if key was never interned — a programmer
// error on the encode side, since every object key must be scanned
// before the value graph is encoded.
func (b *Builder) IDOf(key string) (uint32, error) {
	id, ok := b.ids[key]
	if !ok {
		return 0, errs.ErrBadInternID
	}

	return id, nil
}

// Table finalizes the Builder into an immutable Table.
func (b *Builder) Table() *Table {
	return &Table{entries: b.ordered}
}

// Reset clears the Builder for reuse across documents. Per spec, a
// document's interning state must never leak into the next document
// produced by the same encoder instance.
func (b *Builder) Reset() {
	for k := range b.ids {
		delete(b.ids, k)
	}
	b.ordered = b.ordered[:0]
}
