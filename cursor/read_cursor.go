// Package cursor provides bounds-checked read and write cursors over a
// byte buffer, with little/big-endian primitives and UTF-8 validation.
//
// This is the lowest-level package in the module: every other BFAST
// package reads or writes bytes through a cursor rather than slicing
// buffers by hand, so the truncation and UTF-8 checks required by the
// wire format (spec §4.1) live in exactly one place.
package cursor

import (
	"math"
	"unicode/utf8"

	"github.com/bfastfmt/bfast/endian"
	"github.com/bfastfmt/bfast/errs"
)

// Reader is an immutable-slice, advancing-offset cursor for decoding.
// Every method fails with errs.ErrTruncated when fewer bytes remain than
// requested; ReadUTF8 additionally fails with errs.ErrInvalidUTF8.
//
// ReadBytes returns subslices of the original input, never copies;
// ReadUTF8 returns the validated bytes as a newly allocated string.
//
// BFAST's body fields are always little-endian (spec §4.2); the one
// exception, the header's "BF" magic word, is read with ReadU16BE.
type Reader struct {
	data   []byte
	offset int
}

var (
	le = endian.GetLittleEndianEngine()
	be = endian.GetBigEndianEngine()
)

// NewReader creates a Reader over data. The cursor starts at offset 0.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the cursor's current byte offset into the original
// input. This is the offset errs.DecodeError reports on failure.
func (r *Reader) Offset() int {
	return r.offset
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.offset
}

// PeekU8 returns the next byte without advancing the cursor.
func (r *Reader) PeekU8() (byte, error) {
	if r.Remaining() < 1 {
		return 0, errs.ErrTruncated
	}

	return r.data[r.offset], nil
}

// ReadU8 reads and consumes one byte.
func (r *Reader) ReadU8() (byte, error) {
	b, err := r.PeekU8()
	if err != nil {
		return 0, err
	}
	r.offset++

	return b, nil
}

// ReadU16LE reads a little-endian uint16.
func (r *Reader) ReadU16LE() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}

	return le.Uint16(b), nil
}

// ReadU16BE reads a big-endian uint16. Used only for the header's magic
// bytes, which spec §4.2 defines as a big-endian word for readability.
func (r *Reader) ReadU16BE() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}

	return be.Uint16(b), nil
}

// ReadU32LE reads a little-endian uint32. Every length/count field in the
// BFAST body uses this.
func (r *Reader) ReadU32LE() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return le.Uint32(b), nil
}

// ReadI64LE reads a little-endian signed 64-bit integer.
func (r *Reader) ReadI64LE() (int64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}

	return int64(le.Uint64(b)), nil //nolint:gosec
}

// ReadF64LE reads a little-endian IEEE-754 binary64 float.
func (r *Reader) ReadF64LE() (float64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}

	bits := le.Uint64(b)

	return math.Float64frombits(bits), nil
}

// ReadBytes consumes and returns the next n bytes as a subslice of the
// original input. The caller must not retain the slice past the lifetime
// of the input buffer if the buffer may be reused.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errs.ErrTruncated
	}
	if r.Remaining() < n {
		return nil, errs.ErrTruncated
	}

	b := r.data[r.offset : r.offset+n]
	r.offset += n

	return b, nil
}

// ReadUTF8 consumes the next n bytes and validates them as UTF-8,
// returning an independent string copy.
func (r *Reader) ReadUTF8(n int) (string, error) {
	b, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errs.ErrInvalidUTF8
	}

	return string(b), nil
}
