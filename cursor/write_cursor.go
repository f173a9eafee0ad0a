package cursor

import (
	"math"

	"github.com/bfastfmt/bfast/internal/pool"
)

// Writer is an append-only cursor for encoding. It accumulates bytes into
// a pooled buffer; callers read the accumulated bytes via Bytes, which
// aliases that buffer, and copy them out before Reset or Release.
//
// Like Reader, Writer's multi-byte primitives are always little-endian
// except WriteU16BE, which exists solely for the header's "BF" magic
// word (spec §4.2).
type Writer struct {
	buf *pool.ByteBuffer
}

// NewWriter creates a Writer backed by a freshly-pooled document buffer.
// Callers must call Release when done to return the buffer to the pool.
func NewWriter() *Writer {
	return &Writer{buf: pool.GetDocumentBuffer()}
}

// NewWriterSize creates a Writer backed by a buffer of the given initial
// capacity, not drawn from the shared pool. Useful for one-off encodes
// where pool churn isn't worth it, or in tests.
func NewWriterSize(initialCap int) *Writer {
	return &Writer{buf: pool.NewByteBuffer(initialCap)}
}

// Release returns the Writer's buffer to the document pool. The Writer
// must not be used again afterward. Calling Release on a Writer created
// with NewWriterSize also hands its buffer to the document pool, unless
// the buffer's capacity exceeds pool.DocumentBufferMaxRetained.
func (w *Writer) Release() {
	pool.PutDocumentBuffer(w.buf)
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the accumulated bytes. The returned slice aliases the
// Writer's internal buffer; callers that need to retain it past a Reset
// or Release must copy it first.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Reset clears the Writer for reuse, retaining its backing array.
func (w *Writer) Reset() {
	w.buf.Reset()
}

// Reserve ensures the buffer can absorb n more bytes without
// reallocating, amortizing growth for callers that know an upcoming size
// (e.g. a List writing its element count before its elements).
func (w *Writer) Reserve(n int) {
	w.buf.Grow(n)
}

// WriteU8 appends a single byte.
func (w *Writer) WriteU8(b byte) {
	w.buf.MustWrite([]byte{b})
}

// WriteU16LE appends a little-endian uint16.
func (w *Writer) WriteU16LE(v uint16) {
	var tmp [2]byte
	le.PutUint16(tmp[:], v)
	w.buf.MustWrite(tmp[:])
}

// WriteU16BE appends a big-endian uint16. Used only for the header magic.
func (w *Writer) WriteU16BE(v uint16) {
	var tmp [2]byte
	be.PutUint16(tmp[:], v)
	w.buf.MustWrite(tmp[:])
}

// WriteU32LE appends a little-endian uint32.
func (w *Writer) WriteU32LE(v uint32) {
	var tmp [4]byte
	le.PutUint32(tmp[:], v)
	w.buf.MustWrite(tmp[:])
}

// WriteI64LE appends a little-endian signed 64-bit integer.
func (w *Writer) WriteI64LE(v int64) {
	var tmp [8]byte
	le.PutUint64(tmp[:], uint64(v)) //nolint:gosec
	w.buf.MustWrite(tmp[:])
}

// WriteF64LE appends a little-endian IEEE-754 binary64 float.
func (w *Writer) WriteF64LE(v float64) {
	var tmp [8]byte
	le.PutUint64(tmp[:], math.Float64bits(v))
	w.buf.MustWrite(tmp[:])
}

// WriteBytes appends b verbatim, with no length prefix. Callers that need
// a length-prefixed field write the length themselves, typically via
// WriteU32LE, before calling WriteBytes.
func (w *Writer) WriteBytes(b []byte) {
	w.buf.MustWrite(b)
}

// WriteString appends s's UTF-8 bytes verbatim, with no length prefix.
// Callers are responsible for the length prefix, same as WriteBytes.
func (w *Writer) WriteString(s string) {
	w.buf.MustWrite([]byte(s))
}
