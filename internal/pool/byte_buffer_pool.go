// Package pool provides pooled byte buffers for the encode-side hot path.
//
// BFAST documents are typically encoded many times per second by a single
// producer; reusing the backing array across encode calls avoids an
// allocation per document while still handing the caller an
// independently-owned slice once Encode returns (the byte slice is copied
// out at the API boundary, never leaked from the pool).
package pool

import "sync"

// Default and max-retained sizes for pooled buffers. A document buffer
// starts small since most BFAST documents are well under a few KiB; a
// frame buffer (used for compressed output) is sized the same way but
// pooled separately so a run of large documents doesn't inflate the
// steady-state size of the document pool.
const (
	DocumentBufferDefaultSize = 1024 * 4  // 4KiB
	DocumentBufferMaxRetained = 1024 * 64 // 64KiB
	FrameBufferDefaultSize    = 1024 * 4  // 4KiB
	FrameBufferMaxRetained    = 1024 * 64 // 64KiB
)

// ByteBuffer is a growable byte slice wrapper designed for reuse via
// sync.Pool. It never shrinks on Reset, only on being discarded by the
// pool when it has grown past a retention threshold.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)
}

// Write implements io.Writer over MustWrite, so a ByteBuffer can be
// passed directly to anything that writes into an io.Writer (e.g.
// lz4.Writer.Reset).
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.MustWrite(data)

	return len(data), nil
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For small buffers, grow by the pool's default size to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return // Sufficient capacity
	}

	growBy := DocumentBufferDefaultSize
	if cap(bb.B) > 4*DocumentBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers. The pool can be
// configured with a maximum size threshold to avoid retaining overly large
// buffers that could lead to memory bloat.
type ByteBufferPool struct {
	pool        sync.Pool
	maxRetained int // buffers larger than this are discarded instead of pooled
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize, maxRetained int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxRetained: maxRetained,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if p.maxRetained > 0 && cap(bb.B) > p.maxRetained {
		// Discard overly large buffers to prevent memory bloat.
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var (
	documentPool = NewByteBufferPool(DocumentBufferDefaultSize, DocumentBufferMaxRetained)
	framePool    = NewByteBufferPool(FrameBufferDefaultSize, FrameBufferMaxRetained)
)

// GetDocumentBuffer retrieves a ByteBuffer from the default document pool,
// used for an encoder's uncompressed payload accumulation.
func GetDocumentBuffer() *ByteBuffer {
	return documentPool.Get()
}

// PutDocumentBuffer returns a ByteBuffer to the default document pool.
func PutDocumentBuffer(bb *ByteBuffer) {
	documentPool.Put(bb)
}

// GetFrameBuffer retrieves a ByteBuffer from the default frame pool, used
// for the post-compression framing output.
func GetFrameBuffer() *ByteBuffer {
	return framePool.Get()
}

// PutFrameBuffer returns a ByteBuffer to the default frame pool.
func PutFrameBuffer(bb *ByteBuffer) {
	framePool.Put(bb)
}
