package frame

import (
	"bytes"
	"runtime"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/bfastfmt/bfast/internal/pool"
)

// lz4FrameMagic is the little-endian LZ4 frame format magic number,
// used to auto-detect LZ4-compressed input per spec §4.5.
var lz4FrameMagic = []byte{0x04, 0x22, 0x4D, 0x18}

// CompressThreshold is the reference threshold below which compression
// is skipped even when requested: at small sizes frame overhead
// dominates any savings.
const CompressThreshold = 64

// ChunkThreshold is the input size at or above which chunked parallel
// compression kicks in.
const ChunkThreshold = 1 << 20 // 1 MiB

// ChunkSize is the size of each independently-compressed chunk once
// ChunkThreshold is crossed.
const ChunkSize = 256 * 1024 // 256 KiB

// writerPool reuses lz4.Writer instances across compressOne calls.
var writerPool = sync.Pool{
	New: func() any { return lz4.NewWriter(nil) },
}

// IsLZ4Framed reports whether data begins with the LZ4 frame magic.
func IsLZ4Framed(data []byte) bool {
	return len(data) >= 4 && bytes.Equal(data[:4], lz4FrameMagic)
}

// ShouldCompress applies the reference heuristic: compress when
// requested and the payload is large enough for the frame overhead to
// pay for itself.
func ShouldCompress(requested bool, uncompressedLen int) bool {
	return shouldCompress(requested, uncompressedLen, CompressThreshold)
}

func shouldCompress(requested bool, uncompressedLen, threshold int) bool {
	return requested && uncompressedLen >= threshold
}

// Compress wraps data in one or more concatenated LZ4 frames, using the
// package's default chunking parameters. Inputs at or above
// ChunkThreshold are split into ChunkSize pieces and compressed
// concurrently; the concatenation of independent LZ4 frames is itself a
// valid LZ4 frame stream, so decoders need no special handling.
func Compress(data []byte) ([]byte, error) {
	return compressChunked(data, ChunkThreshold, ChunkSize)
}

// compressChunked is Compress's parameterized form, letting
// EncodeOptions override the chunk size per call via
// WithParallelChunkSize. Encode always passes ChunkThreshold as
// chunkThreshold.
func compressChunked(data []byte, chunkThreshold, chunkSize int) ([]byte, error) {
	if len(data) < chunkThreshold {
		return compressOne(data)
	}

	chunks := splitChunks(data, chunkSize)
	results := make([][]byte, len(chunks))

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	errCh := make(chan error, len(chunks))

	for i, chunk := range chunks {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, chunk []byte) {
			defer wg.Done()
			defer func() { <-sem }()

			out, err := compressOne(chunk)
			if err != nil {
				errCh <- err
				return
			}
			results[i] = out
		}(i, chunk)
	}

	wg.Wait()
	close(errCh)
	if err := <-errCh; err != nil {
		return nil, err
	}

	var out []byte
	for _, r := range results {
		out = append(out, r...)
	}

	return out, nil
}

func splitChunks(data []byte, size int) [][]byte {
	var chunks [][]byte
	for len(data) > 0 {
		n := size
		if n > len(data) {
			n = len(data)
		}
		chunks = append(chunks, data[:n])
		data = data[n:]
	}

	return chunks
}

func compressOne(data []byte) ([]byte, error) {
	w, _ := writerPool.Get().(*lz4.Writer)
	defer writerPool.Put(w)

	buf := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(buf)

	w.Reset(buf)

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// Decompress reads data as a stream of one or more concatenated,
// independent LZ4 frames (the encode side's chunked-compression output
// is exactly this) and returns the fully decompressed output. Each
// frame is decoded in turn; the underlying reader's position after one
// frame's EOF lands exactly at the next frame's magic bytes, so no
// explicit boundary bookkeeping is needed.
func Decompress(data []byte) ([]byte, error) {
	br := bytes.NewReader(data)

	var out bytes.Buffer
	for br.Len() > 0 {
		r := lz4.NewReader(br)
		if _, err := out.ReadFrom(r); err != nil {
			return nil, err
		}
	}

	return out.Bytes(), nil
}
