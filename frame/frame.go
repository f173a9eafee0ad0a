package frame

import (
	"time"

	"github.com/bfastfmt/bfast/codec"
	"github.com/bfastfmt/bfast/cursor"
	"github.com/bfastfmt/bfast/errs"
	"github.com/bfastfmt/bfast/intern"
	"github.com/bfastfmt/bfast/value"
)

// EncodeOptions controls the options the wire format recognizes.
type EncodeOptions struct {
	// Compress requests LZ4 framing of the output. It is a hint: very
	// small documents are still emitted uncompressed (see
	// ShouldCompress).
	Compress bool

	// CompressionThreshold overrides CompressThreshold when nonzero.
	CompressionThreshold int

	// ParallelChunkSize overrides ChunkSize when nonzero.
	ParallelChunkSize int
}

// Encode serializes v into a complete BFAST document: header, interning
// table, payload, optionally LZ4-framed.
func Encode(v value.Value, opts EncodeOptions) ([]byte, error) {
	out, _, err := encodeRaw(v, opts)

	return out, err
}

// CompressionStats reports the size and timing of an EncodeWithStats
// call, for a caller's own metrics exporter. It is purely observational:
// two implementations have no obligation to agree on CompressionTimeNs.
type CompressionStats struct {
	OriginalSize      int64
	CompressedSize    int64
	CompressionTimeNs int64
}

// CompressionRatio returns CompressedSize/OriginalSize. It is 0 when
// OriginalSize is 0 rather than dividing by zero.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the percentage of OriginalSize the compressed
// form does not occupy. It is at most 100, and negative when the
// compressed form is larger than OriginalSize.
func (s CompressionStats) SpaceSavings() float64 {
	return (1 - s.CompressionRatio()) * 100
}

// EncodeWithStats behaves exactly like Encode, additionally reporting
// CompressionStats for the call: the uncompressed and final sizes and
// the wall-clock time spent encoding and (if requested) compressing.
// Stats are always computed; there is no separate opt-in, since the
// encode itself already has the sizes in hand and computing them costs
// nothing beyond what Encode already does.
func EncodeWithStats(v value.Value, opts EncodeOptions) ([]byte, CompressionStats, error) {
	start := time.Now()
	out, rawSize, err := encodeRaw(v, opts)
	if err != nil {
		return nil, CompressionStats{}, err
	}

	return out, CompressionStats{
		OriginalSize:      int64(rawSize),
		CompressedSize:    int64(len(out)),
		CompressionTimeNs: time.Since(start).Nanoseconds(),
	}, nil
}

// encodeRaw is Encode's shared core, additionally returning the
// uncompressed payload length so EncodeWithStats can report it without
// re-encoding.
func encodeRaw(v value.Value, opts EncodeOptions) ([]byte, int, error) {
	builder := intern.NewBuilder()
	if err := intern.Scan(v, builder); err != nil {
		return nil, 0, err
	}
	table := builder.Table()

	w := cursor.NewWriter()
	defer w.Release()

	if err := WriteHeaderAndTable(w, table, opts.Compress); err != nil {
		return nil, 0, err
	}

	enc := codec.NewEncoder(w, builder)
	if err := enc.Encode(v); err != nil {
		return nil, 0, err
	}

	threshold := CompressThreshold
	if opts.CompressionThreshold > 0 {
		threshold = opts.CompressionThreshold
	}
	chunkSize := ChunkSize
	if opts.ParallelChunkSize > 0 {
		chunkSize = opts.ParallelChunkSize
	}

	raw := w.Bytes()
	rawSize := len(raw)
	if !shouldCompress(opts.Compress, len(raw), threshold) {
		out := make([]byte, len(raw))
		copy(out, raw)

		return out, rawSize, nil
	}

	out, err := compressChunked(raw, ChunkThreshold, chunkSize)
	if err != nil {
		return nil, 0, err
	}

	return out, rawSize, nil
}

// EncodeAny converts x to a value.Value via value.From (checking
// value.Converter, then falling back to reflection over x's Go kind)
// and encodes the result exactly as Encode would.
func EncodeAny(x any, opts EncodeOptions) ([]byte, error) {
	v, err := value.From(x)
	if err != nil {
		return nil, errs.AtPath("", err)
	}

	return Encode(v, opts)
}

// Decode parses a complete BFAST document, performing framing
// auto-detection: the decoder inspects the first bytes, chooses the
// uncompressed or LZ4 path, and rejects anything that matches neither
// with BadFraming. Any bytes remaining after the single top-level value
// is fully read cause TrailingGarbage.
func Decode(data []byte) (value.Value, error) {
	raw, err := detectAndDecompress(data)
	if err != nil {
		return value.Value{}, err
	}

	r := cursor.NewReader(raw)
	table, err := ReadHeaderAndTable(r)
	if err != nil {
		return value.Value{}, err
	}

	dec := codec.NewDecoder(r, table)
	v, err := dec.Decode()
	if err != nil {
		return value.Value{}, err
	}

	if r.Remaining() != 0 {
		return value.Value{}, errs.AtOffset(r.Offset(), errs.ErrTrailingGarbage)
	}

	return v, nil
}

func detectAndDecompress(data []byte) ([]byte, error) {
	if len(data) >= 2 && data[0] == MagicByte1 && data[1] == MagicByte2 {
		return data, nil
	}
	if IsLZ4Framed(data) {
		raw, err := Decompress(data)
		if err != nil {
			return nil, errs.AtOffset(0, errs.ErrBadFraming)
		}

		return raw, nil
	}

	return nil, errs.AtOffset(0, errs.ErrBadFraming)
}
