// Package bfast provides a compact, self-describing binary serialization
// format and its reference codec.
//
// BFAST documents are tag-prefixed binary encodings of a small value
// algebra (null, bool, integers, floats, strings, lists, objects, byte
// strings, dense float arrays, and a handful of textual special types:
// timestamps, dates, times, UUIDs, decimals). Object keys are resolved
// through a per-document string interning table instead of being
// repeated inline, which keeps documents with many similarly-shaped
// objects small without a schema.
//
// # Basic usage
//
// Encoding a value and decoding it back:
//
//	doc := value.Obj(value.NewObject(
//	    value.Pair{Key: "name", Value: value.String("ada")},
//	    value.Pair{Key: "age", Value: value.Int64(36)},
//	))
//
//	data, err := bfast.Encode(doc, bfast.EncodeOptions{})
//	if err != nil {
//	    // ...
//	}
//
//	decoded, err := bfast.Decode(data)
//	if err != nil {
//	    // ...
//	}
//
// # Compression
//
// Encode(v, bfast.EncodeOptions{Compress: true}) requests LZ4 framing of
// the output. Documents under the reference threshold are still emitted
// uncompressed regardless of the hint, since frame overhead would
// dominate. Decode auto-detects which framing a document uses by
// inspecting its leading bytes; callers never need to know in advance.
//
// # Package structure
//
// This package is a thin convenience wrapper over frame.Encode and
// frame.Decode. Callers who need direct control over the interning
// table, the recursive value codec, or the byte cursors use the value,
// intern, codec, cursor, tag, and frame packages directly.
package bfast

import (
	"github.com/bfastfmt/bfast/errs"
	"github.com/bfastfmt/bfast/frame"
	"github.com/bfastfmt/bfast/internal/hash"
	"github.com/bfastfmt/bfast/value"
)

// MIMEType is the media type BFAST documents should be served and
// accepted as over HTTP. Servers SHOULD set this on responses; clients
// SHOULD accept any response body beginning with the BFAST or LZ4
// magic bytes regardless of declared Content-Type.
const MIMEType = "application/x-bfast"

// EncodeOptions mirrors frame.EncodeOptions; it is the only option the
// wire format recognizes.
type EncodeOptions = frame.EncodeOptions

// EncodeOption configures EncodeOptions via the functional options
// pattern, for callers that prefer WithCompress(true) over constructing
// EncodeOptions directly.
type EncodeOption = frame.EncodeOption

// WithCompress requests LZ4 framing of the encoded output, subject to
// the format's minimum-size threshold for compression.
func WithCompress(compress bool) EncodeOption {
	return frame.WithCompress(compress)
}

// WithCompressionThreshold overrides the minimum uncompressed size at
// or above which a Compress-requesting encode actually compresses.
func WithCompressionThreshold(n int) EncodeOption {
	return frame.WithCompressionThreshold(n)
}

// WithParallelChunkSize overrides the chunk size used once chunked
// parallel compression kicks in.
func WithParallelChunkSize(n int) EncodeOption {
	return frame.WithParallelChunkSize(n)
}

// Encode serializes v to a complete, self-contained BFAST document.
func Encode(v value.Value, opts EncodeOptions) ([]byte, error) {
	return frame.Encode(v, opts)
}

// EncodeAny converts x to a value.Value (via value.Converter, then
// reflection over x's Go kind) before encoding it, for callers that
// would rather hand BFAST a host struct than build a value.Value tree.
func EncodeAny(x any, opts EncodeOptions) ([]byte, error) {
	return frame.EncodeAny(x, opts)
}

// CompressionStats mirrors frame.CompressionStats.
type CompressionStats = frame.CompressionStats

// EncodeWithStats behaves like Encode, additionally reporting
// CompressionStats for the call.
func EncodeWithStats(v value.Value, opts EncodeOptions) ([]byte, CompressionStats, error) {
	return frame.EncodeWithStats(v, opts)
}

// EncodeWith serializes v using functional options instead of a literal
// EncodeOptions value, e.g. bfast.EncodeWith(v, bfast.WithCompress(true)).
func EncodeWith(v value.Value, opts ...EncodeOption) ([]byte, error) {
	o, err := frame.NewEncodeOptions(opts...)
	if err != nil {
		return nil, err
	}

	return frame.Encode(v, o)
}

// Decode parses a complete BFAST document, auto-detecting whether it is
// LZ4-framed.
func Decode(data []byte) (value.Value, error) {
	return frame.Decode(data)
}

// Fingerprint returns a non-normative xxHash64 digest of data. It is a
// diagnostic convenience for callers who want a stable content hash of
// an encoded document (e.g. for cache keys); it is not part of the wire
// format and two different BFAST implementations have no obligation to
// agree on it beyond both using xxHash64 on the same bytes.
func Fingerprint(data []byte) uint64 {
	return hash.Bytes(data)
}

// Errors re-exports the error sentinels so callers can write
// errors.Is(err, bfast.ErrTruncated) without importing the errs package
// directly.
var (
	ErrTruncated          = errs.ErrTruncated
	ErrBadFraming         = errs.ErrBadFraming
	ErrBadVersion         = errs.ErrBadVersion
	ErrInvalidUTF8        = errs.ErrInvalidUTF8
	ErrUnknownTag         = errs.ErrUnknownTag
	ErrBadInternID        = errs.ErrBadInternID
	ErrUnterminatedObject = errs.ErrUnterminatedObject
	ErrDepthExceeded      = errs.ErrDepthExceeded
	ErrResourceLimit      = errs.ErrResourceLimit
	ErrTrailingGarbage    = errs.ErrTrailingGarbage
	ErrBadUUIDLength      = errs.ErrBadUUIDLength
	ErrBadDecimal         = errs.ErrBadDecimal
	ErrInternOverflow     = errs.ErrInternOverflow
	ErrKeyTooLong         = errs.ErrKeyTooLong
	ErrUnsupportedType    = errs.ErrUnsupportedType
)
