// Package errs defines the BFAST error taxonomy: one sentinel value per
// failure category, plus positional wrapper types that attach the byte
// offset (decode) or value-graph path (encode) where the failure was
// detected.
//
// Callers should compare against the sentinels with errors.Is, not against
// the wrapper types directly:
//
//	_, err := bfast.Decode(data)
//	if errors.Is(err, errs.ErrTruncated) {
//	    // ...
//	}
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per category in the BFAST error taxonomy.
var (
	ErrTruncated          = errors.New("bfast: truncated input")
	ErrBadFraming         = errors.New("bfast: bad framing")
	ErrBadVersion         = errors.New("bfast: unsupported header version")
	ErrInvalidUTF8        = errors.New("bfast: invalid utf-8")
	ErrUnknownTag         = errors.New("bfast: unknown tag")
	ErrBadInternID        = errors.New("bfast: interning id out of range")
	ErrUnterminatedObject = errors.New("bfast: unterminated object")
	ErrDepthExceeded      = errors.New("bfast: nesting depth exceeded")
	ErrResourceLimit      = errors.New("bfast: decoded element count exceeded")
	ErrTrailingGarbage    = errors.New("bfast: trailing garbage after top-level value")
	ErrBadUUIDLength      = errors.New("bfast: uuid payload is not 32 hex characters")
	ErrBadDecimal         = errors.New("bfast: malformed decimal payload")
	ErrInternOverflow     = errors.New("bfast: more than 65535 distinct keys")
	ErrKeyTooLong         = errors.New("bfast: object key exceeds 255 bytes")
	ErrUnsupportedType    = errors.New("bfast: value is outside the supported algebra")
)

// DecodeError wraps a decode-time failure with the byte offset in the input
// stream where it was detected.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bfast: decode error at offset %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// AtOffset wraps err as a *DecodeError carrying the given offset. If err is
// nil, AtOffset returns nil.
func AtOffset(offset int, err error) error {
	if err == nil {
		return nil
	}

	return &DecodeError{Offset: offset, Err: err}
}

// EncodeError wraps an encode-time failure with the path in the value graph
// where it was detected. Each EncodeError carries one object key (or ""
// at the top level); a failure inside nested objects is wrapped once per
// enclosing key, e.g. "users" wrapping "email".
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("bfast: encode error: %v", e.Err)
	}

	return fmt.Sprintf("bfast: encode error at %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// AtPath wraps err as an *EncodeError carrying the given value-graph path.
// If err is nil, AtPath returns nil.
func AtPath(path string, err error) error {
	if err == nil {
		return nil
	}

	return &EncodeError{Path: path, Err: err}
}
