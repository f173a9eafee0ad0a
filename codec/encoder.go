// Package codec implements BFAST's recursive-descent value encoder and
// decoder (the wire-format core, spec component C4). It dispatches on
// value.Kind when encoding and on tag.Family when decoding.
package codec

import (
	"github.com/bfastfmt/bfast/cursor"
	"github.com/bfastfmt/bfast/errs"
	"github.com/bfastfmt/bfast/intern"
	"github.com/bfastfmt/bfast/tag"
	"github.com/bfastfmt/bfast/value"
)

// MaxDepth is the recursive nesting cap enforced on both encode and
// decode, guarding against stack exhaustion from adversarial or
// accidentally self-referential inputs.
const MaxDepth = 512

// Encoder writes a single value.Value, recursively, as BFAST payload
// bytes (tag + body, no header or interning table — that's the frame
// package's job).
type Encoder struct {
	w       *cursor.Writer
	builder *intern.Builder
}

// NewEncoder creates an Encoder that writes into w, resolving object
// keys against builder. The caller is expected to have already run
// intern.Scan over the value being encoded to populate builder.
func NewEncoder(w *cursor.Writer, builder *intern.Builder) *Encoder {
	return &Encoder{w: w, builder: builder}
}

// Encode writes v to the encoder's writer.
func (e *Encoder) Encode(v value.Value) error {
	return e.encode(v, 0)
}

// EncodeAny converts x to a value.Value via value.From (checking
// value.Converter, then falling back to reflection) and writes the
// result. Callers who already hold a value.Value should call Encode
// directly and skip the conversion step.
func (e *Encoder) EncodeAny(x any) error {
	v, err := value.From(x)
	if err != nil {
		return errs.AtPath("", err)
	}

	return e.Encode(v)
}

func (e *Encoder) encode(v value.Value, depth int) error {
	if depth > MaxDepth {
		return errs.AtPath("", errs.ErrDepthExceeded)
	}

	switch v.Kind() {
	case value.KindNull:
		e.w.WriteU8(tag.Null)
	case value.KindBool:
		if v.AsBool() {
			e.w.WriteU8(tag.BoolTrue)
		} else {
			e.w.WriteU8(tag.BoolFalse)
		}
	case value.KindInt64:
		e.encodeInt(v.AsInt64())
	case value.KindFloat64:
		e.w.WriteU8(tag.Float64)
		e.w.WriteF64LE(v.AsFloat64())
	case value.KindString:
		e.encodeLengthPrefixedString(tag.String, v.AsString())
	case value.KindBytes:
		e.encodeLengthPrefixedBytes(tag.Bytes, v.AsBytes())
	case value.KindList:
		return e.encodeList(v.AsList(), depth)
	case value.KindFloatArray:
		return e.encodeFloatArray(v.AsList())
	case value.KindObject:
		return e.encodeObject(v.AsObject(), depth)
	case value.KindTimestamp:
		e.encodeLengthPrefixedString(tag.Timestamp, v.AsString())
	case value.KindDate:
		e.encodeLengthPrefixedString(tag.Date, v.AsString())
	case value.KindTime:
		e.encodeLengthPrefixedString(tag.Time, v.AsString())
	case value.KindUUID:
		return e.encodeUUID(v.AsString())
	case value.KindDecimal:
		return e.encodeDecimal(v.AsString())
	default:
		return errs.AtPath("", errs.ErrUnsupportedType)
	}

	return nil
}

// encodeInt chooses SmallInt for [0,15] except 8, and Int64 otherwise,
// per spec §4.4's compactness rule. 0x38 is never emitted via the
// SmallInt path because tag.IsSmallInt rejects 8 (tag.SmallInt itself
// would turn 8 into 0x38, the Int64 tag).
func (e *Encoder) encodeInt(v int64) {
	if tag.IsSmallInt(v) {
		e.w.WriteU8(tag.SmallInt(uint8(v))) //nolint:gosec
		return
	}

	e.w.WriteU8(tag.Int64)
	e.w.WriteI64LE(v)
}

func (e *Encoder) encodeLengthPrefixedString(t tag.Byte, s string) {
	e.w.WriteU8(t)
	e.w.WriteU32LE(uint32(len(s))) //nolint:gosec
	e.w.WriteString(s)
}

func (e *Encoder) encodeLengthPrefixedBytes(t tag.Byte, b []byte) {
	e.w.WriteU8(t)
	e.w.WriteU32LE(uint32(len(b))) //nolint:gosec
	e.w.WriteBytes(b)
}

func (e *Encoder) encodeList(items []value.Value, depth int) error {
	e.w.WriteU8(tag.List)
	e.w.WriteU32LE(uint32(len(items))) //nolint:gosec
	for _, item := range items {
		if err := e.encode(item, depth+1); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) encodeFloatArray(items []value.Value) error {
	e.w.WriteU8(tag.FloatArray)
	e.w.WriteU32LE(uint32(len(items))) //nolint:gosec
	for _, item := range items {
		if item.Kind() != value.KindFloat64 {
			return errs.AtPath("", errs.ErrUnsupportedType)
		}
		e.w.WriteF64LE(item.AsFloat64())
	}

	return nil
}

func (e *Encoder) encodeObject(obj *value.Object, depth int) error {
	e.w.WriteU8(tag.ObjectStart)
	for _, pair := range obj.Pairs() {
		id, err := e.builder.IDOf(pair.Key)
		if err != nil {
			return errs.AtPath(pair.Key, err)
		}
		e.w.WriteU32LE(id)
		if err := e.encode(pair.Value, depth+1); err != nil {
			return errs.AtPath(pair.Key, err)
		}
	}
	e.w.WriteU8(tag.ObjectEnd)

	return nil
}

func (e *Encoder) encodeUUID(canonical string) error {
	hex, err := uuidCanonicalToHex(canonical)
	if err != nil {
		return err
	}
	e.encodeLengthPrefixedString(tag.UUID, hex)

	return nil
}

func (e *Encoder) encodeDecimal(canonical string) error {
	if !value.ValidDecimal(canonical) {
		return errs.AtPath("", errs.ErrBadDecimal)
	}
	e.encodeLengthPrefixedString(tag.Decimal, canonical)

	return nil
}
