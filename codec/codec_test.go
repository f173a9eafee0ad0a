package codec

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/bfastfmt/bfast/cursor"
	"github.com/bfastfmt/bfast/errs"
	"github.com/bfastfmt/bfast/intern"
	"github.com/bfastfmt/bfast/tag"
	"github.com/bfastfmt/bfast/value"
)

// encodeDecode round-trips v through a fresh interning table, returning
// the decoded value.
func encodeDecode(t *testing.T, v value.Value) value.Value {
	t.Helper()

	b := intern.NewBuilder()
	require.NoError(t, intern.Scan(v, b))

	w := cursor.NewWriterSize(64)
	enc := NewEncoder(w, b)
	require.NoError(t, enc.Encode(v))

	r := cursor.NewReader(w.Bytes())
	dec := NewDecoder(r, b.Table())
	got, err := dec.Decode()
	require.NoError(t, err)

	return got
}

func TestRoundTripScalars(t *testing.T) {
	require.Equal(t, value.KindNull, encodeDecode(t, value.Null()).Kind())

	got := encodeDecode(t, value.Bool(true))
	require.True(t, got.AsBool())

	got = encodeDecode(t, value.Int64(7))
	require.Equal(t, int64(7), got.AsInt64())

	got = encodeDecode(t, value.Int64(-12345))
	require.Equal(t, int64(-12345), got.AsInt64())

	got = encodeDecode(t, value.Float64(3.14159))
	require.InDelta(t, 3.14159, got.AsFloat64(), 0)

	got = encodeDecode(t, value.String("héllo wörld"))
	require.Equal(t, "héllo wörld", got.AsString())
}

func TestSmallIntUsesCompactTag(t *testing.T) {
	b := intern.NewBuilder()
	w := cursor.NewWriterSize(8)
	enc := NewEncoder(w, b)
	require.NoError(t, enc.Encode(value.Int64(5)))

	require.Equal(t, 1, w.Len(), "SmallInt must be a single byte")
	require.Equal(t, tag.SmallInt(5), w.Bytes()[0])
}

func TestInt64BoundaryNeverMisclassifiedAsSmallInt(t *testing.T) {
	// 0x38 as a raw byte coincides with the SmallInt nibble range, but
	// any value outside [0,15] must use the 9-byte Int64 encoding, and
	// decoding it back must never silently read it as SmallInt(8).
	got := encodeDecode(t, value.Int64(56)) // 56 == 0x38 as a value, unrelated to tag byte 0x38
	require.Equal(t, int64(56), got.AsInt64())

	got = encodeDecode(t, value.Int64(16)) // smallest value above the SmallInt range
	require.Equal(t, int64(16), got.AsInt64())
}

func TestInt64ValueEightSpillsToInt64Tag(t *testing.T) {
	// 8 is the one value in [0,15] that is not SmallInt-encodable: its
	// natural tag byte 0x30|8 == 0x38, the Int64 tag. Encoding it must
	// spill to the 9-byte Int64 form, and decoding must recover 8
	// exactly rather than misreading a neighbouring value.
	b := intern.NewBuilder()
	w := cursor.NewWriterSize(16)
	enc := NewEncoder(w, b)
	require.NoError(t, enc.Encode(value.Int64(8)))

	require.Equal(t, 9, w.Len(), "value 8 must use the 9-byte Int64 encoding, not a 1-byte SmallInt tag")
	require.Equal(t, tag.Int64, w.Bytes()[0])

	got := encodeDecode(t, value.Int64(8))
	require.Equal(t, int64(8), got.AsInt64())
}

func TestRoundTripList(t *testing.T) {
	in := value.List(value.Int64(1), value.String("two"), value.Bool(false))
	got := encodeDecode(t, in)

	items := got.AsList()
	require.Len(t, items, 3)
	require.Equal(t, int64(1), items[0].AsInt64())
	require.Equal(t, "two", items[1].AsString())
	require.False(t, items[2].AsBool())
}

func TestRoundTripFloatArray(t *testing.T) {
	in := value.FloatArray([]float64{1, 2, 3.5})
	got := encodeDecode(t, in)

	require.Equal(t, value.KindFloatArray, got.Kind())
	items := got.AsList()
	require.Len(t, items, 3)
	require.InDelta(t, 3.5, items[2].AsFloat64(), 0)
}

func TestDecoderAcceptsListTagForFloatPayload(t *testing.T) {
	// Encoders may prefer the array tag for homogeneous float runs, but
	// decoders must accept a plain List of floats as logically identical.
	in := value.List(value.Float64(1), value.Float64(2))
	got := encodeDecode(t, in)

	require.Equal(t, value.KindList, got.Kind())
	require.Len(t, got.AsList(), 2)
}

func TestRoundTripObjectPreservesOrderAndLastWins(t *testing.T) {
	in := value.Obj(value.NewObject(
		value.Pair{Key: "a", Value: value.Int64(1)},
		value.Pair{Key: "b", Value: value.Int64(2)},
		value.Pair{Key: "a", Value: value.Int64(3)},
	))

	got := encodeDecode(t, in)
	obj := got.AsObject()

	require.Equal(t, 3, obj.Len())
	v, ok := obj.Lookup("a")
	require.True(t, ok)
	require.Equal(t, int64(3), v.AsInt64(), "last occurrence of a duplicate key must win")
}

func TestRoundTripUUID(t *testing.T) {
	id := uuid.New()
	got := encodeDecode(t, value.FromUUID(id))

	require.Equal(t, value.KindUUID, got.Kind())
	require.Equal(t, id.String(), got.AsString())
}

func TestRoundTripDecimal(t *testing.T) {
	got := encodeDecode(t, value.Decimal("1234.56"))
	require.Equal(t, "1234.56", got.AsString())
}

func TestEncodeRejectsMalformedDecimal(t *testing.T) {
	b := intern.NewBuilder()
	w := cursor.NewWriterSize(8)
	enc := NewEncoder(w, b)

	err := enc.Encode(value.Decimal("not-a-number"))
	require.ErrorIs(t, err, errs.ErrBadDecimal)
}

func TestUnterminatedObjectFailsOnTruncation(t *testing.T) {
	b := intern.NewBuilder()
	id, err := b.Intern("k")
	require.NoError(t, err)
	require.Zero(t, id)

	w := cursor.NewWriterSize(16)
	w.WriteU8(tag.ObjectStart)
	w.WriteU32LE(id)
	w.WriteU8(tag.Null)
	// deliberately omit the 0x7F sentinel

	r := cursor.NewReader(w.Bytes())
	dec := NewDecoder(r, b.Table())
	_, err = dec.Decode()
	require.ErrorIs(t, err, errs.ErrUnterminatedObject)
}

func TestBadInternIDFailsDecode(t *testing.T) {
	table := intern.FromEntries([]string{"only"})

	w := cursor.NewWriterSize(16)
	w.WriteU8(tag.ObjectStart)
	w.WriteU32LE(5) // out of range
	w.WriteU8(tag.Null)
	w.WriteU8(tag.ObjectEnd)

	r := cursor.NewReader(w.Bytes())
	dec := NewDecoder(r, table)
	_, err := dec.Decode()
	require.ErrorIs(t, err, errs.ErrBadInternID)
}

func TestUnknownTagFailsDecode(t *testing.T) {
	r := cursor.NewReader([]byte{0x00})
	dec := NewDecoder(r, intern.FromEntries(nil))
	_, err := dec.Decode()
	require.ErrorIs(t, err, errs.ErrUnknownTag)
}

func TestWithMaxDepthLowersDecodeDepthCap(t *testing.T) {
	v := value.List(value.List(value.Int64(1)))

	b := intern.NewBuilder()
	w := cursor.NewWriterSize(64)
	enc := NewEncoder(w, b)
	require.NoError(t, enc.Encode(v))

	r := cursor.NewReader(w.Bytes())
	dec := NewDecoder(r, b.Table(), WithMaxDepth(1))
	_, err := dec.Decode()
	require.ErrorIs(t, err, errs.ErrDepthExceeded)
}

func TestWithMaxElementsLowersDecodeResourceCap(t *testing.T) {
	v := value.List(value.Int64(1), value.Int64(2), value.Int64(3))

	b := intern.NewBuilder()
	w := cursor.NewWriterSize(64)
	enc := NewEncoder(w, b)
	require.NoError(t, enc.Encode(v))

	r := cursor.NewReader(w.Bytes())
	dec := NewDecoder(r, b.Table(), WithMaxElements(2))
	_, err := dec.Decode()
	require.ErrorIs(t, err, errs.ErrResourceLimit)
}

func TestEncoderEncodeAnyConvertsHostValues(t *testing.T) {
	b := intern.NewBuilder()
	host := map[string]any{"ok": true}
	require.NoError(t, intern.Scan(mustFrom(t, host), b))

	w := cursor.NewWriterSize(64)
	enc := NewEncoder(w, b)
	require.NoError(t, enc.EncodeAny(host))

	r := cursor.NewReader(w.Bytes())
	dec := NewDecoder(r, b.Table())
	got, err := dec.Decode()
	require.NoError(t, err)

	v, ok := got.AsObject().Lookup("ok")
	require.True(t, ok)
	require.True(t, v.AsBool())
}

func mustFrom(t *testing.T, x any) value.Value {
	t.Helper()
	v, err := value.From(x)
	require.NoError(t, err)

	return v
}

func TestDepthExceededOnDeeplyNestedList(t *testing.T) {
	v := value.Int64(0)
	for i := 0; i <= MaxDepth+1; i++ {
		v = value.List(v)
	}

	b := intern.NewBuilder()
	w := cursor.NewWriterSize(1024)
	enc := NewEncoder(w, b)
	err := enc.Encode(v)
	require.ErrorIs(t, err, errs.ErrDepthExceeded)
}
