// Package value defines BFAST's logical value algebra: the set of Go
// types a document can encode to and decode from, independent of the
// wire representation (see package codec for that).
package value

import "fmt"

// Kind identifies which variant of Value a given instance holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt64
	KindFloat64
	KindString
	KindList
	KindObject
	KindBytes
	KindFloatArray
	KindTimestamp
	KindDate
	KindTime
	KindUUID
	KindDecimal
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt64:
		return "Int64"
	case KindFloat64:
		return "Float64"
	case KindString:
		return "String"
	case KindList:
		return "List"
	case KindObject:
		return "Object"
	case KindBytes:
		return "Bytes"
	case KindFloatArray:
		return "FloatArray"
	case KindTimestamp:
		return "Timestamp"
	case KindDate:
		return "Date"
	case KindTime:
		return "Time"
	case KindUUID:
		return "UUID"
	case KindDecimal:
		return "Decimal"
	default:
		return "Unknown"
	}
}

// Value is a BFAST document value. Exactly one of the typed accessors
// below is meaningful for a given Kind; callers switch on Kind before
// reading.
//
// Value is intentionally a closed, concrete struct rather than an
// interface: the codec dispatches on Kind with a plain switch, which
// keeps the recursive-descent encoder and decoder free of per-node
// allocations for type assertions.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	s     string // String, Timestamp, Date, Time, UUID (canonical), Decimal
	bytes []byte
	list  []Value
	obj   *Object
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Null is the BFAST null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int64 wraps a signed 64-bit integer. The encoder chooses SmallInt or
// Int64 wire representation automatically based on magnitude.
func Int64(i int64) Value { return Value{kind: KindInt64, i: i} }

// Float64 wraps an IEEE-754 binary64 float.
func Float64(f float64) Value { return Value{kind: KindFloat64, f: f} }

// String wraps a UTF-8 string value (not an object key; keys live in
// the interning table and are referenced through Object).
func String(s string) Value { return Value{kind: KindString, s: s} }

// List wraps an ordered sequence of values.
func List(items ...Value) Value { return Value{kind: KindList, list: items} }

// Bytes wraps an opaque byte string.
func Bytes(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

// FloatArray wraps a dense, homogeneous run of float64 values, encoded
// under the array tag rather than as a generic List.
func FloatArray(fs []float64) Value {
	list := make([]Value, len(fs))
	for i, f := range fs {
		list[i] = Float64(f)
	}

	return Value{kind: KindFloatArray, list: list}
}

// Timestamp wraps an ISO-8601 instant string. Callers that hold a
// time.Time should format it themselves (RFC3339Nano) before calling
// this constructor; the value package does not import "time" so hosts
// without a native instant type pay no cost.
func Timestamp(iso8601 string) Value { return Value{kind: KindTimestamp, s: iso8601} }

// Date wraps an ISO-8601 calendar date string, e.g. "2026-08-06".
func Date(iso8601 string) Value { return Value{kind: KindDate, s: iso8601} }

// Time wraps an ISO-8601 time-of-day string, e.g. "13:04:05".
func Time(iso8601 string) Value { return Value{kind: KindTime, s: iso8601} }

// UUID wraps a canonical, hyphenated UUID string
// ("8-4-4-4-12" lowercase hex). Use FromUUID to build one from
// github.com/google/uuid.
func UUID(canonical string) Value { return Value{kind: KindUUID, s: canonical} }

// Decimal wraps a canonical decimal string matching the grammar
// -?[0-9]+(\.[0-9]+)?([eE][-+]?[0-9]+)?. Construction does not validate;
// the codec validates on encode and decode.
func Decimal(canonical string) Value { return Value{kind: KindDecimal, s: canonical} }

// Obj wraps an Object.
func Obj(o *Object) Value { return Value{kind: KindObject, obj: o} }

// AsBool returns v's boolean payload. Callers must check Kind first.
func (v Value) AsBool() bool { return v.b }

// AsInt64 returns v's integer payload.
func (v Value) AsInt64() int64 { return v.i }

// AsFloat64 returns v's float payload.
func (v Value) AsFloat64() float64 { return v.f }

// AsString returns v's string payload, valid for String, Timestamp,
// Date, Time, UUID, and Decimal.
func (v Value) AsString() string { return v.s }

// AsBytes returns v's byte-string payload.
func (v Value) AsBytes() []byte { return v.bytes }

// AsList returns v's element slice, valid for both List and FloatArray.
func (v Value) AsList() []Value { return v.list }

// AsObject returns v's Object payload.
func (v Value) AsObject() *Object { return v.obj }

// Pair is one key-value entry of an Object, in wire/iteration order.
type Pair struct {
	Key   string
	Value Value
}

// Object is an ordered multimap-by-position of key-value pairs. Wire
// bytes may contain duplicate keys; NewObject and Lookup apply
// last-occurrence-wins semantics per spec, while Pairs preserves the
// raw wire order (including duplicates) for callers that need it.
type Object struct {
	pairs []Pair
	index map[string]int // key -> index of the LAST occurrence in pairs
}

// NewObject builds an Object from pairs in iteration order. Later
// duplicate keys shadow earlier ones in Lookup, matching decode
// semantics, without removing the earlier pair from Pairs.
func NewObject(pairs ...Pair) *Object {
	o := &Object{pairs: pairs, index: make(map[string]int, len(pairs))}
	for i, p := range pairs {
		o.index[p.Key] = i
	}

	return o
}

// Len returns the number of pairs, including shadowed duplicates.
func (o *Object) Len() int { return len(o.pairs) }

// Pairs returns the object's pairs in wire order, duplicates included.
func (o *Object) Pairs() []Pair { return o.pairs }

// Lookup returns the value bound to key under last-occurrence-wins
// semantics, and whether key was present at all.
func (o *Object) Lookup(key string) (Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}

	return o.pairs[i].Value, true
}

// Append adds a pair, updating the last-occurrence index.
func (o *Object) Append(key string, v Value) {
	o.index[key] = len(o.pairs)
	o.pairs = append(o.pairs, Pair{Key: key, Value: v})
}

// Converter lets a host type supply its own BFAST representation
// instead of being reflected over. From (and the EncodeAny family built
// on it) checks for this interface before falling back to
// reflection-based conversion.
type Converter interface {
	ToBFAST() (Value, error)
}

// ErrUnsupportedHostType is returned by reflection-based conversion
// helpers when a host value has no BFAST representation.
type ErrUnsupportedHostType struct {
	GoType string
}

func (e *ErrUnsupportedHostType) Error() string {
	return fmt.Sprintf("bfast: unsupported host type %s", e.GoType)
}
