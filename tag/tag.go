// Package tag defines the BFAST tag byte catalogue: the single-octet
// values that open every encoded value, and the bit tests decoders use to
// classify them.
//
// Tags are a single octet. The upper nibble identifies the family; the
// lower nibble may carry a value (SmallInt) or a selector. See the table
// in this file's comments for the full, normative assignment.
package tag

// Byte is a single BFAST tag octet.
type Byte = byte

// The normative tag catalogue.
const (
	Null = Byte(0x10) // no trailing bytes

	BoolFalse = Byte(0x20) // no trailing bytes
	BoolTrue  = Byte(0x21) // no trailing bytes

	// SmallInt occupies 0x30..0x3F except 0x38, which is reserved for
	// Int64. The encoded value is the low nibble of the tag byte, so the
	// encodable set is {0-7, 9-15}: 15 code points, not 16.
	smallIntBase     = Byte(0x30)
	smallIntMax      = 15
	smallIntReserved = 8 // 0x30|8 == 0x38 == Int64; never SmallInt-encodable

	Int64 = Byte(0x38) // 8 bytes, little-endian signed

	Float64 = Byte(0x40) // 8 bytes, little-endian IEEE-754

	String = Byte(0x50) // u32 length, then UTF-8 bytes

	List = Byte(0x60) // u32 length, then N values

	ObjectStart = Byte(0x70) // key/value pairs, terminated by ObjectEnd
	ObjectEnd   = Byte(0x7F) // sentinel; never a value head

	Bytes = Byte(0x80) // u32 length, then opaque bytes

	FloatArray = Byte(0x90) // u32 count, then count*8 bytes, little-endian

	Timestamp = Byte(0xD1) // u32 length, then ISO-8601 UTF-8
	Date      = Byte(0xD2) // u32 length, then ISO-8601 UTF-8
	Time      = Byte(0xD3) // u32 length, then ISO-8601 UTF-8
	UUID      = Byte(0xD4) // u32 length (=32), then lowercase hex UTF-8
	Decimal   = Byte(0xD5) // u32 length, then canonical decimal UTF-8
)

// SmallInt returns the tag byte for the given small integer, which must
// be in {0-7, 9-15}. Callers must validate the range themselves (see
// IsSmallInt); SmallInt does not, and SmallInt(8) would collide with the
// Int64 tag.
func SmallInt(v uint8) Byte {
	return smallIntBase | v
}

// IsSmallInt reports whether v is in the encodable SmallInt range,
// {0-7, 9-15}. 8 is excluded: smallIntBase|8 == 0x38, the Int64 tag, so
// an encoder choosing SmallInt for 8 would collide with Int64 on the
// wire. Encoders must spill 8 to the Int64 representation.
func IsSmallInt(v int64) bool {
	return v >= 0 && v <= smallIntMax && v != smallIntReserved
}

// SmallIntValue extracts the integer value carried by a SmallInt tag byte.
// The caller must have already established (via Classify) that b is a
// SmallInt tag.
func SmallIntValue(b Byte) int64 {
	return int64(b &^ 0xF0)
}

// Family enumerates the tag families a decoder dispatches on.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyNull
	FamilyBool
	FamilySmallInt
	FamilyInt64
	FamilyFloat64
	FamilyString
	FamilyList
	FamilyObjectStart
	FamilyObjectEnd
	FamilyBytes
	FamilyFloatArray
	FamilyTimestamp
	FamilyDate
	FamilyTime
	FamilyUUID
	FamilyDecimal
)

// Classify maps a tag byte to its family.
//
// The SmallInt family overlaps Int64 at the bit-pattern level: 0x38 falls
// inside the 0x30-0x3F nibble range that would otherwise mean SmallInt(8).
// Int64 is therefore tested for exact equality with 0x38 BEFORE the
// 0xF0-masked SmallInt test runs — reversing this order would silently
// misclassify every Int64 value as SmallInt(8). Encoders must never emit
// 0x38 as a SmallInt tag for the same reason.
func Classify(b Byte) Family {
	switch {
	case b == Null:
		return FamilyNull
	case b == BoolFalse || b == BoolTrue:
		return FamilyBool
	case b == Int64:
		return FamilyInt64
	case b&0xF0 == 0x30:
		return FamilySmallInt
	case b == Float64:
		return FamilyFloat64
	case b == String:
		return FamilyString
	case b == List:
		return FamilyList
	case b == ObjectStart:
		return FamilyObjectStart
	case b == ObjectEnd:
		return FamilyObjectEnd
	case b == Bytes:
		return FamilyBytes
	case b == FloatArray:
		return FamilyFloatArray
	case b == Timestamp:
		return FamilyTimestamp
	case b == Date:
		return FamilyDate
	case b == Time:
		return FamilyTime
	case b == UUID:
		return FamilyUUID
	case b == Decimal:
		return FamilyDecimal
	default:
		return FamilyUnknown
	}
}

// HasLengthPrefix reports whether the family's wire representation starts
// with a little-endian u32 length/count field immediately after the tag
// byte. This covers String, Bytes, List, FloatArray, and all five
// special-type string tags (Timestamp, Date, Time, UUID, Decimal).
func (f Family) HasLengthPrefix() bool {
	switch f {
	case FamilyString, FamilyBytes, FamilyList, FamilyFloatArray,
		FamilyTimestamp, FamilyDate, FamilyTime, FamilyUUID, FamilyDecimal:
		return true
	default:
		return false
	}
}
