package tag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSmallIntRoundTrip(t *testing.T) {
	for v := uint8(0); v <= 15; v++ {
		if v == 8 {
			// SmallInt(8) == 0x38 == Int64; not a SmallInt-encodable value.
			continue
		}
		b := SmallInt(v)
		require.Equal(t, FamilySmallInt, Classify(b), "tag 0x%02X must classify as SmallInt", b)
		require.Equal(t, int64(v), SmallIntValue(b))
	}
}

func TestInt64TagWinsTheTieBreak(t *testing.T) {
	// 0x38 falls inside the 0x30-0x3F SmallInt nibble range but must
	// classify as Int64, never as SmallInt(8).
	require.Equal(t, FamilyInt64, Classify(Int64))
	require.NotEqual(t, FamilySmallInt, Classify(Int64))
}

func TestClassifyKnownTags(t *testing.T) {
	cases := map[Byte]Family{
		Null:        FamilyNull,
		BoolFalse:   FamilyBool,
		BoolTrue:    FamilyBool,
		Float64:     FamilyFloat64,
		String:      FamilyString,
		List:        FamilyList,
		ObjectStart: FamilyObjectStart,
		ObjectEnd:   FamilyObjectEnd,
		Bytes:       FamilyBytes,
		FloatArray:  FamilyFloatArray,
		Timestamp:   FamilyTimestamp,
		Date:        FamilyDate,
		Time:        FamilyTime,
		UUID:        FamilyUUID,
		Decimal:     FamilyDecimal,
	}

	for b, want := range cases {
		require.Equal(t, want, Classify(b), "tag 0x%02X", b)
	}
}

func TestClassifyRejectsEveryUnlistedByte(t *testing.T) {
	listed := make(map[Byte]bool)
	for b := 0x30; b <= 0x3F; b++ {
		listed[Byte(b)] = true
	}
	for _, b := range []Byte{Null, BoolFalse, BoolTrue, Float64, String, List,
		ObjectStart, ObjectEnd, Bytes, FloatArray, Timestamp, Date, Time, UUID, Decimal} {
		listed[b] = true
	}

	for i := 0; i <= 0xFF; i++ {
		b := Byte(i)
		if listed[b] {
			continue
		}
		require.Equal(t, FamilyUnknown, Classify(b), "byte 0x%02X must be unknown", b)
	}
}

func TestIsSmallInt(t *testing.T) {
	require.True(t, IsSmallInt(0))
	require.True(t, IsSmallInt(7))
	require.True(t, IsSmallInt(9))
	require.True(t, IsSmallInt(15))
	require.False(t, IsSmallInt(8), "8 collides with the Int64 tag byte and must spill to Int64")
	require.False(t, IsSmallInt(16))
	require.False(t, IsSmallInt(-1))
}

func TestHasLengthPrefix(t *testing.T) {
	require.True(t, FamilyString.HasLengthPrefix())
	require.True(t, FamilyBytes.HasLengthPrefix())
	require.True(t, FamilyList.HasLengthPrefix())
	require.True(t, FamilyFloatArray.HasLengthPrefix())
	require.True(t, FamilyUUID.HasLengthPrefix())
	require.False(t, FamilyNull.HasLengthPrefix())
	require.False(t, FamilyBool.HasLengthPrefix())
	require.False(t, FamilySmallInt.HasLengthPrefix())
	require.False(t, FamilyInt64.HasLengthPrefix())
	require.False(t, FamilyObjectEnd.HasLengthPrefix())
}
