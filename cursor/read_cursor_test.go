package cursor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bfastfmt/bfast/errs"
)

func TestReaderPrimitives(t *testing.T) {
	w := NewWriterSize(32)
	w.WriteU8(0xAB)
	w.WriteU16LE(0x1234)
	w.WriteU16BE(0x1234)
	w.WriteU32LE(0xDEADBEEF)
	w.WriteI64LE(-42)
	w.WriteF64LE(3.25)
	w.WriteString("hi")

	r := NewReader(w.Bytes())

	b, err := r.ReadU8()
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), b)

	u16le, err := r.ReadU16LE()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), u16le)

	u16be, err := r.ReadU16BE()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), u16be)

	u32, err := r.ReadU32LE()
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), u32)

	i64, err := r.ReadI64LE()
	require.NoError(t, err)
	require.Equal(t, int64(-42), i64)

	f64, err := r.ReadF64LE()
	require.NoError(t, err)
	require.InDelta(t, 3.25, f64, 0)

	s, err := r.ReadUTF8(2)
	require.NoError(t, err)
	require.Equal(t, "hi", s)

	require.Zero(t, r.Remaining())
}

func TestReaderTruncation(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})

	_, err := r.ReadU32LE()
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestReaderInvalidUTF8(t *testing.T) {
	r := NewReader([]byte{0xFF, 0xFE})

	_, err := r.ReadUTF8(2)
	require.ErrorIs(t, err, errs.ErrInvalidUTF8)
}

func TestReaderPeekDoesNotAdvance(t *testing.T) {
	r := NewReader([]byte{0x42})

	b1, err := r.PeekU8()
	require.NoError(t, err)
	require.Equal(t, byte(0x42), b1)
	require.Equal(t, 1, r.Remaining())

	b2, err := r.ReadU8()
	require.NoError(t, err)
	require.Equal(t, b1, b2)
	require.Zero(t, r.Remaining())
}

func TestReaderOffsetTracksConsumption(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	require.Equal(t, 0, r.Offset())

	_, err := r.ReadBytes(3)
	require.NoError(t, err)
	require.Equal(t, 3, r.Offset())
}
