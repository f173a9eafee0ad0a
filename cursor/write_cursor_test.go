package cursor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterGrowsAndResets(t *testing.T) {
	w := NewWriterSize(2)
	w.WriteBytes([]byte("0123456789"))
	require.Equal(t, 10, w.Len())

	w.Reset()
	require.Zero(t, w.Len())
}

func TestWriterReserveDoesNotChangeLen(t *testing.T) {
	w := NewWriterSize(4)
	w.Reserve(1000)
	require.Zero(t, w.Len())
}

func TestWriterBytesReflectsWrites(t *testing.T) {
	w := NewWriterSize(4)
	w.WriteU8(1)
	w.WriteU8(2)

	require.Equal(t, []byte{1, 2}, w.Bytes())
}
