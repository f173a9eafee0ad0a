package intern

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bfastfmt/bfast/value"
)

func TestScanInternsNestedObjectKeysOnly(t *testing.T) {
	doc := value.Obj(value.NewObject(
		value.Pair{Key: "user", Value: value.Obj(value.NewObject(
			value.Pair{Key: "name", Value: value.String("not interned")},
			value.Pair{Key: "tags", Value: value.List(
				value.Obj(value.NewObject(value.Pair{Key: "k", Value: value.Int64(1)})),
			)},
		))},
	))

	b := NewBuilder()
	require.NoError(t, Scan(doc, b))

	require.Equal(t, 4, b.Len())
	for _, want := range []string{"user", "name", "tags"} {
		_, err := b.IDOf(want)
		require.NoError(t, err, "expected %q to be interned", want)
	}
	_, err := b.IDOf("k")
	require.NoError(t, err)

	// "not interned" was a string VALUE, not a key; it must not appear.
	for _, key := range b.Table().Entries() {
		require.NotEqual(t, "not interned", key)
	}
}

func TestScanOverFloatArrayIsANoop(t *testing.T) {
	doc := value.FloatArray([]float64{1, 2, 3})

	b := NewBuilder()
	require.NoError(t, Scan(doc, b))
	require.Zero(t, b.Len())
}
