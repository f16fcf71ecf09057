package fsst

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestWriteToReadFromFixedLayout(t *testing.T) {
	tbl := Train([][]byte{[]byte("the quick brown fox jumps over the lazy dog, repeatedly")})

	var buf bytes.Buffer
	n, err := tbl.WriteTo(&buf)
	require.NoError(t, err)
	require.EqualValues(t, buf.Len(), n)
	require.GreaterOrEqual(t, buf.Len(), headerSize)

	header := buf.Bytes()[:headerSize]
	require.Equal(t, byte(formatVersion), header[8], "version byte")
	require.Equal(t, byte(littleEndianID), header[9], "endianness tag")
	require.Equal(t, byte(0), header[10], "reserved byte must be zero")
	require.Equal(t, []byte{0, 0, 0, 0}, header[12:16], "reserved padding must be zero")

	var sum int
	for i := 0; i < 8; i++ {
		sum += int(header[i])
	}
	require.Equal(t, tbl.SymbolCount(), sum, "countsByLength must sum to nSymbols")

	var restored Table
	_, err = restored.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, tbl.SymbolCount(), restored.SymbolCount())
}

// TestImportExportFixedPoint checks that import(export(t)) == t, observed
// through compressed output rather than internal struct equality
// (index2's map iteration order is nondeterministic, so two tables holding
// the same learned symbols need not compare byte-for-byte).
func TestImportExportFixedPoint(t *testing.T) {
	corpus := [][]byte{
		[]byte("a recurring phrase that recurs a lot, a lot"),
		[]byte("another line entirely, with different words"),
	}
	tbl := Train(corpus)

	data, err := tbl.MarshalBinary()
	require.NoError(t, err)

	var restored Table
	require.NoError(t, restored.UnmarshalBinary(data))
	require.Equal(t, tbl.SymbolCount(), restored.SymbolCount())

	for _, line := range corpus {
		want := tbl.EncodeAll(line)
		got := restored.EncodeAll(line)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("re-encoded output differs after import/export round trip:\n%s", diff)
		}
	}

	data2, err := restored.MarshalBinary()
	require.NoError(t, err)
	require.True(t, bytes.Equal(data, data2), "re-exporting an imported table must reproduce the same blob")
}

func TestDecoderFromBytesMatchesTable(t *testing.T) {
	tbl := Train([][]byte{[]byte(strings.Repeat("compress me please, compress me please", 5))})
	data, err := tbl.MarshalBinary()
	require.NoError(t, err)

	dec, err := DecoderFromBytes(data)
	require.NoError(t, err)
	require.Equal(t, tbl.SymbolCount(), dec.SymbolCount())

	comp := tbl.EncodeAll([]byte("compress me please"))
	require.Equal(t, tbl.DecodeAll(comp), dec.DecodeAll(comp))
}

func TestReadFromRejectsBadVersion(t *testing.T) {
	tbl := Train([][]byte{[]byte("hello")})
	var buf bytes.Buffer
	_, err := tbl.WriteTo(&buf)
	require.NoError(t, err)

	blob := buf.Bytes()
	blob[8] = formatVersion + 1

	var restored Table
	_, err = restored.ReadFrom(bytes.NewReader(blob))
	require.ErrorIs(t, err, ErrBadVersion)
}

func TestReadFromRejectsBadEndianness(t *testing.T) {
	tbl := Train([][]byte{[]byte("hello")})
	var buf bytes.Buffer
	_, err := tbl.WriteTo(&buf)
	require.NoError(t, err)

	blob := buf.Bytes()
	blob[9] = 1

	var restored Table
	_, err = restored.ReadFrom(bytes.NewReader(blob))
	require.ErrorIs(t, err, ErrBadEndianness)
}

func TestReadFromRejectsTruncatedPayload(t *testing.T) {
	tbl := Train([][]byte{[]byte("a somewhat longer training sentence for more symbols")})
	var buf bytes.Buffer
	_, err := tbl.WriteTo(&buf)
	require.NoError(t, err)

	truncated := buf.Bytes()[:headerSize+1]
	var restored Table
	_, err = restored.ReadFrom(bytes.NewReader(truncated))
	require.ErrorIs(t, err, ErrMalformedTable)
}

func TestUnmarshalBinaryRejectsShortBlob(t *testing.T) {
	var tbl Table
	err := tbl.UnmarshalBinary([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrMalformedTable)
}
