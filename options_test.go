package fsst

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithSeedIsDeterministic(t *testing.T) {
	inputs := [][]byte{
		[]byte("alpha beta gamma delta epsilon zeta eta theta"),
		[]byte("alpha beta gamma delta epsilon zeta eta theta"),
		[]byte("a different line entirely to widen the sample"),
	}

	tbl1 := Train(inputs, WithSeed(99))
	tbl2 := Train(inputs, WithSeed(99))

	var b1, b2 bytes.Buffer
	_, err := tbl1.WriteTo(&b1)
	require.NoError(t, err)
	_, err = tbl2.WriteTo(&b2)
	require.NoError(t, err)
	require.True(t, bytes.Equal(b1.Bytes(), b2.Bytes()), "same seed must produce identical tables")
}

func TestDifferentSeedsBothRoundtrip(t *testing.T) {
	// A corpus large enough that buildSample actually subsamples (rather
	// than using every input verbatim) so differing seeds can diverge.
	var inputs [][]byte
	for i := 0; i < 4096; i++ {
		inputs = append(inputs, []byte("line number filler text that repeats a little bit"))
	}

	tbl1 := Train(inputs, WithSeed(1), WithSampleSize(1<<10))
	tbl2 := Train(inputs, WithSeed(2), WithSampleSize(1<<10))

	// Not asserting inequality (two seeds may coincidentally train the same
	// table on a narrow corpus) — only that both still roundtrip correctly,
	// exercising the seed plumbing end to end.
	input := inputs[0]
	require.Equal(t, input, tbl1.DecodeAll(tbl1.EncodeAll(input)))
	require.Equal(t, input, tbl2.DecodeAll(tbl2.EncodeAll(input)))
}

func TestWithSampleSizeOverridesDefault(t *testing.T) {
	cfg := defaultTrainConfig()
	require.Equal(t, defaultSampleTarget, cfg.sampleTarget)

	WithSampleSize(4096)(&cfg)
	require.Equal(t, 4096, cfg.sampleTarget)

	// Non-positive values are ignored, not applied.
	WithSampleSize(0)(&cfg)
	require.Equal(t, 4096, cfg.sampleTarget)
	WithSampleSize(-1)(&cfg)
	require.Equal(t, 4096, cfg.sampleTarget)
}

func TestWithZeroTerminatedIsRecordedButInert(t *testing.T) {
	cfg := defaultTrainConfig()
	require.False(t, cfg.zeroTerminated)
	WithZeroTerminated()(&cfg)
	require.True(t, cfg.zeroTerminated)

	// The option changes no observable compression behavior.
	input := []byte("parity option should not change encoded output")
	withOpt := Train([][]byte{input}, WithZeroTerminated())
	without := Train([][]byte{input})
	require.Equal(t, without.EncodeAll(input), withOpt.EncodeAll(input))
}
