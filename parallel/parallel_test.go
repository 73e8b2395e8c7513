package parallel

import (
	"context"
	"encoding/binary"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/thehowl/base85"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var encodings = []*base85.Encoding{base85.Standard, base85.RFC1924, base85.Arnold}

func randomWords(r *rand.Rand, n int) []byte {
	raw := make([]byte, n)
	r.Read(raw)
	// runs of words with shorthands, little-endian so they hit Arnold
	for i := 0; i+12 <= n; i += 40 {
		binary.LittleEndian.PutUint32(raw[i:], 0)
		binary.LittleEndian.PutUint32(raw[i+4:], math.Float32bits(1))
		binary.LittleEndian.PutUint32(raw[i+8:], 0)
	}
	return raw
}

func TestEncodeMatchesSequential(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	ctx := context.Background()
	for _, enc := range encodings {
		for _, size := range []int{0, 3, 4, 17, 400, 4099} {
			raw := randomWords(r, size)
			want := enc.EncodeToString(raw)
			for _, opts := range []Options{
				{},
				{Workers: 1, ChunkWords: 1},
				{Workers: 3, ChunkWords: 2},
				{Workers: 8, ChunkWords: 7},
			} {
				got, err := Encode(ctx, enc, raw, opts)
				require.NoError(t, err)
				assert.Equal(t, want, got, "%s, %d bytes, %+v", enc.Name(), size, opts)
			}
		}
	}
}

func TestDecodeMatchesSequential(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	ctx := context.Background()
	for _, enc := range encodings {
		for _, size := range []int{0, 4, 16, 400, 4096} {
			raw := randomWords(r, size)
			text := enc.EncodeToString(raw)
			for _, opts := range []Options{
				{},
				{Workers: 1, ChunkWords: 1},
				{Workers: 4, ChunkWords: 3},
			} {
				got, err := Decode(ctx, enc, text, opts)
				require.NoError(t, err)
				assert.Equal(t, raw, got, "%s, %d bytes, %+v", enc.Name(), size, opts)
			}
		}
	}
}

func TestDecodeMisalignedShorthand(t *testing.T) {
	// "$%$$$" "$$$$+" "8TFfd" with the run across the first boundary
	// shortened, followed by aligned shorthands
	text := "$%z$$+8TFfdzyz"
	want, err := base85.Arnold.DecodeString(text)
	require.NoError(t, err)

	got, err := Decode(context.Background(), base85.Arnold, text, Options{Workers: 2, ChunkWords: 1})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Len(t, got, 24)
}

func TestDecodeErrorsMatchSequential(t *testing.T) {
	inputs := []string{
		"8TFfd8TFfd8T~fd8TFfd",
		"8TFfdz8TF",
		"8TFfdxxxxx8TFfd",
		"8T~fdxxxxx8T",
		"zzzzzzzzv;Z0%",
		"8TFfd8TFfd8TFfd8TF~",
		"8TFfd8TFfd8TFfdxxxxx8",
	}
	for _, in := range inputs {
		_, want := base85.Arnold.DecodeString(in)
		require.Error(t, want, in)
		for _, words := range []int{1, 2, 3} {
			got, err := Decode(context.Background(), base85.Arnold, in, Options{Workers: 4, ChunkWords: words})
			assert.Nil(t, got)
			assert.Equal(t, want, err, "%q, %d words per chunk", in, words)
		}
	}
}

func TestSplitBoundaries(t *testing.T) {
	text := "8TFfdz8TFfdyy8TFfd$%z$$+"
	spans, units := split(base85.Arnold, text, 1)
	assert.Equal(t, int64(40), units)

	var prevHi, prevOut int
	for _, sp := range spans {
		assert.Equal(t, prevHi, sp.lo)
		assert.Equal(t, prevOut, sp.outLo)
		prevHi, prevOut = sp.hi, sp.outHi
	}
	assert.Equal(t, len(text), prevHi)
	assert.Equal(t, 32, prevOut)
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	raw := make([]byte, 1<<12)
	_, err := Encode(ctx, base85.Arnold, raw, Options{ChunkWords: 8})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = Decode(ctx, base85.Arnold, "zzzz", Options{ChunkWords: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func BenchmarkEncode(b *testing.B) {
	raw := randomWords(rand.New(rand.NewSource(9)), 1<<22)
	ctx := context.Background()
	b.SetBytes(int64(len(raw)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Encode(ctx, base85.Arnold, raw, Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	raw := randomWords(rand.New(rand.NewSource(9)), 1<<22)
	text := base85.Arnold.EncodeToString(raw)
	ctx := context.Background()
	b.SetBytes(int64(len(raw)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(ctx, base85.Arnold, text, Options{}); err != nil {
			b.Fatal(err)
		}
	}
}
