package base85

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat32s(t *testing.T) {
	negZero := float32(math.Copysign(0, -1))

	tests := []struct {
		vals []float32
		text string
	}{
		{[]float32{2}, "8TFfd"},
		{[]float32{0, 0, 3.484236717224121, 0}, "zz8^RH(z"},
		{[]float32{negZero, 0.5, -1}, "M/iTO89+]caRT=d"},
		{[]float32{1, 0, 1, 1}, "yzyy"},
	}
	for _, tt := range tests {
		text := Arnold.EncodeFloat32s(tt.vals)
		assert.Equal(t, tt.text, text)

		got, err := Arnold.DecodeFloat32s(text)
		require.NoError(t, err)
		// compare bit patterns so that -0 and 0 differ
		if diff := cmp.Diff(bitsOf(tt.vals), bitsOf(got)); diff != "" {
			t.Errorf("DecodeFloat32s(%q) mismatch (-want +got):\n%s", text, diff)
		}
	}
}

func bitsOf(vals []float32) []uint32 {
	out := make([]uint32, len(vals))
	for i, v := range vals {
		out[i] = math.Float32bits(v)
	}
	return out
}

func TestUint32s(t *testing.T) {
	vals := []uint32{0, 1, 0xffffffff, 0x3f800000}
	text := Arnold.EncodeUint32s(vals)
	assert.Equal(t, "z$$$$%v;Z0$y", text)

	for _, enc := range encodings {
		got, err := enc.DecodeUint32s(enc.EncodeUint32s(vals))
		require.NoError(t, err)
		if diff := cmp.Diff(vals, got); diff != "" {
			t.Errorf("%s: round trip mismatch (-want +got):\n%s", enc.Name(), diff)
		}
	}

	// network byte order puts the most significant byte first
	assert.Equal(t, Standard.EncodeToString([]byte{0, 0, 0, 1}), Standard.EncodeUint32s([]uint32{1}))
}

func TestArrayDecodeError(t *testing.T) {
	_, err := Arnold.DecodeFloat32s("8TFf")
	assert.Equal(t, InvalidLengthError(4), err)
	_, err = Arnold.DecodeUint32s("~")
	assert.Equal(t, InvalidCharacterError(0), err)
}
