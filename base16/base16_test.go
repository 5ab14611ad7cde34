package base16

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codec "github.com/05nelsonm/encoding-sub001"
)

func TestEncode(t *testing.T) {
	got, err := StdEncoding.EncodeToString([]byte{0x00, 0x7f, 0xde, 0xad, 0xbe, 0xef})
	require.NoError(t, err)
	assert.Equal(t, "007FDEADBEEF", got)

	lower := MustNew(WithLowercase(true), WithConstantTime(true))
	for n := 0; n < 300; n++ {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i * 73)
		}
		got, err := lower.EncodeToString(data)
		require.NoError(t, err)
		require.Equal(t, hex.EncodeToString(data), got)
	}
}

func TestDecode(t *testing.T) {
	got, err := StdEncoding.DecodeString("deAD be\nEF")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, got)

	for _, in := range []string{"ABC", "0G", "=="} {
		_, err := StdEncoding.DecodeString(in)
		assert.ErrorIs(t, err, codec.ErrMalformedInput, in)
	}
}

func TestLineBreaksAndSizes(t *testing.T) {
	enc := MustNew(WithLineBreakInterval(8))
	data := []byte(strings.Repeat("z", 10))

	got, err := enc.EncodeToString(data)
	require.NoError(t, err)
	assert.Equal(t, "7A7A7A7A\n7A7A7A7A\n7A7A", got)

	size, err := enc.Config().EncodeOutMaxSize(int64(len(data)))
	require.NoError(t, err)
	assert.EqualValues(t, len(got), size)

	back, err := enc.DecodeString(got)
	require.NoError(t, err)
	assert.Equal(t, data, back)

	_, err = enc.Config().EncodedSize(1 << 62)
	assert.ErrorIs(t, err, codec.ErrSize)
}

func TestConfig(t *testing.T) {
	want := `Base16.Config [
    isLenient: true
    lineBreakInterval: 0
    paddingChar: null
    maxDecodeEmit: 1
    maxEncodeEmit: 2
    backFillBuffers: true
    encodeToLowercase: false
    isConstantTime: false
]`
	assert.Equal(t, want, StdEncoding.String())
	assert.True(t, codec.Equal(StdEncoding, MustNew()))
	assert.False(t, codec.Equal(StdEncoding, MustNew(WithLowercase(true))))
}
