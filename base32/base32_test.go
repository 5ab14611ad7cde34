package base32

import (
	stdbase32 "encoding/base32"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	codec "github.com/05nelsonm/encoding-sub001"
)

func sample(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*13 + 101)
	}
	return b
}

func TestRFC4648Vectors(t *testing.T) {
	vectors := []struct{ in, std, hex string }{
		{"", "", ""},
		{"f", "MY======", "CO======"},
		{"fo", "MZXQ====", "CPNG===="},
		{"foo", "MZXW6===", "CPNMU==="},
		{"foob", "MZXW6YQ=", "CPNMUOG="},
		{"fooba", "MZXW6YTB", "CPNMUOJ1"},
		{"foobar", "MZXW6YTBOI======", "CPNMUOJ1E8======"},
	}
	for _, v := range vectors {
		got, err := StdEncoding.EncodeToString([]byte(v.in))
		require.NoError(t, err)
		assert.Equal(t, v.std, got)

		got, err = HexEncoding.EncodeToString([]byte(v.in))
		require.NoError(t, err)
		assert.Equal(t, v.hex, got)

		back, err := StdEncoding.DecodeString(strings.ToLower(v.std))
		require.NoError(t, err, "decoding is case-insensitive")
		assert.Equal(t, v.in, string(back))

		back, err = HexEncoding.DecodeString(v.hex)
		require.NoError(t, err)
		assert.Equal(t, v.in, string(back))
	}
}

func TestMatchesStandardLibrary(t *testing.T) {
	crockford := stdbase32.NewEncoding(crockfordTable).WithPadding(stdbase32.NoPadding)
	cases := []struct {
		name string
		enc  *Encoding
		std  *stdbase32.Encoding
	}{
		{"Default", StdEncoding, stdbase32.StdEncoding},
		{"Hex", HexEncoding, stdbase32.HexEncoding},
		{"DefaultNoPad", MustNew(Default, WithPadding(false)), stdbase32.StdEncoding.WithPadding(stdbase32.NoPadding)},
		{"HexConstantTime", MustNew(Hex, WithConstantTime(true)), stdbase32.HexEncoding},
		{"Crockford", CrockfordEncoding, crockford},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for n := 0; n < 120; n++ {
				data := sample(n)
				got, err := c.enc.EncodeToString(data)
				require.NoError(t, err)
				require.Equal(t, c.std.EncodeToString(data), got, "n=%d", n)

				back, err := c.enc.DecodeString(got)
				require.NoError(t, err)
				require.Equal(t, data, back)
			}
		})
	}
}

func TestLowercase(t *testing.T) {
	enc := MustNew(Default, WithLowercase(true))
	got, err := enc.EncodeToString([]byte("foobar"))
	require.NoError(t, err)
	assert.Equal(t, "mzxw6ytboi======", got)

	back, err := StdEncoding.DecodeString(got)
	require.NoError(t, err)
	assert.Equal(t, "foobar", string(back))
}

func TestTruncated(t *testing.T) {
	for _, in := range []string{"M", "MZX", "MZXW6Y", "MZXW6YTBM"} {
		_, err := StdEncoding.DecodeString(in)
		assert.ErrorIs(t, err, codec.ErrMalformedInput, in)
	}
	for _, in := range []string{"MY", "MZXQ", "MZXW6", "MZXW6YQ"} {
		_, err := StdEncoding.DecodeString(in)
		assert.NoError(t, err, in)
	}
}

func TestInvalidCharacters(t *testing.T) {
	_, err := StdEncoding.DecodeString("MZXW1===")
	assert.ErrorIs(t, err, codec.ErrMalformedInput, "1 is not in the RFC 4648 alphabet")

	_, err = HexEncoding.DecodeString("CPNW====")
	assert.ErrorIs(t, err, codec.ErrMalformedInput, "W is beyond V")

	_, err = StdEncoding.DecodeString("MY==MY==")
	assert.ErrorIs(t, err, codec.ErrMalformedInput)
}

func TestSizesAreExact(t *testing.T) {
	encodings := []*Encoding{
		StdEncoding,
		MustNew(Default, WithPadding(false), WithLineBreakInterval(9)),
		MustNew(Hex, WithLineBreakInterval(64)),
		CrockfordEncoding,
		MustNew(Crockford, WithCheckSymbol('~'), WithLineBreakInterval(5)),
	}
	for _, enc := range encodings {
		for n := 0; n <= 2000; n += 1 + n/40 {
			data := sample(n)
			want, err := enc.Config().EncodeOutMaxSize(int64(n))
			require.NoError(t, err)

			got, err := codec.EncodeToBytes(enc, data)
			require.NoError(t, err)
			require.EqualValues(t, want, len(got), "n=%d %s", n, enc.Name())

			back, err := codec.Decode(enc, got)
			require.NoError(t, err)
			require.Equal(t, data, back)
		}
	}
}

func TestConfig(t *testing.T) {
	t.Run("CheckSymbolOnlyForCrockford", func(t *testing.T) {
		_, err := New(Default, WithCheckSymbol('*'))
		assert.ErrorIs(t, err, codec.ErrInvalidArgument)
	})

	t.Run("InvalidCheckSymbol", func(t *testing.T) {
		_, err := New(Crockford, WithCheckSymbol('#'))
		assert.ErrorIs(t, err, codec.ErrInvalidArgument)
	})

	t.Run("UnknownVariant", func(t *testing.T) {
		_, err := New(Variant("Base36"))
		assert.ErrorIs(t, err, codec.ErrInvalidArgument)
	})

	t.Run("CrockfordIsNeverPadded", func(t *testing.T) {
		cfg := CrockfordEncoding.Config()
		assert.False(t, cfg.PadEncoded())
		_, ok := cfg.PaddingChar()
		assert.False(t, ok)
	})

	t.Run("String", func(t *testing.T) {
		enc := MustNew(Crockford, WithCheckSymbol('*'), WithLowercase(true))
		want := `Base32.Crockford.Config [
    isLenient: true
    lineBreakInterval: 0
    paddingChar: null
    maxDecodeEmit: 5
    maxEncodeEmit: 8
    backFillBuffers: true
    encodeToLowercase: true
    padEncoded: false
    checkSymbol: '*'
    isConstantTime: false
]`
		assert.Equal(t, want, enc.String())
		assert.Equal(t, "Base32.Crockford", enc.Name())
	})

	t.Run("Equality", func(t *testing.T) {
		assert.True(t, codec.Equal(StdEncoding, MustNew(Default)))
		assert.False(t, codec.Equal(StdEncoding, HexEncoding))
		assert.NotEqual(t, StdEncoding.Hash(), HexEncoding.Hash())
	})
}

// --- Crockford Test Suite ---

type CrockfordTestSuite struct {
	suite.Suite
	checked *Encoding
}

func (s *CrockfordTestSuite) SetupTest() {
	s.checked = MustNew(Crockford, WithCheckSymbol('*'))
}

func (s *CrockfordTestSuite) TestAmbiguousCharacters() {
	for _, in := range []string{"CSQPYRK1E8", "CSQPYRKIE8", "csqpyrkle8", "CS-QPY-RKiE8"} {
		got, err := CrockfordEncoding.DecodeString(in)
		s.Require().NoError(err, in)
		s.Equal("foobar", string(got), in)
	}

	zero, err := CrockfordEncoding.DecodeString("00")
	s.Require().NoError(err)
	oh, err := CrockfordEncoding.DecodeString("Oo")
	s.Require().NoError(err)
	s.Equal(zero, oh)
}

func (s *CrockfordTestSuite) TestUIsNotASymbol() {
	_, err := CrockfordEncoding.DecodeString("CSUPYRK1E8")
	s.ErrorIs(err, codec.ErrMalformedInput)
}

func (s *CrockfordTestSuite) TestCheckSymbolRoundTrip() {
	got, err := s.checked.EncodeToString([]byte("foobar"))
	s.Require().NoError(err)
	s.Equal("CSQPYRK1E8*", got)

	back, err := s.checked.DecodeString(got)
	s.Require().NoError(err)
	s.Equal("foobar", string(back))

	back, err = s.checked.DecodeString("CSQPYRK1E8*\n")
	s.Require().NoError(err, "trailing whitespace is skipped")
	s.Equal("foobar", string(back))

	pass := MustNew(Crockford, WithCheckSymbol('*'), WithLeniency(codec.PassWhitespace))
	back, err = pass.DecodeString("CSQPY RK1E8*\r\n")
	s.Require().NoError(err, "whitespace passed to the alphabet is dropped")
	s.Equal("foobar", string(back))
}

func (s *CrockfordTestSuite) TestCheckSymbolCaseInsensitiveU() {
	enc := MustNew(Crockford, WithCheckSymbol('U'))
	got, err := enc.EncodeToString([]byte("foo"))
	s.Require().NoError(err)
	s.Equal("CSQPYU", got)

	back, err := enc.DecodeString("csqpyu")
	s.Require().NoError(err)
	s.Equal("foo", string(back))
}

func (s *CrockfordTestSuite) TestCheckSymbolFailsFast() {
	cfg := s.checked.Config()
	for _, in := range []string{"CSQPYRK1E8", "CSQPYRK1E8~", "CSQPYRK1E8*0"} {
		_, err := cfg.DecodeOutMaxSizeOrFail(codec.NewInput(in))
		s.ErrorIs(err, codec.ErrMalformedInput, in)
	}

	_, err := CrockfordEncoding.Config().DecodeOutMaxSizeOrFail(codec.NewInput("CSQPYRK1E8*"))
	s.ErrorIs(err, codec.ErrMalformedInput, "a check symbol is rejected when none is configured")

	_, err = codec.DecodeBuffered(s.checked, codec.NewInput("CSQPYRK1E8"), false, 64, func([]byte) error {
		s.Fail("action must not run")
		return nil
	})
	s.ErrorIs(err, codec.ErrMalformedInput)
}

func (s *CrockfordTestSuite) TestCheckSymbolVerifiedWhileStreaming() {
	r, err := codec.NewDecoder(s.checked, strings.NewReader("CSQPYRK1E8"))
	s.Require().NoError(err)
	_, err = io.ReadAll(r)
	s.ErrorIs(err, codec.ErrMalformedInput, "missing check symbol")

	r, err = codec.NewDecoder(s.checked, strings.NewReader("CSQPY*RK1E8"))
	s.Require().NoError(err)
	_, err = io.ReadAll(r)
	s.ErrorIs(err, codec.ErrMalformedInput, "data after check symbol")

	f := s.checked.NewDecoderFeed(nil)
	for _, c := range []byte("CSQPY**") {
		if err = f.Consume(c); err != nil {
			break
		}
	}
	s.ErrorIs(err, codec.ErrMalformedInput, "repeated check symbol")
}

func (s *CrockfordTestSuite) TestCheckSymbolOnlyAtDoFinal() {
	var out strings.Builder
	f := s.checked.NewEncoderFeed(codec.OutputFunc(func(b byte) { out.WriteByte(b) }))
	for _, b := range []byte("foo") {
		s.Require().NoError(f.Consume(b))
	}
	s.Require().NoError(f.Flush())
	for _, b := range []byte("bar") {
		s.Require().NoError(f.Consume(b))
	}
	s.Require().NoError(f.DoFinal())
	s.Equal("CSQPY"+"C9GQ4*", out.String())
}

func TestCrockford(t *testing.T) {
	suite.Run(t, new(CrockfordTestSuite))
}
