package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	valid := ConfigParams{Leniency: SkipWhitespace, LineBreakInterval: 64, PaddingChar: '=', MaxDecodeEmit: 3, MaxEncodeEmit: 4}

	t.Run("Valid", func(t *testing.T) {
		cfg, err := NewConfig(valid)
		require.NoError(t, err)
		assert.Equal(t, SkipWhitespace, cfg.Leniency())
		assert.Equal(t, 64, cfg.LineBreakInterval())
		assert.Equal(t, 3, cfg.MaxDecodeEmit())
		assert.Equal(t, 4, cfg.MaxEncodeEmit())
		assert.Equal(t, 5, cfg.MaxEncodeEmitWithLineBreaks())
		pad, ok := cfg.PaddingChar()
		assert.True(t, ok)
		assert.Equal(t, byte('='), pad)
		assert.Equal(t, cfg, cfg.Base())
	})

	t.Run("RejectDisablesLineBreaks", func(t *testing.T) {
		p := valid
		p.Leniency = RejectWhitespace
		cfg, err := NewConfig(p)
		require.NoError(t, err)
		assert.Zero(t, cfg.LineBreakInterval())
		assert.Equal(t, 4, cfg.MaxEncodeEmitWithLineBreaks())
	})

	t.Run("NoPadding", func(t *testing.T) {
		p := valid
		p.PaddingChar = 0
		cfg, err := NewConfig(p)
		require.NoError(t, err)
		_, ok := cfg.PaddingChar()
		assert.False(t, ok)
	})

	invalid := map[string]func(p *ConfigParams){
		"ZeroDecodeEmit":     func(p *ConfigParams) { p.MaxDecodeEmit = 0 },
		"LargeEncodeEmit":    func(p *ConfigParams) { p.MaxEncodeEmit = 256 },
		"UnknownLeniency":    func(p *ConfigParams) { p.Leniency = 7 },
		"WhitespacePadding":  func(p *ConfigParams) { p.PaddingChar = '\t' },
		"NegativeEncodeEmit": func(p *ConfigParams) { p.MaxEncodeEmit = -1 },
	}
	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			p := valid
			mutate(&p)
			_, err := NewConfig(p)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestLeniency(t *testing.T) {
	assert.Equal(t, "null", PassWhitespace.String())
	assert.Equal(t, "true", SkipWhitespace.String())
	assert.Equal(t, "false", RejectWhitespace.String())

	for _, c := range []byte("\n\r \t") {
		assert.True(t, IsWhitespace(c))
	}
	assert.False(t, IsWhitespace('\v'))
	assert.False(t, IsWhitespace('A'))
}

// labeledConfig exercises the tag rules of FormatConfig.
type labeledConfig struct {
	hexConfig
	urlSafe bool  `codec:"encodeToUrlSafe"`
	check   byte  `codec:"checkSymbol,char"`
	width   int16 `codec:"width"`
	hidden  bool
}

func TestFormatConfig(t *testing.T) {
	base, err := NewConfig(ConfigParams{Leniency: SkipWhitespace, LineBreakInterval: 64, PaddingChar: '=', MaxDecodeEmit: 3, MaxEncodeEmit: 4, BackFillBuffers: true})
	require.NoError(t, err)
	cfg := labeledConfig{hexConfig: hexConfig{Config: base}, urlSafe: true, width: -3, hidden: true}

	want := `Test.Config [
    isLenient: true
    lineBreakInterval: 64
    paddingChar: '='
    maxDecodeEmit: 3
    maxEncodeEmit: 4
    backFillBuffers: true
    encodeToUrlSafe: true
    checkSymbol: null
    width: -3
]`
	assert.Equal(t, want, FormatConfig("Test", cfg))
	assert.Equal(t, want, FormatConfig("Test", cfg), "cached rendering is identical")

	t.Run("HashFollowsRendering", func(t *testing.T) {
		other := cfg
		other.hidden = false
		assert.Equal(t, HashConfig("Test", cfg), HashConfig("Test", other), "untagged fields do not contribute")

		other.urlSafe = false
		assert.NotEqual(t, HashConfig("Test", cfg), HashConfig("Test", other))
		assert.NotEqual(t, HashConfig("Test", cfg), HashConfig("Other", cfg))
	})
}

func TestEqual(t *testing.T) {
	a := newHex(t, ConfigParams{Leniency: SkipWhitespace})
	b := newHex(t, ConfigParams{Leniency: SkipWhitespace})
	c := newHex(t, ConfigParams{Leniency: RejectWhitespace})

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
	assert.False(t, Equal(a, nil))
	assert.True(t, Equal(nil, nil))
}
