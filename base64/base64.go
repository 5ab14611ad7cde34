// Package base64 implements RFC 4648 Base64 on top of the codec engine.
//
// Decoding classifies characters with arithmetic range tests, so the standard ('+', '/')
// and URL-safe ('-', '_') symbols are both accepted whatever the configuration. Encoding
// selects the table from the configuration and can run in constant-time mode.
package base64

import (
	codec "github.com/05nelsonm/encoding-sub001"
)

const (
	// Name is the identity of the alphabet.
	Name = "Base64"

	// PaddingChar terminates encoded data whose length is not a multiple of 4.
	PaddingChar = '='

	MaxDecodeEmit = 3
	MaxEncodeEmit = 4

	defaultTable = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	urlSafeTable = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
)

// Config is the immutable Base64 configuration.
type Config struct {
	codec.Config
	encodeToURLSafe bool `codec:"encodeToUrlSafe"`
	padEncoded      bool `codec:"padEncoded"`
	constantTime    bool `codec:"isConstantTime"`
}

var _ codec.Configuration = Config{}

type options struct {
	params       codec.ConfigParams
	urlSafe      bool
	pad          bool
	constantTime bool
}

// Option customizes a Config.
type Option func(*options)

// WithLeniency sets the whitespace policy used when decoding. Default: codec.SkipWhitespace.
func WithLeniency(l codec.Leniency) Option {
	return func(o *options) { o.params.Leniency = l }
}

// WithLineBreakInterval inserts a line break every n encoded characters. Default: 0 (off).
func WithLineBreakInterval(n uint8) Option {
	return func(o *options) { o.params.LineBreakInterval = n }
}

// WithURLSafe encodes with '-' and '_' instead of '+' and '/'.
func WithURLSafe(urlSafe bool) Option {
	return func(o *options) { o.urlSafe = urlSafe }
}

// WithPadding controls whether encoded output is padded with '='. Default: true.
func WithPadding(pad bool) Option {
	return func(o *options) { o.pad = pad }
}

// WithConstantTime makes every encoded character a full table scan.
func WithConstantTime(ct bool) Option {
	return func(o *options) { o.constantTime = ct }
}

// WithBackFillBuffers zeroes over-allocated scratch buffers before they are discarded.
// Default: true.
func WithBackFillBuffers(b bool) Option {
	return func(o *options) { o.params.BackFillBuffers = b }
}

// NewConfig returns a Config with opts applied over the defaults.
func NewConfig(opts ...Option) (Config, error) {
	o := options{
		params: codec.ConfigParams{
			Leniency:        codec.SkipWhitespace,
			PaddingChar:     PaddingChar,
			BackFillBuffers: true,
		},
		pad: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.params.MaxDecodeEmit = MaxDecodeEmit
	o.params.MaxEncodeEmit = MaxEncodeEmit

	base, err := codec.NewConfig(o.params)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Config:          base,
		encodeToURLSafe: o.urlSafe,
		padEncoded:      o.pad,
		constantTime:    o.constantTime,
	}, nil
}

func (c Config) EncodeToURLSafe() bool { return c.encodeToURLSafe }
func (c Config) PadEncoded() bool      { return c.padEncoded }
func (c Config) IsConstantTime() bool  { return c.constantTime }

// EncodedSize implements codec.SizeRule: 4 characters per 3 bytes, the tail is padded to 4
// or takes modulus+1 characters without padding.
func (c Config) EncodedSize(n int64) (int64, error) {
	out, ok := codec.MulExact(n/3, 4)
	if !ok {
		return 0, codec.SizeOverflow(n)
	}
	rem := n % 3
	if rem == 0 {
		return out, nil
	}
	tail := rem + 1
	if c.padEncoded {
		tail = 4
	}
	if out, ok = codec.AddExact(out, tail); !ok {
		return 0, codec.SizeOverflow(n)
	}
	return out, nil
}

// DecodedSize implements codec.SizeRule: 6 bits per character.
func (c Config) DecodedSize(n int64) (int64, error) {
	return n/4*3 + n%4*6/8, nil
}

// DecodedSizeOf implements codec.SizeRule.
func (c Config) DecodedSizeOf(n int64, _ codec.Input) (int64, error) {
	return c.DecodedSize(n)
}

// EncodeOutMaxSize returns the encoded length of n bytes, line breaks included.
func (c Config) EncodeOutMaxSize(n int64) (int64, error) {
	return codec.EncodeOutMaxSize(c, n, c.LineBreakInterval())
}

// DecodeOutMaxSize returns the maximum decoded length of n characters.
func (c Config) DecodeOutMaxSize(n int64) (int64, error) {
	return codec.DecodeOutMaxSize(c, n)
}

// DecodeOutMaxSizeOrFail returns the maximum decoded length of in.
func (c Config) DecodeOutMaxSizeOrFail(in codec.Input) (int64, error) {
	return codec.DecodeOutMaxSizeOrFail(c, in)
}

func (c Config) String() string { return codec.FormatConfig(Name, c) }
