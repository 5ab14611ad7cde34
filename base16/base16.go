// Package base16 implements RFC 4648 Base16 (hexadecimal) on top of the codec engine.
package base16

import (
	"strings"

	codec "github.com/05nelsonm/encoding-sub001"
)

const (
	// Name is the identity of the alphabet.
	Name = "Base16"

	MaxDecodeEmit = 1
	MaxEncodeEmit = 2

	table = "0123456789ABCDEF"
)

// Config is the immutable Base16 configuration.
type Config struct {
	codec.Config
	encodeToLowercase bool `codec:"encodeToLowercase"`
	constantTime      bool `codec:"isConstantTime"`
}

var _ codec.Configuration = Config{}

type options struct {
	params       codec.ConfigParams
	lowercase    bool
	constantTime bool
}

// Option customizes a Config.
type Option func(*options)

// WithLeniency sets the whitespace policy used when decoding. Default: codec.SkipWhitespace.
func WithLeniency(l codec.Leniency) Option {
	return func(o *options) { o.params.Leniency = l }
}

// WithLineBreakInterval inserts a line break every n encoded characters.
func WithLineBreakInterval(n uint8) Option {
	return func(o *options) { o.params.LineBreakInterval = n }
}

// WithLowercase encodes a-f instead of A-F.
func WithLowercase(lower bool) Option {
	return func(o *options) { o.lowercase = lower }
}

// WithConstantTime makes every encoded character a full table scan.
func WithConstantTime(ct bool) Option {
	return func(o *options) { o.constantTime = ct }
}

// WithBackFillBuffers zeroes over-allocated scratch buffers before they are discarded.
func WithBackFillBuffers(b bool) Option {
	return func(o *options) { o.params.BackFillBuffers = b }
}

// NewConfig returns a Config with opts applied over the defaults.
func NewConfig(opts ...Option) (Config, error) {
	o := options{
		params: codec.ConfigParams{
			Leniency:        codec.SkipWhitespace,
			BackFillBuffers: true,
		},
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
	return Config{Config: base, encodeToLowercase: o.lowercase, constantTime: o.constantTime}, nil
}

func (c Config) EncodeToLowercase() bool { return c.encodeToLowercase }
func (c Config) IsConstantTime() bool    { return c.constantTime }

// EncodedSize implements codec.SizeRule: two characters per byte.
func (c Config) EncodedSize(n int64) (int64, error) {
	out, ok := codec.MulExact(n, 2)
	if !ok {
		return 0, codec.SizeOverflow(n)
	}
	return out, nil
}

// DecodedSize and DecodedSizeOf implement codec.SizeRule: one byte per two characters.
func (c Config) DecodedSize(n int64) (int64, error)                  { return n / 2, nil }
func (c Config) DecodedSizeOf(n int64, _ codec.Input) (int64, error) { return n / 2, nil }

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

// Encoding is a Base16 alphabet bound to a Config.
type Encoding struct {
	config Config
	table  codec.EncodeTable
}

var _ codec.Encoding = (*Encoding)(nil)

// StdEncoding encodes in uppercase.
var StdEncoding = MustNew()

// New returns an Encoding for a Config built from opts.
func New(opts ...Option) (*Encoding, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg), nil
}

// MustNew is New that panics on an invalid option set.
func MustNew(opts ...Option) *Encoding {
	e, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// FromConfig returns an Encoding for cfg.
func FromConfig(cfg Config) *Encoding {
	chars := table
	if cfg.encodeToLowercase {
		chars = strings.ToLower(chars)
	}
	return &Encoding{config: cfg, table: codec.NewEncodeTable(chars, cfg.constantTime)}
}

func (e *Encoding) Name() string                       { return Name }
func (e *Encoding) Config() Config                     { return e.config }
func (e *Encoding) Configuration() codec.Configuration { return e.config }
func (e *Encoding) String() string                     { return e.config.String() }
func (e *Encoding) Hash() uint64                       { return codec.HashConfig(Name, e.config) }

// NewDecoderFeed returns a Feed decoding characters into out.
func (e *Encoding) NewDecoderFeed(out codec.Output) *codec.DecoderFeed {
	return codec.NewDecoderFeed(e.config.Config, out, func(out codec.Output) codec.DecodeRule {
		return &decodeRule{out: out}
	})
}

// NewEncoderFeed returns a Feed encoding bytes into out.
func (e *Encoding) NewEncoderFeed(out codec.Output) *codec.EncoderFeed {
	return codec.NewEncoderFeed(e.config.Config, out, func(out codec.Output) codec.BlockRule {
		return &encodeRule{out: out, table: e.table}
	})
}

// EncodeToString returns the Base16 encoding of src.
func (e *Encoding) EncodeToString(src []byte) (string, error) {
	return codec.EncodeToString(e, src)
}

// DecodeString returns the bytes represented by s.
func (e *Encoding) DecodeString(s string) ([]byte, error) {
	return codec.DecodeString(e, s)
}

type decodeRule struct {
	out codec.Output
}

func (r *decodeRule) BlockSize() int { return 2 }

func (r *decodeRule) Translate(c byte) (byte, bool, error) {
	switch {
	case codec.IsWhitespace(c):
		return 0, false, nil
	case c >= '0' && c <= '9':
		return c - '0', true, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true, nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true, nil
	}
	return 0, false, codec.InvalidChar(Name, c)
}

func (r *decodeRule) Flush(b []byte) { r.out.Output(b[0]<<4 | b[1]) }

func (r *decodeRule) Finalize(b []byte) error {
	if len(b) == 1 {
		return codec.Truncated(Name, 1)
	}
	return nil
}

type encodeRule struct {
	out   codec.Output
	table codec.EncodeTable
}

func (r *encodeRule) BlockSize() int { return 1 }

func (r *encodeRule) Flush(b []byte) {
	r.out.Output(r.table.Get(b[0] >> 4))
	r.out.Output(r.table.Get(b[0] & 0x0F))
}

func (r *encodeRule) Finalize([]byte) error { return nil }
