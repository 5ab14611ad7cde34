// Package base32 implements the RFC 4648 Base32 and Base32 Extended Hex alphabets and
// Crockford's Base32 on top of the codec engine.
//
// Decoding is case-insensitive for every variant. Crockford additionally maps I and L to 1,
// O to 0, ignores hyphens, and supports a trailing check symbol.
package base32

import (
	"fmt"

	codec "github.com/05nelsonm/encoding-sub001"
)

// Variant selects one of the Base32 alphabets.
type Variant string

const (
	Default   Variant = "Default"
	Hex       Variant = "Hex"
	Crockford Variant = "Crockford"
)

const (
	// PaddingChar terminates Default and Hex output whose length is not a multiple of 8.
	PaddingChar = '='

	MaxDecodeEmit = 5
	MaxEncodeEmit = 8

	defaultTable   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"
	hexTable       = "0123456789ABCDEFGHIJKLMNOPQRSTUV"
	crockfordTable = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
)

// tailChars maps the number of trailing bytes to the number of characters they encode to.
var tailChars = [5]int64{0, 2, 4, 5, 7}

// IsCheckSymbol reports whether c may be used as a Crockford check symbol.
func IsCheckSymbol(c byte) bool {
	switch c {
	case '*', '~', '$', '=', 'U', 'u':
		return true
	}
	return false
}

// Config is the immutable Base32 configuration.
type Config struct {
	codec.Config
	variant           Variant `codec:"-"`
	encodeToLowercase bool    `codec:"encodeToLowercase"`
	padEncoded        bool    `codec:"padEncoded"`
	checkSymbol       byte    `codec:"checkSymbol,char"`
	constantTime      bool    `codec:"isConstantTime"`
}

var _ codec.Configuration = Config{}

type options struct {
	params       codec.ConfigParams
	lowercase    bool
	pad          bool
	checkSymbol  byte
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

// WithLowercase encodes letters in lowercase.
func WithLowercase(lower bool) Option {
	return func(o *options) { o.lowercase = lower }
}

// WithPadding controls '=' padding of Default and Hex output. Default: true. Crockford
// output is never padded.
func WithPadding(pad bool) Option {
	return func(o *options) { o.pad = pad }
}

// WithCheckSymbol appends c to Crockford output and requires it as the last character when
// decoding. c must satisfy IsCheckSymbol; 0 disables the check.
func WithCheckSymbol(c byte) Option {
	return func(o *options) { o.checkSymbol = c }
}

// WithConstantTime makes every encoded character a full table scan.
func WithConstantTime(ct bool) Option {
	return func(o *options) { o.constantTime = ct }
}

// WithBackFillBuffers zeroes over-allocated scratch buffers before they are discarded.
func WithBackFillBuffers(b bool) Option {
	return func(o *options) { o.params.BackFillBuffers = b }
}

// NewConfig returns a Config for variant with opts applied over the defaults.
func NewConfig(variant Variant, opts ...Option) (Config, error) {
	o := options{
		params: codec.ConfigParams{
			Leniency:        codec.SkipWhitespace,
			BackFillBuffers: true,
		},
		pad: true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	switch variant {
	case Default, Hex:
		if o.checkSymbol != 0 {
			return Config{}, fmt.Errorf("%w: check symbol is only supported by %s", codec.ErrInvalidArgument, Crockford)
		}
		o.params.PaddingChar = PaddingChar
	case Crockford:
		if o.checkSymbol != 0 && !IsCheckSymbol(o.checkSymbol) {
			return Config{}, fmt.Errorf("%w: %q is not a check symbol", codec.ErrInvalidArgument, o.checkSymbol)
		}
		o.pad = false
	default:
		return Config{}, fmt.Errorf("%w: unknown variant %q", codec.ErrInvalidArgument, string(variant))
	}
	o.params.MaxDecodeEmit = MaxDecodeEmit
	o.params.MaxEncodeEmit = MaxEncodeEmit

	base, err := codec.NewConfig(o.params)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Config:            base,
		variant:           variant,
		encodeToLowercase: o.lowercase,
		padEncoded:        o.pad,
		checkSymbol:       o.checkSymbol,
		constantTime:      o.constantTime,
	}, nil
}

func (c Config) Variant() Variant          { return c.variant }
func (c Config) EncodeToLowercase() bool   { return c.encodeToLowercase }
func (c Config) PadEncoded() bool          { return c.padEncoded }
func (c Config) IsConstantTime() bool      { return c.constantTime }
func (c Config) CheckSymbol() (byte, bool) { return c.checkSymbol, c.checkSymbol != 0 }

// Name returns "Base32." followed by the variant.
func (c Config) Name() string { return "Base32." + string(c.variant) }

// EncodedSize implements codec.SizeRule: 8 characters per 5 bytes plus the tail, padding
// and check symbol.
func (c Config) EncodedSize(n int64) (int64, error) {
	out, ok := codec.MulExact(n/5, 8)
	if !ok {
		return 0, codec.SizeOverflow(n)
	}
	var extra int64
	if rem := n % 5; rem != 0 {
		extra = tailChars[rem]
		if c.padEncoded {
			extra = 8
		}
	}
	if c.checkSymbol != 0 {
		extra++
	}
	if out, ok = codec.AddExact(out, extra); !ok {
		return 0, codec.SizeOverflow(n)
	}
	return out, nil
}

// DecodedSize implements codec.SizeRule: 5 bits per character.
func (c Config) DecodedSize(n int64) (int64, error) {
	return n/8*5 + n%8*5/8, nil
}

// DecodedSizeOf implements codec.SizeRule. For Crockford the trailing check symbol is
// verified here, before any output is allocated. Trailing whitespace is ignored.
func (c Config) DecodedSizeOf(n int64, in codec.Input) (int64, error) {
	if c.variant != Crockford {
		return c.DecodedSize(n)
	}
	var last byte
	for ; n > 0; n-- {
		u, err := in.Get(int(n - 1))
		if err != nil {
			return 0, err
		}
		if !codec.IsWhitespace(u) {
			last = u
			break
		}
	}
	switch {
	case n == 0:
		return 0, nil
	case c.checkSymbol != 0:
		if !sameCheckSymbol(last, c.checkSymbol) {
			return 0, codec.Malformed("%s: check symbol %q expected, found %q", c.Name(), c.checkSymbol, last)
		}
		n--
	case IsCheckSymbol(last):
		return 0, codec.Malformed("%s: unexpected check symbol %q", c.Name(), last)
	}
	return c.DecodedSize(n)
}

func sameCheckSymbol(c, want byte) bool {
	if want == 'U' || want == 'u' {
		return c == 'U' || c == 'u'
	}
	return c == want
}

func (c Config) EncodeOutMaxSize(n int64) (int64, error) {
	return codec.EncodeOutMaxSize(c, n, c.LineBreakInterval())
}

func (c Config) DecodeOutMaxSize(n int64) (int64, error) {
	return codec.DecodeOutMaxSize(c, n)
}

func (c Config) DecodeOutMaxSizeOrFail(in codec.Input) (int64, error) {
	return codec.DecodeOutMaxSizeOrFail(c, in)
}

func (c Config) String() string { return codec.FormatConfig(c.Name(), c) }
