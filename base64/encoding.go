package base64

import (
	codec "github.com/05nelsonm/encoding-sub001"
)

// Encoding is a Base64 alphabet bound to a Config. It is immutable and safe for concurrent
// use; every Feed it creates is independent.
type Encoding struct {
	config Config
	table  codec.EncodeTable
}

var _ codec.Encoding = (*Encoding)(nil)

var (
	// Default encodes with the standard table, pads, and skips whitespace when decoding.
	Default = MustNew()

	// URLSafe encodes with the URL-safe table and pads.
	URLSafe = MustNew(WithURLSafe(true))
)

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
	chars := defaultTable
	if cfg.encodeToURLSafe {
		chars = urlSafeTable
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
		return &encodeRule{out: out, table: e.table, pad: e.config.padEncoded}
	})
}

// EncodeToString returns the Base64 encoding of src.
func (e *Encoding) EncodeToString(src []byte) (string, error) {
	return codec.EncodeToString(e, src)
}

// DecodeString returns the bytes represented by s.
func (e *Encoding) DecodeString(s string) ([]byte, error) {
	return codec.DecodeString(e, s)
}
