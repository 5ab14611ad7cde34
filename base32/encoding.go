package base32

import (
	"strings"

	codec "github.com/05nelsonm/encoding-sub001"
)

// Encoding is a Base32 alphabet bound to a Config.
type Encoding struct {
	config Config
	table  codec.EncodeTable
}

var _ codec.Encoding = (*Encoding)(nil)

var (
	StdEncoding       = MustNew(Default)
	HexEncoding       = MustNew(Hex)
	CrockfordEncoding = MustNew(Crockford)
)

// New returns an Encoding for variant configured by opts.
func New(variant Variant, opts ...Option) (*Encoding, error) {
	cfg, err := NewConfig(variant, opts...)
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg), nil
}

// MustNew is New that panics on error.
func MustNew(variant Variant, opts ...Option) *Encoding {
	e, err := New(variant, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// FromConfig returns an Encoding for cfg.
func FromConfig(cfg Config) *Encoding {
	var chars string
	switch cfg.variant {
	case Hex:
		chars = hexTable
	case Crockford:
		chars = crockfordTable
	default:
		chars = defaultTable
	}
	if cfg.encodeToLowercase {
		chars = strings.ToLower(chars)
	}
	return &Encoding{config: cfg, table: codec.NewEncodeTable(chars, cfg.constantTime)}
}

func (e *Encoding) Name() string                       { return e.config.Name() }
func (e *Encoding) Config() Config                     { return e.config }
func (e *Encoding) Configuration() codec.Configuration { return e.config }
func (e *Encoding) String() string                     { return e.config.String() }
func (e *Encoding) Hash() uint64                       { return codec.HashConfig(e.Name(), e.config) }

func (e *Encoding) NewDecoderFeed(out codec.Output) *codec.DecoderFeed {
	return codec.NewDecoderFeed(e.config.Config, out, func(out codec.Output) codec.DecodeRule {
		r := &decodeRule{out: out, name: e.config.Name(), translate: translateDefault}
		switch e.config.variant {
		case Hex:
			r.translate = translateHex
		case Crockford:
			return &crockfordRule{decodeRule: r, checkSymbol: e.config.checkSymbol}
		}
		return r
	})
}

func (e *Encoding) NewEncoderFeed(out codec.Output) *codec.EncoderFeed {
	return codec.NewEncoderFeed(e.config.Config, out, func(out codec.Output) codec.BlockRule {
		r := &encodeRule{out: out, table: e.table, pad: e.config.padEncoded}
		if e.config.checkSymbol != 0 {
			return &checkSymbolRule{encodeRule: r, checkSymbol: e.config.checkSymbol}
		}
		return r
	})
}

func (e *Encoding) EncodeToString(src []byte) (string, error) {
	return codec.EncodeToString(e, src)
}

func (e *Encoding) DecodeString(s string) ([]byte, error) {
	return codec.DecodeString(e, s)
}
