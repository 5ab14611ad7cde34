package codec

import (
	"fmt"
	"math"
)

// Leniency controls how a decoder treats whitespace ('\n', '\r', ' ' and '\t').
type Leniency int8

const (
	// PassWhitespace hands whitespace to the alphabet untouched.
	PassWhitespace Leniency = iota
	// SkipWhitespace drops whitespace while decoding.
	SkipWhitespace
	// RejectWhitespace fails decoding with ErrMalformedInput when whitespace is seen.
	RejectWhitespace
)

func (l Leniency) String() string {
	switch l {
	case SkipWhitespace:
		return "true"
	case RejectWhitespace:
		return "false"
	default:
		return "null"
	}
}

// IsWhitespace reports whether c is one of the whitespace units a lenient decoder skips.
func IsWhitespace(c byte) bool {
	return c == '\n' || c == '\r' || c == ' ' || c == '\t'
}

// ConfigParams holds the engine settings an alphabet passes to NewConfig.
type ConfigParams struct {
	Leniency Leniency
	// LineBreakInterval inserts a '\n' every N encoded characters. 0 disables.
	LineBreakInterval uint8
	// PaddingChar marks decode completion. 0 means the alphabet has no padding.
	PaddingChar byte
	// MaxDecodeEmit and MaxEncodeEmit are the most units a single Consume, Flush or DoFinal
	// can produce. Both must be in 1..255.
	MaxDecodeEmit   int
	MaxEncodeEmit   int
	BackFillBuffers bool
}

// Config is the immutable engine configuration shared by every Feed derived from it.
// The zero value is not usable; construct it with NewConfig.
type Config struct {
	leniency          Leniency `codec:"isLenient"`
	lineBreakInterval uint8    `codec:"lineBreakInterval"`
	paddingChar       byte     `codec:"paddingChar,char"`
	maxDecodeEmit     uint8    `codec:"maxDecodeEmit"`
	maxEncodeEmit     uint8    `codec:"maxEncodeEmit"`
	backFillBuffers   bool     `codec:"backFillBuffers"`
}

// NewConfig validates p and returns the engine configuration.
// The line break interval is forced to 0 when whitespace is rejected, since a decoder
// configured that way could never read the output back.
func NewConfig(p ConfigParams) (Config, error) {
	if p.MaxDecodeEmit < 1 || p.MaxDecodeEmit > math.MaxUint8 {
		return Config{}, fmt.Errorf("%w: maxDecodeEmit %d must be in 1..255", ErrInvalidArgument, p.MaxDecodeEmit)
	}
	if p.MaxEncodeEmit < 1 || p.MaxEncodeEmit > math.MaxUint8 {
		return Config{}, fmt.Errorf("%w: maxEncodeEmit %d must be in 1..255", ErrInvalidArgument, p.MaxEncodeEmit)
	}
	if p.Leniency < PassWhitespace || p.Leniency > RejectWhitespace {
		return Config{}, fmt.Errorf("%w: unknown leniency %d", ErrInvalidArgument, p.Leniency)
	}
	if IsWhitespace(p.PaddingChar) {
		return Config{}, fmt.Errorf("%w: padding %q cannot be whitespace", ErrInvalidArgument, p.PaddingChar)
	}
	interval := p.LineBreakInterval
	if p.Leniency == RejectWhitespace {
		interval = 0
	}
	return Config{
		leniency:          p.Leniency,
		lineBreakInterval: interval,
		paddingChar:       p.PaddingChar,
		maxDecodeEmit:     uint8(p.MaxDecodeEmit),
		maxEncodeEmit:     uint8(p.MaxEncodeEmit),
		backFillBuffers:   p.BackFillBuffers,
	}, nil
}

// Base returns c. Alphabet configurations embed Config and inherit Base to satisfy
// Configuration.
func (c Config) Base() Config { return c }

func (c Config) Leniency() Leniency     { return c.leniency }
func (c Config) LineBreakInterval() int { return int(c.lineBreakInterval) }
func (c Config) MaxDecodeEmit() int     { return int(c.maxDecodeEmit) }
func (c Config) MaxEncodeEmit() int     { return int(c.maxEncodeEmit) }
func (c Config) BackFillBuffers() bool  { return c.backFillBuffers }

// PaddingChar returns the padding unit and whether the alphabet uses one.
func (c Config) PaddingChar() (byte, bool) {
	return c.paddingChar, c.paddingChar != 0
}

// MaxEncodeEmitWithLineBreaks inflates MaxEncodeEmit by the line breaks that may be
// interleaved with one emission.
func (c Config) MaxEncodeEmitWithLineBreaks() int {
	n := int(c.maxEncodeEmit)
	if c.lineBreakInterval == 0 {
		return n
	}
	return n + CeilDiv(n, int(c.lineBreakInterval))
}
