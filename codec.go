package codec

// Output receives the units a Feed produces, one at a time.
// Decoders emit bytes, encoders emit characters; both are single bytes in this engine.
type Output interface {
	Output(b byte)
}

// OutputFunc adapts a function to the Output interface.
type OutputFunc func(b byte)

// Output calls f(b).
func (f OutputFunc) Output(b byte) { f(b) }

// Discard is an Output that drops everything. It is useful for side-effect free validation.
var Discard Output = discard{}

type discard struct{}

func (discard) Output(byte) {}

// SizeRule is the alphabet-specific half of the size model.
// Implementations are only called with n > 0 and must not account for line breaks.
type SizeRule interface {
	// EncodedSize returns the exact or maximum number of characters n bytes encode to.
	EncodedSize(n int64) (int64, error)

	// DecodedSize returns the maximum number of bytes n characters decode to. It is used
	// when the input is not yet materialized.
	DecodedSize(n int64) (int64, error)

	// DecodedSizeOf returns the maximum number of bytes the first n characters of in decode
	// to, where n excludes trailing whitespace and padding. Alphabets with a trailing
	// integrity check may inspect in and fail with ErrMalformedInput.
	DecodedSizeOf(n int64, in Input) (int64, error)
}

// Configuration is an immutable alphabet configuration: the engine settings plus the
// alphabet's own size rule. Implementations must be comparable.
type Configuration interface {
	SizeRule
	Base() Config
}

// Encoding is a concrete alphabet bound to one configuration.
type Encoding interface {
	// Name is the stable identity of the alphabet, e.g. "Base64".
	Name() string
	Configuration() Configuration
	NewEncoderFeed(out Output) *EncoderFeed
	NewDecoderFeed(out Output) *DecoderFeed
}

// Equal reports whether a and b share the same name and equal configurations.
// Configurations of different runtime types are never equal.
func Equal(a, b Encoding) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Name() == b.Name() && a.Configuration() == b.Configuration()
}
