package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput indicates an input unit is not valid for the active alphabet, or the
	// padding/whitespace policy was violated.
	ErrMalformedInput = errors.New("codec: malformed input")

	// ErrSize indicates a pre-calculated output size is negative or would exceed the
	// representable range.
	ErrSize = errors.New("codec: output size out of range")

	// ErrClosedFeed indicates an operation was attempted on a Feed that is already closed.
	ErrClosedFeed = errors.New("codec: feed is closed")

	// ErrInvalidArgument indicates a caller supplied buffer, budget or configuration value
	// violates a precondition.
	ErrInvalidArgument = errors.New("codec: invalid argument")

	// ErrIndexOutOfBounds is returned by Input.Get for an index outside [0, Len()).
	ErrIndexOutOfBounds = fmt.Errorf("%w: index out of bounds", ErrInvalidArgument)

	// ErrInternalSizing indicates a Feed emitted more output than the size model predicted.
	// It is always an engine defect, never a property of the input.
	ErrInternalSizing = errors.New("codec: output exceeded pre-calculated size")

	// ErrAlreadyBuffered indicates that NewWriterSize was called with a bufio.Writer, or a Writer
	// over one, smaller than the requested size, which would lead to unpredictable
	// double-buffering.
	ErrAlreadyBuffered = errors.New("codec: writer is already buffered")

	// ErrNilIO indicates that NewEncoder/NewDecoder was called with a nil io.Writer/io.Reader.
	ErrNilIO = errors.New("codec: NewEncoder/NewDecoder called with a nil io.Writer/io.Reader")
)

// Malformed wraps ErrMalformedInput with a formatted detail.
func Malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}

// Truncated reports an under-determined trailing block of modulus units.
func Truncated(name string, modulus int) error {
	return Malformed("%s: truncated input, %d trailing symbol(s) cannot form a byte", name, modulus)
}

// InvalidChar reports an input unit that does not belong to the alphabet.
func InvalidChar(name string, c byte) error {
	return Malformed("%s: invalid character %q", name, c)
}
