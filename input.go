package codec

import "fmt"

// Input is a bounds-checked, indexed view of an in-memory sequence of units.
type Input interface {
	Len() int
	// Get returns the unit at i, or ErrIndexOutOfBounds.
	Get(i int) (byte, error)
}

type input[T ~string | ~[]byte] struct {
	src T
}

// NewInput wraps a string or byte slice. The source must not be modified while in use.
func NewInput[T ~string | ~[]byte](src T) Input {
	return input[T]{src: src}
}

func (in input[T]) Len() int { return len(in.src) }

func (in input[T]) Get(i int) (byte, error) {
	if i < 0 || i >= len(in.src) {
		return 0, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfBounds, i, len(in.src))
	}
	return in.src[i], nil
}
