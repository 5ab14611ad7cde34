package codec

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// AddExact returns a+b and whether the sum fits in T.
func AddExact[T constraints.Signed](a, b T) (T, bool) {
	c := a + b
	if (c > a) == (b > 0) {
		return c, true
	}
	return c, false
}

// MulExact returns a*b for non-negative operands and whether the product fits in T.
func MulExact[T constraints.Signed](a, b T) (T, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c < 0 || c/b != a {
		return c, false
	}
	return c, true
}

// CeilDiv returns n/d rounded up. n must be non-negative and d positive.
func CeilDiv[T constraints.Integer](n, d T) T {
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}

// SizeOverflow reports that the output for an input of n units cannot be represented.
func SizeOverflow(n int64) error {
	return fmt.Errorf("%w: output for %d input units would overflow", ErrSize, n)
}

// toInt converts a pre-calculated size to an allocation length.
func toInt(size int64) (int, error) {
	if size < 0 || size > math.MaxInt {
		return 0, fmt.Errorf("%w: %d cannot be allocated", ErrSize, size)
	}
	return int(size), nil
}
