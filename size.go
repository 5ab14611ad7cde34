package codec

import "fmt"

// EncodeOutMaxSize returns the number of characters n bytes encode to under c, including the
// line breaks inserted every lineBreakInterval characters when lineBreakInterval > 0.
func EncodeOutMaxSize(c Configuration, n int64, lineBreakInterval int) (int64, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: negative input size %d", ErrSize, n)
	}
	if n == 0 {
		return 0, nil
	}
	out, err := c.EncodedSize(n)
	if err != nil {
		return 0, err
	}
	if out < 0 {
		return 0, SizeOverflow(n)
	}
	if lineBreakInterval > 0 {
		// ceil(out / interval) - 1 breaks; no break trails the final line.
		breaks := (out - 1) / int64(lineBreakInterval)
		var ok bool
		if out, ok = AddExact(out, breaks); !ok {
			return 0, SizeOverflow(n)
		}
	}
	return out, nil
}

// DecodeOutMaxSize returns the maximum number of bytes n encoded characters decode to.
// It is meant for inputs that are not materialized yet, e.g. a file of known length.
func DecodeOutMaxSize(c Configuration, n int64) (int64, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: negative input size %d", ErrSize, n)
	}
	if n == 0 {
		return 0, nil
	}
	out, err := c.DecodedSize(n)
	if err != nil {
		return 0, err
	}
	if out < 0 {
		return 0, SizeOverflow(n)
	}
	return out, nil
}

// DecodeOutMaxSizeOrFail scans in backwards past trailing whitespace (when whitespace is
// skipped) and padding, then asks the alphabet for the output size of what remains.
// Alphabets may fail here with ErrMalformedInput before anything is allocated.
func DecodeOutMaxSizeOrFail(c Configuration, in Input) (int64, error) {
	base := c.Base()
	pad, hasPad := base.PaddingChar()

	last := in.Len()
	for last > 0 {
		u, err := in.Get(last - 1)
		if err != nil {
			return 0, err
		}
		if base.Leniency() == SkipWhitespace && IsWhitespace(u) {
			last--
			continue
		}
		if hasPad && u == pad {
			last--
			continue
		}
		break
	}
	if last == 0 {
		return 0, nil
	}

	out, err := c.DecodedSizeOf(int64(last), in)
	if err != nil {
		return 0, err
	}
	if out < 0 {
		return 0, SizeOverflow(int64(last))
	}
	return out, nil
}
