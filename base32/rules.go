package base32

import (
	codec "github.com/05nelsonm/encoding-sub001"
)

func translateDefault(c byte) (byte, bool) {
	switch {
	case c >= 'A' && c <= 'Z':
		return c - 'A', true
	case c >= 'a' && c <= 'z':
		return c - 'a', true
	case c >= '2' && c <= '7':
		return c - '2' + 26, true
	}
	return 0, false
}

func translateHex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'V':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'v':
		return c - 'a' + 10, true
	}
	return 0, false
}

func translateCrockford(c byte) (byte, bool) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'H':
		return c - 'A' + 10, true
	case c == 'I' || c == 'L':
		return 1, true
	case c == 'J' || c == 'K':
		return c - 'J' + 18, true
	case c == 'M' || c == 'N':
		return c - 'M' + 20, true
	case c == 'O':
		return 0, true
	case c >= 'P' && c <= 'T':
		return c - 'P' + 22, true
	case c >= 'V' && c <= 'Z':
		return c - 'V' + 27, true
	}
	return 0, false
}

// decodeRule packs 8 five-bit symbols into 5 bytes.
type decodeRule struct {
	out       codec.Output
	name      string
	translate func(c byte) (byte, bool)
}

func (r *decodeRule) BlockSize() int { return 8 }

func (r *decodeRule) Translate(c byte) (byte, bool, error) {
	if codec.IsWhitespace(c) {
		return 0, false, nil
	}
	s, ok := r.translate(c)
	if !ok {
		return 0, false, codec.InvalidChar(r.name, c)
	}
	return s, true, nil
}

func (r *decodeRule) Flush(b []byte) {
	var bits uint64
	for _, s := range b {
		bits = bits<<5 | uint64(s)
	}
	r.emit(bits, 5)
}

// Finalize decodes 2, 4, 5 or 7 trailing symbols. 1, 3 and 6 leave a partial byte.
func (r *decodeRule) Finalize(b []byte) error {
	switch len(b) {
	case 0:
		return nil
	case 1, 3, 6:
		return codec.Truncated(r.name, len(b))
	}
	var bits uint64
	for _, s := range b {
		bits = bits<<5 | uint64(s)
	}
	bits <<= uint(8-len(b)) * 5
	r.emit(bits, len(b)*5/8)
	return nil
}

// emit writes the top n bytes of a 40-bit group.
func (r *decodeRule) emit(bits uint64, n int) {
	for i := range n {
		r.out.Output(byte(bits >> (32 - 8*uint(i))))
	}
}

// crockfordRule skips hyphens and accepts one trailing check symbol.
type crockfordRule struct {
	*decodeRule
	checkSymbol byte
	sawCheck    bool
	sawData     bool
}

func (r *crockfordRule) Translate(c byte) (byte, bool, error) {
	if codec.IsWhitespace(c) {
		return 0, false, nil
	}
	if r.sawCheck {
		return 0, false, codec.Malformed("%s: %q found after check symbol", r.name, c)
	}
	if c == '-' {
		return 0, false, nil
	}
	if IsCheckSymbol(c) {
		if r.checkSymbol == 0 || !sameCheckSymbol(c, r.checkSymbol) {
			return 0, false, codec.Malformed("%s: unexpected check symbol %q", r.name, c)
		}
		r.sawCheck = true
		return 0, false, nil
	}
	s, ok := translateCrockford(c)
	if !ok {
		return 0, false, codec.InvalidChar(r.name, c)
	}
	r.sawData = true
	return s, true, nil
}

// Terminate requires the configured check symbol after any data. Empty input encodes to
// nothing, so it needs no check symbol.
func (r *crockfordRule) Terminate() error {
	if r.checkSymbol != 0 && r.sawData && !r.sawCheck {
		return codec.Malformed("%s: missing check symbol %q", r.name, r.checkSymbol)
	}
	return nil
}

// encodeRule spreads 5 bytes over 8 five-bit symbols.
type encodeRule struct {
	out   codec.Output
	table codec.EncodeTable
	pad   bool
}

func (r *encodeRule) BlockSize() int { return 5 }

func (r *encodeRule) Flush(b []byte) {
	r.encode(b, 8)
}

func (r *encodeRule) Finalize(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	n := int(tailChars[len(b)])
	r.encode(b, n)
	if r.pad {
		for range 8 - n {
			r.out.Output(PaddingChar)
		}
	}
	return nil
}

// encode writes the first n symbols of b, zero-extended to 40 bits.
func (r *encodeRule) encode(b []byte, n int) {
	var bits uint64
	for i := range 5 {
		bits <<= 8
		if i < len(b) {
			bits |= uint64(b[i])
		}
	}
	for i := range n {
		r.out.Output(r.table.Get(byte(bits>>(35-5*uint(i))) & 0x1F))
	}
}

// checkSymbolRule appends the Crockford check symbol once the feed is finalized, unless
// nothing was encoded.
type checkSymbolRule struct {
	*encodeRule
	checkSymbol byte
	wrote       bool
}

func (r *checkSymbolRule) Flush(b []byte) {
	r.wrote = true
	r.encodeRule.Flush(b)
}

func (r *checkSymbolRule) Finalize(b []byte) error {
	if len(b) > 0 {
		r.wrote = true
	}
	return r.encodeRule.Finalize(b)
}

func (r *checkSymbolRule) Terminate() error {
	if r.wrote {
		r.out.Output(r.checkSymbol)
	}
	return nil
}
