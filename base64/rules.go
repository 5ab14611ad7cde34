package base64

import (
	codec "github.com/05nelsonm/encoding-sub001"
)

// decodeRule packs 4 six-bit symbols into 3 bytes.
type decodeRule struct {
	out codec.Output
}

func (r *decodeRule) BlockSize() int { return 4 }

// Translate maps both the standard and the URL-safe alphabet. Whitespace that reaches it
// is dropped.
func (r *decodeRule) Translate(c byte) (byte, bool, error) {
	var diff int
	switch {
	case codec.IsWhitespace(c):
		return 0, false, nil
	case c >= '0' && c <= '9':
		diff = 4
	case c >= 'A' && c <= 'Z':
		diff = -65
	case c >= 'a' && c <= 'z':
		diff = -71
	case c == '+' || c == '-':
		return 62, true, nil
	case c == '/' || c == '_':
		return 63, true, nil
	default:
		return 0, false, codec.InvalidChar(Name, c)
	}
	return byte(int(c) + diff), true, nil
}

func (r *decodeRule) Flush(b []byte) {
	bits := uint32(b[0])<<18 | uint32(b[1])<<12 | uint32(b[2])<<6 | uint32(b[3])
	r.out.Output(byte(bits >> 16))
	r.out.Output(byte(bits >> 8))
	r.out.Output(byte(bits))
}

func (r *decodeRule) Finalize(b []byte) error {
	switch len(b) {
	case 0:
	case 1:
		return codec.Truncated(Name, 1)
	case 2:
		bits := (uint32(b[0])<<6 | uint32(b[1])) << 12
		r.out.Output(byte(bits >> 16))
	case 3:
		bits := (uint32(b[0])<<12 | uint32(b[1])<<6 | uint32(b[2])) << 6
		r.out.Output(byte(bits >> 16))
		r.out.Output(byte(bits >> 8))
	}
	return nil
}

// encodeRule spreads 3 bytes over 4 six-bit symbols.
type encodeRule struct {
	out   codec.Output
	table codec.EncodeTable
	pad   bool
}

func (r *encodeRule) BlockSize() int { return 3 }

func (r *encodeRule) Flush(b []byte) {
	b0, b1, b2 := b[0], b[1], b[2]
	r.out.Output(r.table.Get(b0 >> 2))
	r.out.Output(r.table.Get((b0&0x03)<<4 | b1>>4))
	r.out.Output(r.table.Get((b1&0x0F)<<2 | b2>>6))
	r.out.Output(r.table.Get(b2 & 0x3F))
}

func (r *encodeRule) Finalize(b []byte) error {
	switch len(b) {
	case 1:
		b0 := b[0]
		r.out.Output(r.table.Get(b0 >> 2))
		r.out.Output(r.table.Get((b0 & 0x03) << 4))
		r.padding(2)
	case 2:
		b0, b1 := b[0], b[1]
		r.out.Output(r.table.Get(b0 >> 2))
		r.out.Output(r.table.Get((b0&0x03)<<4 | b1>>4))
		r.out.Output(r.table.Get((b1 & 0x0F) << 2))
		r.padding(1)
	}
	return nil
}

func (r *encodeRule) padding(n int) {
	if !r.pad {
		return
	}
	for range n {
		r.out.Output(PaddingChar)
	}
}
