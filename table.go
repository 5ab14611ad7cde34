package codec

import "crypto/subtle"

// EncodeTable maps symbol values to output characters.
//
// In constant-time mode every lookup scans the whole table and selects the match with a
// mask instead of indexing, so the work done does not depend on the symbol.
type EncodeTable struct {
	chars        string
	constantTime bool
}

// NewEncodeTable returns a table over chars. len(chars) must not exceed 256.
func NewEncodeTable(chars string, constantTime bool) EncodeTable {
	return EncodeTable{chars: chars, constantTime: constantTime}
}

// Get returns the character for symbol i.
func (t EncodeTable) Get(i byte) byte {
	if !t.constantTime {
		return t.chars[i]
	}
	var c byte
	for j := 0; j < len(t.chars); j++ {
		mask := byte(-subtle.ConstantTimeByteEq(byte(j), i))
		c |= t.chars[j] & mask
	}
	return c
}

func (t EncodeTable) Len() int             { return len(t.chars) }
func (t EncodeTable) IsConstantTime() bool { return t.constantTime }
