// Package codec is a streaming engine for binary-to-text encodings.
//
// An alphabet (see the base64, base32 and base16 packages) supplies a size rule and the
// bit-packing rules of each direction. The engine supplies the rest: exact or upper-bound
// output size prediction with overflow checks, the Feed state machine that pushes one unit
// at a time through a block Accumulator, whitespace and padding policy, line breaking, and
// the buffered and io.Reader/io.Writer helpers built on top of them.
//
// Every Feed writes to an Output, one unit at a time, so the same alphabet can target a
// pre-sized slice (BytesOutput), a buffered io.Writer (Writer) or any callback (OutputFunc).
package codec
