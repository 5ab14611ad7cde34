package codec

import "fmt"

// BytesOutput is an Output that writes to a pre-allocated byte slice.
// It never grows the slice. Writing past the end latches ErrInternalSizing and every
// subsequent unit is dropped.
type BytesOutput struct {
	B   []byte // destination slice
	N   int    // current write position
	err error
}

var _ Output = (*BytesOutput)(nil)

// NewBytesOutput creates a new BytesOutput over the full capacity of p.
func NewBytesOutput(p []byte) *BytesOutput {
	return &BytesOutput{B: p[:cap(p)]}
}

// Output implements the Output interface.
func (w *BytesOutput) Output(c byte) {
	if w.err != nil {
		return
	}
	if w.N >= len(w.B) {
		w.err = fmt.Errorf("%w: wrote past %d units", ErrInternalSizing, len(w.B))
		return
	}
	w.B[w.N] = c
	w.N++
}

// Err returns the latched overrun, if any.
func (w *BytesOutput) Err() error { return w.err }

// Reset allows the underlying byte slice to be reused. A latched error is kept.
func (w *BytesOutput) Reset() { w.N = 0 }

// Len returns the number of units written.
func (w *BytesOutput) Len() int { return w.N }

// Size returns the capacity of the underlying byte slice.
func (w *BytesOutput) Size() int { return len(w.B) }

// Available returns the number of units that can still be written.
func (w *BytesOutput) Available() int { return len(w.B) - w.N }

// Bytes returns a slice view of the written data.
func (w *BytesOutput) Bytes() []byte { return w.B[:w.N] }
