package codec

import (
	"bufio"
	"bytes"
	"io"
	"math"
)

type flushWriter interface {
	io.Writer
	io.ByteWriter
	Flush() error
	Size() int
}

type bytesBufferWriterAdapter struct{ *bytes.Buffer }

func (w *bytesBufferWriterAdapter) Flush() error { return nil }
func (w *bytesBufferWriterAdapter) Size() int    { return math.MaxInt }

// Writer is a buffered Output over an io.Writer.
// It tracks the first error that occurs; after an error all subsequent writes are no-ops,
// which lets a Feed emit unit by unit without checking an error per unit.
type Writer struct {
	w     flushWriter
	count int64 // total units written
	err   error // first error encountered
	depth int
}

var (
	_ Output    = (*Writer)(nil)
	_ io.Writer = (*Writer)(nil)
)

// NewWriterSize creates a new Writer with a specified buffer size.
// It returns an error to prevent double-buffering.
func NewWriterSize(w io.Writer, size int) (*Writer, error) {
	if w == nil {
		return nil, ErrNilIO
	}

	switch bw := w.(type) {
	// Reuse the underlying buffer of a compatible Writer; only the outermost one flushes.
	case *Writer:
		if bw.w.Size() >= size {
			return &Writer{w: bw.w, depth: bw.depth + 1}, nil
		}
		return nil, ErrAlreadyBuffered
	case *bufio.Writer:
		if bw.Size() >= size {
			return &Writer{w: bw, depth: 1}, nil
		}
		return nil, ErrAlreadyBuffered
	// underlying is a buf so we don't need buffering
	case *bytes.Buffer:
		return &Writer{w: &bytesBufferWriterAdapter{bw}}, nil
	}

	return &Writer{w: bufio.NewWriterSize(w, size)}, nil
}

// NewWriter creates a new Writer with a default buffer size.
func NewWriter(w io.Writer) (*Writer, error) {
	return NewWriterSize(w, 0)
}

// Output implements the Output interface.
func (w *Writer) Output(c byte) {
	if w.err != nil {
		return
	}
	if err := w.w.WriteByte(c); err != nil {
		w.err = err
		return
	}
	w.count++
}

// Write implements the io.Writer interface.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	w.count += int64(n)
	w.setError(err)
	return n, w.err
}

func (w *Writer) Count() int64 { return w.count }
func (w *Writer) Err() error   { return w.err }

// setError records the first non-nil error.
func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// Result flushes the buffer and returns the final count and error state.
func (w *Writer) Result() (int64, error) {
	w.Flush()
	return w.count, w.err
}

// Flush writes any buffered data to the underlying io.Writer.
// Nested writers leave flushing to the outermost one.
func (w *Writer) Flush() error {
	if w.depth > 0 || w.err != nil {
		return w.err
	}
	w.setError(w.w.Flush())
	return w.err
}

// encoder is the io.WriteCloser returned by NewEncoder.
type encoder struct {
	feed *EncoderFeed
	w    *Writer
}

// NewEncoder returns an io.WriteCloser that encodes everything written to it with enc and
// writes the characters to w. Close must be called to emit the final block and flush.
func NewEncoder(enc Encoding, w io.Writer) (io.WriteCloser, error) {
	bw, err := NewWriter(w)
	if err != nil {
		return nil, err
	}
	return &encoder{feed: enc.NewEncoderFeed(bw), w: bw}, nil
}

func (e *encoder) Write(p []byte) (int, error) {
	if err := e.w.Err(); err != nil {
		return 0, err
	}
	for i, b := range p {
		if err := e.feed.Consume(b); err != nil {
			return i, err
		}
		if err := e.w.Err(); err != nil {
			_ = e.feed.Close()
			return i, err
		}
	}
	return len(p), nil
}

// Close finishes the stream. Calling it again is a no-op.
func (e *encoder) Close() error {
	if e.feed.State() == FeedClosed {
		return e.w.Err()
	}
	if err := e.feed.DoFinal(); err != nil {
		return err
	}
	return e.w.Flush()
}
