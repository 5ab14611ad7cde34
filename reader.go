package codec

import (
	"bytes"
	"io"
)

// decoder is the io.Reader returned by NewDecoder.
type decoder struct {
	r     io.Reader
	feed  *DecoderFeed
	out   bytes.Buffer // decoded bytes not yet handed to the caller
	chunk *[]byte
	err   error // first error encountered; io.EOF once the feed is finalized
}

var (
	_ io.ReadCloser = (*decoder)(nil)
	_ io.WriterTo   = (*decoder)(nil)
)

// NewDecoder returns an io.ReadCloser that decodes the characters read from r with enc.
// Decoding errors are returned by Read once all bytes decoded before them have been read.
// Close releases the feed and closes r if it implements io.Closer.
func NewDecoder(enc Encoding, r io.Reader) (io.ReadCloser, error) {
	if r == nil {
		return nil, ErrNilIO
	}
	d := &decoder{r: r}
	d.feed = enc.NewDecoderFeed(OutputFunc(func(b byte) { d.out.WriteByte(b) }))
	return d, nil
}

// Read implements the io.Reader interface.
func (d *decoder) Read(p []byte) (int, error) {
	for d.out.Len() == 0 && d.err == nil {
		d.fill()
	}
	if d.out.Len() > 0 {
		return d.out.Read(p)
	}
	return 0, d.err
}

// fill reads one chunk from r and pushes it through the feed.
func (d *decoder) fill() {
	if d.chunk == nil {
		d.chunk = getBuf()
	}
	n, err := d.r.Read(*d.chunk)
	for _, c := range (*d.chunk)[:n] {
		if ferr := d.feed.Consume(c); ferr != nil {
			d.finish(ferr)
			return
		}
	}
	switch {
	case err == io.EOF:
		if ferr := d.feed.DoFinal(); ferr != nil {
			d.finish(ferr)
			return
		}
		d.finish(io.EOF)
	case err != nil:
		_ = d.feed.Close()
		d.finish(err)
	}
}

func (d *decoder) finish(err error) {
	d.err = err
	putBuf(d.chunk)
	d.chunk = nil
}

// WriteTo writes the decoded stream to w until r is drained or an error occurs.
func (d *decoder) WriteTo(w io.Writer) (n int64, err error) {
	for {
		if d.out.Len() > 0 {
			written, ew := d.out.WriteTo(w)
			n += written
			if ew != nil {
				return n, ew
			}
		}
		if d.err != nil {
			if d.err == io.EOF {
				return n, nil
			}
			return n, d.err
		}
		d.fill()
	}
}

// Close closes the underlying reader if it implements io.Closer.
func (d *decoder) Close() error {
	_ = d.feed.Close()
	if d.err == nil {
		d.finish(ErrClosedFeed)
	}
	d.out.Reset()
	if c, ok := d.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
