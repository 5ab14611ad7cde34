package codec

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// BufferedAction receives each filled region of the working buffer. p is only valid for
// the duration of the call.
type BufferedAction func(p []byte) error

// unitFeed is the part of DecoderFeed and EncoderFeed the buffered layer drives.
type unitFeed interface {
	Consume(unit byte) error
	DoFinal() error
	Close() error
}

// bufferedJob describes one DecodeBuffered/EncodeBuffered call.
type bufferedJob struct {
	op       string
	src      Input
	maxEmit  int
	backFill bool
	newFeed  func(out Output) unitFeed
	// predict returns the exact or maximum output size.
	predict func() (int64, error)
}

// DecodeBuffered decodes src with enc into a working buffer of at most maxBufSize bytes,
// invoking action each time the buffer fills and once more at the end. It returns the
// total number of bytes passed to action.
//
// When the predicted output fits in maxBufSize, the buffer is sized exactly and action is
// invoked once. When the prediction overflows, ErrSize is returned if throwOnOverflow is
// set; otherwise the input is streamed through a maxBufSize buffer. Other errors from the
// prediction, such as an integrity check failure, are always returned.
func DecodeBuffered(enc Encoding, src Input, throwOnOverflow bool, maxBufSize int, action BufferedAction) (int64, error) {
	return decodeBuffered(enc, src, throwOnOverflow, nil, maxBufSize, action)
}

// DecodeBufferedInto is DecodeBuffered using buf as the working buffer; len(buf) is the budget.
func DecodeBufferedInto(enc Encoding, src Input, throwOnOverflow bool, buf []byte, action BufferedAction) (int64, error) {
	return decodeBuffered(enc, src, throwOnOverflow, buf, len(buf), action)
}

// DecodeBufferedTo decodes src with enc into w using a DefaultBufferSize budget.
func DecodeBufferedTo(enc Encoding, src Input, w io.Writer) (int64, error) {
	return DecodeBuffered(enc, src, false, DefaultBufferSize, writeAction(w))
}

func decodeBuffered(enc Encoding, src Input, throwOnOverflow bool, buf []byte, maxBufSize int, action BufferedAction) (int64, error) {
	cfg := enc.Configuration()
	base := cfg.Base()
	job := bufferedJob{
		op:       "decode",
		src:      src,
		maxEmit:  base.MaxDecodeEmit(),
		backFill: base.BackFillBuffers(),
		newFeed:  func(out Output) unitFeed { return enc.NewDecoderFeed(out) },
		predict:  func() (int64, error) { return DecodeOutMaxSizeOrFail(cfg, src) },
	}
	return job.run(throwOnOverflow, buf, maxBufSize, action)
}

// EncodeBuffered is the mirror of DecodeBuffered. The per-call emission bound includes the
// line breaks an active line break interval can interleave.
func EncodeBuffered(enc Encoding, src Input, throwOnOverflow bool, maxBufSize int, action BufferedAction) (int64, error) {
	return encodeBuffered(enc, src, throwOnOverflow, nil, maxBufSize, action)
}

// EncodeBufferedInto is EncodeBuffered using buf as the working buffer; len(buf) is the budget.
func EncodeBufferedInto(enc Encoding, src Input, throwOnOverflow bool, buf []byte, action BufferedAction) (int64, error) {
	return encodeBuffered(enc, src, throwOnOverflow, buf, len(buf), action)
}

// EncodeBufferedTo encodes src with enc into w using a DefaultBufferSize budget.
func EncodeBufferedTo(enc Encoding, src Input, w io.Writer) (int64, error) {
	return EncodeBuffered(enc, src, false, DefaultBufferSize, writeAction(w))
}

func encodeBuffered(enc Encoding, src Input, throwOnOverflow bool, buf []byte, maxBufSize int, action BufferedAction) (int64, error) {
	cfg := enc.Configuration()
	base := cfg.Base()
	job := bufferedJob{
		op:       "encode",
		src:      src,
		maxEmit:  base.MaxEncodeEmitWithLineBreaks(),
		backFill: base.BackFillBuffers(),
		newFeed:  func(out Output) unitFeed { return enc.NewEncoderFeed(out) },
		predict: func() (int64, error) {
			return EncodeOutMaxSize(cfg, int64(src.Len()), base.LineBreakInterval())
		},
	}
	return job.run(throwOnOverflow, buf, maxBufSize, action)
}

func (j *bufferedJob) run(throwOnOverflow bool, buf []byte, maxBufSize int, action BufferedAction) (int64, error) {
	if maxBufSize <= j.maxEmit {
		return 0, fmt.Errorf("%w: buffer size %d must be greater than the max emission of %d", ErrInvalidArgument, maxBufSize, j.maxEmit)
	}
	if action == nil {
		return 0, fmt.Errorf("%w: nil action", ErrInvalidArgument)
	}

	size, err := j.predict()
	known := true
	if err != nil {
		if throwOnOverflow || !errors.Is(err, ErrSize) {
			return 0, err
		}
		Logger().Debug("size prediction overflowed, streaming instead",
			zap.String("op", j.op), zap.Int("inputLen", j.src.Len()), zap.Error(err))
		known = false
	}
	if known && size == 0 {
		// Nothing to emit, but the input must still be validated (e.g. lone padding).
		return j.singleShot(0, buf, action)
	}
	if known && size <= int64(maxBufSize) {
		Logger().Debug("buffered single-shot",
			zap.String("op", j.op), zap.Int("inputLen", j.src.Len()), zap.Int64("predicted", size))
		return j.singleShot(int(size), buf, action)
	}
	Logger().Debug("buffered streaming",
		zap.String("op", j.op), zap.Int("inputLen", j.src.Len()), zap.Int("bufSize", maxBufSize),
		zap.Bool("predicted", known), zap.Int64("size", size))
	return j.streaming(buf, maxBufSize, action)
}

// singleShot drives the whole input into a buffer of exactly size units and invokes action once.
func (j *bufferedJob) singleShot(size int, buf []byte, action BufferedAction) (int64, error) {
	if len(buf) < size {
		buf = make([]byte, size)
	}
	buf = buf[:size]
	if j.backFill {
		defer clear(buf)
	}

	sink := NewBytesOutput(buf)
	if err := drive(j.newFeed(sink), j.src, sink, nil); err != nil {
		return 0, err
	}
	if sink.Len() == 0 {
		return 0, nil
	}
	if err := action(sink.Bytes()); err != nil {
		return 0, err
	}
	return int64(sink.Len()), nil
}

// streaming drives the input through a maxBufSize buffer, handing it to action whenever one
// more Consume could overrun it.
func (j *bufferedJob) streaming(buf []byte, maxBufSize int, action BufferedAction) (int64, error) {
	switch {
	case buf != nil:
		buf = buf[:maxBufSize]
	case maxBufSize == DefaultBufferSize:
		pooled := getBuf()
		defer putBuf(pooled)
		buf = *pooled
	default:
		buf = make([]byte, maxBufSize)
	}
	if j.backFill {
		defer clear(buf)
	}

	limit := len(buf) - j.maxEmit
	sink := NewBytesOutput(buf)
	var total int64
	emit := func() error {
		if sink.Len() == 0 {
			return nil
		}
		n := sink.Len()
		err := action(sink.Bytes())
		total += int64(n)
		sink.Reset()
		return err
	}

	err := drive(j.newFeed(sink), j.src, sink, func() error {
		if sink.Len() > limit {
			return emit()
		}
		return nil
	})
	if err != nil {
		return total, err
	}
	if err := emit(); err != nil {
		return total, err
	}
	return total, nil
}

// drive consumes every unit of src into f and finalizes it. after, when set, runs after each
// Consume. The feed is always closed on return.
func drive(f unitFeed, src Input, sink *BytesOutput, after func() error) error {
	for i := 0; i < src.Len(); i++ {
		u, err := src.Get(i)
		if err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Consume(u); err != nil {
			return err
		}
		if err := sink.Err(); err != nil {
			_ = f.Close()
			return err
		}
		if after != nil {
			if err := after(); err != nil {
				_ = f.Close()
				return err
			}
		}
	}
	if err := f.DoFinal(); err != nil {
		return err
	}
	return sink.Err()
}

// writeAction adapts w to a BufferedAction.
func writeAction(w io.Writer) BufferedAction {
	return func(p []byte) error {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		if n < len(p) {
			return io.ErrShortWrite
		}
		return nil
	}
}
