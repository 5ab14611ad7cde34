package codec

// EncodeToBytes encodes data with enc into a newly allocated slice sized by the size model.
func EncodeToBytes(enc Encoding, data []byte) ([]byte, error) {
	return encodeInput(enc, NewInput(data))
}

// EncodeToString encodes data with enc.
func EncodeToString(enc Encoding, data []byte) (string, error) {
	out, err := encodeInput(enc, NewInput(data))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Decode decodes the encoded characters in data with enc.
func Decode(enc Encoding, data []byte) ([]byte, error) {
	return decodeInput(enc, NewInput(data))
}

// DecodeString decodes s with enc.
func DecodeString(enc Encoding, s string) ([]byte, error) {
	return decodeInput(enc, NewInput(s))
}

func encodeInput(enc Encoding, in Input) ([]byte, error) {
	cfg := enc.Configuration()
	base := cfg.Base()
	size, err := EncodeOutMaxSize(cfg, int64(in.Len()), base.LineBreakInterval())
	if err != nil {
		return nil, err
	}
	n, err := toInt(size)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	sink := NewBytesOutput(buf)
	if err := drive(enc.NewEncoderFeed(sink), in, sink, nil); err != nil {
		return nil, err
	}
	return trimOutput(buf, sink.Len(), base.BackFillBuffers()), nil
}

func decodeInput(enc Encoding, in Input) ([]byte, error) {
	cfg := enc.Configuration()
	size, err := DecodeOutMaxSizeOrFail(cfg, in)
	if err != nil {
		return nil, err
	}
	n, err := toInt(size)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	sink := NewBytesOutput(buf)
	if err := drive(enc.NewDecoderFeed(sink), in, sink, nil); err != nil {
		if cfg.Base().BackFillBuffers() {
			clear(buf)
		}
		return nil, err
	}
	return trimOutput(buf, sink.Len(), cfg.Base().BackFillBuffers()), nil
}

// trimOutput returns buf[:n], copying when buf was over-allocated. The discarded scratch
// buffer is zeroed when backFill is set.
func trimOutput(buf []byte, n int, backFill bool) []byte {
	if n == len(buf) {
		return buf
	}
	out := make([]byte, n)
	copy(out, buf[:n])
	if backFill {
		clear(buf)
	}
	return out
}
