package codec

import "sync"

// DefaultBufferSize is the buffer budget of the buffered and streaming helpers when the
// caller does not supply one.
const DefaultBufferSize = 8 * 1024

// bufPool reuses DefaultBufferSize scratch buffers for streaming.
// Buffers are always zeroed before they go back so no payload outlives its call.
var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, DefaultBufferSize)
		return &b
	},
}

func getBuf() *[]byte {
	return bufPool.Get().(*[]byte)
}

func putBuf(b *[]byte) {
	if b == nil || len(*b) != DefaultBufferSize {
		return
	}
	clear(*b)
	bufPool.Put(b)
}
