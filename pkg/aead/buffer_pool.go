package aead

import (
	"sync"

	"github.com/anderwick/cryptoflip/internal/constants"
)

// chunkPool supplies reusable buffers sized for EncryptFile/DecryptFile's
// chunked I/O, avoiding an allocation per chunk when a caller processes
// many files or a single large one.
type chunkPool struct {
	pool sync.Pool
}

func newChunkPool() *chunkPool {
	return &chunkPool{
		pool: sync.Pool{
			New: func() any {
				buf := make([]byte, constants.FileChunkSize)
				return &buf
			},
		},
	}
}

// get returns a buffer of exactly constants.FileChunkSize bytes.
func (p *chunkPool) get() []byte {
	bufPtr := p.pool.Get().(*[]byte)
	return (*bufPtr)[:constants.FileChunkSize]
}

// put zeroes buf and returns it to the pool. Zeroing matters here: file
// chunks may contain plaintext, and leaving it in a pooled buffer would
// extend its lifetime beyond what the caller intended.
func (p *chunkPool) put(buf []byte) {
	if cap(buf) != constants.FileChunkSize {
		return
	}
	buf = buf[:cap(buf)]
	for i := range buf {
		buf[i] = 0
	}
	p.pool.Put(&buf)
}

var globalChunkPool = newChunkPool()
