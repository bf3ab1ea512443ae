// Package buffers provides reusable byte buffers for backup copies.
//
// A run with backup enabled copies every matched file before renaming;
// pooling the copy buffers keeps a large batch from allocating one buffer
// per file.
package buffers

import (
	"sync"

	"github.com/sheetmv/sheetmv/internal/constants"
)

var copyPool = &sync.Pool{
	New: func() interface{} {
		buf := make([]byte, constants.CopyBufferSize)
		return &buf
	},
}

// GetCopyBuffer retrieves a copy buffer from the pool.
// Return it with PutCopyBuffer when done.
//
// Usage:
//
//	buf := buffers.GetCopyBuffer()
//	defer buffers.PutCopyBuffer(buf)
//	_, err := io.CopyBuffer(dst, src, *buf)
func GetCopyBuffer() *[]byte {
	return copyPool.Get().(*[]byte)
}

// PutCopyBuffer returns a buffer to the pool for reuse.
// Only buffers of the pooled size are accepted; the buffer must not be
// used after this call.
func PutCopyBuffer(buf *[]byte) {
	if buf != nil && len(*buf) == constants.CopyBufferSize {
		copyPool.Put(buf)
	}
}
