// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// Reuse a 64 KiB buffered writer across calls to avoid per-file mallocs.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Write encodes conv(v) for every v in items as one JSON value per line.
func Write[T, W any](out io.Writer, items []T, conv func(T) W) error {
	bw := bwPool.Get().(*bufio.Writer)
	bw.Reset(out)
	defer func() {
		bw.Reset(io.Discard)
		bwPool.Put(bw)
	}()

	enc := json.NewEncoder(bw)
	for _, v := range items {
		if err := enc.Encode(conv(v)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
