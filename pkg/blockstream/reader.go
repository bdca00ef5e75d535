package blockstream

import (
	"io"

	"github.com/ajitpratap0/dictstream/pkg/column"
)

// Reader drives a Stream over its full row range in max-block-size steps:
// successive Next calls cover [0, total) without gaps or overlaps, every
// block but possibly the last holding exactly MaxBlockSize rows.
type Reader struct {
	stream *Stream
	next   int
}

// NewReader creates a reader positioned at row 0.
func NewReader(stream *Stream) *Reader {
	return &Reader{stream: stream}
}

// Next produces the next block, or io.EOF once the row range is exhausted.
func (r *Reader) Next() (*column.Block, error) {
	if r.next >= r.stream.Total() {
		return nil, io.EOF
	}
	length := r.stream.MaxBlockSize()
	if remaining := r.stream.Total() - r.next; remaining < length {
		length = remaining
	}
	block, err := r.stream.ProduceBlock(r.next, length)
	if err != nil {
		return nil, err
	}
	r.next += length
	return block, nil
}

// Process applies fn to every remaining block in order, stopping at the
// first error.
func (r *Reader) Process(fn func(*column.Block) error) error {
	for {
		block, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(block); err != nil {
			return err
		}
	}
}
