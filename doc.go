// Package dictstream turns key/value dictionary stores into streams of
// fixed-size columnar blocks.
//
// A dictionary maps an identity (a numeric id or an opaque composite key)
// to a set of typed attributes. Reading one entirely, for export or
// inspection, means walking every identity and projecting the requested
// attributes into columns. dictstream does that walk in bounded-size chunks
// so callers never hold the whole dictionary in memory as a single block.
//
// # Layout
//
//   - pkg/schema: attribute descriptors and the closed set of underlying
//     column types.
//   - pkg/column: typed column vectors and the Block container.
//   - pkg/keycodec: the byte encoding for composite keys.
//   - pkg/dictionary: dictionary access interfaces plus in-memory
//     implementations.
//   - pkg/blockstream: the core adapter; binds a dictionary and a column
//     selection at construction, then produces blocks on demand.
//   - pkg/arrowconv: Block to Apache Arrow record conversion and IPC output.
//   - internal/snapshot: JSON snapshot loading for the CLI.
//
// # Quick Start
//
//	import (
//	    "io"
//
//	    "github.com/ajitpratap0/dictstream/pkg/blockstream"
//	)
//
//	stream, err := blockstream.NewIDStream(dict, 8192, dict.IDs(), []string{"name", "age"})
//	if err != nil {
//	    return err
//	}
//	r := blockstream.NewReader(stream)
//	for {
//	    block, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // consume block
//	}
//
// The cmd/dictstream CLI wraps the same pipeline: it loads a JSON snapshot,
// streams it in blocks, and writes JSON lines or an Arrow IPC file.
package dictstream
