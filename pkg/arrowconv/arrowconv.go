// Package arrowconv converts dictstream blocks to Apache Arrow records, so
// a produced block stream can be handed to Arrow-native query engines or
// written out as an IPC file.
package arrowconv

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/dictstream/pkg/column"
	"github.com/ajitpratap0/dictstream/pkg/errors"
	"github.com/ajitpratap0/dictstream/pkg/schema"
)

// arrowType maps an underlying type tag to its Arrow data type.
func arrowType(tag schema.Underlying) (arrow.DataType, error) {
	switch tag {
	case schema.UInt8:
		return arrow.PrimitiveTypes.Uint8, nil
	case schema.UInt16:
		return arrow.PrimitiveTypes.Uint16, nil
	case schema.UInt32:
		return arrow.PrimitiveTypes.Uint32, nil
	case schema.UInt64:
		return arrow.PrimitiveTypes.Uint64, nil
	case schema.Int8:
		return arrow.PrimitiveTypes.Int8, nil
	case schema.Int16:
		return arrow.PrimitiveTypes.Int16, nil
	case schema.Int32:
		return arrow.PrimitiveTypes.Int32, nil
	case schema.Int64:
		return arrow.PrimitiveTypes.Int64, nil
	case schema.Float32:
		return arrow.PrimitiveTypes.Float32, nil
	case schema.Float64:
		return arrow.PrimitiveTypes.Float64, nil
	case schema.String:
		return arrow.BinaryTypes.String, nil
	}
	return nil, errors.Newf(errors.ErrorTypeInternal, "unknown underlying type %v", tag)
}

// SchemaOf derives the Arrow schema of a block. The logical type label is
// carried in field metadata under "logical_type".
func SchemaOf(b *column.Block) (*arrow.Schema, error) {
	fields := make([]arrow.Field, 0, b.NumColumns())
	for _, c := range b.Columns() {
		dt, err := arrowType(c.Column.Underlying())
		if err != nil {
			return nil, err
		}
		fields = append(fields, arrow.Field{
			Name:     c.Name,
			Type:     dt,
			Metadata: arrow.NewMetadata([]string{"logical_type"}, []string{c.Logical}),
		})
	}
	return arrow.NewSchema(fields, nil), nil
}

// ToRecord converts one block to an Arrow record. The caller owns the
// record and must Release it.
func ToRecord(pool memory.Allocator, b *column.Block) (arrow.Record, error) {
	arrowSchema, err := SchemaOf(b)
	if err != nil {
		return nil, err
	}

	builder := array.NewRecordBuilder(pool, arrowSchema)
	defer builder.Release()

	for i, c := range b.Columns() {
		if err := appendColumn(builder.Field(i), c.Column); err != nil {
			return nil, err
		}
	}
	return builder.NewRecord(), nil
}

// appendColumn copies a block column into an Arrow array builder.
func appendColumn(b array.Builder, col column.Column) error {
	switch col.Underlying() {
	case schema.UInt8:
		b.(*array.Uint8Builder).AppendValues(col.(*column.Vector[uint8]).Values(), nil)
	case schema.UInt16:
		b.(*array.Uint16Builder).AppendValues(col.(*column.Vector[uint16]).Values(), nil)
	case schema.UInt32:
		b.(*array.Uint32Builder).AppendValues(col.(*column.Vector[uint32]).Values(), nil)
	case schema.UInt64:
		b.(*array.Uint64Builder).AppendValues(col.(*column.Vector[uint64]).Values(), nil)
	case schema.Int8:
		b.(*array.Int8Builder).AppendValues(col.(*column.Vector[int8]).Values(), nil)
	case schema.Int16:
		b.(*array.Int16Builder).AppendValues(col.(*column.Vector[int16]).Values(), nil)
	case schema.Int32:
		b.(*array.Int32Builder).AppendValues(col.(*column.Vector[int32]).Values(), nil)
	case schema.Int64:
		b.(*array.Int64Builder).AppendValues(col.(*column.Vector[int64]).Values(), nil)
	case schema.Float32:
		b.(*array.Float32Builder).AppendValues(col.(*column.Vector[float32]).Values(), nil)
	case schema.Float64:
		b.(*array.Float64Builder).AppendValues(col.(*column.Vector[float64]).Values(), nil)
	case schema.String:
		b.(*array.StringBuilder).AppendValues(col.(*column.Strings).Values(), nil)
	default:
		return errors.Newf(errors.ErrorTypeInternal, "unknown underlying type %v", col.Underlying())
	}
	return nil
}

// IPCWriter writes a sequence of blocks sharing one column layout to an
// Arrow IPC file. The schema is fixed by the first block written; a stream's
// column identity is stable across blocks, so every block of one stream fits.
type IPCWriter struct {
	w          io.Writer
	pool       memory.Allocator
	fileWriter *ipc.FileWriter
	schema     *arrow.Schema
}

// NewIPCWriter creates a writer over w. The underlying IPC file is created
// lazily on the first Write.
func NewIPCWriter(w io.Writer) *IPCWriter {
	return &IPCWriter{w: w, pool: memory.NewGoAllocator()}
}

// Write appends one block to the IPC file.
func (iw *IPCWriter) Write(b *column.Block) error {
	if iw.fileWriter == nil {
		arrowSchema, err := SchemaOf(b)
		if err != nil {
			return err
		}
		fw, err := ipc.NewFileWriter(iw.w, ipc.WithSchema(arrowSchema), ipc.WithAllocator(iw.pool))
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "failed to create Arrow IPC writer")
		}
		iw.schema = arrowSchema
		iw.fileWriter = fw
	}

	rec, err := ToRecord(iw.pool, b)
	if err != nil {
		return err
	}
	defer rec.Release()

	if err := iw.fileWriter.Write(rec); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to write Arrow record")
	}
	return nil
}

// Close finalizes the IPC file. A writer that never received a block closes
// as a no-op.
func (iw *IPCWriter) Close() error {
	if iw.fileWriter == nil {
		return nil
	}
	if err := iw.fileWriter.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to close Arrow IPC writer")
	}
	return nil
}
