// Package keycodec encodes and decodes composite dictionary keys. A
// composite key is one opaque byte-string carrying an ordered tuple of typed
// field values: fixed-width fields are little-endian at their natural width,
// string fields are uvarint length-prefixed. Decoding is cursor-based over
// an immutable byte slice; a well-formed key is consumed exactly.
package keycodec

import (
	"encoding/binary"
	"math"

	"github.com/ajitpratap0/dictstream/pkg/column"
	"github.com/ajitpratap0/dictstream/pkg/errors"
	"github.com/ajitpratap0/dictstream/pkg/schema"
)

// EncodeRow re-encodes one row of materialized key columns back into the
// composite key byte-string, following the key schema's field order. Inverse
// of sequential decoding; composite-key dictionaries use it to address their
// rows by materialized columns.
func EncodeRow(fields schema.KeySchema, cols []column.Column, row int) ([]byte, error) {
	e := NewEncoder()
	for i, f := range fields {
		if err := e.EncodeValue(f.Underlying, cols[i].Value(row)); err != nil {
			return nil, err
		}
	}
	return e.Bytes(), nil
}

// Decoder reads typed field values sequentially from one encoded key.
type Decoder struct {
	buf []byte
	off int
}

// NewDecoder creates a decoder over the encoded key bytes. The slice is
// borrowed, never mutated.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of unconsumed bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.off
}

// take advances the cursor by n bytes and returns them.
func (d *Decoder) take(n int) ([]byte, error) {
	if d.Remaining() < n {
		return nil, errors.Newf(errors.ErrorTypeCorruptedKey,
			"key truncated: need %d bytes, %d remain", n, d.Remaining())
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

// Uint8 decodes one unsigned 8-bit field.
func (d *Decoder) Uint8() (uint8, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 decodes one unsigned 16-bit field.
func (d *Decoder) Uint16() (uint16, error) {
	b, err := d.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint32 decodes one unsigned 32-bit field.
func (d *Decoder) Uint32() (uint32, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint64 decodes one unsigned 64-bit field.
func (d *Decoder) Uint64() (uint64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Int8 decodes one signed 8-bit field.
func (d *Decoder) Int8() (int8, error) {
	v, err := d.Uint8()
	return int8(v), err
}

// Int16 decodes one signed 16-bit field.
func (d *Decoder) Int16() (int16, error) {
	v, err := d.Uint16()
	return int16(v), err
}

// Int32 decodes one signed 32-bit field.
func (d *Decoder) Int32() (int32, error) {
	v, err := d.Uint32()
	return int32(v), err
}

// Int64 decodes one signed 64-bit field.
func (d *Decoder) Int64() (int64, error) {
	v, err := d.Uint64()
	return int64(v), err
}

// Float32 decodes one 32-bit float field.
func (d *Decoder) Float32() (float32, error) {
	v, err := d.Uint32()
	return math.Float32frombits(v), err
}

// Float64 decodes one 64-bit float field.
func (d *Decoder) Float64() (float64, error) {
	v, err := d.Uint64()
	return math.Float64frombits(v), err
}

// String decodes one length-prefixed string field.
func (d *Decoder) String() (string, error) {
	n, size := binary.Uvarint(d.buf[d.off:])
	if size <= 0 {
		return "", errors.New(errors.ErrorTypeCorruptedKey, "key truncated: bad string length prefix")
	}
	d.off += size
	// Compare before converting: a prefix past the int range would wrap
	// negative and slip under take's remaining-bytes check.
	if n > uint64(d.Remaining()) {
		return "", errors.Newf(errors.ErrorTypeCorruptedKey,
			"key truncated: string length %d exceeds %d remaining bytes", n, d.Remaining())
	}
	b, err := d.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Encoder appends typed field values to an encoded key.
type Encoder struct {
	buf []byte
}

// NewEncoder creates an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the encoded key.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Uint8 appends one unsigned 8-bit field.
func (e *Encoder) Uint8(v uint8) { e.buf = append(e.buf, v) }

// Uint16 appends one unsigned 16-bit field.
func (e *Encoder) Uint16(v uint16) { e.buf = binary.LittleEndian.AppendUint16(e.buf, v) }

// Uint32 appends one unsigned 32-bit field.
func (e *Encoder) Uint32(v uint32) { e.buf = binary.LittleEndian.AppendUint32(e.buf, v) }

// Uint64 appends one unsigned 64-bit field.
func (e *Encoder) Uint64(v uint64) { e.buf = binary.LittleEndian.AppendUint64(e.buf, v) }

// Int8 appends one signed 8-bit field.
func (e *Encoder) Int8(v int8) { e.Uint8(uint8(v)) }

// Int16 appends one signed 16-bit field.
func (e *Encoder) Int16(v int16) { e.Uint16(uint16(v)) }

// Int32 appends one signed 32-bit field.
func (e *Encoder) Int32(v int32) { e.Uint32(uint32(v)) }

// Int64 appends one signed 64-bit field.
func (e *Encoder) Int64(v int64) { e.Uint64(uint64(v)) }

// Float32 appends one 32-bit float field.
func (e *Encoder) Float32(v float32) { e.Uint32(math.Float32bits(v)) }

// Float64 appends one 64-bit float field.
func (e *Encoder) Float64(v float64) { e.Uint64(math.Float64bits(v)) }

// String appends one length-prefixed string field.
func (e *Encoder) String(v string) {
	e.buf = binary.AppendUvarint(e.buf, uint64(len(v)))
	e.buf = append(e.buf, v...)
}

// EncodeValue appends one boxed value encoded per its type tag. Used when
// re-encoding materialized key columns row by row.
func (e *Encoder) EncodeValue(tag schema.Underlying, v interface{}) error {
	switch tag {
	case schema.UInt8:
		e.Uint8(v.(uint8))
	case schema.UInt16:
		e.Uint16(v.(uint16))
	case schema.UInt32:
		e.Uint32(v.(uint32))
	case schema.UInt64:
		e.Uint64(v.(uint64))
	case schema.Int8:
		e.Int8(v.(int8))
	case schema.Int16:
		e.Int16(v.(int16))
	case schema.Int32:
		e.Int32(v.(int32))
	case schema.Int64:
		e.Int64(v.(int64))
	case schema.Float32:
		e.Float32(v.(float32))
	case schema.Float64:
		e.Float64(v.(float64))
	case schema.String:
		e.String(v.(string))
	default:
		return errors.Newf(errors.ErrorTypeInternal, "unknown underlying type %v", tag)
	}
	return nil
}
