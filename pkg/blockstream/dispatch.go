package blockstream

import (
	"github.com/ajitpratap0/dictstream/pkg/column"
	"github.com/ajitpratap0/dictstream/pkg/dictionary"
	"github.com/ajitpratap0/dictstream/pkg/errors"
	"github.com/ajitpratap0/dictstream/pkg/keycodec"
	"github.com/ajitpratap0/dictstream/pkg/schema"
)

// This file is the type dispatch table: the closed mapping from underlying
// type tag to column constructor and getter invocation, shared by the key
// materializer and the attribute projector. Every switch below covers the
// full tag set; an unknown tag can only mean a corrupted descriptor.

// errUnknownType reports a type tag outside the closed set.
func errUnknownType(tag schema.Underlying) error {
	return errors.Newf(errors.ErrorTypeInternal, "unknown underlying type %v", tag)
}

// emptyColumnFor constructs a zero-length, growable column for tag with
// capacity for n appends.
func emptyColumnFor(tag schema.Underlying, n int) (column.Column, error) {
	switch tag {
	case schema.UInt8:
		return column.NewEmptyVector[uint8](tag, n), nil
	case schema.UInt16:
		return column.NewEmptyVector[uint16](tag, n), nil
	case schema.UInt32:
		return column.NewEmptyVector[uint32](tag, n), nil
	case schema.UInt64:
		return column.NewEmptyVector[uint64](tag, n), nil
	case schema.Int8:
		return column.NewEmptyVector[int8](tag, n), nil
	case schema.Int16:
		return column.NewEmptyVector[int16](tag, n), nil
	case schema.Int32:
		return column.NewEmptyVector[int32](tag, n), nil
	case schema.Int64:
		return column.NewEmptyVector[int64](tag, n), nil
	case schema.Float32:
		return column.NewEmptyVector[float32](tag, n), nil
	case schema.Float64:
		return column.NewEmptyVector[float64](tag, n), nil
	case schema.String:
		return column.NewStrings(n), nil
	}
	return nil, errUnknownType(tag)
}

// decodeField decodes one value of type tag from dec and appends it to col.
// col must have been constructed by emptyColumnFor with the same tag.
func decodeField(dec *keycodec.Decoder, tag schema.Underlying, col column.Column) error {
	switch tag {
	case schema.UInt8:
		v, err := dec.Uint8()
		if err != nil {
			return err
		}
		col.(*column.Vector[uint8]).Append(v)
	case schema.UInt16:
		v, err := dec.Uint16()
		if err != nil {
			return err
		}
		col.(*column.Vector[uint16]).Append(v)
	case schema.UInt32:
		v, err := dec.Uint32()
		if err != nil {
			return err
		}
		col.(*column.Vector[uint32]).Append(v)
	case schema.UInt64:
		v, err := dec.Uint64()
		if err != nil {
			return err
		}
		col.(*column.Vector[uint64]).Append(v)
	case schema.Int8:
		v, err := dec.Int8()
		if err != nil {
			return err
		}
		col.(*column.Vector[int8]).Append(v)
	case schema.Int16:
		v, err := dec.Int16()
		if err != nil {
			return err
		}
		col.(*column.Vector[int16]).Append(v)
	case schema.Int32:
		v, err := dec.Int32()
		if err != nil {
			return err
		}
		col.(*column.Vector[int32]).Append(v)
	case schema.Int64:
		v, err := dec.Int64()
		if err != nil {
			return err
		}
		col.(*column.Vector[int64]).Append(v)
	case schema.Float32:
		v, err := dec.Float32()
		if err != nil {
			return err
		}
		col.(*column.Vector[float32]).Append(v)
	case schema.Float64:
		v, err := dec.Float64()
		if err != nil {
			return err
		}
		col.(*column.Vector[float64]).Append(v)
	case schema.String:
		v, err := dec.String()
		if err != nil {
			return err
		}
		col.(*column.Strings).Append(v)
	default:
		return errUnknownType(tag)
	}
	return nil
}

// fetchByID builds one attribute column by invoking the dictionary's typed
// id-indexed getter. Fixed-width columns are pre-sized to len(ids) and
// filled in place; the string getter appends one value per id. Getter
// failures propagate wrapped, never swallowed.
func fetchByID(d dictionary.IDIndexed, attr schema.Attribute, ids []uint64) (column.Column, error) {
	switch attr.Underlying {
	case schema.UInt8:
		col := column.NewVector[uint8](attr.Underlying, len(ids))
		if err := d.GetUint8(attr.Name, ids, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.UInt16:
		col := column.NewVector[uint16](attr.Underlying, len(ids))
		if err := d.GetUint16(attr.Name, ids, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.UInt32:
		col := column.NewVector[uint32](attr.Underlying, len(ids))
		if err := d.GetUint32(attr.Name, ids, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.UInt64:
		col := column.NewVector[uint64](attr.Underlying, len(ids))
		if err := d.GetUint64(attr.Name, ids, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.Int8:
		col := column.NewVector[int8](attr.Underlying, len(ids))
		if err := d.GetInt8(attr.Name, ids, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.Int16:
		col := column.NewVector[int16](attr.Underlying, len(ids))
		if err := d.GetInt16(attr.Name, ids, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.Int32:
		col := column.NewVector[int32](attr.Underlying, len(ids))
		if err := d.GetInt32(attr.Name, ids, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.Int64:
		col := column.NewVector[int64](attr.Underlying, len(ids))
		if err := d.GetInt64(attr.Name, ids, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.Float32:
		col := column.NewVector[float32](attr.Underlying, len(ids))
		if err := d.GetFloat32(attr.Name, ids, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.Float64:
		col := column.NewVector[float64](attr.Underlying, len(ids))
		if err := d.GetFloat64(attr.Name, ids, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.String:
		col := column.NewStrings(len(ids))
		if err := d.GetString(attr.Name, ids, col); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	}
	return nil, errUnknownType(attr.Underlying)
}

// fetchByKey builds one attribute column by invoking the dictionary's typed
// key-indexed getter with the materialized key columns for the current row
// range. rows is the row count shared by all key columns.
func fetchByKey(d dictionary.KeyIndexed, attr schema.Attribute,
	keys []column.Column, keyTypes []schema.Underlying, rows int) (column.Column, error) {
	switch attr.Underlying {
	case schema.UInt8:
		col := column.NewVector[uint8](attr.Underlying, rows)
		if err := d.GetUint8ByKey(attr.Name, keys, keyTypes, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.UInt16:
		col := column.NewVector[uint16](attr.Underlying, rows)
		if err := d.GetUint16ByKey(attr.Name, keys, keyTypes, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.UInt32:
		col := column.NewVector[uint32](attr.Underlying, rows)
		if err := d.GetUint32ByKey(attr.Name, keys, keyTypes, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.UInt64:
		col := column.NewVector[uint64](attr.Underlying, rows)
		if err := d.GetUint64ByKey(attr.Name, keys, keyTypes, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.Int8:
		col := column.NewVector[int8](attr.Underlying, rows)
		if err := d.GetInt8ByKey(attr.Name, keys, keyTypes, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.Int16:
		col := column.NewVector[int16](attr.Underlying, rows)
		if err := d.GetInt16ByKey(attr.Name, keys, keyTypes, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.Int32:
		col := column.NewVector[int32](attr.Underlying, rows)
		if err := d.GetInt32ByKey(attr.Name, keys, keyTypes, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.Int64:
		col := column.NewVector[int64](attr.Underlying, rows)
		if err := d.GetInt64ByKey(attr.Name, keys, keyTypes, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.Float32:
		col := column.NewVector[float32](attr.Underlying, rows)
		if err := d.GetFloat32ByKey(attr.Name, keys, keyTypes, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.Float64:
		col := column.NewVector[float64](attr.Underlying, rows)
		if err := d.GetFloat64ByKey(attr.Name, keys, keyTypes, col.Values()); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	case schema.String:
		col := column.NewStrings(rows)
		if err := d.GetStringByKey(attr.Name, keys, keyTypes, col); err != nil {
			return nil, wrapGetter(err, attr)
		}
		return col, nil
	}
	return nil, errUnknownType(attr.Underlying)
}

// wrapGetter tags a dictionary getter failure with the attribute it was
// fetching. The original error stays reachable through Unwrap.
func wrapGetter(err error, attr schema.Attribute) error {
	return errors.Wrap(err, errors.ErrorTypeUpstream, "dictionary getter failed").
		WithDetail("attribute", attr.Name).
		WithDetail("underlying_type", attr.Underlying.String())
}
