package dictionary

import (
	"github.com/ajitpratap0/dictstream/pkg/column"
	"github.com/ajitpratap0/dictstream/pkg/errors"
	"github.com/ajitpratap0/dictstream/pkg/keycodec"
	"github.com/ajitpratap0/dictstream/pkg/schema"
)

// MemDictionary is an in-memory id-indexed dictionary. It backs the CLI and
// the test suites; it is a reference lookup store, not a storage engine.
// Entries missing an id or an attribute resolve to the type's zero value.
type MemDictionary struct {
	name      string
	structure schema.Structure
	rows      map[uint64]map[string]interface{}
	ids       []uint64 // insertion order
}

// NewMemDictionary creates an empty id-indexed dictionary with the given
// descriptor set. structure.ID must be set.
func NewMemDictionary(name string, structure schema.Structure) (*MemDictionary, error) {
	if structure.ID == nil {
		return nil, errors.New(errors.ErrorTypeValidation, "id-indexed dictionary requires an id descriptor")
	}
	return &MemDictionary{
		name:      name,
		structure: structure,
		rows:      make(map[uint64]map[string]interface{}),
	}, nil
}

// Add stores one entry. Attribute values are coerced to their declared
// underlying type; unknown attribute names are rejected.
func (d *MemDictionary) Add(id uint64, values map[string]interface{}) error {
	row, err := coerceRow(d.structure.Attributes, values)
	if err != nil {
		return err
	}
	if _, exists := d.rows[id]; !exists {
		d.ids = append(d.ids, id)
	}
	d.rows[id] = row
	return nil
}

// IDs returns all entry ids in insertion order.
func (d *MemDictionary) IDs() []uint64 { return d.ids }

// Name implements IDIndexed.
func (d *MemDictionary) Name() string { return d.name }

// Structure implements IDIndexed.
func (d *MemDictionary) Structure() schema.Structure { return d.structure }

func (d *MemDictionary) value(attr string, id uint64) interface{} {
	if row, ok := d.rows[id]; ok {
		return row[attr]
	}
	return nil
}

// fillFixed looks up attr for each id and writes the values into out.
func fillFixed[T column.Fixed](d *MemDictionary, attr string, tag schema.Underlying, ids []uint64, out []T) error {
	if err := checkAttr(d.structure, attr, tag); err != nil {
		return err
	}
	if len(out) != len(ids) {
		return errors.Newf(errors.ErrorTypeValidation,
			"output length %d does not match id count %d", len(out), len(ids))
	}
	for i, id := range ids {
		if v := d.value(attr, id); v != nil {
			out[i] = v.(T)
		} else {
			out[i] = 0
		}
	}
	return nil
}

// GetUint8 implements IDIndexed.
func (d *MemDictionary) GetUint8(attr string, ids []uint64, out []uint8) error {
	return fillFixed(d, attr, schema.UInt8, ids, out)
}

// GetUint16 implements IDIndexed.
func (d *MemDictionary) GetUint16(attr string, ids []uint64, out []uint16) error {
	return fillFixed(d, attr, schema.UInt16, ids, out)
}

// GetUint32 implements IDIndexed.
func (d *MemDictionary) GetUint32(attr string, ids []uint64, out []uint32) error {
	return fillFixed(d, attr, schema.UInt32, ids, out)
}

// GetUint64 implements IDIndexed.
func (d *MemDictionary) GetUint64(attr string, ids []uint64, out []uint64) error {
	return fillFixed(d, attr, schema.UInt64, ids, out)
}

// GetInt8 implements IDIndexed.
func (d *MemDictionary) GetInt8(attr string, ids []uint64, out []int8) error {
	return fillFixed(d, attr, schema.Int8, ids, out)
}

// GetInt16 implements IDIndexed.
func (d *MemDictionary) GetInt16(attr string, ids []uint64, out []int16) error {
	return fillFixed(d, attr, schema.Int16, ids, out)
}

// GetInt32 implements IDIndexed.
func (d *MemDictionary) GetInt32(attr string, ids []uint64, out []int32) error {
	return fillFixed(d, attr, schema.Int32, ids, out)
}

// GetInt64 implements IDIndexed.
func (d *MemDictionary) GetInt64(attr string, ids []uint64, out []int64) error {
	return fillFixed(d, attr, schema.Int64, ids, out)
}

// GetFloat32 implements IDIndexed.
func (d *MemDictionary) GetFloat32(attr string, ids []uint64, out []float32) error {
	return fillFixed(d, attr, schema.Float32, ids, out)
}

// GetFloat64 implements IDIndexed.
func (d *MemDictionary) GetFloat64(attr string, ids []uint64, out []float64) error {
	return fillFixed(d, attr, schema.Float64, ids, out)
}

// GetString implements IDIndexed.
func (d *MemDictionary) GetString(attr string, ids []uint64, out *column.Strings) error {
	if err := checkAttr(d.structure, attr, schema.String); err != nil {
		return err
	}
	for _, id := range ids {
		if v := d.value(attr, id); v != nil {
			out.Append(v.(string))
		} else {
			out.Append("")
		}
	}
	return nil
}

// checkAttr verifies attr exists with the expected underlying type.
func checkAttr(s schema.Structure, attr string, tag schema.Underlying) error {
	a, ok := s.Attribute(attr)
	if !ok {
		return errors.Newf(errors.ErrorTypeNotFound, "no attribute %q", attr)
	}
	if a.Underlying != tag {
		return errors.Newf(errors.ErrorTypeValidation,
			"attribute %q is %s, requested as %s", attr, a.Underlying, tag)
	}
	return nil
}

// coerceRow converts values to their declared underlying Go types. Numeric
// inputs may arrive as any Go numeric type (JSON decoding yields float64).
func coerceRow(attrs []schema.Attribute, values map[string]interface{}) (map[string]interface{}, error) {
	row := make(map[string]interface{}, len(values))
	for name, v := range values {
		var attr *schema.Attribute
		for i := range attrs {
			if attrs[i].Name == name {
				attr = &attrs[i]
				break
			}
		}
		if attr == nil {
			return nil, errors.Newf(errors.ErrorTypeSchemaMismatch, "no attribute %q in schema", name)
		}
		cv, err := coerceValue(attr.Underlying, v)
		if err != nil {
			return nil, err
		}
		row[name] = cv
	}
	return row, nil
}

func coerceValue(tag schema.Underlying, v interface{}) (interface{}, error) {
	if tag == schema.String {
		s, ok := v.(string)
		if !ok {
			return nil, errors.Newf(errors.ErrorTypeValidation, "expected string, got %T", v)
		}
		return s, nil
	}

	var f float64
	switch n := v.(type) {
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case int:
		f = float64(n)
	case float32:
		f = float64(n)
	case float64:
		f = n
	default:
		return nil, errors.Newf(errors.ErrorTypeValidation, "expected numeric value, got %T", v)
	}

	switch tag {
	case schema.UInt8:
		return uint8(f), nil
	case schema.UInt16:
		return uint16(f), nil
	case schema.UInt32:
		return uint32(f), nil
	case schema.UInt64:
		return uint64(f), nil
	case schema.Int8:
		return int8(f), nil
	case schema.Int16:
		return int16(f), nil
	case schema.Int32:
		return int32(f), nil
	case schema.Int64:
		return int64(f), nil
	case schema.Float32:
		return float32(f), nil
	case schema.Float64:
		return f, nil
	}
	return nil, errors.Newf(errors.ErrorTypeInternal, "unknown underlying type %v", tag)
}

// MemComplexDictionary is an in-memory composite-key dictionary. Entries
// are stored under the encoded key bytes; key-indexed lookups re-encode the
// materialized key columns row by row to address them.
type MemComplexDictionary struct {
	name      string
	structure schema.Structure
	rows      map[string]map[string]interface{}
	keys      [][]byte // insertion order
}

// NewMemComplexDictionary creates an empty composite-key dictionary.
// structure.Key must be non-empty.
func NewMemComplexDictionary(name string, structure schema.Structure) (*MemComplexDictionary, error) {
	if len(structure.Key) == 0 {
		return nil, errors.New(errors.ErrorTypeValidation, "composite-key dictionary requires a key schema")
	}
	return &MemComplexDictionary{
		name:      name,
		structure: structure,
		rows:      make(map[string]map[string]interface{}),
	}, nil
}

// Add stores one entry under the composite key built from keyFields, which
// must match the key schema in order and arity.
func (d *MemComplexDictionary) Add(keyFields []interface{}, values map[string]interface{}) error {
	if len(keyFields) != len(d.structure.Key) {
		return errors.Newf(errors.ErrorTypeValidation,
			"key has %d fields, schema has %d", len(keyFields), len(d.structure.Key))
	}
	enc := keycodec.NewEncoder()
	for i, f := range d.structure.Key {
		cv, err := coerceValue(f.Underlying, keyFields[i])
		if err != nil {
			return err
		}
		if err := enc.EncodeValue(f.Underlying, cv); err != nil {
			return err
		}
	}
	row, err := coerceRow(d.structure.Attributes, values)
	if err != nil {
		return err
	}
	key := enc.Bytes()
	if _, exists := d.rows[string(key)]; !exists {
		d.keys = append(d.keys, key)
	}
	d.rows[string(key)] = row
	return nil
}

// Keys returns all encoded composite keys in insertion order.
func (d *MemComplexDictionary) Keys() [][]byte { return d.keys }

// Name implements KeyIndexed.
func (d *MemComplexDictionary) Name() string { return d.name }

// Structure implements KeyIndexed.
func (d *MemComplexDictionary) Structure() schema.Structure { return d.structure }

// rowAt re-encodes key columns at row and looks the entry up.
func (d *MemComplexDictionary) rowAt(keys []column.Column, row int) (map[string]interface{}, error) {
	enc, err := keycodec.EncodeRow(d.structure.Key, keys, row)
	if err != nil {
		return nil, err
	}
	return d.rows[string(enc)], nil
}

func (d *MemComplexDictionary) checkKeyTypes(keys []column.Column, keyTypes []schema.Underlying) error {
	if len(keys) != len(d.structure.Key) || len(keyTypes) != len(d.structure.Key) {
		return errors.Newf(errors.ErrorTypeValidation,
			"got %d key columns and %d types, key schema has %d fields",
			len(keys), len(keyTypes), len(d.structure.Key))
	}
	for i, f := range d.structure.Key {
		if keyTypes[i] != f.Underlying {
			return errors.Newf(errors.ErrorTypeValidation,
				"key field %q is %s, got %s", f.Name, f.Underlying, keyTypes[i])
		}
	}
	return nil
}

// fillFixedByKey looks up attr for each key-column row and fills out.
func fillFixedByKey[T column.Fixed](d *MemComplexDictionary, attr string, tag schema.Underlying,
	keys []column.Column, keyTypes []schema.Underlying, out []T) error {
	if err := checkAttr(d.structure, attr, tag); err != nil {
		return err
	}
	if err := d.checkKeyTypes(keys, keyTypes); err != nil {
		return err
	}
	for i := 0; i < len(out); i++ {
		row, err := d.rowAt(keys, i)
		if err != nil {
			return err
		}
		if v, ok := row[attr]; ok {
			out[i] = v.(T)
		} else {
			out[i] = 0
		}
	}
	return nil
}

// GetUint8ByKey implements KeyIndexed.
func (d *MemComplexDictionary) GetUint8ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []uint8) error {
	return fillFixedByKey(d, attr, schema.UInt8, keys, keyTypes, out)
}

// GetUint16ByKey implements KeyIndexed.
func (d *MemComplexDictionary) GetUint16ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []uint16) error {
	return fillFixedByKey(d, attr, schema.UInt16, keys, keyTypes, out)
}

// GetUint32ByKey implements KeyIndexed.
func (d *MemComplexDictionary) GetUint32ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []uint32) error {
	return fillFixedByKey(d, attr, schema.UInt32, keys, keyTypes, out)
}

// GetUint64ByKey implements KeyIndexed.
func (d *MemComplexDictionary) GetUint64ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []uint64) error {
	return fillFixedByKey(d, attr, schema.UInt64, keys, keyTypes, out)
}

// GetInt8ByKey implements KeyIndexed.
func (d *MemComplexDictionary) GetInt8ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []int8) error {
	return fillFixedByKey(d, attr, schema.Int8, keys, keyTypes, out)
}

// GetInt16ByKey implements KeyIndexed.
func (d *MemComplexDictionary) GetInt16ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []int16) error {
	return fillFixedByKey(d, attr, schema.Int16, keys, keyTypes, out)
}

// GetInt32ByKey implements KeyIndexed.
func (d *MemComplexDictionary) GetInt32ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []int32) error {
	return fillFixedByKey(d, attr, schema.Int32, keys, keyTypes, out)
}

// GetInt64ByKey implements KeyIndexed.
func (d *MemComplexDictionary) GetInt64ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []int64) error {
	return fillFixedByKey(d, attr, schema.Int64, keys, keyTypes, out)
}

// GetFloat32ByKey implements KeyIndexed.
func (d *MemComplexDictionary) GetFloat32ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []float32) error {
	return fillFixedByKey(d, attr, schema.Float32, keys, keyTypes, out)
}

// GetFloat64ByKey implements KeyIndexed.
func (d *MemComplexDictionary) GetFloat64ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []float64) error {
	return fillFixedByKey(d, attr, schema.Float64, keys, keyTypes, out)
}

// GetStringByKey implements KeyIndexed.
func (d *MemComplexDictionary) GetStringByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out *column.Strings) error {
	if err := checkAttr(d.structure, attr, schema.String); err != nil {
		return err
	}
	if err := d.checkKeyTypes(keys, keyTypes); err != nil {
		return err
	}
	n := 0
	if len(keys) > 0 {
		n = keys[0].Len()
	}
	for i := 0; i < n; i++ {
		row, err := d.rowAt(keys, i)
		if err != nil {
			return err
		}
		if v, ok := row[attr]; ok {
			out.Append(v.(string))
		} else {
			out.Append("")
		}
	}
	return nil
}
