package blockstream

import (
	"github.com/ajitpratap0/dictstream/pkg/column"
	"github.com/ajitpratap0/dictstream/pkg/errors"
	"github.com/ajitpratap0/dictstream/pkg/keycodec"
	"github.com/ajitpratap0/dictstream/pkg/schema"
)

// materializeKeys decodes raw composite keys into one typed column per key
// schema field, in schema order. It runs exactly once, at stream
// construction; block slicing afterwards operates on the returned columns
// and never re-touches raw bytes.
//
// Each key byte-string is consumed field by field with a cursor; after the
// last field the cursor must sit exactly at the end of the key, otherwise
// the key encoding does not match the schema and the whole stream is
// rejected.
func materializeKeys(keySchema schema.KeySchema, rawKeys [][]byte) ([]column.WithMeta, error) {
	cols := make([]column.WithMeta, len(keySchema))
	for i, field := range keySchema {
		col, err := emptyColumnFor(field.Underlying, len(rawKeys))
		if err != nil {
			return nil, err
		}
		cols[i] = column.WithMeta{Column: col, Logical: field.LogicalType(), Name: field.Name}
	}

	for keyIdx, raw := range rawKeys {
		dec := keycodec.NewDecoder(raw)
		for fieldIdx, field := range keySchema {
			if err := decodeField(dec, field.Underlying, cols[fieldIdx].Column); err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeCorruptedKey,
					"unable to deserialize composite key").
					WithDetail("key_index", keyIdx).
					WithDetail("field", field.Name)
			}
		}
		if rem := dec.Remaining(); rem != 0 {
			return nil, errors.New(errors.ErrorTypeCorruptedKey,
				"composite key not fully consumed").
				WithDetail("key_index", keyIdx).
				WithDetail("unconsumed_bytes", rem)
		}
	}

	return cols, nil
}
