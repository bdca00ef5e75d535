// Package dictionary defines the typed getter contracts a block stream
// consumes, plus small in-memory dictionaries used by the CLI and tests.
// The contracts mirror how external dictionaries expose attribute data: one
// getter per underlying type, addressed either by dense numeric id or by
// materialized composite-key columns. Storage engines behind these
// interfaces (hash layout, caching, refresh) are out of scope here.
package dictionary

import (
	"github.com/ajitpratap0/dictstream/pkg/column"
	"github.com/ajitpratap0/dictstream/pkg/schema"
)

// IDIndexed is the getter contract of a dictionary addressed by dense
// numeric id. Fixed-width getters fill out index-by-index; out is pre-sized
// by the caller to exactly len(ids). The string getter appends one value
// per id, in id order. Implementations must be safe for concurrent
// read-only access from independent streams.
type IDIndexed interface {
	// Name identifies the dictionary for diagnostics.
	Name() string
	// Structure returns the dictionary's descriptor set. Borrowed
	// read-only by streams for their whole lifetime.
	Structure() schema.Structure

	GetUint8(attr string, ids []uint64, out []uint8) error
	GetUint16(attr string, ids []uint64, out []uint16) error
	GetUint32(attr string, ids []uint64, out []uint32) error
	GetUint64(attr string, ids []uint64, out []uint64) error
	GetInt8(attr string, ids []uint64, out []int8) error
	GetInt16(attr string, ids []uint64, out []int16) error
	GetInt32(attr string, ids []uint64, out []int32) error
	GetInt64(attr string, ids []uint64, out []int64) error
	GetFloat32(attr string, ids []uint64, out []float32) error
	GetFloat64(attr string, ids []uint64, out []float64) error
	GetString(attr string, ids []uint64, out *column.Strings) error
}

// KeyIndexed is the getter contract of a composite-key dictionary. Rows are
// addressed by the materialized key columns (one per key schema field, all
// the same length); keyTypes lists the matching underlying types. Fill and
// append semantics are the same as IDIndexed.
type KeyIndexed interface {
	Name() string
	Structure() schema.Structure

	GetUint8ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []uint8) error
	GetUint16ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []uint16) error
	GetUint32ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []uint32) error
	GetUint64ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []uint64) error
	GetInt8ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []int8) error
	GetInt16ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []int16) error
	GetInt32ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []int32) error
	GetInt64ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []int64) error
	GetFloat32ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []float32) error
	GetFloat64ByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out []float64) error
	GetStringByKey(attr string, keys []column.Column, keyTypes []schema.Underlying, out *column.Strings) error
}
