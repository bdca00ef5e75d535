// Package column provides the typed columnar containers blocks are built
// from: fixed-width vectors for the ten numeric types and a growable string
// column, plus the Block batch type.
package column

import (
	"github.com/ajitpratap0/dictstream/pkg/schema"
)

// Column is a homogeneous, length-indexed container of values of one
// underlying type. Fixed-width columns are pre-sized to their final row
// count and filled in place; string columns grow by append.
type Column interface {
	// Underlying returns the physical type tag of the stored values.
	Underlying() schema.Underlying
	// Len returns the number of rows.
	Len() int
	// Slice returns a zero-copy view of rows [start, start+length).
	Slice(start, length int) Column
	// Value returns the row at i boxed for format conversion and tests.
	// Hot paths use the typed accessors on the concrete types instead.
	Value(i int) interface{}
}

// Fixed is the set of fixed-width value types a Vector can hold.
type Fixed interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~int8 | ~int16 | ~int32 | ~int64 |
		~float32 | ~float64
}

// Vector is a fixed-width column. The backing slice is exposed through
// Values so dictionary getters can fill it index-by-index without resizing.
type Vector[T Fixed] struct {
	values []T
	tag    schema.Underlying
}

// NewVector creates a vector pre-sized to exactly n rows.
func NewVector[T Fixed](tag schema.Underlying, n int) *Vector[T] {
	return &Vector[T]{values: make([]T, n), tag: tag}
}

// NewEmptyVector creates a zero-length vector with capacity for n rows,
// grown by Append. Key materialization builds vectors this way.
func NewEmptyVector[T Fixed](tag schema.Underlying, n int) *Vector[T] {
	return &Vector[T]{values: make([]T, 0, n), tag: tag}
}

// Underlying implements Column.
func (v *Vector[T]) Underlying() schema.Underlying { return v.tag }

// Len implements Column.
func (v *Vector[T]) Len() int { return len(v.values) }

// Values returns the backing slice for in-place fill.
func (v *Vector[T]) Values() []T { return v.values }

// Slice implements Column. The view shares the backing array.
func (v *Vector[T]) Slice(start, length int) Column {
	return &Vector[T]{values: v.values[start : start+length], tag: v.tag}
}

// Value implements Column.
func (v *Vector[T]) Value(i int) interface{} { return v.values[i] }

// Append adds one value. Only the key materializer grows vectors; block
// projection always pre-sizes.
func (v *Vector[T]) Append(val T) { v.values = append(v.values, val) }

// Strings is the variable-length string column. Dictionary string getters
// append one value per logical row, in row order.
type Strings struct {
	values []string
}

// NewStrings creates a string column with capacity for n rows.
func NewStrings(n int) *Strings {
	return &Strings{values: make([]string, 0, n)}
}

// Underlying implements Column.
func (s *Strings) Underlying() schema.Underlying { return schema.String }

// Len implements Column.
func (s *Strings) Len() int { return len(s.values) }

// Values returns the backing slice.
func (s *Strings) Values() []string { return s.values }

// Slice implements Column.
func (s *Strings) Slice(start, length int) Column {
	return &Strings{values: s.values[start : start+length]}
}

// Value implements Column.
func (s *Strings) Value(i int) interface{} { return s.values[i] }

// Append adds one string row.
func (s *Strings) Append(val string) { s.values = append(s.values, val) }
