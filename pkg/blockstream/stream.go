// Package blockstream converts a dictionary into a stream of fixed-size
// columnar blocks. A Stream is constructed over either a flat array of
// numeric ids or a list of encoded composite keys, plus a requested
// projection of attribute names; each ProduceBlock call returns one batch
// with one typed column per requested attribute (and the id column or
// decoded key-field columns, when requested).
//
// A stream fixes its addressing mode at construction: composite keys are
// materialized into typed columns exactly once, and the attribute-fetch
// strategy (id-indexed vs key-indexed) is bound as a stored closure, never
// re-decided per call. One Stream instance is not safe for concurrent
// ProduceBlock calls; independent instances over the same dictionary are.
package blockstream

import (
	"go.uber.org/zap"

	"github.com/ajitpratap0/dictstream/pkg/column"
	"github.com/ajitpratap0/dictstream/pkg/dictionary"
	"github.com/ajitpratap0/dictstream/pkg/errors"
	"github.com/ajitpratap0/dictstream/pkg/logger"
	"github.com/ajitpratap0/dictstream/pkg/metrics"
	"github.com/ajitpratap0/dictstream/pkg/schema"
)

// ProjectionPolicy decides what happens when a requested column name does
// not resolve in the dictionary's id/key/attribute namespace. The policy is
// fixed per stream instance and never mixed per call.
type ProjectionPolicy int

const (
	// ProjectionSkipUnknown silently drops unknown names: only names found
	// in the schema are materialized. This is the default.
	ProjectionSkipUnknown ProjectionPolicy = iota
	// ProjectionStrict fails stream construction with a schema_mismatch
	// error naming the first unresolvable column.
	ProjectionStrict
)

// Option configures a Stream at construction.
type Option func(*Stream)

// WithProjectionPolicy sets the unknown-name policy.
func WithProjectionPolicy(p ProjectionPolicy) Option {
	return func(s *Stream) { s.policy = p }
}

// WithLogger sets the logger used for construction and materialization
// diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(s *Stream) { s.log = log }
}

// fillFunc is the bound attribute-fetch strategy. Exactly one of ids or
// keys is populated, matching the stream's addressing mode.
type fillFunc func(ids []uint64, keys []column.WithMeta) (*column.Block, error)

// Stream produces fixed-size columnar blocks over an immutable row
// selection. Construction fixes the addressing mode and performs key
// materialization; each ProduceBlock call slices and projects.
type Stream struct {
	name         string
	structure    schema.Structure
	requested    map[string]struct{}
	maxBlockSize int
	policy       ProjectionPolicy
	log          *zap.Logger

	// Exactly one of ids / keyColumns is populated, per addressing mode.
	ids        []uint64
	keyColumns []column.WithMeta
	keyTypes   []schema.Underlying

	fill  fillFunc
	total int
}

// NewIDStream creates a stream over a flat array of numeric ids. The ids
// are owned by the stream; their order is the output row order.
func NewIDStream(dict dictionary.IDIndexed, maxBlockSize int, ids []uint64, names []string, opts ...Option) (*Stream, error) {
	s, err := newStream(dict.Name(), dict.Structure(), maxBlockSize, names, opts...)
	if err != nil {
		return nil, err
	}
	s.ids = ids
	s.total = len(ids)
	s.fill = func(ids []uint64, _ []column.WithMeta) (*column.Block, error) {
		return s.fillBlockByID(dict, ids)
	}

	s.log.Debug("created id-indexed block stream",
		zap.String("stream", s.name),
		zap.Int("ids", len(ids)),
		zap.Int("max_block_size", maxBlockSize))
	return s, nil
}

// NewKeyStream creates a stream over a list of encoded composite keys. The
// keys are decoded into typed columns once, here; a key whose encoding does
// not match the dictionary's key schema fails construction with a
// corrupted_key error naming the key index.
func NewKeyStream(dict dictionary.KeyIndexed, maxBlockSize int, rawKeys [][]byte, names []string, opts ...Option) (*Stream, error) {
	structure := dict.Structure()
	if len(structure.Key) == 0 {
		return nil, errors.New(errors.ErrorTypeValidation, "dictionary has no key schema")
	}

	s, err := newStream(dict.Name(), structure, maxBlockSize, names, opts...)
	if err != nil {
		return nil, err
	}

	timer := metrics.NewTimer()
	keyColumns, err := materializeKeys(structure.Key, rawKeys)
	if err != nil {
		return nil, err
	}
	metrics.KeysMaterialized.WithLabelValues(s.name).Add(float64(len(rawKeys)))
	metrics.MaterializeLatency.WithLabelValues(s.name).Observe(float64(timer.Stop().Nanoseconds()))

	s.keyColumns = keyColumns
	s.keyTypes = make([]schema.Underlying, len(structure.Key))
	for i, f := range structure.Key {
		s.keyTypes[i] = f.Underlying
	}
	s.total = len(rawKeys)
	s.fill = func(_ []uint64, keys []column.WithMeta) (*column.Block, error) {
		return s.fillBlockByKey(dict, keys)
	}

	s.log.Debug("created key-indexed block stream",
		zap.String("stream", s.name),
		zap.Int("keys", len(rawKeys)),
		zap.Int("key_fields", len(structure.Key)),
		zap.Int("max_block_size", maxBlockSize))
	return s, nil
}

// newStream validates the common construction inputs.
func newStream(name string, structure schema.Structure, maxBlockSize int, names []string, opts ...Option) (*Stream, error) {
	if maxBlockSize <= 0 {
		return nil, errors.Newf(errors.ErrorTypeValidation, "max block size must be positive, got %d", maxBlockSize)
	}

	s := &Stream{
		name:         name,
		structure:    structure,
		requested:    make(map[string]struct{}, len(names)),
		maxBlockSize: maxBlockSize,
		policy:       ProjectionSkipUnknown,
		log:          logger.Get(),
	}
	for _, n := range names {
		s.requested[n] = struct{}{}
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.policy == ProjectionStrict {
		for _, n := range names {
			if !structure.HasName(n) {
				return nil, errors.Newf(errors.ErrorTypeSchemaMismatch,
					"requested column %q not found in dictionary %q", n, name)
			}
		}
	}
	return s, nil
}

// Name returns the stream identifier used for diagnostics.
func (s *Stream) Name() string { return s.name }

// Total returns the total row count (id count or key count).
func (s *Stream) Total() int { return s.total }

// MaxBlockSize returns the configured batch size bound.
func (s *Stream) MaxBlockSize() int { return s.maxBlockSize }

// ProduceBlock returns the block covering rows [start, start+length). Calls
// are independent and side-effect-free on shared state; repeating a call
// with the same arguments returns a structurally equal block. Column order
// is deterministic: id column if requested, then requested key fields in
// schema order, then attributes in descriptor order.
func (s *Stream) ProduceBlock(start, length int) (*column.Block, error) {
	if start < 0 || length < 0 || start+length > s.total {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"block range [%d, %d) out of bounds for %d rows", start, start+length, s.total)
	}

	timer := metrics.NewTimer()

	var (
		block *column.Block
		err   error
	)
	if s.keyColumns != nil {
		keys := make([]column.WithMeta, len(s.keyColumns))
		for i, kc := range s.keyColumns {
			keys[i] = kc.Slice(start, length)
		}
		block, err = s.fill(nil, keys)
	} else {
		block, err = s.fill(s.ids[start:start+length], nil)
	}
	if err != nil {
		return nil, err
	}

	metrics.BlocksProduced.WithLabelValues(s.name).Inc()
	metrics.RowsProjected.WithLabelValues(s.name).Add(float64(block.Rows()))
	metrics.BlockFillLatency.WithLabelValues(s.name).Observe(float64(timer.Stop().Nanoseconds()))
	return block, nil
}

func (s *Stream) isRequested(name string) bool {
	_, ok := s.requested[name]
	return ok
}

// fillBlockByID projects the id slice into a block: the pass-through id
// column if requested, then one column per requested attribute via the
// dictionary's id-indexed getters.
func (s *Stream) fillBlockByID(dict dictionary.IDIndexed, ids []uint64) (*column.Block, error) {
	cols := make([]column.WithMeta, 0, len(s.requested))
	taken := make(map[string]struct{}, len(s.requested))

	if id := s.structure.ID; id != nil && s.isRequested(id.Name) {
		idCol := column.NewVector[uint64](schema.UInt64, len(ids))
		copy(idCol.Values(), ids)
		cols = append(cols, column.WithMeta{Column: idCol, Logical: id.LogicalType(), Name: id.Name})
		taken[id.Name] = struct{}{}
	}

	for _, attr := range s.structure.Attributes {
		if !s.isRequested(attr.Name) {
			continue
		}
		if _, claimed := taken[attr.Name]; claimed {
			continue
		}
		col, err := fetchByID(dict, attr, ids)
		if err != nil {
			return nil, err
		}
		cols = append(cols, column.WithMeta{Column: col, Logical: attr.LogicalType(), Name: attr.Name})
		taken[attr.Name] = struct{}{}
	}

	return column.NewBlock(cols), nil
}

// fillBlockByKey projects the sliced key columns into a block: requested
// key fields in schema order, then one column per requested attribute via
// the dictionary's key-indexed getters. Lookups always use the full key
// column set, requested or not.
func (s *Stream) fillBlockByKey(dict dictionary.KeyIndexed, keys []column.WithMeta) (*column.Block, error) {
	keyCols := make([]column.Column, len(keys))
	rows := 0
	for i, k := range keys {
		keyCols[i] = k.Column
		rows = k.Column.Len()
	}

	cols := make([]column.WithMeta, 0, len(s.requested))
	taken := make(map[string]struct{}, len(s.requested))

	for _, k := range keys {
		if s.isRequested(k.Name) {
			cols = append(cols, k)
			taken[k.Name] = struct{}{}
		}
	}

	for _, attr := range s.structure.Attributes {
		if !s.isRequested(attr.Name) {
			continue
		}
		if _, claimed := taken[attr.Name]; claimed {
			continue
		}
		col, err := fetchByKey(dict, attr, keyCols, s.keyTypes, rows)
		if err != nil {
			return nil, err
		}
		cols = append(cols, column.WithMeta{Column: col, Logical: attr.LogicalType(), Name: attr.Name})
		taken[attr.Name] = struct{}{}
	}

	return column.NewBlock(cols), nil
}
