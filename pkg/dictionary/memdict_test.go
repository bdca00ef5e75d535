package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/dictstream/pkg/column"
	"github.com/ajitpratap0/dictstream/pkg/errors"
	"github.com/ajitpratap0/dictstream/pkg/keycodec"
	"github.com/ajitpratap0/dictstream/pkg/schema"
)

func flatStructure() schema.Structure {
	id := schema.Attribute{Name: "id", Underlying: schema.UInt64}
	return schema.Structure{
		ID: &id,
		Attributes: []schema.Attribute{
			{Name: "name", Underlying: schema.String},
			{Name: "age", Underlying: schema.UInt8},
			{Name: "score", Underlying: schema.Float64},
		},
	}
}

func TestMemDictionaryRequiresID(t *testing.T) {
	_, err := NewMemDictionary("bad", schema.Structure{})
	assert.Error(t, err)
}

func TestMemDictionaryGetters(t *testing.T) {
	dict, err := NewMemDictionary("people", flatStructure())
	require.NoError(t, err)

	require.NoError(t, dict.Add(1, map[string]interface{}{"name": "alice", "age": 30, "score": 9.5}))
	require.NoError(t, dict.Add(2, map[string]interface{}{"name": "bob", "age": 41, "score": 7.25}))

	assert.Equal(t, []uint64{1, 2}, dict.IDs())

	ages := make([]uint8, 3)
	require.NoError(t, dict.GetUint8("age", []uint64{2, 1, 2}, ages))
	assert.Equal(t, []uint8{41, 30, 41}, ages)

	scores := make([]float64, 2)
	require.NoError(t, dict.GetFloat64("score", []uint64{1, 2}, scores))
	assert.Equal(t, []float64{9.5, 7.25}, scores)

	names := column.NewStrings(2)
	require.NoError(t, dict.GetString("name", []uint64{2, 1}, names))
	assert.Equal(t, []string{"bob", "alice"}, names.Values())
}

func TestMemDictionaryMissingEntryYieldsZero(t *testing.T) {
	dict, err := NewMemDictionary("people", flatStructure())
	require.NoError(t, err)
	require.NoError(t, dict.Add(1, map[string]interface{}{"age": 30}))

	ages := make([]uint8, 2)
	require.NoError(t, dict.GetUint8("age", []uint64{1, 999}, ages))
	assert.Equal(t, []uint8{30, 0}, ages)

	names := column.NewStrings(1)
	require.NoError(t, dict.GetString("name", []uint64{1}, names))
	assert.Equal(t, []string{""}, names.Values(), "attribute never set resolves to zero value")
}

func TestMemDictionaryGetterErrors(t *testing.T) {
	dict, err := NewMemDictionary("people", flatStructure())
	require.NoError(t, err)

	err = dict.GetUint8("missing", []uint64{1}, make([]uint8, 1))
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

	// age is UInt8, requested as UInt16
	err = dict.GetUint16("age", []uint64{1}, make([]uint16, 1))
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	// output not pre-sized to the id count
	err = dict.GetUint8("age", []uint64{1, 2}, make([]uint8, 1))
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestMemDictionaryRejectsUnknownAttribute(t *testing.T) {
	dict, err := NewMemDictionary("people", flatStructure())
	require.NoError(t, err)

	err = dict.Add(1, map[string]interface{}{"height": 180})
	assert.True(t, errors.IsType(err, errors.ErrorTypeSchemaMismatch))
}

func complexStructure() schema.Structure {
	return schema.Structure{
		Key: schema.KeySchema{
			{Name: "region", Underlying: schema.String},
			{Name: "code", Underlying: schema.UInt32},
		},
		Attributes: []schema.Attribute{
			{Name: "population", Underlying: schema.UInt64},
			{Name: "capital", Underlying: schema.String},
		},
	}
}

// buildKeyColumns materializes key columns directly for getter tests.
func buildKeyColumns(t *testing.T, rows []struct {
	region string
	code   uint32
}) []column.Column {
	t.Helper()
	regions := column.NewStrings(len(rows))
	codes := column.NewEmptyVector[uint32](schema.UInt32, len(rows))
	for _, r := range rows {
		regions.Append(r.region)
		codes.Append(r.code)
	}
	return []column.Column{regions, codes}
}

func TestMemComplexDictionaryGetters(t *testing.T) {
	dict, err := NewMemComplexDictionary("geo", complexStructure())
	require.NoError(t, err)

	require.NoError(t, dict.Add([]interface{}{"emea", 42}, map[string]interface{}{"population": 1000, "capital": "x"}))
	require.NoError(t, dict.Add([]interface{}{"apac", 7}, map[string]interface{}{"population": 2000, "capital": "y"}))
	require.Len(t, dict.Keys(), 2)

	keys := buildKeyColumns(t, []struct {
		region string
		code   uint32
	}{{"apac", 7}, {"emea", 42}})
	keyTypes := []schema.Underlying{schema.String, schema.UInt32}

	pops := make([]uint64, 2)
	require.NoError(t, dict.GetUint64ByKey("population", keys, keyTypes, pops))
	assert.Equal(t, []uint64{2000, 1000}, pops)

	capitals := column.NewStrings(2)
	require.NoError(t, dict.GetStringByKey("capital", keys, keyTypes, capitals))
	assert.Equal(t, []string{"y", "x"}, capitals.Values())
}

func TestMemComplexDictionaryEncodedKeys(t *testing.T) {
	dict, err := NewMemComplexDictionary("geo", complexStructure())
	require.NoError(t, err)
	require.NoError(t, dict.Add([]interface{}{"emea", 42}, map[string]interface{}{"population": 1000}))

	enc := keycodec.NewEncoder()
	enc.String("emea")
	enc.Uint32(42)
	assert.Equal(t, enc.Bytes(), dict.Keys()[0])
}

func TestMemComplexDictionaryKeyTypeMismatch(t *testing.T) {
	dict, err := NewMemComplexDictionary("geo", complexStructure())
	require.NoError(t, err)

	keys := buildKeyColumns(t, []struct {
		region string
		code   uint32
	}{{"emea", 42}})

	err = dict.GetUint64ByKey("population", keys, []schema.Underlying{schema.String, schema.UInt64}, make([]uint64, 1))
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	err = dict.GetUint64ByKey("population", keys[:1], []schema.Underlying{schema.String}, make([]uint64, 1))
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestMemComplexDictionaryKeyArity(t *testing.T) {
	dict, err := NewMemComplexDictionary("geo", complexStructure())
	require.NoError(t, err)

	err = dict.Add([]interface{}{"emea"}, nil)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}
