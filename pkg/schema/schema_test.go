package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnderlyingString(t *testing.T) {
	assert.Equal(t, "UInt8", UInt8.String())
	assert.Equal(t, "Float64", Float64.String())
	assert.Equal(t, "String", String.String())
	assert.Equal(t, "Underlying(42)", Underlying(42).String())
}

func TestParseUnderlying(t *testing.T) {
	for tag := UInt8; tag <= String; tag++ {
		parsed, err := ParseUnderlying(tag.String())
		require.NoError(t, err)
		assert.Equal(t, tag, parsed)
	}

	_, err := ParseUnderlying("Decimal")
	assert.Error(t, err)
}

func TestFixedWidth(t *testing.T) {
	assert.Equal(t, 1, UInt8.FixedWidth())
	assert.Equal(t, 1, Int8.FixedWidth())
	assert.Equal(t, 2, UInt16.FixedWidth())
	assert.Equal(t, 4, Float32.FixedWidth())
	assert.Equal(t, 8, UInt64.FixedWidth())
	assert.Equal(t, 8, Float64.FixedWidth())
	assert.Equal(t, 0, String.FixedWidth())
}

func TestAttributeLogicalType(t *testing.T) {
	a := Attribute{Name: "population", Underlying: UInt64}
	assert.Equal(t, "UInt64", a.LogicalType())

	a.Logical = "Population"
	assert.Equal(t, "Population", a.LogicalType())
}

func TestStructureLookups(t *testing.T) {
	id := Attribute{Name: "id", Underlying: UInt64}
	s := Structure{
		ID: &id,
		Attributes: []Attribute{
			{Name: "name", Underlying: String},
			{Name: "age", Underlying: UInt8},
		},
	}

	attr, ok := s.Attribute("age")
	require.True(t, ok)
	assert.Equal(t, UInt8, attr.Underlying)

	_, ok = s.Attribute("id")
	assert.False(t, ok, "id is not an attribute")

	assert.True(t, s.HasName("id"))
	assert.True(t, s.HasName("name"))
	assert.False(t, s.HasName("missing"))
}

func TestStructureKeyNamespace(t *testing.T) {
	s := Structure{
		Key: KeySchema{
			{Name: "region", Underlying: String},
			{Name: "code", Underlying: UInt32},
		},
		Attributes: []Attribute{{Name: "population", Underlying: UInt64}},
	}

	assert.True(t, s.HasName("region"))
	assert.True(t, s.HasName("code"))
	assert.True(t, s.HasName("population"))
	assert.False(t, s.HasName("id"))
}
