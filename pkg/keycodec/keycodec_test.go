package keycodec

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/dictstream/pkg/column"
	"github.com/ajitpratap0/dictstream/pkg/errors"
	"github.com/ajitpratap0/dictstream/pkg/schema"
)

func TestRoundTripAllTypes(t *testing.T) {
	enc := NewEncoder()
	enc.Uint8(200)
	enc.Uint16(60000)
	enc.Uint32(4000000000)
	enc.Uint64(1 << 60)
	enc.Int8(-100)
	enc.Int16(-30000)
	enc.Int32(-2000000000)
	enc.Int64(-(1 << 60))
	enc.Float32(3.5)
	enc.Float64(-2.25)
	enc.String("hello")

	dec := NewDecoder(enc.Bytes())

	u8, err := dec.Uint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(200), u8)

	u16, err := dec.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(60000), u16)

	u32, err := dec.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(4000000000), u32)

	u64, err := dec.Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<60), u64)

	i8, err := dec.Int8()
	require.NoError(t, err)
	assert.Equal(t, int8(-100), i8)

	i16, err := dec.Int16()
	require.NoError(t, err)
	assert.Equal(t, int16(-30000), i16)

	i32, err := dec.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(-2000000000), i32)

	i64, err := dec.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(-(1<<60)), i64)

	f32, err := dec.Float32()
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), f32)

	f64, err := dec.Float64()
	require.NoError(t, err)
	assert.Equal(t, -2.25, f64)

	s, err := dec.String()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	assert.Equal(t, 0, dec.Remaining(), "a well-formed key is consumed exactly")
}

func TestEmptyString(t *testing.T) {
	enc := NewEncoder()
	enc.String("")
	enc.Uint8(7)

	dec := NewDecoder(enc.Bytes())
	s, err := dec.String()
	require.NoError(t, err)
	assert.Equal(t, "", s)

	v, err := dec.Uint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(7), v)
	assert.Equal(t, 0, dec.Remaining())
}

func TestTruncatedFixed(t *testing.T) {
	dec := NewDecoder([]byte{0x01, 0x02})
	_, err := dec.Uint32()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeCorruptedKey))
}

func TestTruncatedString(t *testing.T) {
	enc := NewEncoder()
	enc.String("hello")
	raw := enc.Bytes()

	dec := NewDecoder(raw[:3]) // length prefix says 5, only 2 bytes follow
	_, err := dec.String()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeCorruptedKey))
}

func TestOversizedStringPrefix(t *testing.T) {
	// A length prefix past the int range must come back as a corrupted_key
	// error, not wrap negative and blow up the cursor.
	dec := NewDecoder(binary.AppendUvarint(nil, 1<<63))
	_, err := dec.String()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeCorruptedKey))
}

func TestMissingStringPrefix(t *testing.T) {
	dec := NewDecoder(nil)
	_, err := dec.String()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeCorruptedKey))
}

func TestEncodeValueRejectsUnknownTag(t *testing.T) {
	enc := NewEncoder()
	err := enc.EncodeValue(schema.Underlying(42), uint8(1))
	assert.Error(t, err)
}

func TestEncodeRowRoundTrip(t *testing.T) {
	fields := schema.KeySchema{
		{Name: "region", Underlying: schema.String},
		{Name: "code", Underlying: schema.UInt32},
	}

	// Build the original keys, then decode them into columns the way the
	// materializer does, and re-encode each row.
	originals := make([][]byte, 2)
	for i, key := range []struct {
		region string
		code   uint32
	}{{"emea", 42}, {"apac", 7}} {
		enc := NewEncoder()
		enc.String(key.region)
		enc.Uint32(key.code)
		originals[i] = enc.Bytes()
	}

	regions := column.NewStrings(2)
	codes := column.NewEmptyVector[uint32](schema.UInt32, 2)
	for _, raw := range originals {
		dec := NewDecoder(raw)
		s, err := dec.String()
		require.NoError(t, err)
		regions.Append(s)
		c, err := dec.Uint32()
		require.NoError(t, err)
		codes.Append(c)
		require.Equal(t, 0, dec.Remaining())
	}

	cols := []column.Column{regions, codes}
	for row, want := range originals {
		got, err := EncodeRow(fields, cols, row)
		require.NoError(t, err)
		assert.Equal(t, want, got, "decode then re-encode must reconstruct the original bytes")
	}
}
