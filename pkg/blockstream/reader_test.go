package blockstream

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/dictstream/pkg/column"
)

func TestReaderBlockSizes(t *testing.T) {
	dict := newPeopleDict(t)
	stream, err := NewIDStream(dict, 2, []uint64{1, 2, 3, 5, 7}, []string{"id"})
	require.NoError(t, err)

	reader := NewReader(stream)

	sizes := []int{}
	for {
		block, err := reader.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		sizes = append(sizes, block.Rows())
	}
	assert.Equal(t, []int{2, 2, 1}, sizes, "all blocks full-size except possibly the last")

	// Exhausted readers keep returning EOF
	_, err = reader.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderEmptyStream(t *testing.T) {
	dict := newPeopleDict(t)
	stream, err := NewIDStream(dict, 4, nil, []string{"id"})
	require.NoError(t, err)

	reader := NewReader(stream)
	_, err = reader.Next()
	assert.Equal(t, io.EOF, err)

	calls := 0
	require.NoError(t, NewReader(stream).Process(func(b *column.Block) error {
		calls++
		return nil
	}))
	assert.Equal(t, 0, calls)
}
