package mapping

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunks(t *testing.T) {
	rows := make([]IDMapping, 1201)

	t.Run("bounded chunks cover all rows", func(t *testing.T) {
		chunks := Chunks(rows, 500)
		require.Len(t, chunks, 3)
		assert.Len(t, chunks[0], 500)
		assert.Len(t, chunks[1], 500)
		assert.Len(t, chunks[2], 201)
	})

	t.Run("exact multiple", func(t *testing.T) {
		chunks := Chunks(rows[:1000], 500)
		require.Len(t, chunks, 2)
		assert.Len(t, chunks[1], 500)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, Chunks(nil, 500))
	})

	t.Run("invalid size", func(t *testing.T) {
		assert.Nil(t, Chunks(rows, 0))
	})
}

func TestChunkError(t *testing.T) {
	cause := errors.New("connection reset")
	err := &ChunkError{Start: 500, End: 999, Err: cause}
	assert.Contains(t, err.Error(), "500..999")
	assert.ErrorIs(t, err, cause)
}
