package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Get on a missing key returns ErrKeyNotFound", func(t *testing.T) {
		st := NewMemoryStorage()

		_, err := st.Get(ctx, "missing")

		require.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Set overwrites the previous value", func(t *testing.T) {
		// Given: a key written twice
		st := NewMemoryStorage()
		require.NoError(t, st.Set(ctx, "k", []byte("first")))
		require.NoError(t, st.Set(ctx, "k", []byte("second")))

		// When: reading it back
		value, err := st.Get(ctx, "k")

		// Then: the last write wins
		require.NoError(t, err)
		assert.Equal(t, "second", string(value))
	})

	t.Run("Stored values are copied", func(t *testing.T) {
		st := NewMemoryStorage()
		value := []byte("abc")
		require.NoError(t, st.Set(ctx, "k", value))

		value[0] = 'z'
		stored, err := st.Get(ctx, "k")

		require.NoError(t, err)
		assert.Equal(t, "abc", string(stored))
	})
}
