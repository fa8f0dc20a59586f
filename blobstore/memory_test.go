package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	t.Run("GetMissing", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("PutGetRoundTrip", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "a/b", []byte("payload")))
		got, err := s.Get(ctx, "a/b")
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), got)
	})

	t.Run("GetReturnsCopy", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "c", []byte{1, 2, 3}))
		got, _ := s.Get(ctx, "c")
		got[0] = 99
		again, _ := s.Get(ctx, "c")
		assert.Equal(t, byte(1), again[0])
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "snap/1", nil))
		require.NoError(t, s.Put(ctx, "snap/2", nil))
		names, err := s.List(ctx, "snap/")
		require.NoError(t, err)
		assert.Equal(t, []string{"snap/1", "snap/2"}, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "d", []byte("x")))
		require.NoError(t, s.Delete(ctx, "d"))
		_, err := s.Get(ctx, "d")
		assert.ErrorIs(t, err, ErrNotFound)

		// Deleting a missing blob is not an error.
		assert.NoError(t, s.Delete(ctx, "d"))
	})
}
