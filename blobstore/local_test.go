package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	t.Run("GetMissing", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("PutGetRoundTrip", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "snapshots/main", []byte("payload")))
		got, err := s.Get(ctx, "snapshots/main")
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), got)
	})

	t.Run("PutReplaces", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "k", []byte("v1")))
		require.NoError(t, s.Put(ctx, "k", []byte("v2")))
		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), got)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "snapshots/a", nil))
		names, err := s.List(ctx, "snapshots/")
		require.NoError(t, err)
		assert.Contains(t, names, "snapshots/a")
		assert.Contains(t, names, "snapshots/main")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "gone", []byte("x")))
		require.NoError(t, s.Delete(ctx, "gone"))
		_, err := s.Get(ctx, "gone")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, s.Delete(ctx, "gone"))
	})

	t.Run("PathEscapeIsContained", func(t *testing.T) {
		// Names are cleaned relative to the root; a traversal attempt
		// must not land outside it.
		require.NoError(t, s.Put(ctx, "../escape", []byte("x")))
		got, err := s.Get(ctx, "../escape")
		require.NoError(t, err)
		assert.Equal(t, []byte("x"), got)
	})
}
