package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirakit/vecarena/arena"
	"github.com/mirakit/vecarena/vek"
)

func TestNew(t *testing.T) {
	t.Run("InvalidDimension", func(t *testing.T) {
		_, err := New(0)
		var dm *ErrDimensionMismatch
		assert.ErrorAs(t, err, &dm)
	})

	t.Run("Defaults", func(t *testing.T) {
		s, err := New(4)
		require.NoError(t, err)
		defer s.Close()
		assert.Equal(t, 4, s.Dim())
		assert.Zero(t, s.Len())
	})
}

func TestInsertGet(t *testing.T) {
	s, err := New(3, WithMaxVectors(16))
	require.NoError(t, err)
	defer s.Close()

	id, err := s.Insert([]float32{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, ID(0), id)

	id2, err := s.Insert([]float32{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, ID(1), id2)
	assert.Equal(t, 2, s.Len())

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, got)

	t.Run("DimensionMismatch", func(t *testing.T) {
		_, err := s.Insert([]float32{1, 2})
		var dm *ErrDimensionMismatch
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, 3, dm.Expected)
		assert.Equal(t, 2, dm.Actual)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := s.Get(ID(99))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	s, err := New(2, WithMaxVectors(8))
	require.NoError(t, err)
	defer s.Close()

	id, _ := s.Insert([]float32{1, 2})
	require.NoError(t, s.Delete(id))
	assert.Zero(t, s.Len())

	_, err = s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)

	// Double delete is reported, not UB.
	assert.ErrorIs(t, s.Delete(id), ErrNotFound)

	// The pool block was returned: stats agree.
	assert.Zero(t, s.Stats().Pool.Used)

	// IDs are never recycled; the next insert gets a fresh one.
	id2, _ := s.Insert([]float32{3, 4})
	assert.Equal(t, ID(1), id2)
}

func TestPoolExhaustion(t *testing.T) {
	s, err := New(4, WithMaxVectors(2))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Insert([]float32{1, 1, 1, 1})
	require.NoError(t, err)
	_, err = s.Insert([]float32{2, 2, 2, 2})
	require.NoError(t, err)

	_, err = s.Insert([]float32{3, 3, 3, 3})
	assert.ErrorIs(t, err, arena.ErrOutOfMemory)

	// Freeing one slot makes the next insert succeed.
	require.NoError(t, s.Delete(ID(0)))
	_, err = s.Insert([]float32{3, 3, 3, 3})
	assert.NoError(t, err)
}

func TestStats(t *testing.T) {
	s, err := New(2, WithMaxVectors(8))
	require.NoError(t, err)
	defer s.Close()

	id, _ := s.Insert([]float32{1, 2})
	_, _ = s.Insert([]float32{3, 4})
	require.NoError(t, s.Delete(id))

	st := s.Stats()
	assert.Equal(t, 2, st.Dim)
	assert.Equal(t, 2, st.Count)
	assert.Equal(t, 1, st.Live)
	assert.Equal(t, uint64(1), st.Deleted)
	assert.Equal(t, st.Pool.Total, st.Pool.Used+st.Pool.Free)
}

func TestClose(t *testing.T) {
	s, err := New(2)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close()) // idempotent

	_, err = s.Insert([]float32{1, 2})
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Get(0)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Delete(0), ErrClosed)
	_, err = s.Search([]float32{1, 2}, 1)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestConcurrentReaders(t *testing.T) {
	s, err := New(8, WithMaxVectors(64), WithMetric(vek.MetricDot))
	require.NoError(t, err)
	defer s.Close()

	vec := make([]float32, 8)
	for i := range vec {
		vec[i] = float32(i)
	}
	for i := 0; i < 32; i++ {
		_, err := s.Insert(vec)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := s.Search(vec, 5); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

// recordingCollector counts collector callbacks.
type recordingCollector struct {
	mu        sync.Mutex
	inserts   int
	searches  int
	snapshots int
}

func (r *recordingCollector) RecordInsert(time.Duration, error) {
	r.mu.Lock()
	r.inserts++
	r.mu.Unlock()
}

func (r *recordingCollector) RecordSearch(int, time.Duration, error) {
	r.mu.Lock()
	r.searches++
	r.mu.Unlock()
}

func (r *recordingCollector) RecordSnapshot(int, time.Duration, error) {
	r.mu.Lock()
	r.snapshots++
	r.mu.Unlock()
}

func TestMetricsCollector(t *testing.T) {
	col := &recordingCollector{}
	s, err := New(2, WithMetricsCollector(col))
	require.NoError(t, err)
	defer s.Close()

	_, _ = s.Insert([]float32{1, 0})
	_, _ = s.Search([]float32{1, 0}, 1)

	assert.Equal(t, 1, col.inserts)
	assert.Equal(t, 1, col.searches)
}
