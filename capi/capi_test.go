package capi

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolLifecycle(t *testing.T) {
	p := PoolInit(4096)
	require.NotZero(t, p)
	defer PoolDestroy(p)

	ref := PoolAlloc(p, 128)
	require.NotZero(t, ref)

	var stats StatsOut
	require.True(t, PoolStats(p, &stats))
	assert.Equal(t, uint64(4096), stats.Total)
	assert.Equal(t, uint64(128), stats.Used)
	assert.Equal(t, stats.Total, stats.Used+stats.Free)

	PoolFree(p, ref)
	require.True(t, PoolStats(p, &stats))
	assert.Zero(t, stats.Used)
	assert.Equal(t, uint64(1), stats.FreeBlocks)
}

func TestPoolDefensiveBehavior(t *testing.T) {
	t.Run("InitInvalidSize", func(t *testing.T) {
		assert.Zero(t, PoolInit(0))
		assert.Zero(t, PoolInit(-1))
	})

	t.Run("AllocBadArgs", func(t *testing.T) {
		assert.Zero(t, PoolAlloc(0, 64))
		assert.Zero(t, PoolAlloc(PoolHandle(999999), 64))

		p := PoolInit(1024)
		defer PoolDestroy(p)
		assert.Zero(t, PoolAlloc(p, 0))
		assert.Zero(t, PoolAlloc(p, -8))
	})

	t.Run("AllocExhaustion", func(t *testing.T) {
		p := PoolInit(64)
		defer PoolDestroy(p)
		assert.Zero(t, PoolAlloc(p, 1<<20))
	})

	t.Run("FreeNoops", func(t *testing.T) {
		p := PoolInit(1024)
		defer PoolDestroy(p)

		PoolFree(0, 1)
		PoolFree(p, 0)
		PoolFree(p, AllocRef(12345)) // never issued

		var stats StatsOut
		require.True(t, PoolStats(p, &stats))
		assert.Zero(t, stats.Used)
	})

	t.Run("DoubleFreeIgnored", func(t *testing.T) {
		p := PoolInit(1024)
		defer PoolDestroy(p)

		ref := PoolAlloc(p, 64)
		PoolFree(p, ref)
		PoolFree(p, ref)

		var stats StatsOut
		require.True(t, PoolStats(p, &stats))
		assert.Zero(t, stats.Used)
		assert.Equal(t, uint64(1), stats.FreeBlocks)
	})

	t.Run("StatsBadArgs", func(t *testing.T) {
		var stats StatsOut
		assert.False(t, PoolStats(0, &stats))

		p := PoolInit(1024)
		defer PoolDestroy(p)
		assert.False(t, PoolStats(p, nil))
	})

	t.Run("DestroyRetiresHandle", func(t *testing.T) {
		p := PoolInit(1024)
		PoolDestroy(p)
		PoolDestroy(p) // second destroy is a no-op

		assert.Zero(t, PoolAlloc(p, 64))
		var stats StatsOut
		assert.False(t, PoolStats(p, &stats))
	})
}

func TestPoolConcurrentBoundary(t *testing.T) {
	p := PoolInit(1 << 20)
	require.NotZero(t, p)
	defer PoolDestroy(p)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if ref := PoolAlloc(p, 64); ref != 0 {
					PoolFree(p, ref)
				}
			}
		}()
	}
	wg.Wait()

	var stats StatsOut
	require.True(t, PoolStats(p, &stats))
	assert.Zero(t, stats.Used)
}

func TestKernels(t *testing.T) {
	t.Run("DotProduct", func(t *testing.T) {
		assert.Equal(t, float32(40), DotProduct([]float32{1, 2, 3, 4}, []float32{2, 3, 4, 5}))
		assert.Zero(t, DotProduct(nil, []float32{1}))
		assert.Zero(t, DotProduct([]float32{1}, nil))
		assert.Zero(t, DotProduct([]float32{1, 2}, []float32{1}))
	})

	t.Run("CosineSimilarity", func(t *testing.T) {
		assert.InDelta(t, 0, CosineSimilarity([]float32{1, 0, 0}, []float32{0, 1, 0}), 1e-6)
		assert.InDelta(t, 1, CosineSimilarity([]float32{1, 0, 0}, []float32{1, 0, 0}), 1e-6)
		assert.Zero(t, CosineSimilarity(nil, nil))
		assert.Zero(t, CosineSimilarity([]float32{1, 2}, []float32{1}))
		assert.Zero(t, CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	})

	t.Run("Normalize", func(t *testing.T) {
		v := []float32{3, 4, 0}
		require.True(t, Normalize(v))
		assert.InDelta(t, 0.6, v[0], 1e-6)
		assert.InDelta(t, 0.8, v[1], 1e-6)

		var norm float64
		for _, x := range v {
			norm += float64(x) * float64(x)
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)

		zero := []float32{0, 0, 0}
		assert.False(t, Normalize(zero))
		assert.Equal(t, []float32{0, 0, 0}, zero)
		assert.False(t, Normalize(nil))
	})

	t.Run("Hash", func(t *testing.T) {
		assert.Zero(t, Hash(nil))
		assert.Zero(t, Hash([]byte{}))

		h1 := Hash([]byte("hello"))
		h2 := Hash([]byte("hello"))
		h3 := Hash([]byte("world"))
		assert.NotZero(t, h1)
		assert.Equal(t, h1, h2)
		assert.NotEqual(t, h1, h3)
	})
}

func TestBoundaryInfo(t *testing.T) {
	major, minor, patch := Version()
	assert.Equal(t, 1, major)
	assert.GreaterOrEqual(t, minor, 0)
	assert.GreaterOrEqual(t, patch, 0)

	// Either answer is valid; the call must simply not panic.
	_ = SIMDEnabled()

	assert.NotZero(t, MemoryUsage())
	first := CPUUsage()
	assert.GreaterOrEqual(t, first, float32(0))
	assert.LessOrEqual(t, CPUUsage(), float32(100))
}
