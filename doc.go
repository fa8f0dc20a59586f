// Package vecarena provides an arena-backed memory pool and SIMD-accelerated
// float32 vector kernels, plus an embedding store built on both.
//
// The root package is a thin facade. The heavy lifting lives in:
//
//   - arena: fixed-capacity free-list allocator with handle-based access
//   - vek: vector math (dot, cosine, norms, distances) with runtime
//     CPU-feature dispatch
//   - store: arena-backed embedding store with exact top-k search and
//     compressed snapshots
//   - capi: flat, defensive function surface for foreign callers
//   - sysmon: process memory and CPU sampling
//
// Quick start:
//
//	pool, err := vecarena.NewPool(1 << 20)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	h, _ := pool.Alloc(512)
//	buf, _ := pool.Bytes(h)
//	_ = buf
//
// Or with the embedding store:
//
//	db, err := vecarena.NewStore(128,
//		store.WithMaxVectors(10_000),
//		store.WithMetric(vek.MetricCosine),
//	)
package vecarena
