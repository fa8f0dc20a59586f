package store

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// Result is one search hit. Score semantics follow the store's metric:
// similarity for cosine/dot, squared distance for L2.
type Result struct {
	ID    ID
	Score float32
}

// Search scores every live vector against query exactly and returns the k
// closest, best first.
func (s *Store) Search(query []float32, k int) ([]Result, error) {
	start := time.Now()
	res, err := s.search(query, k)
	if s.metrics != nil {
		s.metrics.RecordSearch(k, time.Since(start), err)
	}
	if err != nil {
		s.logf(slog.LevelError, "search failed", "k", k, "error", err)
		return nil, err
	}
	s.logf(slog.LevelDebug, "search completed", "k", k, "results", len(res))
	return res, nil
}

func (s *Store) search(query []float32, k int) ([]Result, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if len(query) != s.dim {
		return nil, &ErrDimensionMismatch{Expected: s.dim, Actual: len(query)}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	results := make([]Result, 0, s.live)
	for id, h := range s.handles {
		if h == 0 {
			continue
		}
		vec, err := s.pool.Float32s(h)
		if err != nil {
			return nil, err
		}
		score, err := s.score(query, vec)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{ID: ID(id), Score: score})
	}

	if s.metric.Ascending() {
		sort.Slice(results, func(i, j int) bool { return results[i].Score < results[j].Score })
	} else {
		sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	}

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// SearchBatch runs one Search per query with bounded fan-out and returns
// results in query order. The first failing query aborts the batch.
func (s *Store) SearchBatch(ctx context.Context, queries [][]float32, k int) ([][]Result, error) {
	out := make([][]Result, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := s.Search(q, k)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
