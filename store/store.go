package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/mirakit/vecarena/arena"
	"github.com/mirakit/vecarena/resource"
	"github.com/mirakit/vecarena/vek"
)

var (
	// ErrNotFound is returned when an ID does not refer to a live vector.
	ErrNotFound = errors.New("store: not found")

	// ErrClosed is returned for any operation after Close.
	ErrClosed = errors.New("store: closed")

	// ErrInvalidK is returned when a search asks for a non-positive k.
	ErrInvalidK = errors.New("store: k must be positive")
)

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("store: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ID identifies a vector in the store. IDs are sequential and never
// recycled, so a deleted ID stays invalid forever.
type ID uint32

// MetricsCollector receives per-operation measurements. Implement it to
// integrate with a monitoring system; the zero value of every method being
// cheap is the implementer's responsibility.
type MetricsCollector interface {
	RecordInsert(duration time.Duration, err error)
	RecordSearch(k int, duration time.Duration, err error)
	RecordSnapshot(bytes int, duration time.Duration, err error)
}

// Options configures a Store.
type Options struct {
	// MaxVectors sizes the backing pool: capacity is MaxVectors vectors of
	// the store's dimension. Default 1024.
	MaxVectors int

	// Metric selects the scoring function. Default vek.MetricCosine.
	Metric vek.Metric

	// Logger receives operational logs. nil disables logging.
	Logger *slog.Logger

	// Metrics receives operation measurements. nil disables collection.
	Metrics MetricsCollector

	// Resources throttles snapshot IO and background work. nil means
	// unlimited.
	Resources *resource.Controller

	// SearchWorkers bounds SearchBatch concurrency. Default 4.
	SearchWorkers int

	// Codec compresses snapshots. Default CodecZstd.
	Codec Codec
}

// Option mutates Options.
type Option func(*Options)

// WithMaxVectors sets the pool capacity in vectors.
func WithMaxVectors(n int) Option {
	return func(o *Options) { o.MaxVectors = n }
}

// WithMetric sets the scoring metric.
func WithMetric(m vek.Metric) Option {
	return func(o *Options) { o.Metric = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithMetricsCollector sets the metrics sink.
func WithMetricsCollector(c MetricsCollector) Option {
	return func(o *Options) { o.Metrics = c }
}

// WithResourceController sets the resource controller used by snapshot
// uploads and downloads.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *Options) { o.Resources = rc }
}

// WithSearchWorkers bounds SearchBatch fan-out.
func WithSearchWorkers(n int) Option {
	return func(o *Options) { o.SearchWorkers = n }
}

// WithCodec sets the snapshot compression codec.
func WithCodec(c Codec) Option {
	return func(o *Options) { o.Codec = c }
}

// Store is an arena-backed table of equal-length float32 vectors.
type Store struct {
	mu sync.RWMutex

	dim     int
	pool    *arena.Arena
	handles []arena.Handle // id -> allocation; zero means never live
	deleted *roaring.Bitmap
	live    int
	closed  bool

	metric  vek.Metric
	score   vek.Func
	codec   Codec
	workers int

	logger  *slog.Logger
	metrics MetricsCollector
	rc      *resource.Controller
}

// New creates a store for dim-dimensional vectors.
func New(dim int, opts ...Option) (*Store, error) {
	if dim <= 0 {
		return nil, &ErrDimensionMismatch{Expected: 1, Actual: dim}
	}

	o := Options{
		MaxVectors:    1024,
		Metric:        vek.MetricCosine,
		SearchWorkers: 4,
		Codec:         CodecZstd,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxVectors <= 0 {
		o.MaxVectors = 1024
	}
	if o.SearchWorkers <= 0 {
		o.SearchWorkers = 1
	}

	score, err := vek.Provider(o.Metric)
	if err != nil {
		return nil, err
	}

	pool, err := arena.New(o.MaxVectors * dim * 4)
	if err != nil {
		return nil, err
	}

	s := &Store{
		dim:     dim,
		pool:    pool,
		deleted: roaring.New(),
		metric:  o.Metric,
		score:   score,
		codec:   o.Codec,
		workers: o.SearchWorkers,
		logger:  o.Logger,
		metrics: o.Metrics,
		rc:      o.Resources,
	}
	s.logf(slog.LevelInfo, "store created",
		"dimension", dim, "max_vectors", o.MaxVectors, "metric", o.Metric.String())
	return s, nil
}

func (s *Store) logf(level slog.Level, msg string, args ...any) {
	if s.logger != nil {
		s.logger.Log(context.Background(), level, msg, args...)
	}
}

// Dim returns the vector dimension.
func (s *Store) Dim() int { return s.dim }

// Insert copies vec into pool memory and returns its ID.
func (s *Store) Insert(vec []float32) (ID, error) {
	start := time.Now()
	id, err := s.insert(vec)
	if s.metrics != nil {
		s.metrics.RecordInsert(time.Since(start), err)
	}
	if err != nil {
		s.logf(slog.LevelError, "insert failed", "error", err)
		return 0, err
	}
	s.logf(slog.LevelDebug, "insert completed", "id", uint32(id), "dimension", s.dim)
	return id, nil
}

func (s *Store) insert(vec []float32) (ID, error) {
	if len(vec) != s.dim {
		return 0, &ErrDimensionMismatch{Expected: s.dim, Actual: len(vec)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}

	h, err := s.pool.Alloc(s.dim * 4)
	if err != nil {
		return 0, fmt.Errorf("store: insert: %w", err)
	}
	dst, err := s.pool.Float32s(h)
	if err != nil {
		return 0, err
	}
	copy(dst, vec)

	s.handles = append(s.handles, h)
	s.live++
	return ID(len(s.handles) - 1), nil
}

// Get returns the stored vector. The slice aliases pool memory and is valid
// until the ID is deleted or the store is closed or restored; copy it if it
// must outlive those events.
func (s *Store) Get(id ID) ([]float32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(id)
}

func (s *Store) getLocked(id ID) ([]float32, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if int(id) >= len(s.handles) || s.deleted.Contains(uint32(id)) || s.handles[id] == 0 {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return s.pool.Float32s(s.handles[id])
}

// Delete frees the vector's pool block and tombstones its ID.
func (s *Store) Delete(id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if int(id) >= len(s.handles) || s.deleted.Contains(uint32(id)) || s.handles[id] == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	if err := s.pool.Free(s.handles[id]); err != nil {
		return err
	}
	s.handles[id] = 0
	s.deleted.Add(uint32(id))
	s.live--
	s.logf(slog.LevelDebug, "delete completed", "id", uint32(id))
	return nil
}

// Len returns the number of live vectors.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live
}

// Stats describes the store and its pool.
type Stats struct {
	Dim     int
	Count   int // IDs ever issued
	Live    int
	Deleted uint64
	Pool    arena.Stats
}

// Stats returns a snapshot of store and pool accounting.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Dim:     s.dim,
		Count:   len(s.handles),
		Live:    s.live,
		Deleted: s.deleted.GetCardinality(),
		Pool:    s.pool.Stats(),
	}
}

// Close releases the pool. The store is unusable afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.pool.Close()
}

var _ io.Closer = (*Store)(nil)
