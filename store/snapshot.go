package store

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/mirakit/vecarena/blobstore"
)

// Codec selects the snapshot compression scheme. Snapshots are
// self-describing: the codec is recorded in the uncompressed header, so
// Restore ignores the store's configured codec.
type Codec uint8

const (
	// CodecNone stores vectors uncompressed.
	CodecNone Codec = iota
	// CodecZstd compresses with zstd at the default level.
	CodecZstd
	// CodecLZ4 compresses with LZ4, cheaper but lighter than zstd.
	CodecLZ4
)

func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecZstd:
		return "zstd"
	case CodecLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

// snapshotMagic identifies a store snapshot stream.
const snapshotMagic uint32 = 0x56415243 // "VARC"

const snapshotVersion uint8 = 1

// Snapshot writes all live vectors to w using the store's codec.
//
// Layout: uncompressed header (magic u32, version u8, codec u8), then a
// compressed section of (dim u32, count u32, count x (id u32, dim x f32)),
// all little-endian.
func (s *Store) Snapshot(w io.Writer) error {
	start := time.Now()
	n, err := s.snapshot(w)
	if s.metrics != nil {
		s.metrics.RecordSnapshot(n, time.Since(start), err)
	}
	if err != nil {
		s.logf(slog.LevelError, "snapshot failed", "error", err)
		return err
	}
	s.logf(slog.LevelInfo, "snapshot written", "bytes", n, "codec", s.codec.String())
	return nil
}

func (s *Store) snapshot(w io.Writer) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}

	cw := &countingWriter{w: w}

	header := make([]byte, 6)
	binary.LittleEndian.PutUint32(header[0:], snapshotMagic)
	header[4] = snapshotVersion
	header[5] = uint8(s.codec)
	if _, err := cw.Write(header); err != nil {
		return cw.n, err
	}

	enc, err := newEncoder(cw, s.codec)
	if err != nil {
		return cw.n, err
	}

	bw := bufio.NewWriter(enc)
	var scratch [8]byte
	binary.LittleEndian.PutUint32(scratch[0:], uint32(s.dim))
	binary.LittleEndian.PutUint32(scratch[4:], uint32(s.live))
	if _, err := bw.Write(scratch[:]); err != nil {
		return cw.n, err
	}

	row := make([]byte, 4+s.dim*4)
	for id, h := range s.handles {
		if h == 0 {
			continue
		}
		vec, err := s.pool.Float32s(h)
		if err != nil {
			return cw.n, err
		}
		binary.LittleEndian.PutUint32(row[0:], uint32(id))
		for i, f := range vec[:s.dim] {
			binary.LittleEndian.PutUint32(row[4+i*4:], math.Float32bits(f))
		}
		if _, err := bw.Write(row); err != nil {
			return cw.n, err
		}
	}

	if err := bw.Flush(); err != nil {
		return cw.n, err
	}
	return cw.n, enc.Close()
}

// Restore replaces the store's contents with a snapshot produced by
// Snapshot. IDs are preserved; gaps left by deleted vectors stay deleted.
// All previously returned vector views become invalid.
func (s *Store) Restore(r io.Reader) error {
	header := make([]byte, 6)
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("store: restore header: %w", err)
	}
	if binary.LittleEndian.Uint32(header[0:]) != snapshotMagic {
		return fmt.Errorf("store: restore: not a snapshot stream")
	}
	if header[4] != snapshotVersion {
		return fmt.Errorf("store: restore: unsupported snapshot version %d", header[4])
	}

	dec, err := newDecoder(r, Codec(header[5]))
	if err != nil {
		return err
	}
	defer dec.Close()
	br := bufio.NewReader(dec)

	var scratch [8]byte
	if _, err := io.ReadFull(br, scratch[:]); err != nil {
		return fmt.Errorf("store: restore: %w", err)
	}
	dim := int(binary.LittleEndian.Uint32(scratch[0:]))
	count := int(binary.LittleEndian.Uint32(scratch[4:]))
	if dim != s.dim {
		return &ErrDimensionMismatch{Expected: s.dim, Actual: dim}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if err := s.pool.Reset(); err != nil {
		return err
	}
	s.handles = s.handles[:0]
	s.deleted.Clear()
	s.live = 0

	row := make([]byte, 4+dim*4)
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(br, row); err != nil {
			return fmt.Errorf("store: restore row %d: %w", i, err)
		}
		id := int(binary.LittleEndian.Uint32(row[0:]))

		for len(s.handles) < id {
			s.handles = append(s.handles, 0)
			s.deleted.Add(uint32(len(s.handles) - 1))
		}

		h, err := s.pool.Alloc(dim * 4)
		if err != nil {
			return fmt.Errorf("store: restore: %w", err)
		}
		dst, err := s.pool.Float32s(h)
		if err != nil {
			return err
		}
		for j := 0; j < dim; j++ {
			dst[j] = math.Float32frombits(binary.LittleEndian.Uint32(row[4+j*4:]))
		}
		s.handles = append(s.handles, h)
		s.live++
	}

	s.logf(slog.LevelInfo, "snapshot restored", "count", count, "dimension", dim)
	return nil
}

// SaveTo snapshots the store into a blobstore under name, throttled by the
// resource controller when one is configured.
func (s *Store) SaveTo(ctx context.Context, bs blobstore.Store, name string) error {
	var buf bytes.Buffer
	if err := s.Snapshot(&buf); err != nil {
		return err
	}

	if err := s.rc.AcquireWorker(ctx); err != nil {
		return err
	}
	defer s.rc.ReleaseWorker()
	if err := s.rc.WaitIO(ctx, buf.Len()); err != nil {
		return err
	}

	if err := bs.Put(ctx, name, buf.Bytes()); err != nil {
		s.logf(slog.LevelError, "snapshot upload failed", "name", name, "error", err)
		return err
	}
	s.logf(slog.LevelInfo, "snapshot uploaded", "name", name, "bytes", buf.Len())
	return nil
}

// LoadFrom restores the store from a blobstore snapshot.
func (s *Store) LoadFrom(ctx context.Context, bs blobstore.Store, name string) error {
	if err := s.rc.AcquireWorker(ctx); err != nil {
		return err
	}
	defer s.rc.ReleaseWorker()

	data, err := bs.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := s.rc.WaitIO(ctx, len(data)); err != nil {
		return err
	}
	return s.Restore(bytes.NewReader(data))
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func newEncoder(w io.Writer, c Codec) (io.WriteCloser, error) {
	switch c {
	case CodecNone:
		return nopWriteCloser{w}, nil
	case CodecZstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case CodecLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("store: unknown codec %d", c)
	}
}

func newDecoder(r io.Reader, c Codec) (io.ReadCloser, error) {
	switch c {
	case CodecNone:
		return io.NopCloser(r), nil
	case CodecZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	case CodecLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("store: unknown codec %d", c)
	}
}
