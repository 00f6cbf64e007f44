// Package jsonfile persists records as JSON arrays, one file per record kind,
// in a single data directory.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/infrastructure/metrics"
)

// File names inside the data directory.
const (
	UsersFile     = "users.json"
	EntriesFile   = "milkEntries.json"
	PaymentsFile  = "payments.json"
	RatesFile     = "customerRates.json"
	SequencesFile = "sequences.json"
)

// OpError describes a failed store operation on one file.
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("jsonfile %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Store owns the data directory. All repositories built on one Store share
// its lock, so a write and the sequence bump that goes with it are never
// interleaved with another writer.
type Store struct {
	dir     string
	mu      sync.RWMutex
	retrier *Retrier
	conv    domain.DateConverter
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithRetrier replaces the default retrier.
func WithRetrier(r *Retrier) Option {
	return func(s *Store) { s.retrier = r }
}

// WithLogger sets the store logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMetrics records store operations.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithDateConverter sets the converter used to fill missing BS display dates.
func WithDateConverter(c domain.DateConverter) Option {
	return func(s *Store) { s.conv = c }
}

// Open prepares dir for use, creating it when missing.
func Open(dir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &OpError{Op: "mkdir", Path: dir, Err: err}
	}

	s := &Store{
		dir:    dir,
		conv:   domain.DefaultDateConverter,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.retrier == nil {
		s.retrier = NewRetrier(s.logger)
	}
	return s, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Ping checks that the data directory is still present and writable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.CreateTemp(s.dir, ".ping-*")
	if err != nil {
		return &OpError{Op: "ping", Path: s.dir, Err: err}
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// readFile decodes the JSON array in name into out. A missing or empty file
// leaves out untouched.
func (s *Store) readFile(ctx context.Context, name string, out any) error {
	path := filepath.Join(s.dir, name)
	defer s.observe("read", name, time.Now())

	var data []byte
	err := s.retrier.Retry(ctx, func() error {
		var readErr error
		data, readErr = os.ReadFile(path)
		return readErr
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return s.fail("read", path, err)
	}
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return s.fail("decode", path, err)
	}
	return nil
}

// writeFile replaces name with the JSON encoding of v. The content goes to a
// temporary file first and is renamed over the target, so readers see either
// the old or the new snapshot.
func (s *Store) writeFile(ctx context.Context, name string, v any) error {
	path := filepath.Join(s.dir, name)
	defer s.observe("write", name, time.Now())

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return s.fail("encode", path, err)
	}

	tmp := path + ".tmp"
	err = s.retrier.Retry(ctx, func() error {
		if err := os.WriteFile(tmp, b, 0o600); err != nil {
			return err
		}
		if err := os.Rename(tmp, path); err != nil {
			_ = os.Remove(tmp)
			return err
		}
		return nil
	})
	if err != nil {
		return s.fail("write", path, err)
	}
	return nil
}

// nextID bumps and persists the counter for prefix.
func (s *Store) nextID(ctx context.Context, prefix string, existing []string) (string, error) {
	ids, err := s.reserveIDs(ctx, prefix, existing, 1)
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// reserveIDs advances the counter for prefix by n in a single write and
// returns the reserved identifiers in order. The counter never falls below the
// highest suffix already present in existing, so hand-edited or restored files
// cannot cause duplicates.
func (s *Store) reserveIDs(ctx context.Context, prefix string, existing []string, n int) ([]string, error) {
	seqs := map[string]int{}
	if err := s.readFile(ctx, SequencesFile, &seqs); err != nil {
		return nil, err
	}

	last := max(seqs[prefix], domain.MaxIDSequence(prefix, existing))
	seqs[prefix] = last + n

	if err := s.writeFile(ctx, SequencesFile, seqs); err != nil {
		return nil, err
	}

	ids := make([]string, n)
	for i := range ids {
		ids[i] = domain.FormatID(prefix, last+i+1)
	}
	return ids, nil
}

func (s *Store) fail(op, path string, err error) error {
	s.logger.Error().Err(err).Str("op", op).Str("path", path).Msg("store operation failed")
	if s.metrics != nil {
		s.metrics.StoreErrors.WithLabelValues(op).Inc()
	}
	return &OpError{Op: op, Path: path, Err: err}
}

func (s *Store) observe(op, file string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.StoreOperations.WithLabelValues(op, file).Inc()
	s.metrics.StoreDuration.WithLabelValues(op, file).Observe(time.Since(start).Seconds())
}

// collection is a typed view over one JSON array file.
type collection[T any] struct {
	store *Store
	name  string
}

func (c collection[T]) load(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	if err := c.store.readFile(ctx, c.name, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = make([]T, 0)
	}
	return c.store.writeFile(ctx, c.name, items)
}
