// Package history keeps a bounded, newest-first record of calculations in
// key-value storage.
package history

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Entry is one calculation. Timestamp is Unix milliseconds.
type Entry struct {
	Expression string  `json:"expression"`
	Result     float64 `json:"result"`
	Timestamp  int64   `json:"timestamp"`
}

// Time returns the entry's timestamp as a time.Time.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Defaults for Store.
const (
	DefaultLimit = 50
	DefaultKey   = "calculatorHistory"
)

// Store is a bounded history list serialized as JSON under a single storage
// key. It is safe for concurrent use.
type Store struct {
	storage Storage
	key     string
	limit   int
	logger  *zap.SugaredLogger
	now     func() time.Time

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLimit sets the maximum number of entries kept. Values below 1 are
// ignored.
func WithLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithKey sets the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger for recoverable problems such as corrupt data.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the source of entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Store over storage.
func New(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		limit:   DefaultLimit,
		logger:  zap.NewNop().Sugar(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Limit returns the maximum number of entries kept.
func (s *Store) Limit() int {
	return s.limit
}

// Add records a calculation at the front of the history, dropping the oldest
// entries beyond the limit, and returns the new entry.
func (s *Store) Add(ctx context.Context, expr string, value float64) (Entry, error) {
	e := Entry{Expression: expr, Result: value, Timestamp: s.now().UnixMilli()}
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.load(ctx)
	if err != nil {
		return Entry{}, err
	}
	list = append([]Entry{e}, list...)
	if len(list) > s.limit {
		list = list[:s.limit]
	}
	b, err := json.Marshal(list)
	if err != nil {
		return Entry{}, errors.Wrap(err, "failed to encode history")
	}
	if err := s.storage.Put(ctx, s.key, b); err != nil {
		return Entry{}, errors.Wrap(err, "failed to save history")
	}
	s.logger.Debugw("History entry added", "expression", expr, "result", value, "entries", len(list))
	return e, nil
}

// Entries returns the history, newest first.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Clear removes all history.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Delete(ctx, s.key); err != nil {
		return errors.Wrap(err, "failed to clear history")
	}
	s.logger.Debugw("History cleared", "key", s.key)
	return nil
}

// load reads the stored list. Missing or undecodable data is an empty
// history; undecodable data is logged and overwritten by the next Add.
func (s *Store) load(ctx context.Context) ([]Entry, error) {
	b, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load history")
	}
	var list []Entry
	if err := json.Unmarshal(b, &list); err != nil {
		s.logger.Warnw("Discarding unreadable history", "key", s.key, "error", err)
		return nil, nil
	}
	if len(list) > s.limit {
		list = list[:s.limit]
	}
	return list, nil
}
