// SPDX-License-Identifier: MIT

// Package store persists models and their valid case numbers in BadgerDB.
//
// Key layout, one entry per id:
//
//	model/<id>  model YAML
//	valid/<id>  JSON array of valid case numbers
//	meta/<id>   creation time (RFC 3339)
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
)

var (
	// ErrNotFound indicates an id with no stored model or result.
	ErrNotFound = errors.New("store: not found")

	// ErrClosed indicates use of a closed store.
	ErrClosed = errors.New("store: closed")

	// ErrEmptyID indicates an empty id.
	ErrEmptyID = errors.New("store: empty id")
)

const (
	prefixModel = "model/"
	prefixValid = "valid/"
	prefixMeta  = "meta/"
)

// Options configures Open.
type Options struct {
	Logger     *slog.Logger // badger's own log output; nil silences it
	SyncWrites bool
}

// Option mutates Options.
type Option func(*Options)

// WithLogger routes badger's log output through l.
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithSyncWrites makes every write durable before it returns.
func WithSyncWrites() Option { return func(o *Options) { o.SyncWrites = true } }

// Entry describes one stored model.
type Entry struct {
	ID      string    `json:"id"`
	Created time.Time `json:"created"`
}

// Store is safe for concurrent use.
type Store struct {
	db     *badger.DB
	mu     sync.RWMutex
	closed bool
}

// Open opens the database in dir, creating it if needed. An empty dir
// keeps everything in memory.
func Open(dir string, opts ...Option) (*Store, error) {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}

	var bo badger.Options
	if dir == "" {
		bo = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("store: create %s: %w", dir, err)
		}
		bo = badger.DefaultOptions(dir)
	}
	bo = bo.WithSyncWrites(o.SyncWrites).WithNumVersionsToKeep(1)
	if o.Logger != nil {
		bo = bo.WithLogger(&badgerLogger{logger: o.Logger})
	} else {
		bo = bo.WithLogger(nil)
	}

	db, err := badger.Open(bo)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database. Later calls return nil.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// do runs fn while holding the read lock on an open store.
func (s *Store) do(fn func() error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return fn()
}

// PutModel stores the model YAML under id. The creation time is kept from
// the first put.
func (s *Store) PutModel(id string, model []byte) error {
	if id == "" {
		return ErrEmptyID
	}
	return s.do(func() error {
		return s.db.Update(func(txn *badger.Txn) error {
			if err := txn.Set([]byte(prefixModel+id), model); err != nil {
				return err
			}
			_, err := txn.Get([]byte(prefixMeta + id))
			switch {
			case errors.Is(err, badger.ErrKeyNotFound):
				now, _ := time.Now().UTC().MarshalText()
				return txn.Set([]byte(prefixMeta+id), now)
			default:
				return err
			}
		})
	})
}

// GetModel returns the model YAML stored under id.
func (s *Store) GetModel(id string) ([]byte, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	var out []byte
	err := s.do(func() (err error) {
		out, err = s.get(prefixModel + id)
		return err
	})
	return out, err
}

// PutValidCases stores the valid case numbers of id.
func (s *Store) PutValidCases(id string, numbers []int) error {
	if id == "" {
		return ErrEmptyID
	}
	raw, err := json.Marshal(numbers)
	if err != nil {
		return err
	}
	return s.do(func() error {
		return s.db.Update(func(txn *badger.Txn) error {
			return txn.Set([]byte(prefixValid+id), raw)
		})
	})
}

// GetValidCases returns the stored valid case numbers of id.
func (s *Store) GetValidCases(id string) ([]int, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	var out []int
	err := s.do(func() error {
		raw, err := s.get(prefixValid + id)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, &out)
	})
	return out, err
}

// ListModels returns every stored model, oldest first.
func (s *Store) ListModels() ([]Entry, error) {
	var out []Entry
	err := s.do(func() error {
		return s.db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			prefix := []byte(prefixMeta)
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				item := it.Item()
				e := Entry{ID: strings.TrimPrefix(string(item.Key()), prefixMeta)}
				if err := item.Value(func(v []byte) error { return e.Created.UnmarshalText(v) }); err != nil {
					return fmt.Errorf("store: meta of %s: %w", e.ID, err)
				}
				out = append(out, e)
			}
			return nil
		})
	})
	slices.SortStableFunc(out, func(a, b Entry) int { return a.Created.Compare(b.Created) })
	return out, err
}

// Delete removes everything stored under id.
func (s *Store) Delete(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	return s.do(func() error {
		return s.db.Update(func(txn *badger.Txn) error {
			if _, err := txn.Get([]byte(prefixModel + id)); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("%w: %s", ErrNotFound, id)
				}
				return err
			}
			for _, p := range []string{prefixModel, prefixValid, prefixMeta} {
				if err := txn.Delete([]byte(p + id)); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

func (s *Store) get(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return out, err
}

// badgerLogger adapts slog to badger.Logger.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
