// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/dstoolbox/config"
	"github.com/katalvlaran/dstoolbox/designspace"
	"github.com/katalvlaran/dstoolbox/store"
	"github.com/katalvlaran/dstoolbox/variables"
)

// entry is a parsed design space and the model it came from.
type entry struct {
	id    string
	model *config.Model
	ds    *designspace.DesignSpace
}

// registry caches parsed design spaces by id in front of the store.
// Concurrent valid case computations for the same key share one run.
type registry struct {
	store  *store.Store
	logger *slog.Logger

	mu      sync.RWMutex
	entries map[string]*entry
	flight  singleflight.Group
}

func newRegistry(st *store.Store, logger *slog.Logger) *registry {
	return &registry{store: st, logger: logger, entries: make(map[string]*entry)}
}

func (r *registry) build(id string, m *config.Model) (*entry, error) {
	ds, err := m.DesignSpace(designspace.WithLogger(r.logger.With("designspace", id)))
	if err != nil {
		return nil, err
	}
	return &entry{id: id, model: m, ds: ds}, nil
}

// create registers m under a fresh id and persists it.
func (r *registry) create(m *config.Model) (*entry, error) {
	id := uuid.NewString()
	e, err := r.build(id, m)
	if err != nil {
		return nil, err
	}
	raw, err := m.Marshal()
	if err != nil {
		return nil, err
	}
	if err = r.store.PutModel(id, raw); err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.entries[id] = e
	r.mu.Unlock()
	return e, nil
}

// get returns the entry of id, loading it from the store on a cache miss.
func (r *registry) get(id string) (*entry, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if ok {
		return e, nil
	}

	v, err, _ := r.flight.Do("load/"+id, func() (any, error) {
		raw, err := r.store.GetModel(id)
		if err != nil {
			return nil, err
		}
		m, err := config.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("stored model %s: %w", id, err)
		}
		e, err := r.build(id, m)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.entries[id] = e
		r.mu.Unlock()
		r.logger.Info("design space loaded from store", slog.String("id", id))
		return e, nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return v.(*entry), nil
}

func (r *registry) list() ([]store.Entry, error) {
	return r.store.ListModels()
}

func (r *registry) created(id string) time.Time {
	list, err := r.store.ListModels()
	if err != nil {
		return time.Time{}
	}
	for _, e := range list {
		if e.ID == id {
			return e.Created
		}
	}
	return time.Time{}
}

func (r *registry) delete(id string) error {
	if err := r.store.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
	r.flight.Forget("valid/" + id)
	return nil
}

// valid returns the valid case numbers of e. Without bounds the result is
// read from, or written to, the store. The shared computation outlives the
// request that started it, so callers joining the flight are not failed by
// the first caller going away.
func (r *registry) valid(ctx context.Context, e *entry, lower, upper *variables.Pool) ([]int, error) {
	ctx = context.WithoutCancel(ctx)
	if lower == nil && upper == nil {
		if cached, err := r.store.GetValidCases(e.id); err == nil {
			return cached, nil
		}
		v, err, shared := r.flight.Do("valid/"+e.id, func() (any, error) {
			numbers, err := e.ds.ValidCaseNumbers(ctx)
			if err != nil {
				return nil, err
			}
			if err = r.store.PutValidCases(e.id, numbers); err != nil {
				return nil, err
			}
			return numbers, nil
		})
		if err != nil {
			return nil, err
		}
		r.logger.Debug("valid cases", slog.String("id", e.id), slog.Bool("shared", shared))
		return v.([]int), nil
	}

	key := fmt.Sprintf("slice/%s/%v/%v", e.id, lower, upper)
	v, err, _ := r.flight.Do(key, func() (any, error) {
		cs, err := e.ds.ValidCasesForSlice(ctx, lower, upper)
		if err != nil {
			return nil, err
		}
		numbers := make([]int, len(cs))
		for k, c := range cs {
			numbers[k] = c.Number()
		}
		return numbers, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]int), nil
}
