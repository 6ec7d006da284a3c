package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mithrel/copilotmd/pkg/api"
)

type memStore struct {
	mu     sync.RWMutex
	byID   map[string]api.Entry
	byHash map[string]string
}

func newMemStore() *memStore {
	return &memStore{byID: make(map[string]api.Entry), byHash: make(map[string]string)}
}

func (m *memStore) Put(ctx context.Context, e api.Entry) (api.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := e.Hash()
	if id, ok := m.byHash[h]; ok {
		return m.byID[id], nil
	}
	if e.ID == "" {
		e.ID = api.NewID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	m.byID[e.ID] = e
	m.byHash[h] = e.ID
	return e, nil
}

func (m *memStore) Get(ctx context.Context, id string) (api.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.byID[id]
	if !ok {
		return api.Entry{}, ErrNotFound
	}
	return e, nil
}

func (m *memStore) List(ctx context.Context, q api.ListQuery) ([]api.Entry, error) {
	m.mu.RLock()
	out := make([]api.Entry, 0, len(m.byID))
	for _, e := range m.byID {
		if q.Match(e) {
			out = append(out, e)
		}
	}
	m.mu.RUnlock()
	sortNewestFirst(out)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	delete(m.byHash, e.Hash())
	return nil
}

func (m *memStore) Prune(ctx context.Context, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]api.Entry, 0, len(m.byID))
	for _, e := range m.byID {
		all = append(all, e)
	}
	if len(all) <= keep {
		return 0, nil
	}
	sortNewestFirst(all)
	for _, e := range all[keep:] {
		delete(m.byID, e.ID)
		delete(m.byHash, e.Hash())
	}
	return len(all) - keep, nil
}

func (m *memStore) Close() error { return nil }

// sortNewestFirst orders by creation time, then ID, both descending.
func sortNewestFirst(entries []api.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}
