// Package memory keeps pint entries in process memory, optionally journaled
// to a write-ahead log so they survive restarts.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iho/pintwise/internal/domain"
	"github.com/iho/pintwise/internal/usecase"
)

// EntryRepository implements usecase.EntryStore in memory. Callers always
// receive copies.
type EntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.Entry
	idGen   usecase.IDGenerator
	journal *Journal
}

// NewEntryRepository creates an empty, unjournaled EntryRepository.
func NewEntryRepository(idGen usecase.IDGenerator) *EntryRepository {
	return &EntryRepository{
		entries: make(map[string]*domain.Entry),
		idGen:   idGen,
	}
}

// NewJournaledEntryRepository creates an EntryRepository whose contents are
// replayed from and written through to journal.
func NewJournaledEntryRepository(idGen usecase.IDGenerator, journal *Journal) (*EntryRepository, error) {
	entries, err := journal.Replay()
	if err != nil {
		return nil, err
	}

	return &EntryRepository{
		entries: entries,
		idGen:   idGen,
		journal: journal,
	}, nil
}

func (r *EntryRepository) Create(_ context.Context, entry *domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = r.idGen.Generate()
	}

	stored := entry.Clone()
	if err := r.journal.put(stored); err != nil {
		return err
	}
	r.entries[stored.ID] = stored

	return nil
}

func (r *EntryRepository) ListAll(_ context.Context) ([]*domain.Entry, error) {
	return r.list(func(*domain.Entry) bool { return true }), nil
}

func (r *EntryRepository) ListPending(_ context.Context) ([]*domain.Entry, error) {
	return r.list((*domain.Entry).IsPending), nil
}

func (r *EntryRepository) MarkPaid(_ context.Context, id string, paidAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.entries[id]
	if !ok || !current.IsPending() {
		return false, nil
	}

	updated := current.Clone()
	updated.MarkPaid(paidAt)
	if err := r.journal.put(updated); err != nil {
		return false, err
	}
	r.entries[id] = updated

	return true, nil
}

func (r *EntryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return false, nil
	}

	if err := r.journal.remove(id); err != nil {
		return false, err
	}
	delete(r.entries, id)

	return true, nil
}

func (r *EntryRepository) Ping(_ context.Context) error {
	return nil
}

// Close closes the journal, if any.
func (r *EntryRepository) Close() error {
	if r.journal == nil {
		return nil
	}
	return r.journal.Close()
}

func (r *EntryRepository) list(keep func(*domain.Entry) bool) []*domain.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if keep(e) {
			result = append(result, e.Clone())
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].DateCreated.Equal(result[j].DateCreated) {
			return result[i].DateCreated.After(result[j].DateCreated)
		}
		return result[i].ID > result[j].ID
	})

	return result
}
