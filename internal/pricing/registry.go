package pricing

import (
	"errors"
	"fmt"

	"github.com/Na-Rajan/compareremittance/internal/domain"
)

var (
	ErrEmptyRegistry = errors.New("pricing: registry has no providers")
	ErrDuplicateID   = errors.New("pricing: duplicate provider id")
	ErrIncomplete    = errors.New("pricing: provider model is incomplete")
)

// Entry binds a provider's reference data to its pricing model.
type Entry struct {
	Provider domain.Provider
	Model    Model
}

// Registry is the read-only provider catalog. It is built once and never mutated;
// accessors hand out copies.
type Registry struct {
	entries []Entry
	byID    map[string]int
}

func NewRegistry(entries ...Entry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyRegistry
	}
	r := &Registry{
		entries: make([]Entry, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		id := e.Provider.ID
		if id == "" || e.Model.Spread == nil || e.Model.Fee == nil {
			return nil, fmt.Errorf("%w: %q", ErrIncomplete, id)
		}
		if _, dup := r.byID[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
		r.byID[id] = len(r.entries)
		r.entries = append(r.entries, Entry{Provider: e.Provider.Clone(), Model: e.Model})
	}
	return r, nil
}

// MustRegistry panics on an invalid catalog; meant for compiled-in data.
func MustRegistry(entries ...Entry) *Registry {
	r, err := NewRegistry(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// All returns the entries in registration order.
func (r *Registry) All() []Entry {
	out := make([]Entry, len(r.entries))
	for i, e := range r.entries {
		out[i] = Entry{Provider: e.Provider.Clone(), Model: e.Model}
	}
	return out
}

func (r *Registry) Providers() []domain.Provider {
	out := make([]domain.Provider, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Provider.Clone()
	}
	return out
}

func (r *Registry) Lookup(id string) (Entry, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Entry{}, false
	}
	e := r.entries[i]
	return Entry{Provider: e.Provider.Clone(), Model: e.Model}, true
}

func (r *Registry) Len() int { return len(r.entries) }
