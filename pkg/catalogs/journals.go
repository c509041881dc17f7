package catalogs

import (
	"sort"
	"sync"

	"github.com/confwatch/confwatch/pkg/errors"
)

// Journals is a concurrent safe, insertion-ordered collection of journal
// entries keyed by ID.
type Journals struct {
	mu      sync.RWMutex
	entries []*Journal
	index   map[string]*Journal
}

// NewJournals creates an empty journal collection.
func NewJournals() *Journals {
	return &Journals{index: make(map[string]*Journal)}
}

// Add inserts a journal, returning an error if its ID already exists.
func (j *Journals) Add(entry *Journal) error {
	if entry == nil {
		return &errors.ValidationError{Field: "journal", Message: "cannot be nil"}
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	entry.Type = TypeJournal
	if entry.ID == "" {
		entry.ID = GenerateID(entry.Name, entry.Abbrev)
	}
	if _, exists := j.index[entry.ID]; exists {
		return errors.ErrAlreadyExists
	}
	j.entries = append(j.entries, entry)
	j.index[entry.ID] = entry
	return nil
}

// Find returns a journal by ID.
func (j *Journals) Find(id string) (*Journal, error) {
	j.mu.RLock()
	entry, ok := j.index[id]
	j.mu.RUnlock()
	if !ok {
		return nil, &errors.NotFoundError{Resource: "journal", ID: id}
	}
	return entry, nil
}

// Len returns the number of journals.
func (j *Journals) Len() int {
	j.mu.RLock()
	n := len(j.entries)
	j.mu.RUnlock()
	return n
}

// List returns every journal in insertion order.
func (j *Journals) List() []*Journal {
	j.mu.RLock()
	out := make([]*Journal, len(j.entries))
	copy(out, j.entries)
	j.mu.RUnlock()
	return out
}

// FilterByImpactFactor returns journals whose impact factor lies in
// [minIF, maxIF], in insertion order.
func (j *Journals) FilterByImpactFactor(minIF, maxIF float64) []*Journal {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var out []*Journal
	for _, entry := range j.entries {
		if entry.ImpactFactor >= minIF && entry.ImpactFactor <= maxIF {
			out = append(out, entry)
		}
	}
	return out
}

// Top returns the n journals with the highest impact factor. Journals
// without one are excluded.
func (j *Journals) Top(n int) []*Journal {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var ranked []*Journal
	for _, entry := range j.entries {
		if entry.ImpactFactor > 0 {
			ranked = append(ranked, entry)
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].ImpactFactor > ranked[b].ImpactFactor
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
