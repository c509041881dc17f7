package catalogs

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/agentstation/utc"

	"github.com/confwatch/confwatch/pkg/errors"
	"github.com/confwatch/confwatch/pkg/sources"
	"github.com/confwatch/confwatch/pkg/validate"
)

const deadlineLayout = "2006-01-02"

// Catalog is a concurrent safe, insertion-ordered collection of conference
// entries keyed by ID.
type Catalog struct {
	mu      sync.RWMutex
	entries []*Conference
	index   map[string]*Conference
	updated utc.Time
}

// CatalogOption defines a function that configures a Catalog instance.
type CatalogOption func(*Catalog)

// WithCapacity sets the initial capacity of the catalog.
func WithCapacity(capacity int) CatalogOption {
	return func(c *Catalog) {
		c.entries = make([]*Conference, 0, capacity)
		c.index = make(map[string]*Conference, capacity)
	}
}

// WithConferences seeds the catalog with existing entries. Entries without
// an ID get one generated; later duplicates of an ID are dropped.
func WithConferences(entries []*Conference) CatalogOption {
	return func(c *Catalog) {
		for _, entry := range entries {
			_ = c.add(entry)
		}
	}
}

// NewCatalog creates a new Catalog with optional configuration.
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{
		index: make(map[string]*Conference),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add inserts a conference, returning an error if its ID already exists.
// A missing ID is generated from the name and abbreviation.
func (c *Catalog) Add(entry *Conference) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.add(entry)
}

func (c *Catalog) add(entry *Conference) error {
	if entry == nil {
		return &errors.ValidationError{Field: "conference", Message: "cannot be nil"}
	}
	if entry.ID == "" {
		entry.ID = GenerateID(entry.Name, entry.Abbrev)
	}
	if _, exists := c.index[entry.ID]; exists {
		return errors.ErrAlreadyExists
	}
	if entry.Type == "" {
		entry.Type = TypeConference
	}
	c.entries = append(c.entries, entry)
	c.index[entry.ID] = entry
	c.updated = utc.Now()
	return nil
}

// Set upserts a conference by ID, keeping the original insertion position
// for existing entries.
func (c *Catalog) Set(entry *Conference) error {
	if entry == nil {
		return &errors.ValidationError{Field: "conference", Message: "cannot be nil"}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry.ID == "" {
		entry.ID = GenerateID(entry.Name, entry.Abbrev)
	}
	if existing, ok := c.index[entry.ID]; ok {
		*existing = *entry
		c.updated = utc.Now()
		return nil
	}
	return c.add(entry)
}

// Delete removes a conference by ID.
func (c *Catalog) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.index[id]; !ok {
		return &errors.NotFoundError{Resource: "conference", ID: id}
	}
	delete(c.index, id)
	for i, entry := range c.entries {
		if entry.ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			break
		}
	}
	c.updated = utc.Now()
	return nil
}

// Find returns a conference by ID.
func (c *Catalog) Find(id string) (*Conference, error) {
	c.mu.RLock()
	entry, ok := c.index[id]
	c.mu.RUnlock()
	if !ok {
		return nil, &errors.NotFoundError{Resource: "conference", ID: id}
	}
	return entry, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	n := len(c.entries)
	c.mu.RUnlock()
	return n
}

// List returns every entry in insertion order.
func (c *Catalog) List() []*Conference {
	c.mu.RLock()
	out := make([]*Conference, len(c.entries))
	copy(out, c.entries)
	c.mu.RUnlock()
	return out
}

// MultiSource rebuilds the engine input from the per-entry source records
// stored in each entry's verification state. Entries without verification
// state contribute their own merged view under the given fallback source.
func (c *Catalog) MultiSource(fallback string) validate.MultiSource {
	c.mu.RLock()
	defer c.mu.RUnlock()

	multi := make(validate.MultiSource)
	for _, entry := range c.entries {
		if entry.Verification == nil || len(entry.Verification.Sources) == 0 {
			id := sources.ID(fallback)
			multi[id] = append(multi[id], entry.Record())
			continue
		}
		for _, rec := range entry.Verification.Sources {
			multi[rec.SourceID] = append(multi[rec.SourceID], rec.Data)
		}
	}
	return multi
}

// Filter describes catalog filter criteria. Zero values mean "no
// constraint"; the day windows are measured from now.
type Filter struct {
	Rank           string
	Field          string
	Type           EntryType
	DeadlineWithin int // deadline on or before now+N days
	DeadlineAfter  int // deadline on or after now+N days
}

// Select returns the entries matching every set criterion, in catalog
// order. Entries without a parseable deadline are excluded whenever a day
// window is set.
func (c *Catalog) Select(f Filter, now time.Time) []*Conference {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*Conference
	for _, entry := range c.entries {
		if f.Rank != "" && entry.Rank != strings.ToUpper(f.Rank) {
			continue
		}
		if f.Field != "" && !hasField(entry.Fields, f.Field) {
			continue
		}
		if f.Type != "" && entry.Type != f.Type {
			continue
		}
		if f.DeadlineWithin > 0 || f.DeadlineAfter > 0 {
			deadline, err := time.Parse(deadlineLayout, entry.Deadline)
			if err != nil {
				continue
			}
			if f.DeadlineWithin > 0 && deadline.After(now.AddDate(0, 0, f.DeadlineWithin)) {
				continue
			}
			if f.DeadlineAfter > 0 && deadline.Before(now.AddDate(0, 0, f.DeadlineAfter)) {
				continue
			}
		}
		out = append(out, entry)
	}
	return out
}

func hasField(fields []string, want string) bool {
	want = strings.ToLower(want)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), want) {
			return true
		}
	}
	return false
}

// Deadline pairs an entry with its days-until-deadline count for upcoming
// deadline listings.
type Deadline struct {
	Conference *Conference
	DaysUntil  int
}

// Upcoming returns entries whose deadline falls within the next daysAhead
// days (today included), soonest first. Past and unparseable deadlines are
// skipped.
func (c *Catalog) Upcoming(now time.Time, daysAhead int) []Deadline {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Deadline
	for _, entry := range c.entries {
		if entry.Deadline == "" {
			continue
		}
		deadline, err := time.Parse(deadlineLayout, entry.Deadline)
		if err != nil {
			continue
		}
		days := int(deadline.Sub(now) / (24 * time.Hour))
		if days < 0 || days > daysAhead {
			continue
		}
		out = append(out, Deadline{Conference: entry, DaysUntil: days})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Conference.Deadline < out[j].Conference.Deadline
	})
	return out
}

// Statistics summarizes a catalog: counts by rank, type and verification
// status plus the number of deadlines inside the next 30 days.
type Statistics struct {
	Total          int                     `json:"total"`
	ByRank         map[string]int          `json:"by_rank"`
	ByType         map[EntryType]int       `json:"by_type"`
	ByVerification map[validate.Status]int `json:"by_verification"`
	Upcoming30Days int                     `json:"upcoming_30days"`
	LastUpdated    utc.Time                `json:"last_updated"`
}

// Statistics computes catalog summary counts as of now.
func (c *Catalog) Statistics(now time.Time) Statistics {
	upcoming := len(c.Upcoming(now, 30))

	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Statistics{
		Total:          len(c.entries),
		ByRank:         map[string]int{"A": 0, "B": 0, "C": 0, "N/A": 0},
		ByType:         map[EntryType]int{TypeConference: 0, TypeJournal: 0, TypeWorkshop: 0},
		ByVerification: make(map[validate.Status]int),
		Upcoming30Days: upcoming,
		LastUpdated:    c.updated,
	}
	for _, entry := range c.entries {
		rank := entry.Rank
		if rank == "" {
			rank = "N/A"
		}
		if _, ok := stats.ByRank[rank]; ok {
			stats.ByRank[rank]++
		}
		stats.ByType[entry.Type]++

		status := validate.StatusUnverified
		if entry.Verification != nil {
			status = entry.Verification.Status
		}
		stats.ByVerification[status]++
	}
	return stats
}

// ApplyResult writes a validation result back into the catalog: the entry
// whose name normalizes to the result's key gets the recommended field
// values and the new verification state. Unknown keys are reported as
// not-found so callers can surface them.
func (c *Catalog) ApplyResult(res *validate.Result, updatedBy string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, entry := range c.entries {
		if validate.Key(entry.Name) != res.Key {
			continue
		}
		entry.Apply(res.RecommendedData)
		entry.Verification = &Verification{
			Status:     res.Status,
			Sources:    res.Sources,
			Conflicts:  res.Conflicts,
			Confidence: res.Confidence,
		}
		if entry.Metadata == nil {
			entry.Metadata = &Metadata{CreatedAt: utc.Now()}
		}
		entry.Metadata.UpdatedAt = utc.Now()
		entry.Metadata.UpdatedBy = updatedBy
		c.updated = utc.Now()
		return nil
	}
	return &errors.NotFoundError{Resource: "conference", ID: res.Key}
}

// catalogDocument is the JSON file shape: entry list plus file metadata.
type catalogDocument struct {
	Conferences []*Conference   `json:"conferences"`
	Metadata    catalogMetadata `json:"metadata"`
}

type catalogMetadata struct {
	LastUpdated utc.Time `json:"last_updated"`
	TotalCount  int      `json:"total_count"`
}

// MarshalJSON implements json.Marshaler.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc := catalogDocument{
		Conferences: c.entries,
		Metadata: catalogMetadata{
			LastUpdated: c.updated,
			TotalCount:  len(c.entries),
		},
	}
	if doc.Conferences == nil {
		doc.Conferences = []*Conference{}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON implements json.Unmarshaler. Both the document shape and
// the legacy bare entry array are accepted.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		var legacy []*Conference
		if legacyErr := json.Unmarshal(data, &legacy); legacyErr != nil {
			return errors.WrapParse("json", "catalog", err)
		}
		doc.Conferences = legacy
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = nil
	c.index = make(map[string]*Conference, len(doc.Conferences))
	for _, entry := range doc.Conferences {
		if entry == nil {
			continue
		}
		if entry.ID == "" {
			entry.ID = GenerateID(entry.Name, entry.Abbrev)
		}
		if entry.Type == "" {
			entry.Type = TypeConference
		}
		if _, exists := c.index[entry.ID]; exists {
			continue
		}
		c.entries = append(c.entries, entry)
		c.index[entry.ID] = entry
	}
	c.updated = doc.Metadata.LastUpdated
	return nil
}
