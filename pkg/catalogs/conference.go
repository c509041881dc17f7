// Package catalogs provides the record schemas and in-memory catalog for
// academic conference and journal metadata. A catalog holds the merged,
// cross-checked view of every tracked venue together with its verification
// state; the reconciliation itself happens in pkg/validate, which consumes
// and produces the types defined here.
//
// Catalogs are thread-safe and preserve insertion order, so repeated save
// and filter operations over the same data are deterministic.
package catalogs

import (
	"regexp"
	"strings"

	"github.com/agentstation/utc"

	"github.com/confwatch/confwatch/pkg/validate"
)

// EntryType distinguishes the venue kinds a catalog can hold.
type EntryType string

// Entry types.
const (
	TypeConference EntryType = "conference"
	TypeJournal    EntryType = "journal"
	TypeWorkshop   EntryType = "workshop"
)

// Verification is the reconciliation state attached to a catalog entry:
// which sources reported it, what they disagreed on and how confident the
// merged view is. Entries start unverified with a neutral confidence.
type Verification struct {
	Status     validate.Status         `json:"status"`
	Sources    []validate.SourceRecord `json:"sources,omitempty"`
	Conflicts  []validate.Conflict     `json:"conflicts,omitempty"`
	Confidence float64                 `json:"confidence"`
}

// NewVerification returns the initial verification state for an entry first
// reported by a single source.
func NewVerification(rec validate.SourceRecord) *Verification {
	return &Verification{
		Status:     validate.StatusUnverified,
		Sources:    []validate.SourceRecord{rec},
		Confidence: 0.5,
	}
}

// Metadata tracks the bookkeeping trail of a catalog entry.
type Metadata struct {
	CreatedAt utc.Time `json:"created_at"`
	UpdatedAt utc.Time `json:"updated_at"`
	UpdatedBy string   `json:"updated_by,omitempty"`
}

// Conference is one tracked venue. Deadline and ConferenceDate are
// YYYY-MM-DD strings, empty when unknown, matching the wire format the data
// sources report.
type Conference struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Abbrev         string        `json:"abbrev,omitempty"`
	Rank           string        `json:"rank,omitempty"`
	Deadline       string        `json:"deadline,omitempty"`
	ConferenceDate string        `json:"conference_date,omitempty"`
	Website        string        `json:"website,omitempty"`
	Description    string        `json:"description,omitempty"`
	Type           EntryType     `json:"type,omitempty"`
	Fields         []string      `json:"fields,omitempty"`
	Verification   *Verification `json:"verification,omitempty"`
	Metadata       *Metadata     `json:"metadata,omitempty"`
}

// EntryName implements validate.Entry.
func (c *Conference) EntryName() string { return c.Name }

// EntryDeadline implements validate.Entry.
func (c *Conference) EntryDeadline() string { return c.Deadline }

// EntryRank implements validate.Entry.
func (c *Conference) EntryRank() string { return c.Rank }

// EntryFields implements validate.Entry.
func (c *Conference) EntryFields() map[string]string {
	return map[string]string{
		validate.FieldName:           c.Name,
		validate.FieldDeadline:       c.Deadline,
		validate.FieldRank:           c.Rank,
		validate.FieldWebsite:        c.Website,
		validate.FieldConferenceDate: c.ConferenceDate,
	}
}

// Record returns the conference as an engine input record.
func (c *Conference) Record() validate.Record {
	return validate.RecordOf(c)
}

// Apply overwrites the reconcilable fields from a merged field map. Empty
// values in the map leave the current value untouched.
func (c *Conference) Apply(fields map[string]string) {
	if v := fields[validate.FieldName]; v != "" {
		c.Name = v
	}
	if v := fields[validate.FieldDeadline]; v != "" {
		c.Deadline = v
	}
	if v := fields[validate.FieldRank]; v != "" {
		c.Rank = v
	}
	if v := fields[validate.FieldWebsite]; v != "" {
		c.Website = v
	}
	if v := fields[validate.FieldConferenceDate]; v != "" {
		c.ConferenceDate = v
	}
}

var upperOnly = regexp.MustCompile(`[^A-Z]`)

// GenerateID derives a stable catalog ID from an entry's abbreviation, or
// from the name's initials when no abbreviation is known.
func GenerateID(name, abbrev string) string {
	if abbrev == "" {
		words := strings.Fields(name)
		if len(words) >= 2 {
			if len(words) > 4 {
				words = words[:4]
			}
			var b strings.Builder
			for _, w := range words {
				b.WriteString(strings.ToUpper(w[:1]))
			}
			abbrev = b.String()
		} else if len(name) > 10 {
			abbrev = strings.ToUpper(name[:10])
		} else {
			abbrev = strings.ToUpper(name)
		}
	}
	return strings.ToLower(upperOnly.ReplaceAllString(abbrev, ""))
}
