// Package validate implements the confwatch cross-source reconciliation
// engine. Given the same logical entity (a conference or journal) reported
// independently by several data sources, it groups records by canonical name,
// detects field-level disagreements, computes a bounded confidence score and
// produces one recommended merged record per group plus an aggregate
// validation report.
//
// The engine is a pure in-memory batch computation: all fetching and
// persistence is performed by collaborators before invocation and after
// report construction.
package validate

import (
	"github.com/confwatch/confwatch/pkg/sources"
)

// Record field names used in field maps and majority votes.
const (
	FieldName           = "name"
	FieldDeadline       = "deadline"
	FieldRank           = "rank"
	FieldWebsite        = "website"
	FieldConferenceDate = "conference_date"
)

// Entry is the minimal capability the engine requires of a record schema.
// Conference and journal schemas share this subset; schema-specific extra
// fields (impact factor and the like) are ignored by the engine.
type Entry interface {
	// EntryName returns the free-text entity name.
	EntryName() string

	// EntryDeadline returns the submission deadline as a YYYY-MM-DD string,
	// or "" when unknown.
	EntryDeadline() string

	// EntryRank returns the rank ("A", "B", "C" or "N/A"), or "" when unknown.
	EntryRank() string

	// EntryFields returns the record as a field map for merged output.
	EntryFields() map[string]string
}

// Record is one source's raw view of an entity. Absent fields are empty
// strings everywhere in the engine.
type Record struct {
	Name           string `json:"name"`
	Deadline       string `json:"deadline,omitempty"`
	Rank           string `json:"rank,omitempty"`
	Website        string `json:"website,omitempty"`
	ConferenceDate string `json:"conference_date,omitempty"`
}

// EntryName implements Entry.
func (r Record) EntryName() string { return r.Name }

// EntryDeadline implements Entry.
func (r Record) EntryDeadline() string { return r.Deadline }

// EntryRank implements Entry.
func (r Record) EntryRank() string { return r.Rank }

// EntryFields implements Entry.
func (r Record) EntryFields() map[string]string {
	return map[string]string{
		FieldName:           r.Name,
		FieldDeadline:       r.Deadline,
		FieldRank:           r.Rank,
		FieldWebsite:        r.Website,
		FieldConferenceDate: r.ConferenceDate,
	}
}

// RecordOf builds a Record from any Entry. Fields outside the engine's
// minimal subset are dropped.
func RecordOf(e Entry) Record {
	fields := e.EntryFields()
	return Record{
		Name:           e.EntryName(),
		Deadline:       e.EntryDeadline(),
		Rank:           e.EntryRank(),
		Website:        fields[FieldWebsite],
		ConferenceDate: fields[FieldConferenceDate],
	}
}

// MultiSource is the engine input: per-source record lists keyed by source ID.
type MultiSource map[sources.ID][]Record

// SourceRecord is one source's view of an entity after grouping: the raw
// record tagged with its source ID, the validation-time check date and the
// source's configured priority. SourceRecords are never mutated after
// creation within a run.
type SourceRecord struct {
	SourceID    sources.ID `json:"source_id"`
	Data        Record     `json:"data"`
	LastChecked string     `json:"last_checked"`
	Priority    int        `json:"priority"`
}

// EntityGroup holds every record whose name normalized to the same canonical
// key. Insertion order is preserved: tie-breaks such as "first source wins"
// depend on it.
type EntityGroup struct {
	Key     string
	Records []SourceRecord
}
