package catalogs

// Journal is a tracked journal venue. It shares the conference schema
// (journals carry a deadline when they run special issues, empty for rolling
// submission) and adds bibliometric fields the reconciliation engine
// ignores.
type Journal struct {
	Conference

	ISSN                 string  `json:"issn,omitempty"`
	ImpactFactor         float64 `json:"impact_factor,omitempty"`
	Citations            int     `json:"citations,omitempty"`
	HIndex               int     `json:"h_index,omitempty"`
	PublicationFrequency string  `json:"publication_frequency,omitempty"`
}

// NewJournal wraps a conference record as a journal, forcing the type tag.
func NewJournal(c Conference) *Journal {
	c.Type = TypeJournal
	return &Journal{Conference: c}
}
