// Package sources defines configuration types for confwatch data sources.
// A source is an independent data provider (web listing, official registry,
// manual curation) that reports facts about the same real-world entity.
//
// Source configuration is loaded once per run and is immutable afterwards;
// priority and authority lookups are backed by a precomputed index rather
// than ambient state.
package sources

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/confwatch/confwatch/pkg/errors"
)

// DefaultPriority is assigned to sources without an explicit priority and
// to unknown source IDs. Lower values mean higher precedence.
const DefaultPriority = 999

// ID represents the identifier of a data source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Config describes a single data source.
type Config struct {
	ID            ID     `json:"id"`
	Name          string `json:"name"`
	URL           string `json:"url,omitempty"`
	Priority      int    `json:"priority"`      // lower = higher precedence
	Enabled       bool   `json:"enabled"`       // default true
	Authoritative bool   `json:"authoritative"` // higher-trust source for resolving fields
}

// UnmarshalJSON applies defaults for omitted fields: enabled defaults to
// true and priority to DefaultPriority.
func (c *Config) UnmarshalJSON(data []byte) error {
	type alias Config
	tmp := alias{
		Priority: DefaultPriority,
		Enabled:  true,
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*c = Config(tmp)
	return nil
}

// Configs is an immutable collection of source configurations with indexed
// lookup by ID.
type Configs struct {
	list  []Config
	index map[ID]Config
}

// NewConfigs builds a Configs collection from a slice, preserving order.
// Later entries with a duplicate ID overwrite earlier ones in the index.
func NewConfigs(list []Config) *Configs {
	index := make(map[ID]Config, len(list))
	for _, c := range list {
		index[c.ID] = c
	}
	return &Configs{list: list, index: index}
}

// file is the on-disk shape of a sources configuration file.
type file struct {
	Sources []Config `json:"sources"`
}

// Load reads source configurations from a JSON file. A missing or unreadable
// file yields an empty collection rather than an error: scoring then falls
// back to default priority and non-authoritative treatment for every source.
func Load(path string) *Configs {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewConfigs(nil)
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return NewConfigs(nil)
	}
	return NewConfigs(f.Sources)
}

// LoadStrict reads source configurations from a JSON file and reports
// read or parse failures instead of degrading to an empty collection.
func LoadStrict(path string) (*Configs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return NewConfigs(f.Sources), nil
}

// Len returns the number of configured sources.
func (c *Configs) Len() int {
	return len(c.list)
}

// List returns all source configurations in their original order.
func (c *Configs) List() []Config {
	out := make([]Config, len(c.list))
	copy(out, c.list)
	return out
}

// Get returns the configuration for a source ID.
func (c *Configs) Get(id ID) (Config, bool) {
	cfg, ok := c.index[id]
	return cfg, ok
}

// Priority returns the priority for a source ID, or DefaultPriority for an
// unknown ID.
func (c *Configs) Priority(id ID) int {
	if cfg, ok := c.index[id]; ok {
		return cfg.Priority
	}
	return DefaultPriority
}

// Authoritative reports whether a source ID is flagged authoritative.
// Unknown IDs are not authoritative.
func (c *Configs) Authoritative(id ID) bool {
	return c.index[id].Authoritative
}

// AuthoritativeOrder returns the IDs of authoritative sources ordered by
// priority (highest precedence first). The order is stable for equal
// priorities, following configuration order.
func (c *Configs) AuthoritativeOrder() []ID {
	var auth []Config
	for _, cfg := range c.list {
		if cfg.Authoritative {
			auth = append(auth, cfg)
		}
	}
	sort.SliceStable(auth, func(i, j int) bool {
		return auth[i].Priority < auth[j].Priority
	})
	ids := make([]ID, len(auth))
	for i, cfg := range auth {
		ids[i] = cfg.ID
	}
	return ids
}

// Enabled returns the enabled source configurations in their original order.
func (c *Configs) Enabled() []Config {
	var out []Config
	for _, cfg := range c.list {
		if cfg.Enabled {
			out = append(out, cfg)
		}
	}
	return out
}
