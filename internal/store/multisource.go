package store

import (
	"encoding/json"
	"os"

	"github.com/confwatch/confwatch/pkg/errors"
	"github.com/confwatch/confwatch/pkg/validate"
)

// multiSourceDocument is the on-disk shape of a fetched multi-source dump.
// The per-source record lists may sit under a "sources" wrapper or form the
// whole document.
type multiSourceDocument struct {
	Sources validate.MultiSource `json:"sources"`
}

// LoadMultiSource reads a multi-source JSON dump: per-source record lists
// keyed by source ID.
func LoadMultiSource(path string) (validate.MultiSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.NotFoundError{Resource: "data file", ID: path}
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var doc multiSourceDocument
	if err := json.Unmarshal(data, &doc); err == nil && len(doc.Sources) > 0 {
		return doc.Sources, nil
	}

	var multi validate.MultiSource
	if err := json.Unmarshal(data, &multi); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return multi, nil
}
