package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

type fileFormat struct {
	Skills map[string]fileEntry `json:"skills"`
}

type fileEntry struct {
	Category   string   `json:"category"`
	Variations []string `json:"variations"`
}

// LoadFile reads taxonomy entries from a JSON file of the form
//
//	{"skills": {"PostgreSQL": {"category": "Database", "variations": ["postgres", "psql"]}}}
//
// Entries are returned sorted by canonical name.
func LoadFile(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}

	var f fileFormat
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse taxonomy file: %w", err)
	}
	if len(f.Skills) == 0 {
		return nil, fmt.Errorf("taxonomy file %s has no skills", path)
	}

	names := make([]string, 0, len(f.Skills))
	for name := range f.Skills {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Entry, 0, len(names))
	for _, name := range names {
		fe := f.Skills[name]
		out = append(out, Entry{
			Canonical: name,
			Category:  fe.Category,
			Aliases:   fe.Variations,
		})
	}
	return out, nil
}
