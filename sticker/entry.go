package sticker

import (
	"cmp"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	goerrors "github.com/kbukum/slaybot/errors"
	"github.com/kbukum/slaybot/validation"
)

// Entry is one catalog record as stored on disk.
type Entry struct {
	Name           string `json:"name" validate:"required"`
	MediaReference string `json:"media_reference" validate:"required"`
}

// encode renders the catalog as a JSON array sorted by name.
func encode(m map[string]string) ([]byte, error) {
	entries := toEntries(m)
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return data, nil
}

// decode parses the backing file. Empty input is an empty catalog.
func decode(data []byte) (map[string]string, error) {
	m := make(map[string]string)
	if len(data) == 0 {
		return m, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, goerrors.InvalidInput("catalog", "malformed JSON").WithCause(err)
	}
	for i, e := range entries {
		if err := validation.Validate(e); err != nil {
			return nil, goerrors.InvalidInput("catalog", fmt.Sprintf("entry %d is incomplete", i)).WithCause(err)
		}
		if _, dup := m[e.Name]; dup {
			return nil, goerrors.InvalidInput("catalog", fmt.Sprintf("duplicate name %q", e.Name))
		}
		m[e.Name] = e.MediaReference
	}
	return m, nil
}

func toEntries(m map[string]string) []Entry {
	entries := make([]Entry, 0, len(m))
	for name, ref := range m {
		entries = append(entries, Entry{Name: name, MediaReference: ref})
	}
	slices.SortFunc(entries, func(a, b Entry) int { return cmp.Compare(a.Name, b.Name) })
	return entries
}

func sortedNames(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
