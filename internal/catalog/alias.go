package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// AliasTable maps export spellings to canonical catalog titles. Titles that
// are spelled the same in both sources are absent.
type AliasTable struct {
	keys    []string
	aliases map[string]string
}

// NewAliasTable returns an empty table.
func NewAliasTable() *AliasTable {
	return &AliasTable{aliases: map[string]string{}}
}

// AliasesFromMap builds a table from m, inserting keys in sorted order.
func AliasesFromMap(m map[string]string) *AliasTable {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	t := NewAliasTable()
	for _, k := range keys {
		t.Set(k, m[k])
	}
	return t
}

// Set records that exportTitle is spelled canonical in the catalog.
func (t *AliasTable) Set(exportTitle, canonical string) {
	if t.aliases == nil {
		t.aliases = map[string]string{}
	}
	if _, exists := t.aliases[exportTitle]; !exists {
		t.keys = append(t.keys, exportTitle)
	}
	t.aliases[exportTitle] = canonical
}

// Canonical returns the catalog spelling for an export title.
func (t *AliasTable) Canonical(exportTitle string) (string, bool) {
	if t == nil {
		return "", false
	}
	c, ok := t.aliases[exportTitle]
	return c, ok
}

// Len reports the number of aliases.
func (t *AliasTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Map returns a copy of the aliases.
func (t *AliasTable) Map() map[string]string {
	out := make(map[string]string, t.Len())
	if t == nil {
		return out
	}
	for k, v := range t.aliases {
		out[k] = v
	}
	return out
}

// Reverse returns canonical title to export title. When several export titles
// share a canonical title the last one inserted wins.
func (t *AliasTable) Reverse() map[string]string {
	out := make(map[string]string, t.Len())
	if t == nil {
		return out
	}
	for _, k := range t.keys {
		out[t.aliases[k]] = k
	}
	return out
}

// DecodeAliases reads a JSON object of export title to canonical title,
// keeping document order for Reverse.
func DecodeAliases(r io.Reader) (*AliasTable, error) {
	t := NewAliasTable()
	err := decodeObject(r, func(key string, dec *json.Decoder) error {
		var canonical string
		if err := dec.Decode(&canonical); err != nil {
			return fmt.Errorf("alias %q: %w", key, err)
		}
		t.Set(key, canonical)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// MarshalJSON encodes the table as a flat object with sorted keys.
func (t *AliasTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Map())
}
