package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"scoreview/pkg/scorecsv"
)

// Tiers lists the difficulty tiers the catalog rates, in emission order.
var Tiers = []scorecsv.Tier{scorecsv.TierHyper, scorecsv.TierAnother, scorecsv.TierLeggendaria}

// Level is the rating pair for one chart.
type Level struct {
	Official   *int                `json:"official"`
	Unofficial decimal.NullDecimal `json:"unofficial"`
}

// Entry is the catalog record for one canonical title.
type Entry struct {
	Version     string `json:"version"`
	Title       string `json:"title"`
	Hyper       *Level `json:"hyper"`
	Another     *Level `json:"another"`
	Leggendaria *Level `json:"leggendaria"`
}

// Level returns the rating for tier, or nil when the song has no such chart.
func (e Entry) Level(tier scorecsv.Tier) *Level {
	switch tier {
	case scorecsv.TierHyper:
		return e.Hyper
	case scorecsv.TierAnother:
		return e.Another
	case scorecsv.TierLeggendaria:
		return e.Leggendaria
	}
	return nil
}

// Catalog maps canonical titles to entries and remembers the order in which
// titles were first added.
type Catalog struct {
	titles  []string
	entries map[string]Entry
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{entries: map[string]Entry{}}
}

// FromEntries builds a catalog keyed by each entry's Title.
func FromEntries(entries ...Entry) *Catalog {
	c := New()
	for _, e := range entries {
		c.Add(e.Title, e)
	}
	return c
}

// Add stores entry under title. Re-adding a title replaces the entry but keeps
// its original position.
func (c *Catalog) Add(title string, entry Entry) {
	if c.entries == nil {
		c.entries = map[string]Entry{}
	}
	if _, exists := c.entries[title]; !exists {
		c.titles = append(c.titles, title)
	}
	c.entries[title] = entry
}

// Lookup returns the entry for a canonical title.
func (c *Catalog) Lookup(title string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	e, ok := c.entries[title]
	return e, ok
}

// Titles returns canonical titles in catalog order.
func (c *Catalog) Titles() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.titles...)
}

// Len reports the number of titles.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.titles)
}

// DecodeCatalog reads a JSON object of canonical title to entry, keeping the
// object's key order.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	c := New()
	err := decodeObject(r, func(key string, dec *json.Decoder) error {
		var e Entry
		if err := dec.Decode(&e); err != nil {
			return fmt.Errorf("entry %q: %w", key, err)
		}
		c.Add(key, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// decodeObject walks the members of a top-level JSON object in document order.
// A top-level null decodes as an empty object.
func decodeObject(r io.Reader, member func(key string, dec *json.Decoder) error) error {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := member(key, dec); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
