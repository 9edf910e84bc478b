package catalog

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const sampleTable = `{
  "Zeta": {"version": "tricoro", "title": "Zeta", "hyper": {"official": 9, "unofficial": 9.4}, "another": null, "leggendaria": null},
  "Alpha": {"version": "1st style", "title": "Alpha", "hyper": null, "another": {"official": 12, "unofficial": null}, "leggendaria": {"official": null, "unofficial": 12.8}}
}`

func TestDecodeCatalogKeepsOrder(t *testing.T) {
	c, err := DecodeCatalog(strings.NewReader(sampleTable))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got, want := c.Titles(), []string{"Zeta", "Alpha"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("titles = %v, want %v", got, want)
	}

	zeta, ok := c.Lookup("Zeta")
	if !ok {
		t.Fatal("Zeta missing")
	}
	if zeta.Hyper == nil || zeta.Hyper.Official == nil || *zeta.Hyper.Official != 9 {
		t.Fatalf("unexpected hyper: %+v", zeta.Hyper)
	}
	if !zeta.Hyper.Unofficial.Valid || zeta.Hyper.Unofficial.Decimal.String() != "9.4" {
		t.Fatalf("unexpected unofficial: %+v", zeta.Hyper.Unofficial)
	}
	if zeta.Another != nil {
		t.Fatalf("expected nil another, got %+v", zeta.Another)
	}

	alpha, _ := c.Lookup("Alpha")
	if alpha.Another == nil || alpha.Another.Unofficial.Valid {
		t.Fatalf("expected another with null unofficial, got %+v", alpha.Another)
	}
	if alpha.Leggendaria == nil || alpha.Leggendaria.Official != nil {
		t.Fatalf("expected leggendaria with null official, got %+v", alpha.Leggendaria)
	}
}

func TestDecodeCatalogEmptyAndInvalid(t *testing.T) {
	for _, input := range []string{"", "{}", "null"} {
		c, err := DecodeCatalog(strings.NewReader(input))
		if err != nil {
			t.Fatalf("decode %q: %v", input, err)
		}
		if c.Len() != 0 {
			t.Fatalf("decode %q: expected empty catalog", input)
		}
	}

	if _, err := DecodeCatalog(strings.NewReader(`["a"]`)); err == nil {
		t.Fatal("expected error for array input")
	}
	if _, err := DecodeCatalog(strings.NewReader(`{"a": 5}`)); err == nil {
		t.Fatal("expected error for non-object entry")
	}
}

func TestAliasReverseLastWins(t *testing.T) {
	tbl, err := DecodeAliases(strings.NewReader(`{"b-export": "Canon", "a-export": "Canon", "other": "Other"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("expected 3 aliases, got %d", tbl.Len())
	}
	if c, ok := tbl.Canonical("b-export"); !ok || c != "Canon" {
		t.Fatalf("Canonical(b-export) = %q, %v", c, ok)
	}

	rev := tbl.Reverse()
	if rev["Canon"] != "a-export" {
		t.Fatalf("expected last inserted export title to win, got %q", rev["Canon"])
	}
	if rev["Other"] != "other" {
		t.Fatalf("unexpected reverse for Other: %q", rev["Other"])
	}
}

func TestVersionOrderRank(t *testing.T) {
	order, err := DecodeVersionOrder(strings.NewReader(`["1st style", "2nd style", "tricoro"]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if order.Rank("2nd style") != 1 {
		t.Fatalf("unexpected rank: %d", order.Rank("2nd style"))
	}
	if order.Rank("EPOLIS") != UnknownVersionRank {
		t.Fatalf("expected unknown rank, got %d", order.Rank("EPOLIS"))
	}
	if idx := order.Index(); idx["tricoro"] != 2 {
		t.Fatalf("unexpected index: %v", idx)
	}
}

func TestLoadSources(t *testing.T) {
	dir := t.TempDir()
	p := Paths{
		DifficultyTable: filepath.Join(dir, "difficulty_table.json"),
		MatchingTable:   filepath.Join(dir, "matching_table.json"),
		VersionOrder:    filepath.Join(dir, "version_order.json"),
	}
	writeFile(t, p.DifficultyTable, sampleTable)
	writeFile(t, p.MatchingTable, `{"zeta!": "Zeta"}`)
	writeFile(t, p.VersionOrder, `["1st style", "tricoro"]`)

	src := LoadSources(context.Background(), p, zap.NewNop())
	if src.Catalog.Len() != 2 || src.Aliases.Len() != 1 || len(src.VersionOrder) != 2 {
		t.Fatalf("unexpected sources: %d titles, %d aliases, %d versions",
			src.Catalog.Len(), src.Aliases.Len(), len(src.VersionOrder))
	}
}

func TestLoadSourcesDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	p := Paths{
		DifficultyTable: filepath.Join(dir, "difficulty_table.json"),
		MatchingTable:   filepath.Join(dir, "missing.json"),
		VersionOrder:    filepath.Join(dir, "version_order.json"),
	}
	writeFile(t, p.DifficultyTable, sampleTable)
	writeFile(t, p.VersionOrder, `{not json`)

	core, logs := observer.New(zapcore.WarnLevel)
	src := LoadSources(context.Background(), p, zap.New(core))

	if src.Catalog.Len() != 2 {
		t.Fatalf("expected catalog to load, got %d titles", src.Catalog.Len())
	}
	if src.Aliases == nil || src.Aliases.Len() != 0 {
		t.Fatal("expected empty alias table")
	}
	if src.VersionOrder == nil || len(src.VersionOrder) != 0 {
		t.Fatal("expected empty version order")
	}
	if got := logs.FilterLevelExact(zapcore.WarnLevel).Len(); got != 2 {
		t.Fatalf("expected 2 warnings, got %d", got)
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
