package alias

import (
	"context"
	"encoding/json"
	"testing"

	"scoreview/internal/catalog"
	"scoreview/pkg/scorecsv"
)

func testCatalog() *catalog.Catalog {
	return catalog.FromEntries(
		catalog.Entry{Title: "Ｌｉｎｃｌｅ Ｒｉｓｅ"},
		catalog.Entry{Title: "gigadelic"},
		catalog.Entry{Title: "冥"},
		catalog.Entry{Title: "Almagest"},
	)
}

func TestNormalize(t *testing.T) {
	if got := Normalize("Ｌｉｎｃｌｅ  Ｒｉｓｅ"); got != "lincle rise" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}

func TestSimilarityBounds(t *testing.T) {
	if Similarity("abc", "abc") != 1 {
		t.Fatal("identical titles should score 1")
	}
	if Similarity("", "abc") != 0 {
		t.Fatal("empty title should score 0")
	}
	if s := Similarity("gigadelic", "gigadelix"); s < 0.9 || s >= 1 {
		t.Fatalf("unexpected similarity: %f", s)
	}
}

func TestSuggest(t *testing.T) {
	titles := []string{"gigadelic", "Lincle Rise", "GIGADELIC!", "Totally Different Song"}
	res, err := Suggest(context.Background(), titles, testCatalog(), Options{Threshold: 0.85})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if res.Exact != 1 {
		t.Fatalf("expected 1 exact match, got %d", res.Exact)
	}
	if c, ok := res.Aliases.Canonical("Lincle Rise"); !ok || c != "Ｌｉｎｃｌｅ Ｒｉｓｅ" {
		t.Fatalf("expected width-folded match, got %q %v", c, ok)
	}
	if c, ok := res.Aliases.Canonical("GIGADELIC!"); !ok || c != "gigadelic" {
		t.Fatalf("expected fuzzy match, got %q %v", c, ok)
	}
	if len(res.Unmatched) != 1 || res.Unmatched[0].ExportTitle != "Totally Different Song" {
		t.Fatalf("unexpected unmatched: %+v", res.Unmatched)
	}
	if _, ok := res.Aliases.Canonical("gigadelic"); ok {
		t.Fatal("exact titles should not get an alias")
	}
}

func TestSimilarityComparesRunes(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		min, max float64
	}{
		{"disjoint hiragana", "あいうえお", "かきくけこ", 0, 0},
		{"disjoint katakana", "アイウエオ", "カキクケコ", 0, 0},
		{"one shared kana", "ぼくらの夏", "きみの声", 0, 0.6},
		{"suffix added", "ぼくらの夏", "ぼくらの夏休み", 0.9, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Similarity(Normalize(tc.a), Normalize(tc.b))
			if got < tc.min || got > tc.max {
				t.Fatalf("Similarity(%q, %q) = %f, want in [%f, %f]", tc.a, tc.b, got, tc.min, tc.max)
			}
		})
	}
}

func TestSuggestJapaneseTitles(t *testing.T) {
	cat := catalog.FromEntries(catalog.Entry{Title: "ぼくらの夏"}, catalog.Entry{Title: "あいうえお"})
	res, err := Suggest(context.Background(), []string{"ぼくらの夏休み", "かきくけこ", "きみの声"}, cat, Options{})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if c, ok := res.Aliases.Canonical("ぼくらの夏休み"); !ok || c != "ぼくらの夏" {
		t.Fatalf("expected kana match, got %q %v", c, ok)
	}
	if len(res.Unmatched) != 2 {
		t.Fatalf("expected two unmatched titles, got %+v", res.Unmatched)
	}
}

func TestRuneBytesTooManyRunes(t *testing.T) {
	var b []rune
	for r := rune(0x4e00); r < 0x4e00+300; r++ {
		b = append(b, r)
	}
	long := string(b)
	if ea, eb := runeBytes(long, "x"); ea != long || eb != "x" {
		t.Fatal("expected inputs returned unchanged past 256 distinct runes")
	}
}

func TestSuggestKeepsExisting(t *testing.T) {
	existing := catalog.AliasesFromMap(map[string]string{"Lincle Rise": "Almagest"})

	kept, err := Suggest(context.Background(), []string{"Lincle Rise"}, testCatalog(), Options{Existing: existing})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if c, _ := kept.Aliases.Canonical("Lincle Rise"); c != "Almagest" || kept.Kept != 1 {
		t.Fatalf("expected existing alias kept, got %q (kept %d)", c, kept.Kept)
	}

	replaced, err := Suggest(context.Background(), []string{"Lincle Rise"}, testCatalog(), Options{Existing: existing, Overwrite: true})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if c, _ := replaced.Aliases.Canonical("Lincle Rise"); c != "Ｌｉｎｃｌｅ Ｒｉｓｅ" {
		t.Fatalf("expected overwrite, got %q", c)
	}
}

func TestSuggestOutputSortedJSON(t *testing.T) {
	res, err := Suggest(context.Background(), []string{"zeta", "Almagest!", "gigadelic?"},
		testCatalog(), Options{Threshold: 0.8})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	buf, err := json.Marshal(res.Aliases)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"Almagest!":"Almagest","gigadelic?":"gigadelic"}`
	if string(buf) != want {
		t.Fatalf("json = %s, want %s", buf, want)
	}
}

func TestSuggestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Suggest(ctx, []string{"nope"}, testCatalog(), Options{}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestCollectTitles(t *testing.T) {
	a := []scorecsv.ScoreEntry{{Title: "x"}, {Title: ""}, {Title: "y"}}
	b := []scorecsv.ScoreEntry{{Title: "y"}, {Title: "z"}}
	got := CollectTitles(a, b)
	if len(got) != 3 || got[0] != "x" || got[2] != "z" {
		t.Fatalf("unexpected titles: %v", got)
	}
}
