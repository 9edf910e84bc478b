// Package alias proposes Alias Table entries for export titles whose spelling
// differs from the difficulty catalog.
package alias

import (
	"context"
	"runtime"
	"strings"

	"github.com/xrash/smetrics"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"scoreview/internal/catalog"
	"scoreview/pkg/scorecsv"
)

// DefaultThreshold is the minimum similarity accepted as a match.
const DefaultThreshold = 0.85

// Options tunes Suggest.
type Options struct {
	Threshold float64
	// Existing entries are kept as-is unless Overwrite is set.
	Existing  *catalog.AliasTable
	Overwrite bool
}

// Match is one accepted suggestion.
type Match struct {
	ExportTitle string  `json:"exportTitle"`
	Canonical   string  `json:"canonical"`
	Score       float64 `json:"score"`
}

// Miss is an export title without an acceptable candidate. Best is the
// closest catalog title, if any.
type Miss struct {
	ExportTitle string  `json:"exportTitle"`
	Best        string  `json:"best,omitempty"`
	Score       float64 `json:"score"`
}

// Result is the outcome of Suggest.
type Result struct {
	Aliases   *catalog.AliasTable `json:"-"`
	Matches   []Match             `json:"matches"`
	Unmatched []Miss              `json:"unmatched"`
	Exact     int                 `json:"exact"`
	Kept      int                 `json:"kept"`
}

// CollectTitles returns the distinct non-empty export titles in first-seen
// order.
func CollectTitles(exports ...[]scorecsv.ScoreEntry) []string {
	seen := make(map[string]struct{})
	var titles []string
	for _, entries := range exports {
		for _, e := range entries {
			if e.Title == "" {
				continue
			}
			if _, ok := seen[e.Title]; ok {
				continue
			}
			seen[e.Title] = struct{}{}
			titles = append(titles, e.Title)
		}
	}
	return titles
}

// Normalize folds width and case so visually equal titles compare equal.
func Normalize(title string) string {
	folded := strings.ToLower(norm.NFKC.String(title))
	return strings.Join(strings.Fields(folded), " ")
}

// Similarity scores two normalized titles in [0, 1]. Characters are
// compared as runes, so kana that share UTF-8 lead bytes do not count as
// partial matches.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	ra, rb := runeBytes(a, b)
	return smetrics.JaroWinkler(ra, rb, 0.7, 4)
}

// editDistance breaks similarity ties; substitutions cost two so
// transposed characters are not preferred over insertions.
func editDistance(a, b string) int {
	ra, rb := runeBytes(a, b)
	return smetrics.WagnerFischer(ra, rb, 1, 1, 2)
}

// runeBytes re-encodes a and b so each distinct rune becomes one byte. The
// smetrics metrics index strings by byte. Pairs with more than 256 distinct
// runes are returned unchanged.
func runeBytes(a, b string) (string, string) {
	codes := make(map[rune]byte)
	encode := func(s string) ([]byte, bool) {
		out := make([]byte, 0, len(s))
		for _, r := range s {
			c, ok := codes[r]
			if !ok {
				if len(codes) == 256 {
					return nil, false
				}
				c = byte(len(codes))
				codes[r] = c
			}
			out = append(out, c)
		}
		return out, true
	}
	ea, ok := encode(a)
	if !ok {
		return a, b
	}
	eb, ok := encode(b)
	if !ok {
		return a, b
	}
	return string(ea), string(eb)
}

type candidate struct {
	title      string
	normalized string
}

// Suggest matches every export title missing from the catalog against the
// catalog titles and returns the merged alias table.
func Suggest(ctx context.Context, titles []string, cat *catalog.Catalog, opts Options) (Result, error) {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}

	res := Result{Aliases: catalog.NewAliasTable()}
	existing := map[string]string{}
	if opts.Existing != nil && !opts.Overwrite {
		existing = opts.Existing.Map()
	}

	candidates := make([]candidate, 0, cat.Len())
	for _, t := range cat.Titles() {
		candidates = append(candidates, candidate{title: t, normalized: Normalize(t)})
	}

	var pending []string
	for _, t := range titles {
		if _, ok := cat.Lookup(t); ok {
			res.Exact++
			continue
		}
		if canon, ok := existing[t]; ok {
			if _, known := cat.Lookup(canon); known {
				res.Kept++
				continue
			}
		}
		pending = append(pending, t)
	}

	best := make([]Miss, len(pending))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, t := range pending {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			best[i] = bestMatch(t, candidates)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	merged := make(map[string]string, len(existing)+len(pending))
	for k, v := range existing {
		merged[k] = v
	}
	for _, m := range best {
		if m.Best != "" && m.Score >= opts.Threshold {
			res.Matches = append(res.Matches, Match{ExportTitle: m.ExportTitle, Canonical: m.Best, Score: m.Score})
			merged[m.ExportTitle] = m.Best
			continue
		}
		res.Unmatched = append(res.Unmatched, m)
	}
	res.Aliases = catalog.AliasesFromMap(merged)
	return res, nil
}

func bestMatch(title string, candidates []candidate) Miss {
	needle := Normalize(title)
	out := Miss{ExportTitle: title}
	bestDist := 0
	for _, c := range candidates {
		score := Similarity(needle, c.normalized)
		if score == 0 || score < out.Score {
			continue
		}
		dist := editDistance(needle, c.normalized)
		if score == out.Score && dist >= bestDist {
			continue
		}
		out.Best, out.Score, bestDist = c.title, score, dist
	}
	return out
}
