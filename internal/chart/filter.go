package chart

import (
	"sort"

	"scoreview/internal/catalog"
)

// FilterVersions drops charts whose version is in disabled. The result is a
// new slice in input order.
func FilterVersions(data []Chart, disabled map[string]struct{}) []Chart {
	out := make([]Chart, 0, len(data))
	for _, c := range data {
		if _, off := disabled[c.Version]; off {
			continue
		}
		out = append(out, c)
	}
	return out
}

// AvailableVersions lists the distinct non-empty versions present in data,
// ordered by the version order with unknown versions last.
func AvailableVersions(data []Chart, order catalog.VersionOrder) []string {
	seen := make(map[string]struct{})
	var versions []string
	for _, c := range data {
		if c.Version == "" {
			continue
		}
		if _, ok := seen[c.Version]; ok {
			continue
		}
		seen[c.Version] = struct{}{}
		versions = append(versions, c.Version)
	}
	ranks := order.Index()
	rank := func(v string) int {
		if r, ok := ranks[v]; ok {
			return r
		}
		return catalog.UnknownVersionRank
	}
	sort.SliceStable(versions, func(i, j int) bool {
		return rank(versions[i]) < rank(versions[j])
	})
	return versions
}

// Page is one window of a chart list.
type Page struct {
	Charts     []Chart `json:"charts"`
	Number     int     `json:"page"`
	PerPage    int     `json:"perPage"`
	TotalPages int     `json:"totalPages"`
	Total      int     `json:"total"`
}

// Paginate returns the 1-based page of data. Pages past the end are empty;
// a non-positive perPage is treated as 1.
func Paginate(data []Chart, page, perPage int) Page {
	if perPage < 1 {
		perPage = 1
	}
	if page < 1 {
		page = 1
	}
	p := Page{
		Number:     page,
		PerPage:    perPage,
		Total:      len(data),
		TotalPages: (len(data) + perPage - 1) / perPage,
		Charts:     []Chart{},
	}
	if page > p.TotalPages {
		return p
	}
	start := (page - 1) * perPage
	end := min(start+perPage, len(data))
	p.Charts = data[start:end]
	return p
}
