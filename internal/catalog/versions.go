package catalog

import (
	"encoding/json"
	"fmt"
	"io"
)

// UnknownVersionRank is the rank given to versions missing from the order.
const UnknownVersionRank = 9999

// VersionOrder is the chronological list of release names.
type VersionOrder []string

// Rank returns the position of version, or UnknownVersionRank.
func (o VersionOrder) Rank(version string) int {
	for i, v := range o {
		if v == version {
			return i
		}
	}
	return UnknownVersionRank
}

// Index precomputes ranks for repeated lookups.
func (o VersionOrder) Index() map[string]int {
	idx := make(map[string]int, len(o))
	for i, v := range o {
		if _, ok := idx[v]; !ok {
			idx[v] = i
		}
	}
	return idx
}

// DecodeVersionOrder reads a JSON array of version names.
func DecodeVersionOrder(r io.Reader) (VersionOrder, error) {
	var order VersionOrder
	if err := json.NewDecoder(r).Decode(&order); err != nil {
		if err == io.EOF {
			return VersionOrder{}, nil
		}
		return nil, fmt.Errorf("decode version order: %w", err)
	}
	if order == nil {
		order = VersionOrder{}
	}
	return order, nil
}
