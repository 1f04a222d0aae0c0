package common

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// MapKeys returns the keys of m in sorted order, so callers exposing
// them over the API get a stable listing.
func MapKeys[K constraints.Ordered, V any](m map[K]V) []K {
	result := make([]K, 0, len(m))
	for k := range m {
		result = append(result, k)
	}

	slices.Sort(result)
	return result
}
