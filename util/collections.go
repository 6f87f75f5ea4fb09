package util

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// SortedKeys returns the keys of the given map, sorted in their natural order. Used anywhere
// a map's contents end up in human-visible output so that output is reproducible.
func SortedKeys[M ~map[K]V, K constraints.Ordered, V any](m M) []K {
	keys := make([]K, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}

// MergeSets returns a new set containing every element of the given sets.
func MergeSets[K comparable](sets ...map[K]struct{}) map[K]struct{} {
	out := map[K]struct{}{}

	for _, set := range sets {
		for key := range set {
			out[key] = struct{}{}
		}
	}

	return out
}

// SetFromSlice converts the given list into a set, collapsing duplicates.
func SetFromSlice[S ~[]E, E comparable](list S) map[E]struct{} {
	out := make(map[E]struct{}, len(list))
	for _, item := range list {
		out[item] = struct{}{}
	}

	return out
}

// RemoveDuplicatesFromList returns a copy of the given list with all duplicates removed
// (keeping the first encountered), preserving the original order.
func RemoveDuplicatesFromList[S ~[]E, E comparable](list S) S {
	seen := make(map[E]struct{}, len(list))

	var out S

	for _, item := range list {
		if _, ok := seen[item]; ok {
			continue
		}

		seen[item] = struct{}{}
		out = append(out, item)
	}

	return out
}
