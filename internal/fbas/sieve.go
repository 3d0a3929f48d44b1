package fbas

import "sort"

// RemoveNonMinimal returns the subset of sets that have no proper subset
// also present in sets — the minimality sieve used to clean up enumerators
// that over-emit (e.g. a DFS that finds every quorum reachable along a
// branch before checking whether a smaller one it already found subsumes
// it). Sets are bucketed by cardinality ascending so every candidate is only
// ever compared against sets no larger than itself.
func RemoveNonMinimal(sets []NodeIdSet) []NodeIdSet {
	ordered := make([]NodeIdSet, len(sets))
	copy(ordered, sets)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Len() < ordered[j].Len() })

	var kept []NodeIdSet
	for _, candidate := range ordered {
		minimal := true
		for _, k := range kept {
			if IsSubset(k, candidate) {
				minimal = false
				break
			}
		}
		if minimal {
			kept = append(kept, candidate)
		}
	}
	return kept
}

// IsMinimalGiven reports whether no member of sets is a proper subset of
// candidate. It does not check membership of candidate itself.
func IsMinimalGiven(candidate NodeIdSet, sets []NodeIdSet) bool {
	for _, s := range sets {
		if !Equal(s, candidate) && IsSubset(s, candidate) {
			return false
		}
	}
	return true
}
