package fbas

// FindMinimalBlockingSets enumerates every inclusion-minimal NodeIdSet B ⊆
// target that hits every quorum in minimalQuorums (B ∩ q ≠ ∅ for all q).
// This is exactly the minimal-hitting-set problem over the quorum family,
// restricted to candidate nodes drawn from target (by convention the intact
// set).
//
// At each step the unhit quorum with the fewest remaining candidate nodes is
// chosen to branch on — picking the smallest branching factor first keeps
// the search tree as narrow as possible. A node already excluded by an
// earlier sibling branch is never re-added, which avoids re-deriving the
// same hitting set along more than one path.
func FindMinimalBlockingSets(minimalQuorums []NodeIdSet, target NodeIdSet) []NodeIdSet {
	quorums := make([]NodeIdSet, 0, len(minimalQuorums))
	for _, q := range minimalQuorums {
		restricted := Intersection(q, target)
		if restricted.IsEmpty() {
			// No candidate in target can ever hit this quorum; it can
			// never be blocked by a subset of target.
			return nil
		}
		quorums = append(quorums, restricted)
	}
	if len(quorums) == 0 {
		return []NodeIdSet{NewNodeIdSet(0)}
	}

	var found []NodeIdSet
	blockingStep(NewNodeIdSet(0), quorums, NewNodeIdSet(0), &found)
	return RemoveNonMinimal(found)
}

// blockingStep explores hitting sets for remaining, given that selected has
// already been committed and excluded holds nodes ruled out by sibling
// branches at this level (so the same set is never emitted twice).
func blockingStep(selected NodeIdSet, remaining []NodeIdSet, excluded NodeIdSet, found *[]NodeIdSet) {
	if len(remaining) == 0 {
		*found = append(*found, selected.Clone())
		return
	}

	target := smallestUnhitQuorum(remaining)
	candidates := target.Clone()
	candidates.Subtract(excluded)
	if candidates.IsEmpty() {
		return
	}

	branchExcluded := excluded.Clone()
	for _, v := range candidates.Slice() {
		nextSelected := selected.Clone()
		nextSelected.Insert(v)

		nextRemaining := remaining[:0:0]
		for _, q := range remaining {
			if !q.Contains(v) {
				nextRemaining = append(nextRemaining, q)
			}
		}

		blockingStep(nextSelected, nextRemaining, branchExcluded, found)
		branchExcluded.Insert(v)
	}
}

func smallestUnhitQuorum(quorums []NodeIdSet) NodeIdSet {
	best := quorums[0]
	for _, q := range quorums[1:] {
		if q.Len() < best.Len() {
			best = q
		}
	}
	return best
}
