package fbas

import "sort"

// RankScore is a PageRank-like importance score assigned to a node, used
// only to choose a good search order for the DFS enumerators — it has no
// bearing on which sets are correct, only on how quickly they are found.
type RankScore float64

// RankNodes scores every node in the FBAS using an adaptation of PageRank:
// no damping, a fixed number of iterations, and no distinction between
// top-level validators and validators nested in inner quorum sets. A node
// not in nodeSet cannot receive rank flow from nodes in nodeSet.
func RankNodes(nodeSet NodeIdSet, f *FBAS) []RankScore {
	const runs = 100

	n := f.NumberOfNodes()
	scores := make([]RankScore, n)
	if nodeSet.Len() == 0 {
		return scores
	}
	start := RankScore(1) / RankScore(nodeSet.Len())
	for _, id := range nodeSet.Slice() {
		scores[id] = start
	}

	for i := 0; i < runs; i++ {
		last := scores
		scores = make([]RankScore, n)
		for _, id := range nodeSet.Slice() {
			node, _ := f.Node(id)
			trusted := node.QuorumSet.ContainedNodes()
			l := RankScore(trusted.Len())
			if l == 0 {
				continue
			}
			for _, trustedID := range trusted.Slice() {
				if nodeSet.Contains(trustedID) {
					scores[trustedID] += last[id] / l
				}
			}
		}
	}
	return scores
}

// SortByRank orders ids by descending rank score, breaking ties by ascending
// NodeId so the result is fully deterministic.
func SortByRank(ids []NodeId, f *FBAS) []NodeId {
	set := NewNodeIdSetFromSlice(ids)
	scores := RankNodes(set, f)
	return SortByScore(ids, scores)
}

// SortByScore orders a copy of ids by descending scores[id], breaking ties
// by ascending NodeId.
func SortByScore(ids []NodeId, scores []RankScore) []NodeId {
	out := make([]NodeId, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		return a < b
	})
	return out
}
