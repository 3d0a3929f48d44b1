package fbas

import "github.com/fbas-go/analyzer/internal/logger"

var log = logger.New("fbas/quorums")

// quorumSearch holds the mutable state of the minimal-quorum DFS: selection
// is the set of nodes committed to the candidate quorum so far; unprocessed
// is the queue of nodes not yet decided, ordered by descending rank so the
// most "important" undecided node is always considered next (a pivot choice
// that tends to find quorums, and prune non-quorums, faster); available is
// selection union unprocessed, i.e. everything still in play.
type quorumSearch struct {
	selection   NodeIdSet
	unprocessed []NodeId
	available   NodeIdSet
}

// FindMinimalQuorums enumerates every minimal quorum contained in nodeSet.
// Nodes are visited in descending-rank order so that branches likely to
// yield quorums quickly are explored first; the search still covers every
// subset, so the result does not depend on the FBAS's ranking.
func FindMinimalQuorums(nodeSet NodeIdSet, f *FBAS) []NodeIdSet {
	if qs, ok := IsSymmetricCluster(nodeSet, f); ok && qs.Threshold > 0 {
		log.Debug("nodeSet of %d nodes is a symmetric cluster, using combinatorial fast path", nodeSet.Len())
		return MinimalQuorumsForSymmetricCluster(nodeSet, qs.Threshold)
	}

	log.Trace("starting minimal-quorum DFS over %d nodes", nodeSet.Len())
	sorted := SortByRank(nodeSet.Slice(), f)

	search := &quorumSearch{
		selection:   NewNodeIdSet(f.NumberOfNodes()),
		unprocessed: sorted,
		available:   nodeSet.Clone(),
	}

	var found []NodeIdSet
	minimalQuorumsStep(search, f, &found, true)
	log.Debug("minimal-quorum DFS over %d nodes found %d quorums", nodeSet.Len(), len(found))
	return found
}

func minimalQuorumsStep(search *quorumSearch, f *FBAS, found *[]NodeIdSet, selectionChanged bool) {
	if selectionChanged && f.IsQuorum(search.selection) {
		if isMinimalForQuorum(search.selection, f) {
			log.Trace("found minimal quorum %v", search.selection.Slice())
			*found = append(*found, search.selection.Clone())
		}
		return
	}
	if len(search.unprocessed) == 0 {
		return
	}

	current := search.unprocessed[0]
	search.unprocessed = search.unprocessed[1:]

	search.selection.Insert(current)
	minimalQuorumsStep(search, f, found, true)
	search.selection.Remove(current)

	search.available.Remove(current)
	if selectionSatisfiable(search.selection, search.available, f) {
		minimalQuorumsStep(search, f, found, false)
	}
	search.available.Insert(current)

	search.unprocessed = append([]NodeId{current}, search.unprocessed...)
}

// selectionSatisfiable reports whether every node already committed to
// selection could still end up satisfied using only nodes in available —
// a necessary condition for selection to ever grow into a quorum.
func selectionSatisfiable(selection, available NodeIdSet, f *FBAS) bool {
	for _, id := range selection.Slice() {
		node, _ := f.Node(id)
		if !node.IsQuorumSlice(available) {
			return false
		}
	}
	return true
}

// isMinimalForQuorum reports whether no proper subset of quorum is itself a
// quorum.
func isMinimalForQuorum(quorum NodeIdSet, f *FBAS) bool {
	tester := quorum.Clone()
	for _, id := range quorum.Slice() {
		tester.Remove(id)
		if ContainsQuorum(tester, f) {
			return false
		}
		tester.Insert(id)
	}
	return true
}
