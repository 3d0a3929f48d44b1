package fbas

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// FindSatisfiableNodes partitions nodeSet into the nodes whose quorum set can
// be satisfied using only members of nodeSet ("satisfiable"/"intact") and
// those that cannot ("unsatisfiable"). It iterates to a fixed point: a node
// that looked satisfiable against the full candidate set may turn out not to
// be once its own dependencies are pruned.
func FindSatisfiableNodes(nodeSet NodeIdSet, f *FBAS) (satisfiable, unsatisfiable NodeIdSet) {
	satisfiable = NewNodeIdSet(f.NumberOfNodes())
	unsatisfiable = NewNodeIdSet(f.NumberOfNodes())

	for _, id := range nodeSet.Slice() {
		node, ok := f.Node(id)
		if ok && node.IsQuorumSlice(nodeSet) {
			satisfiable.Insert(id)
		} else {
			unsatisfiable.Insert(id)
		}
	}

	for {
		var brokenNode NodeId
		found := false
		for _, id := range satisfiable.Slice() {
			node, _ := f.Node(id)
			if !node.IsQuorumSlice(satisfiable) {
				brokenNode = id
				found = true
				break
			}
		}
		if !found {
			break
		}
		satisfiable.Remove(brokenNode)
		unsatisfiable.Insert(brokenNode)
	}
	return satisfiable, unsatisfiable
}

// IntactNodes returns the FBAS-wide fixed point of FindSatisfiableNodes: the
// set of nodes whose quorum set is satisfiable within the FBAS as a whole.
// Only intact nodes can belong to any quorum.
func IntactNodes(f *FBAS) NodeIdSet {
	satisfiable, _ := FindSatisfiableNodes(f.AllNodes(), f)
	return satisfiable
}

// UnsatisfiableNodes returns the complement of IntactNodes.
func UnsatisfiableNodes(f *FBAS) NodeIdSet {
	_, unsatisfiable := FindSatisfiableNodes(f.AllNodes(), f)
	return unsatisfiable
}

// OneNodeQuorums returns every node v for which {v} alone is a quorum slice
// of v's own quorum set — a one-node quorum. Such nodes are usually
// misconfigured (a quorum set with threshold 0, or one naming only itself).
func OneNodeQuorums(f *FBAS) []NodeId {
	var out []NodeId
	for _, id := range f.AllNodes().Slice() {
		node, _ := f.Node(id)
		if node.QuorumSet.IsOneNodeQuorumSlice(id) {
			out = append(out, id)
		}
	}
	return out
}

// StronglyConnectedComponents partitions nodeSet into its strongly connected
// components with respect to the "is named in the quorum set of" relation,
// restricted to edges whose endpoints both lie in nodeSet.
func StronglyConnectedComponents(nodeSet NodeIdSet, f *FBAS) []NodeIdSet {
	g := simple.NewDirectedGraph()
	for _, id := range nodeSet.Slice() {
		g.AddNode(simple.Node(int64(id)))
	}
	for _, id := range nodeSet.Slice() {
		node, _ := f.Node(id)
		for _, dep := range node.QuorumSet.ContainedNodes().Slice() {
			if dep == id || !nodeSet.Contains(dep) {
				continue
			}
			g.SetEdge(simple.Edge{F: simple.Node(int64(id)), T: simple.Node(int64(dep))})
		}
	}

	sccs := topo.TarjanSCC(g)
	out := make([]NodeIdSet, 0, len(sccs))
	for _, scc := range sccs {
		set := NewNodeIdSet(f.NumberOfNodes())
		for _, n := range scc {
			set.Insert(NodeId(n.ID()))
		}
		out = append(out, set)
	}
	return out
}

// IsSymmetricCluster reports whether every node in cluster carries the exact
// same flat QuorumSet (no inner sets) whose validators are exactly cluster
// itself. When true it also returns that common QuorumSet.
func IsSymmetricCluster(cluster NodeIdSet, f *FBAS) (QuorumSet, bool) {
	ids := cluster.Slice()
	if len(ids) == 0 {
		return QuorumSet{}, false
	}
	first, _ := f.Node(ids[0])
	qs := first.QuorumSet
	if len(qs.InnerSets) != 0 || !Equal(qs.ContainedNodes(), cluster) {
		return QuorumSet{}, false
	}
	for _, id := range ids[1:] {
		node, _ := f.Node(id)
		if !sameFlatQuorumSet(node.QuorumSet, qs) {
			return QuorumSet{}, false
		}
	}
	return qs, true
}

func sameFlatQuorumSet(a, b QuorumSet) bool {
	if a.Threshold != b.Threshold || len(a.InnerSets) != 0 || len(b.InnerSets) != 0 {
		return false
	}
	return Equal(NewNodeIdSetFromSlice(a.Validators), NewNodeIdSetFromSlice(b.Validators))
}

// MinimalQuorumsForSymmetricCluster returns every size-threshold subset of
// cluster. With a flat, self-referential symmetric quorum set, any such
// subset satisfies every member's quorum set, and no smaller subset does, so
// this combinatorial enumeration is exactly what the general DFS would find
// for this node set, without running it.
func MinimalQuorumsForSymmetricCluster(cluster NodeIdSet, threshold int) []NodeIdSet {
	ids := cluster.Slice()
	if threshold <= 0 || threshold > len(ids) {
		return nil
	}

	var out []NodeIdSet
	combo := make([]NodeId, 0, threshold)
	var choose func(start int)
	choose = func(start int) {
		if len(combo) == threshold {
			out = append(out, NewNodeIdSetFromSlice(combo))
			return
		}
		for i := start; i < len(ids); i++ {
			combo = append(combo, ids[i])
			choose(i + 1)
			combo = combo[:len(combo)-1]
		}
	}
	choose(0)
	return out
}

// ContainsQuorum reports whether nodeSet contains a quorum as a subset.
func ContainsQuorum(nodeSet NodeIdSet, f *FBAS) bool {
	satisfiable, _ := FindSatisfiableNodes(nodeSet, f)
	return !satisfiable.IsEmpty()
}

// CoreNodes returns every node that belongs to a quorum-containing strongly
// connected component of the intact set — the nodes actually relevant to
// quorum analysis.
func CoreNodes(f *FBAS) NodeIdSet {
	intact := IntactNodes(f)
	sccs := StronglyConnectedComponents(intact, f)
	out := NewNodeIdSet(f.NumberOfNodes())
	for _, scc := range sccs {
		if ContainsQuorum(scc, f) {
			out.Union(scc)
		}
	}
	return out
}

// WithoutNodes returns a new FBAS with the given nodes removed from the node
// list and from every remaining quorum set, together with the mapping from
// old to new NodeId for every node that survived. Node IDs are reassigned
// densely in the remaining nodes' original relative order.
func WithoutNodes(f *FBAS, toRemove NodeIdSet) (*FBAS, map[NodeId]NodeId) {
	remaining := f.AllNodes()
	remaining.Subtract(toRemove)

	oldToNew := make(map[NodeId]NodeId, remaining.Len())
	for newID, oldID := range remaining.Slice() {
		oldToNew[oldID] = NodeId(newID)
	}

	shrunk := New()
	for _, oldID := range remaining.Slice() {
		node, _ := f.Node(oldID)
		shrunk.nodes = append(shrunk.nodes, Node{
			PublicKey: node.PublicKey,
			QuorumSet: remapQuorumSet(node.QuorumSet, oldToNew),
		})
		shrunk.pkToID[node.PublicKey] = oldToNew[oldID]
	}
	return shrunk, oldToNew
}

// remapQuorumSet drops validators and empty inner sets whose nodes were
// removed, keeping the threshold unchanged — a removed node is treated as
// permanently crashed, which can only make the quorum set harder to satisfy,
// never easier.
func remapQuorumSet(qs QuorumSet, oldToNew map[NodeId]NodeId) QuorumSet {
	out := QuorumSet{Threshold: qs.Threshold}
	for _, v := range qs.Validators {
		if newID, ok := oldToNew[v]; ok {
			out.Validators = append(out.Validators, newID)
		}
	}
	for _, inner := range qs.InnerSets {
		remapped := remapQuorumSet(inner, oldToNew)
		if remapped.childCount() > 0 {
			out.InnerSets = append(out.InnerSets, remapped)
		}
	}
	return out
}
