package fbas

import "sort"

// StandardForm removes every unsatisfiable node and reassigns NodeIds so
// that nodes are ordered by ascending public key. Two FBAS values that
// describe the same system up to registration order (and so NodeId
// assignment) converge to the same standard form, which makes it a stable basis for
// content fingerprinting (see Fingerprint).
func StandardForm(f *FBAS) *FBAS {
	satisfiable := IntactNodes(f)
	shrunk, _ := WithoutNodes(f, complementOf(satisfiable, f.NumberOfNodes()))

	order := make([]int, shrunk.NumberOfNodes())
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, _ := shrunk.Node(NodeId(order[i]))
		b, _ := shrunk.Node(NodeId(order[j]))
		return a.PublicKey < b.PublicKey
	})

	oldToNew := make(map[NodeId]NodeId, len(order))
	for newID, oldID := range order {
		oldToNew[NodeId(oldID)] = NodeId(newID)
	}

	sortedForm := New()
	sortedForm.nodes = make([]Node, len(order))
	for oldID, newID := range oldToNew {
		node, _ := shrunk.Node(oldID)
		sortedForm.nodes[newID] = Node{
			PublicKey: node.PublicKey,
			QuorumSet: remapQuorumSet(node.QuorumSet, oldToNew),
		}
	}
	for newID, node := range sortedForm.nodes {
		sortedForm.pkToID[node.PublicKey] = NodeId(newID)
	}
	return sortedForm
}

func complementOf(s NodeIdSet, universeSize int) NodeIdSet {
	out := NewNodeIdSet(universeSize)
	for i := 0; i < universeSize; i++ {
		out.Insert(NodeId(i))
	}
	out.Subtract(s)
	return out
}
