package fbas

import "fmt"

// Node is a single FBAS participant: a public key and the quorum set it
// trusts to vouch for statements it has made.
type Node struct {
	PublicKey string
	QuorumSet QuorumSet
}

// IsQuorumSlice reports whether nodeSet satisfies this node's quorum set.
func (n Node) IsQuorumSlice(nodeSet NodeIdSet) bool {
	return n.QuorumSet.IsQuorumSlice(nodeSet)
}

// FBAS is a Federated Byzantine Agreement System: a fixed collection of
// nodes, each identified by a dense NodeId assigned in registration order,
// together with the public key each NodeId was registered under.
type FBAS struct {
	nodes  []Node
	pkToID map[string]NodeId
}

// New returns an FBAS with no nodes.
func New() *FBAS {
	return &FBAS{pkToID: make(map[string]NodeId)}
}

// AddNode registers node and returns the NodeId it was assigned. It fails
// with ErrDuplicatePublicKey if the public key is already registered, and
// with ErrMalformedQuorumSet if the node's quorum set violates the
// threshold invariant.
func (f *FBAS) AddNode(node Node) (NodeId, error) {
	if err := node.QuorumSet.Validate(); err != nil {
		return 0, err
	}
	if _, exists := f.pkToID[node.PublicKey]; exists {
		return 0, fmt.Errorf("%w: %q", ErrDuplicatePublicKey, node.PublicKey)
	}
	id := NodeId(len(f.nodes))
	f.nodes = append(f.nodes, node)
	f.pkToID[node.PublicKey] = id
	return id, nil
}

// NumberOfNodes returns how many nodes are registered.
func (f *FBAS) NumberOfNodes() int {
	return len(f.nodes)
}

// AllNodes returns the set of every registered NodeId.
func (f *FBAS) AllNodes() NodeIdSet {
	s := NewNodeIdSet(len(f.nodes))
	for i := range f.nodes {
		s.Insert(NodeId(i))
	}
	return s
}

// GetNodeId looks up the NodeId a public key was registered under.
func (f *FBAS) GetNodeId(publicKey string) (NodeId, bool) {
	id, ok := f.pkToID[publicKey]
	return id, ok
}

// GetPublicKey returns the public key a NodeId was registered under.
func (f *FBAS) GetPublicKey(id NodeId) (string, bool) {
	if int(id) < 0 || int(id) >= len(f.nodes) {
		return "", false
	}
	return f.nodes[id].PublicKey, true
}

// GetQuorumSet returns the quorum set of the given node.
func (f *FBAS) GetQuorumSet(id NodeId) (QuorumSet, bool) {
	if int(id) < 0 || int(id) >= len(f.nodes) {
		return QuorumSet{}, false
	}
	return f.nodes[id].QuorumSet, true
}

// Node returns the full Node value for id.
func (f *FBAS) Node(id NodeId) (Node, bool) {
	if int(id) < 0 || int(id) >= len(f.nodes) {
		return Node{}, false
	}
	return f.nodes[id], true
}

// IsQuorum reports whether nodeSet is a quorum: nonempty, and every member's
// quorum set is satisfied by nodeSet.
func (f *FBAS) IsQuorum(nodeSet NodeIdSet) bool {
	if nodeSet.IsEmpty() {
		return false
	}
	for _, id := range nodeSet.Slice() {
		node, ok := f.Node(id)
		if !ok || !node.IsQuorumSlice(nodeSet) {
			return false
		}
	}
	return true
}
