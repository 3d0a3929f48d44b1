package fbas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func trivialFBAS(t *testing.T) (*FBAS, NodeId, NodeId, NodeId) {
	t.Helper()
	f := New()
	n0, err := f.AddNode(Node{PublicKey: "n0", QuorumSet: QuorumSet{Threshold: 1, Validators: []NodeId{1}}})
	require.NoError(t, err)
	n1, err := f.AddNode(Node{PublicKey: "n1", QuorumSet: QuorumSet{Threshold: 2, Validators: []NodeId{1, 2}}})
	require.NoError(t, err)
	n2, err := f.AddNode(Node{PublicKey: "n2", QuorumSet: QuorumSet{Threshold: 2, Validators: []NodeId{1, 2}}})
	require.NoError(t, err)
	return f, n0, n1, n2
}

func TestFBASAddNodeAssignsSequentialIds(t *testing.T) {
	f, n0, n1, n2 := trivialFBAS(t)
	require.Equal(t, NodeId(0), n0)
	require.Equal(t, NodeId(1), n1)
	require.Equal(t, NodeId(2), n2)
	require.Equal(t, 3, f.NumberOfNodes())
}

func TestFBASGetNodeIdAndQuorumSet(t *testing.T) {
	f, n0, _, _ := trivialFBAS(t)

	id, ok := f.GetNodeId("n0")
	require.True(t, ok)
	require.Equal(t, n0, id)

	_, ok = f.GetNodeId("nonexistent")
	require.False(t, ok)

	qs, ok := f.GetQuorumSet(n0)
	require.True(t, ok)
	require.Equal(t, QuorumSet{Threshold: 1, Validators: []NodeId{1}}, qs)
}

func TestFBASAddNodeRejectsDuplicatePublicKey(t *testing.T) {
	f := New()
	node := Node{PublicKey: "test", QuorumSet: QuorumSet{Threshold: 1, Validators: []NodeId{0}}}
	_, err := f.AddNode(node)
	require.NoError(t, err)
	_, err = f.AddNode(node)
	require.ErrorIs(t, err, ErrDuplicatePublicKey)
}

func TestFBASAddNodeRejectsMalformedQuorumSet(t *testing.T) {
	f := New()
	_, err := f.AddNode(Node{PublicKey: "bad", QuorumSet: QuorumSet{Threshold: 5, Validators: []NodeId{0}}})
	require.ErrorIs(t, err, ErrMalformedQuorumSet)
}

func TestFBASIsQuorum(t *testing.T) {
	f, _, _, _ := trivialFBAS(t)

	require.True(t, f.IsQuorum(NewNodeIdSetFromSlice([]NodeId{0, 1, 2})))
	require.False(t, f.IsQuorum(NewNodeIdSetFromSlice([]NodeId{0})))
	require.False(t, f.IsQuorum(NodeIdSet{}))
}

func TestFBASAllNodes(t *testing.T) {
	f, _, _, _ := trivialFBAS(t)
	require.Equal(t, []NodeId{0, 1, 2}, f.AllNodes().Slice())
}
