package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fbas-go/analyzer/internal/fbas"
)

func mustAddNode(t *testing.T, f *fbas.FBAS, pk string, qs fbas.QuorumSet) fbas.NodeId {
	t.Helper()
	id, err := f.AddNode(fbas.Node{PublicKey: pk, QuorumSet: qs})
	require.NoError(t, err)
	return id
}

// S1: three-node symmetric FBAS.
func TestRunThreeNodeSymmetric(t *testing.T) {
	f := fbas.New()
	mustAddNode(t, f, "A", fbas.QuorumSet{Threshold: 2, Validators: []fbas.NodeId{0, 1, 2}})
	mustAddNode(t, f, "B", fbas.QuorumSet{Threshold: 2, Validators: []fbas.NodeId{0, 1, 2}})
	mustAddNode(t, f, "C", fbas.QuorumSet{Threshold: 2, Validators: []fbas.NodeId{0, 1, 2}})

	result := Run(f, Options{})

	require.Len(t, result.MinimalQuorums, 3)
	require.True(t, result.HasQuorumIntersection)
	require.Len(t, result.MinimalBlockingSets, 3)
	require.Len(t, result.MinimalSplittingSets, 3)
	for _, b := range result.MinimalBlockingSets {
		require.Equal(t, 2, b.Len())
	}
	for _, s := range result.MinimalSplittingSets {
		require.Equal(t, 1, s.Len())
	}
}

// S2: disjoint duo — no quorum intersection, splitting set is the empty set.
func TestRunDisjointDuoLacksIntersection(t *testing.T) {
	f := fbas.New()
	mustAddNode(t, f, "A", fbas.QuorumSet{Threshold: 1, Validators: []fbas.NodeId{0, 1}})
	mustAddNode(t, f, "B", fbas.QuorumSet{Threshold: 1, Validators: []fbas.NodeId{0, 1}})
	mustAddNode(t, f, "C", fbas.QuorumSet{Threshold: 1, Validators: []fbas.NodeId{2, 3}})
	mustAddNode(t, f, "D", fbas.QuorumSet{Threshold: 1, Validators: []fbas.NodeId{2, 3}})

	result := Run(f, Options{})

	require.False(t, result.HasQuorumIntersection)
	require.Len(t, result.MinimalQuorums, 4)
	require.Len(t, result.MinimalSplittingSets, 1)
	require.True(t, result.MinimalSplittingSets[0].IsEmpty())
}

func TestRunSkipsExpensiveEnumeratorsWhenRequested(t *testing.T) {
	f := fbas.New()
	mustAddNode(t, f, "A", fbas.QuorumSet{Threshold: 2, Validators: []fbas.NodeId{0, 1, 2}})
	mustAddNode(t, f, "B", fbas.QuorumSet{Threshold: 2, Validators: []fbas.NodeId{0, 1, 2}})
	mustAddNode(t, f, "C", fbas.QuorumSet{Threshold: 2, Validators: []fbas.NodeId{0, 1, 2}})

	result := Run(f, Options{SkipBlockingSets: true, SkipSplittingSets: true})
	require.Nil(t, result.MinimalBlockingSets)
	require.Nil(t, result.MinimalSplittingSets)
	require.NotEmpty(t, result.MinimalQuorums)
}
