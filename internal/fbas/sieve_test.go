package fbas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemoveNonMinimalKeepsOnlySmallestSubsets(t *testing.T) {
	sets := []NodeIdSet{
		NewNodeIdSetFromSlice([]NodeId{0, 1}),
		NewNodeIdSetFromSlice([]NodeId{0, 1, 2}),
		NewNodeIdSetFromSlice([]NodeId{3}),
		NewNodeIdSetFromSlice([]NodeId{3, 4}),
	}
	kept := RemoveNonMinimal(sets)

	require.Len(t, kept, 2)
	var slices [][]NodeId
	for _, s := range kept {
		slices = append(slices, s.Slice())
	}
	require.Contains(t, slices, []NodeId{0, 1})
	require.Contains(t, slices, []NodeId{3})
}

func TestRemoveNonMinimalDedupesIdenticalSets(t *testing.T) {
	sets := []NodeIdSet{
		NewNodeIdSetFromSlice([]NodeId{0, 1}),
		NewNodeIdSetFromSlice([]NodeId{0, 1}),
	}
	kept := RemoveNonMinimal(sets)
	require.Len(t, kept, 1)
}

func TestIsMinimalGiven(t *testing.T) {
	existing := []NodeIdSet{NewNodeIdSetFromSlice([]NodeId{0})}
	require.False(t, IsMinimalGiven(NewNodeIdSetFromSlice([]NodeId{0, 1}), existing))
	require.True(t, IsMinimalGiven(NewNodeIdSetFromSlice([]NodeId{2}), existing))
}
