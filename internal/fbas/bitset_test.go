package fbas

import "testing"

import "github.com/stretchr/testify/require"

func TestNodeIdSetInsertContainsRemove(t *testing.T) {
	var s NodeIdSet
	require.True(t, s.IsEmpty())

	s.Insert(3)
	s.Insert(70)
	require.True(t, s.Contains(3))
	require.True(t, s.Contains(70))
	require.False(t, s.Contains(4))
	require.Equal(t, 2, s.Len())

	s.Remove(3)
	require.False(t, s.Contains(3))
	require.Equal(t, 1, s.Len())
}

func TestNodeIdSetUnionIntersectSubtract(t *testing.T) {
	a := NewNodeIdSetFromSlice([]NodeId{0, 1, 2})
	b := NewNodeIdSetFromSlice([]NodeId{2, 3, 70})

	union := a.Clone()
	union.Union(b)
	require.Equal(t, []NodeId{0, 1, 2, 3, 70}, union.Slice())

	inter := Intersection(a, b)
	require.Equal(t, []NodeId{2}, inter.Slice())

	diff := a.Clone()
	diff.Subtract(b)
	require.Equal(t, []NodeId{0, 1}, diff.Slice())
}

func TestNodeIdSetSubsetDisjointEqual(t *testing.T) {
	a := NewNodeIdSetFromSlice([]NodeId{0, 1})
	b := NewNodeIdSetFromSlice([]NodeId{0, 1, 2})
	c := NewNodeIdSetFromSlice([]NodeId{5, 6})

	require.True(t, IsSubset(a, b))
	require.False(t, IsSubset(b, a))
	require.True(t, IsDisjoint(a, c))
	require.False(t, IsDisjoint(a, b))
	require.True(t, Equal(a, NewNodeIdSetFromSlice([]NodeId{1, 0})))
	require.False(t, Equal(a, b))
}

func TestNodeIdSetSliceIsAscending(t *testing.T) {
	s := NewNodeIdSetFromSlice([]NodeId{130, 2, 64, 0, 65})
	require.Equal(t, []NodeId{0, 2, 64, 65, 130}, s.Slice())
}

func TestNodeIdSetBinaryRoundTrip(t *testing.T) {
	s := NewNodeIdSetFromSlice([]NodeId{0, 64, 130})

	data, err := s.MarshalBinary()
	require.NoError(t, err)

	var out NodeIdSet
	require.NoError(t, out.UnmarshalBinary(data))
	require.True(t, Equal(s, out))
}
