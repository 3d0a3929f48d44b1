package fbas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Rank alternates between n0 and n1 on every run (n1 and n2 both feed n0,
// n0 feeds n1); after the even number of runs RankNodes performs the scores
// are n0=1/3, n1=2/3, n2=0.
func TestSortByRankOrdersByDescendingRankScore(t *testing.T) {
	f := buildFBAS(t, map[string]QuorumSet{
		"n0": {Threshold: 1, Validators: []NodeId{1}},
		"n1": {Threshold: 1, Validators: []NodeId{0}},
		"n2": {Threshold: 1, Validators: []NodeId{0}},
	}, []string{"n0", "n1", "n2"})

	sorted := SortByRank([]NodeId{0, 1, 2}, f)
	require.Equal(t, []NodeId{1, 0, 2}, sorted)
}

func TestSortByScoreBreaksTiesByAscendingNodeId(t *testing.T) {
	scores := []RankScore{1, 1, 1}
	sorted := SortByScore([]NodeId{2, 0, 1}, scores)
	require.Equal(t, []NodeId{0, 1, 2}, sorted)
}

func TestRankNodesEmptySetReturnsZeroes(t *testing.T) {
	f := buildFBAS(t, map[string]QuorumSet{
		"n0": {Threshold: 1, Validators: []NodeId{0}},
	}, []string{"n0"})

	scores := RankNodes(NodeIdSet{}, f)
	require.Equal(t, []RankScore{0}, scores)
}
