package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const threeNodeJSON = `[
	{
		"publicKey": "A",
		"quorumSet": {
			"threshold": 1,
			"validators": [],
			"innerQuorumSets": [
				{
					"threshold": 2,
					"validators": ["A", "B", "C"],
					"innerQuorumSets": []
				}
			]
		}
	},
	{
		"publicKey": "B",
		"quorumSet": {
			"threshold": 3,
			"validators": ["A", "B", "C"]
		}
	},
	{
		"publicKey": "C"
	}
]`

func TestFromReaderParsesNestedQuorumSets(t *testing.T) {
	f, err := FromReader(strings.NewReader(threeNodeJSON))
	require.NoError(t, err)
	require.Equal(t, 3, f.NumberOfNodes())

	idA, ok := f.GetNodeId("A")
	require.True(t, ok)
	require.Equal(t, 0, int(idA))

	qsA, _ := f.GetQuorumSet(idA)
	require.Equal(t, 1, qsA.Threshold)
	require.Empty(t, qsA.Validators)
	require.Len(t, qsA.InnerSets, 1)
	require.Equal(t, 2, qsA.InnerSets[0].Threshold)

	qsC, ok := f.GetQuorumSet(2)
	require.True(t, ok)
	require.Equal(t, 1, qsC.Threshold)
	require.Empty(t, qsC.Validators)
}

func TestFromReaderRegistersUnknownReferenceAsUnsatisfiable(t *testing.T) {
	input := `[
		{
			"publicKey": "A",
			"quorumSet": {"threshold": 2, "validators": ["A", "B", "GHOST"]}
		},
		{
			"publicKey": "B",
			"quorumSet": {"threshold": 1, "validators": ["A"]}
		}
	]`
	f, err := FromReader(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 3, f.NumberOfNodes())

	ghostID, ok := f.GetNodeId("GHOST")
	require.True(t, ok)
	require.Equal(t, 2, int(ghostID))

	ghostQS, _ := f.GetQuorumSet(ghostID)
	require.Equal(t, 1, ghostQS.Threshold)
	require.Empty(t, ghostQS.Validators)
	require.False(t, ghostQS.IsQuorumSlice(f.AllNodes()))
}

func TestFromReaderRejectsDuplicatePublicKeys(t *testing.T) {
	input := `[{"publicKey": "A"}, {"publicKey": "A"}]`
	_, err := FromReader(strings.NewReader(input))
	require.Error(t, err)
}

func TestFromReaderDefaultsMissingQuorumSetToUnsatisfiable(t *testing.T) {
	input := `[{"publicKey": "A"}]`
	f, err := FromReader(strings.NewReader(input))
	require.NoError(t, err)

	qs, ok := f.GetQuorumSet(0)
	require.True(t, ok)
	require.Equal(t, 1, qs.Threshold)
	require.Empty(t, qs.Validators)
}

func TestMarshalRoundTripsThroughFromReader(t *testing.T) {
	f, err := FromReader(strings.NewReader(threeNodeJSON))
	require.NoError(t, err)

	data, err := Marshal(f)
	require.NoError(t, err)

	recombined, err := FromBytes(data)
	require.NoError(t, err)
	require.Equal(t, f.NumberOfNodes(), recombined.NumberOfNodes())

	for _, pk := range []string{"A", "B", "C"} {
		origID, _ := f.GetNodeId(pk)
		newID, ok := recombined.GetNodeId(pk)
		require.True(t, ok)

		origQS, _ := f.GetQuorumSet(origID)
		newQS, _ := recombined.GetQuorumSet(newID)
		require.Equal(t, origQS.Threshold, newQS.Threshold)
	}
}

func TestMarshalRendersRegisteredUnknownReferenceByPublicKey(t *testing.T) {
	f, err := FromReader(strings.NewReader(`[{"publicKey": "A", "quorumSet": {"threshold": 1, "validators": ["GHOST"]}}]`))
	require.NoError(t, err)

	data, err := Marshal(f)
	require.NoError(t, err)
	require.Contains(t, string(data), "GHOST")
}
