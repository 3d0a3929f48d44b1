package fbas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprintStableUnderRegistrationOrder(t *testing.T) {
	a := buildFBAS(t, map[string]QuorumSet{
		"n0": {Threshold: 2, Validators: []NodeId{0, 1}},
		"n1": {Threshold: 2, Validators: []NodeId{0, 1}},
	}, []string{"n0", "n1"})

	b := buildFBAS(t, map[string]QuorumSet{
		"n1": {Threshold: 2, Validators: []NodeId{0, 1}},
		"n0": {Threshold: 2, Validators: []NodeId{0, 1}},
	}, []string{"n1", "n0"})

	require.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintDiffersOnDifferentTopology(t *testing.T) {
	a := buildFBAS(t, map[string]QuorumSet{
		"n0": {Threshold: 1, Validators: []NodeId{0}},
	}, []string{"n0"})
	b := buildFBAS(t, map[string]QuorumSet{
		"n0": {Threshold: 1, Validators: []NodeId{0}},
		"n1": {Threshold: 1, Validators: []NodeId{1}},
	}, []string{"n0", "n1"})

	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
