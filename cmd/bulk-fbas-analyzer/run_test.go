package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeNodesFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

const symmetricThreeNodeJSON = `[
	{"publicKey": "A", "quorumSet": {"threshold": 2, "validators": ["A", "B", "C"]}},
	{"publicKey": "B", "quorumSet": {"threshold": 2, "validators": ["A", "B", "C"]}},
	{"publicKey": "C", "quorumSet": {"threshold": 2, "validators": ["A", "B", "C"]}}
]`

func TestRunBulkWritesOneCSVRowPerInput(t *testing.T) {
	dir := t.TempDir()
	writeNodesFile(t, dir, "x_nodes.json", symmetricThreeNodeJSON)
	writeNodesFile(t, dir, "y_nodes.json", symmetricThreeNodeJSON)

	inputs, err := buildInputs([]string{
		filepath.Join(dir, "x_nodes.json"),
		filepath.Join(dir, "y_nodes.json"),
	}, "stellarbeat")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runBulk(context.Background(), inputs, 2, nil, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3) // header + 2 rows
	require.Contains(t, lines[0], "has_quorum_intersection")
	for _, line := range lines[1:] {
		require.Contains(t, line, "true") // all quorums intersect in the symmetric FBAS
	}
}

func TestRunBulkPropagatesPerFileErrors(t *testing.T) {
	dir := t.TempDir()
	writeNodesFile(t, dir, "bad_nodes.json", "not json")

	inputs, err := buildInputs([]string{filepath.Join(dir, "bad_nodes.json")}, "stellarbeat")
	require.NoError(t, err)

	var out bytes.Buffer
	err = runBulk(context.Background(), inputs, 1, nil, &out)
	require.Error(t, err)
}
