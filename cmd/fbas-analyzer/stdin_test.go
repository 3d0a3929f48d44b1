package main

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// withStdin temporarily replaces os.Stdin with a pipe fed with input, runs
// fn, and restores the original os.Stdin afterwards. readFBAS reads from
// os.Stdin directly (matching the CLI's real entry point), so exercising it
// end to end needs this rather than cobra's InOrStdin.
func withStdin(t *testing.T, input string, fn func()) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	original := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = original }()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = io.WriteString(w, input)
		_ = w.Close()
	}()

	fn()
	<-done
}
