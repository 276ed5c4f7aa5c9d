// Package main tests for the tinkerpop CLI application
package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput captures stdout output during test execution
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestMain_VersionFlag(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		commit    string
		buildTime string
		want      string
	}{
		{
			name:      "version with dev defaults",
			version:   "dev",
			commit:    "unknown",
			buildTime: "unknown",
			want:      "tinkerpop dev (commit: unknown, built: unknown)\n",
		},
		{
			name:      "version with custom values",
			version:   "v1.0.0",
			commit:    "abc123",
			buildTime: "2026-01-01",
			want:      "tinkerpop v1.0.0 (commit: abc123, built: 2026-01-01)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldVersion, oldCommit, oldBuildTime := Version, Commit, BuildTime
			oldArgs := os.Args
			Version, Commit, BuildTime = tt.version, tt.commit, tt.buildTime
			os.Args = []string{"tinkerpop", "version"}

			output := captureOutput(main)

			Version, Commit, BuildTime = oldVersion, oldCommit, oldBuildTime
			os.Args = oldArgs

			assert.Equal(t, tt.want, output)
		})
	}
}

func TestMain_DefaultOutput(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"tinkerpop"}

	require.NotPanics(t, func() {
		output := captureOutput(main)
		assert.Contains(t, output, "graph traversal machine")
	})

	os.Args = oldArgs
}

func TestOutputFormatting(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"tinkerpop", "version"}

	output := captureOutput(main)
	os.Args = oldArgs

	assert.True(t, strings.HasPrefix(output, "tinkerpop "))
	assert.Contains(t, output, "commit:")
	assert.Contains(t, output, "built:")
}
