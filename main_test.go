package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htmlcanvas/scene"
)

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func readTrace(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc), "trace is valid JSON: %s", data)
	return doc
}

func TestRunFailedPlaybackClosesTrace(t *testing.T) {
	scenePath := writeScene(t, "width = 8\nheight = 8\n[[op]]\nkind = \"clip\"\nwidth = 4\nheight = 4\n")
	tracePath := filepath.Join(t.TempDir(), "trace.json")

	err := run(scenePath, "", "", tracePath, false, false)
	assert.ErrorIs(t, err, scene.ErrUnbalancedClip)

	doc := readTrace(t, tracePath)
	assert.NotEmpty(t, doc["traceEvents"])
}

func TestRunWritesPNGAndTrace(t *testing.T) {
	scenePath := writeScene(t, "width = 8\nheight = 8\nbackground = \"red\"\n")
	dir := t.TempDir()
	out := filepath.Join(dir, "out.png")
	tracePath := filepath.Join(dir, "trace.json")

	require.NoError(t, run(scenePath, "", out, tracePath, false, false))
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	readTrace(t, tracePath)
}
