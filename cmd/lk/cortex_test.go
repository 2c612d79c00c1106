package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sonnes/lekhak/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testdataFixture = "../../reader/cortex/testdata/sample_session.json"

// setupSourceDir creates a session source dir containing a copy of the Cortex
// fixture plus a non-session file that must be skipped.
func setupSourceDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	data, err := os.ReadFile(testdataFixture)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), data, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte(`{"foo": 1}`), 0o644))

	return dir
}

func TestCortexCmd(t *testing.T) {
	source := setupSourceDir(t)
	output := filepath.Join(t.TempDir(), "site")

	cmd := cortexCmd()
	err := cmd.Run(context.Background(), []string{"cortex", "--source", source, "--output", output})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(output, "index.html"))
	assert.FileExists(t, filepath.Join(output, "page-001.html"))
	assert.NoFileExists(t, filepath.Join(output, "page-002.html"), "non-session file should be skipped")

	data, err := os.ReadFile(filepath.Join(output, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Investigate flaky portfolio_role test")

	m, err := manifest.ReadFile(filepath.Join(output, "manifest.json"))
	require.NoError(t, err)
	require.Len(t, m.Entries, 1)
	assert.Equal(t, "page-001.html", m.Entries[0].Href)
}

func TestCortexCmdMissingSource(t *testing.T) {
	output := t.TempDir()

	cmd := cortexCmd()
	err := cmd.Run(context.Background(), []string{
		"cortex",
		"--source", filepath.Join(t.TempDir(), "does-not-exist"),
		"--output", output,
	})
	assert.Error(t, err)
}

func TestCortexCmdLimit(t *testing.T) {
	source := setupSourceDir(t)

	// Second valid session under a different name.
	data, err := os.ReadFile(testdataFixture)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(source, "zz_session.json"), data, 0o644))

	output := filepath.Join(t.TempDir(), "site")
	cmd := cortexCmd()
	err = cmd.Run(context.Background(), []string{
		"cortex", "--source", source, "--output", output, "--limit", "1",
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(output, "page-001.html"))
	assert.NoFileExists(t, filepath.Join(output, "page-002.html"))
}

func TestRendererRegistry(t *testing.T) {
	a := newApp()

	for _, name := range []string{"terminal", "html", "json"} {
		r, err := a.renderer(name)
		require.NoError(t, err, "renderer %q", name)
		assert.NotNil(t, r)
	}

	_, err := a.renderer("markdown")
	assert.Error(t, err)
}
