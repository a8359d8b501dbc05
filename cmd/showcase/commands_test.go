package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalogYAML = `
name: test
version: "1.0"
sections:
  - category: forms
    entries:
      - name: Button
        display_name: Button
        description: Clickable action trigger
        status: COMPLETE
        variants:
          - name: outlined
            props: {variant: outlined}
      - name: TextField
        display_name: Text Field
        description: Single-line text input
        status: NOT_STARTED
  - category: feedback
    entries:
      - name: Alert
        description: Important message banner
        status: IN_PROGRESS
`

func writeCatalogFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogYAML), 0644))
	return path
}

// runCLI executes the root command against the test catalog with an empty
// config file and a private state directory.
func runCLI(t *testing.T, stateDir string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	full := append([]string{
		"--config", writeConfig(t, ""),
		"--catalog", writeCatalogFile(t),
		"--state-dir", stateDir,
		"--log-level", "error",
	}, args...)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(full)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_List(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Button")
	assert.Contains(t, out, "Text Field")
	assert.Contains(t, out, "Alert")
}

func TestCLI_ListFilters(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "list", "--category", "feedback")
	require.NoError(t, err)
	assert.Contains(t, out, "Alert")
	assert.NotContains(t, out, "Button")

	out, err = runCLI(t, t.TempDir(), "list", "--status", "not-started")
	require.NoError(t, err)
	assert.Contains(t, out, "Text Field")
	assert.NotContains(t, out, "Alert")
}

func TestCLI_ListUnknownCategory(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "list", "--category", "charts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown category "charts"`)
}

func TestCLI_Search(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "search", "banner")
	require.NoError(t, err)
	assert.Contains(t, out, "Alert")
	assert.Contains(t, out, "description")
	assert.NotContains(t, out, "Button")

	out, err = runCLI(t, t.TempDir(), "search", "carousel")
	require.NoError(t, err)
	assert.Contains(t, out, `no entries match "carousel"`)
}

func TestCLI_Show(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "show", "Button")
	require.NoError(t, err)
	assert.Contains(t, out, "Button")
	assert.Contains(t, out, "outlined")

	_, err = runCLI(t, t.TempDir(), "show", "Button", "--category", "feedback")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `entry "Button" not found`)
}

func TestCLI_Progress(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "progress")
	require.NoError(t, err)
	assert.Contains(t, out, "forms")
	assert.Contains(t, out, "feedback")
	assert.Contains(t, out, "1/3 complete")
	assert.Contains(t, out, "33%")
}

func TestCLI_ThemePersists(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "theme")
	require.NoError(t, err)
	assert.Equal(t, "system\n", out)

	out, err = runCLI(t, dir, "theme", "dark")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	out, err = runCLI(t, dir, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	_, err = runCLI(t, dir, "theme", "sepia")
	assert.Error(t, err)
}

func TestCLI_Version(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "showcase "+version+"\n", out)
}

func TestCLI_BadCatalog(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--config", writeConfig(t, ""),
		"--catalog", filepath.Join(t.TempDir(), "missing.yaml"),
		"list",
	})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load catalog")
}
