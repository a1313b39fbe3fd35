package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// execRoot runs a fresh command tree with args and returns everything written to stdout/stderr.
func execRoot(t *testing.T, args []string) (string, error) {
	t.Helper()
	root := newRootCommand()
	registerSubcommands(root)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	// Reduce log noise to capture clean command output
	full := append([]string{"--log-level", "error"}, args...)
	root.SetArgs(full)
	err := root.Execute()
	return buf.String(), err
}

const fixtureScript = `const videoList = [
  // === VIDEO LIST START (auto-generated) ===
  // === VIDEO LIST END ===
];
`

type project struct {
	dir    string
	root   string
	script string
	assets string
}

// args returns the pipeline flags pointing at the project.
func (p project) args(extra ...string) []string {
	return append([]string{"--root", p.root, "--script", p.script, "--asset-root", p.assets, "--public-prefix", "demo_all"}, extra...)
}

func newProject(t *testing.T) project {
	t.Helper()
	dir := t.TempDir()
	p := project{
		dir:    dir,
		root:   filepath.Join(dir, "demo_all"),
		script: filepath.Join(dir, "script.js"),
		assets: filepath.Join(dir, "assets"),
	}
	for _, rel := range []string{"m1/a.mp4", "m2/a.mp4", "m2/b.mp4"} {
		writeTestFile(t, filepath.Join(p.root, filepath.FromSlash(rel)), "")
	}
	writeTestFile(t, filepath.Join(p.assets, "run1", "a_frame0.jpg"), "")
	writeTestFile(t, p.script, fixtureScript)
	return p
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
