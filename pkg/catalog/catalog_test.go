package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/vidlist/pkg/logger"
)

// touch creates root/rel (and parents) with the given content.
func touch(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}


// captureLogs routes the default logger into a JSON buffer at the given level.
func captureLogs(t *testing.T, level logger.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, logger.Initialize(logger.Config{Level: level, JSON: true, Component: "vidlist"}))
	logger.SetOutput(&buf)
	t.Cleanup(func() {
		_ = logger.Initialize(logger.Config{Level: logger.InfoLevel, Component: "vidlist"})
	})
	return &buf
}
