package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/fulmenhq/vidlist/internal/generator"
	"github.com/fulmenhq/vidlist/pkg/catalog"
	"github.com/fulmenhq/vidlist/pkg/config"
	"github.com/fulmenhq/vidlist/pkg/exitcode"
	"github.com/fulmenhq/vidlist/pkg/splice"
)

func TestInitializeLogger(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error", "invalid"} {
		cmd := &cobra.Command{}
		cmd.Flags().String("log-level", level, "")
		cmd.Flags().Bool("json", false, "")
		cmd.Flags().Bool("no-color", true, "")
		cmd.Flags().Bool("no-op", false, "")

		// This should not panic
		initializeLogger(cmd)
	}
}

func TestRootCmd_Help(t *testing.T) {
	out, err := execRoot(t, []string{"--help"})
	assert.NoError(t, err)
	assert.Contains(t, out, "vidlist")
	assert.Contains(t, out, "generate")
	assert.Contains(t, out, "--no-op")
}

func TestRootCmd_VersionFlag(t *testing.T) {
	out, err := execRoot(t, []string{"--version"})
	assert.NoError(t, err)
	assert.Contains(t, out, "vidlist ")
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitcode.Success},
		{"stale", fmt.Errorf("%w: script.js", generator.ErrStale), exitcode.ValidationError},
		{"config", fmt.Errorf("%w: bad", config.ErrInvalid), exitcode.ConfigError},
		{"markers", fmt.Errorf("script.js: %w", splice.ErrMarkersNotFound), exitcode.ConfigError},
		{"not text", splice.ErrNotText, exitcode.ConfigError},
		{"root missing", fmt.Errorf("%w: video root x", catalog.ErrNotFound), exitcode.FileSystemError},
		{"script missing", fmt.Errorf("reading script.js: %w", fs.ErrNotExist), exitcode.FileSystemError},
		{"other", errors.New("boom"), exitcode.GeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}
