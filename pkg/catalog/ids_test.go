package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/vidlist/pkg/ignore"
)

func TestReadIDs(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{"first column only", "vidA,ignored\n\nvidB", []string{"vidA", "vidB"}},
		{"whitespace trimmed", "  vidA.mp4 , x\n\t\nvidB.mp4\n", []string{"vidA.mp4", "vidB.mp4"}},
		{"CRLF lines", "vidA,1\r\nvidB,2\r\n", []string{"vidA", "vidB"}},
		{"duplicates kept in order", "b\na\nb\n", []string{"b", "a", "b"}},
		{"empty file", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := touch(t, t.TempDir(), "ids.csv", tt.content)
			ids, err := ReadIDs(p)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestReadIDsMissing(t *testing.T) {
	_, err := ReadIDs(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDiscoverIDs(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "modelB/zeta.mp4", "")
	touch(t, root, "modelA/alpha.mp4", "")
	touch(t, root, "modelA/nested/deep/beta.mp4", "")
	touch(t, root, "modelB/alpha.mp4", "") // same name in another model
	touch(t, root, "modelA/notes.txt", "")
	touch(t, root, "modelA/clip.MP4", "") // extension match is case-sensitive
	require.NoError(t, os.MkdirAll(filepath.Join(root, "modelC", "folder.mp4"), 0o755))

	ids, err := DiscoverIDs(root, ".mp4", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha.mp4", "beta.mp4", "zeta.mp4"}, ids)
}

func TestDiscoverIDsIgnored(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "modelA/keep.mp4", "")
	touch(t, root, "modelA/drafts/wip.mp4", "")
	touch(t, root, "modelB/skip.mp4", "")
	touch(t, root, ignore.FileName, "drafts/\n")

	m, err := ignore.NewMatcher(root, []string{"modelB/"})
	require.NoError(t, err)

	ids, err := DiscoverIDs(root, ".mp4", m)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.mp4"}, ids)
}

func TestDiscoverIDsOtherExtension(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "m/a.webm", "")
	touch(t, root, "m/b.mp4", "")

	ids, err := DiscoverIDs(root, ".webm", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.webm"}, ids)
}

func TestDiscoverIDsMissingRoot(t *testing.T) {
	_, err := DiscoverIDs(filepath.Join(t.TempDir(), "nope"), ".mp4", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	file := touch(t, t.TempDir(), "plain.txt", "")
	_, err = DiscoverIDs(file, ".mp4", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStem(t *testing.T) {
	tests := map[string]string{
		"clip.mp4":       "clip",
		"clip.final.mp4": "clip.final",
		"noext":          "noext",
		".mp4":           ".mp4",
		"sub/clip.mp4":   "clip",
	}
	for in, want := range tests {
		assert.Equal(t, want, Stem(in), "Stem(%q)", in)
	}
}
