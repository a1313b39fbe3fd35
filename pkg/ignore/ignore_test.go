package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatcher(t *testing.T) {
	root := t.TempDir()
	content := `# drafts are never published
drafts/
*.tmp.mp4
!keep.tmp.mp4
`
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(content), 0o644))

	m, err := NewMatcher(root, []string{"modelZ/", "  "})
	require.NoError(t, err)
	// 2 defaults + 3 file patterns + 1 extra
	assert.Equal(t, 6, m.Patterns())

	tests := []struct {
		name     string
		path     string
		isDir    bool
		expected bool
	}{
		{"regular video", "modelA/clip.mp4", false, false},
		{"file under ignored dir", "modelA/drafts/clip.mp4", false, true},
		{"ignored dir itself", "drafts", true, true},
		{"glob match", "modelA/clip.tmp.mp4", false, true},
		{"negated pattern", "modelA/keep.tmp.mp4", false, false},
		{"extra pattern", "modelZ/clip.mp4", false, true},
		{"default git dir", ".git/objects/ab.mp4", false, true},
		{"default node_modules", "node_modules/x/y.mp4", false, true},
		{"empty path", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.IsIgnored(tt.path, tt.isDir))
		})
	}
}

func TestNewMatcherWithoutFile(t *testing.T) {
	m, err := NewMatcher(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultPatterns), m.Patterns())
	assert.False(t, m.IsIgnored("modelA/clip.mp4", false))
}

func TestNilMatcher(t *testing.T) {
	var m *Matcher
	assert.False(t, m.IsIgnored("anything.mp4", false))
	assert.Equal(t, 0, m.Patterns())
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", []string{}},
		{".", []string{}},
		{"/a/b", []string{"a", "b"}},
		{"a//b/./c", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, splitPath(tt.input), "splitPath(%q)", tt.input)
	}
}
