// Package ignore provides gitignore-style filtering of the demo tree using go-git
package ignore

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// FileName is the per-root ignore file read by NewMatcher.
const FileName = ".vidlistignore"

// DefaultPatterns are always applied, ahead of any user patterns.
var DefaultPatterns = []string{".git/**", "node_modules/**"}

// Matcher provides gitignore-based file filtering relative to a root directory
type Matcher struct {
	matcher  gitignore.Matcher
	patterns int
}

// NewMatcher creates a matcher with layered patterns:
// 1. DefaultPatterns
// 2. <root>/.vidlistignore
// 3. extra (usually the configured exclude list)
//
// The repository .gitignore is not consulted.
func NewMatcher(root string, extra []string) (*Matcher, error) {
	var all []gitignore.Pattern
	for _, p := range DefaultPatterns {
		all = append(all, gitignore.ParsePattern(p, nil))
	}

	filePatterns, err := readIgnoreFile(osfs.New(root), FileName)
	if err != nil {
		return nil, err
	}
	for _, p := range filePatterns {
		all = append(all, gitignore.ParsePattern(p, nil))
	}

	for _, p := range extra {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		all = append(all, gitignore.ParsePattern(p, nil))
	}

	return &Matcher{matcher: gitignore.NewMatcher(all), patterns: len(all)}, nil
}

// readIgnoreFile reads patterns from an ignore file; a missing file yields no patterns
func readIgnoreFile(fs billy.Filesystem, name string) ([]string, error) {
	f, err := fs.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}

// Patterns reports how many patterns are active, defaults included.
func (m *Matcher) Patterns() int {
	if m == nil {
		return 0
	}
	return m.patterns
}

// IsIgnored checks if a root-relative path should be skipped.
// A nil Matcher ignores nothing.
func (m *Matcher) IsIgnored(rel string, isDir bool) bool {
	if m == nil {
		return false
	}
	parts := splitPath(filepath.ToSlash(rel))
	if len(parts) == 0 {
		return false
	}
	return m.matcher.Match(parts, isDir)
}

// splitPath converts a slash-separated path into components for go-git matching
func splitPath(path string) []string {
	if path == "" || path == "." {
		return []string{}
	}
	path = strings.TrimPrefix(path, "/")

	parts := strings.Split(path, "/")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	return result
}
