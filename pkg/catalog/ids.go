package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fulmenhq/vidlist/pkg/format/finalizer"
	"github.com/fulmenhq/vidlist/pkg/ignore"
	"github.com/fulmenhq/vidlist/pkg/logger"
)

// ReadIDs reads video identifiers from a list file: the first comma-separated
// field of every non-blank line, trimmed. File order is kept and duplicates are not removed.
func ReadIDs(listPath string) ([]string, error) {
	data, err := os.ReadFile(listPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: ID file %s", ErrNotFound, listPath)
		}
		return nil, fmt.Errorf("reading ID file %s: %w", listPath, err)
	}

	normalized, _, _ := finalizer.NormalizeLineEndings(data, "\n")

	var ids []string
	for _, line := range strings.Split(string(normalized), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		field, _, _ := strings.Cut(line, ",")
		ids = append(ids, strings.TrimSpace(field))
	}
	logger.Debug("Read video IDs from list file", logger.String("file", listPath), logger.Int("count", len(ids)))
	return ids, nil
}

// DiscoverIDs walks root recursively for files ending in ext and returns their
// base names, deduplicated and sorted. Paths rejected by m are skipped; m may be nil.
func DiscoverIDs(root, ext string, m *ignore.Matcher) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: video root %s", ErrNotFound, root)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: video root %s is not a directory", ErrNotFound, root)
	}

	seen := make(map[string]struct{})
	skipped := 0
	pattern := "**/*" + ext
	err = doublestar.GlobWalk(os.DirFS(root), pattern, func(p string, d fs.DirEntry) error {
		if m.IsIgnored(p, false) {
			skipped++
			return nil
		}
		seen[path.Base(p)] = struct{}{}
		return nil
	}, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("scanning %s for %s files: %w", root, ext, err)
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	logger.Debug("Discovered video IDs",
		logger.String("root", root),
		logger.String("pattern", pattern),
		logger.Int("count", len(ids)),
		logger.Int("ignored", skipped))
	return ids, nil
}
