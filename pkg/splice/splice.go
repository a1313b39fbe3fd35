// Package splice rewrites the auto-generated region between two marker
// comments of a text document, leaving every other byte in place.
package splice

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fulmenhq/vidlist/pkg/format/finalizer"
	"github.com/fulmenhq/vidlist/pkg/logger"
	"github.com/fulmenhq/vidlist/pkg/safeio"
)

var (
	// ErrMarkersNotFound is returned when either marker is missing or the end
	// marker does not follow the start marker.
	ErrMarkersNotFound = errors.New("video list markers not found")
	// ErrNotText is returned for binary or non-UTF-8 documents.
	ErrNotText = errors.New("target is not a UTF-8 text file")
)

// Markers are the literal comment lines delimiting the generated region.
type Markers struct {
	Start string
	End   string
}

// Splice returns content with the region between m.Start and m.End replaced
// by lines. When lines is empty the single placeholder line is written instead.
//
// Whatever precedes the end marker on its own line is rewritten unchanged.
// When that prefix is empty, or both markers share a line, the start
// marker's indentation is used instead. Line endings follow the document's dominant style and a
// leading UTF-8 BOM survives.
func Splice(content []byte, m Markers, lines []string, placeholder string) ([]byte, error) {
	if m.Start == "" || m.End == "" {
		return nil, fmt.Errorf("%w: empty marker", ErrMarkersNotFound)
	}

	bom, body := finalizer.SplitUTF8BOM(content)
	if !finalizer.IsTextFile(body) {
		return nil, ErrNotText
	}
	doc := string(body)

	start := strings.Index(doc, m.Start)
	if start < 0 {
		return nil, fmt.Errorf("%w: missing %q", ErrMarkersNotFound, m.Start)
	}
	end := strings.Index(doc, m.End)
	if end < 0 {
		return nil, fmt.Errorf("%w: missing %q", ErrMarkersNotFound, m.End)
	}
	startEnd := start + len(m.Start)
	if end < startEnd {
		return nil, fmt.Errorf("%w: %q must follow %q", ErrMarkersNotFound, m.End, m.Start)
	}

	// Text ahead of the end marker on its own line is kept verbatim.
	indent := ""
	if ls := lineStart(doc, end); ls >= startEnd {
		indent = doc[ls:end]
	}
	if indent == "" {
		indent = leadingSpace(doc[lineStart(doc, start):start])
	}

	if len(lines) == 0 {
		lines = []string{placeholder}
	}
	le := finalizer.DetectLineEnding(doc)

	var out bytes.Buffer
	out.Grow(len(content) + 64*len(lines))
	out.Write(bom)
	out.WriteString(doc[:startEnd])
	out.WriteString(le)
	out.WriteString(strings.Join(lines, le))
	out.WriteString(le)
	out.WriteString(indent)
	out.WriteString(doc[end:])
	return out.Bytes(), nil
}

// lineStart returns the offset of the first byte of the line containing i.
func lineStart(s string, i int) int {
	return strings.LastIndexByte(s[:i], '\n') + 1
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// UpdateFile splices lines into the document at path and replaces it
// atomically when the result differs. With dryRun set nothing is written.
// It reports whether the content changed. On error the file is untouched.
func UpdateFile(path string, m Markers, lines []string, placeholder string, dryRun bool) (bool, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- target path comes from user configuration
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	updated, err := Splice(content, m, lines, placeholder)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}

	changed := !bytes.Equal(content, updated)
	switch {
	case !changed:
		logger.Debug("Video list already up to date", logger.String("file", path))
	case dryRun:
		logger.Info("Dry run, video list not written", logger.String("file", path), logger.Int("lines", len(lines)))
	default:
		if err := safeio.WriteFileAtomic(path, updated); err != nil {
			return false, fmt.Errorf("writing %s: %w", path, err)
		}
		logger.Debug("Video list updated", logger.String("file", path), logger.Int("bytes", len(updated)))
	}
	return changed, nil
}
