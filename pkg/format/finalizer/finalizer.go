/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package finalizer

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

var (
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// NormalizeLineEndings converts all line endings to the specified style
func NormalizeLineEndings(input []byte, targetEnding string) (out []byte, changed bool, err error) {
	if len(input) == 0 {
		return input, false, nil
	}

	// Binary content is left alone
	if bytes.Contains(input, []byte{0}) {
		return input, false, nil
	}

	content := string(input)
	originalContent := content

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	if targetEnding == "\r\n" {
		content = strings.ReplaceAll(content, "\n", "\r\n")
	}

	if content != originalContent {
		changed = true
	}

	return []byte(content), changed, nil
}

// DetectLineEnding returns the dominant line ending of content, "\r\n" or "\n".
// Content without any line break reports "\n".
func DetectLineEnding(content string) string {
	crlfCount := strings.Count(content, "\r\n")
	lfCount := strings.Count(content, "\n") - crlfCount

	if crlfCount > lfCount {
		return "\r\n"
	}
	return "\n"
}

// GetBOMInfo returns information about detected BOM
func GetBOMInfo(input []byte) (encoding string, bomSize int, found bool) {
	switch {
	case bytes.HasPrefix(input, bomUTF32BE):
		return "UTF-32BE", 4, true
	case bytes.HasPrefix(input, bomUTF32LE):
		return "UTF-32LE", 4, true
	case bytes.HasPrefix(input, bomUTF8):
		return "UTF-8", 3, true
	case bytes.HasPrefix(input, bomUTF16BE):
		return "UTF-16BE", 2, true
	case bytes.HasPrefix(input, bomUTF16LE):
		return "UTF-16LE", 2, true
	}
	return "", 0, false
}

// HasBOM checks if the content starts with a known BOM
func HasBOM(content []byte) bool {
	_, _, found := GetBOMInfo(content)
	return found
}

// SplitUTF8BOM separates a leading UTF-8 BOM from the rest of the content.
// The returned bom is empty when none is present.
func SplitUTF8BOM(content []byte) (bom, rest []byte) {
	if bytes.HasPrefix(content, bomUTF8) {
		return content[:len(bomUTF8)], content[len(bomUTF8):]
	}
	return nil, content
}

// IsTextFile performs a heuristic check to determine if content is likely text
func IsTextFile(content []byte) bool {
	if len(content) == 0 {
		return true
	}

	// NUL bytes indicate binary
	if bytes.Contains(content, []byte{0}) {
		return false
	}

	return utf8.Valid(content)
}
