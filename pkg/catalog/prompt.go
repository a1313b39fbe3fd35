package catalog

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/fulmenhq/vidlist/pkg/format/finalizer"
	"github.com/fulmenhq/vidlist/pkg/logger"
	"github.com/fulmenhq/vidlist/pkg/safeio"
)

// Companion asset names for a video stem.
const (
	promptImageSuffix = "_frame0.jpg"
	promptTextSuffix  = ".txt"
)

var errUndecodable = errors.New("prompt text is not valid UTF-8 or UTF-16")

// PromptAsset holds the prompt files matched to one video. Paths use forward
// slashes and are rooted at the asset root as given.
type PromptAsset struct {
	ImagePath   string
	TextPath    string
	TextContent string
}

// Found reports whether any prompt file was matched.
func (a PromptAsset) Found() bool {
	return a.ImagePath != "" || a.TextPath != ""
}

// FindPromptAssets looks for {stem}_frame0.jpg and {stem}.txt in the immediate
// subdirectories of assetRoot, visited in name order. The first subdirectory
// holding either file wins, even when only one of the two is present there.
// A missing asset root yields an empty PromptAsset.
func FindPromptAssets(video, assetRoot string) PromptAsset {
	entries, err := os.ReadDir(assetRoot)
	if err != nil {
		return PromptAsset{}
	}

	stem := Stem(video)
	for _, e := range entries {
		sub := filepath.Join(assetRoot, e.Name())
		if !isDir(sub, e) {
			continue
		}

		var asset PromptAsset
		img := filepath.Join(sub, stem+promptImageSuffix)
		if exists(img) {
			asset.ImagePath = filepath.ToSlash(img)
		}
		txt := filepath.Join(sub, stem+promptTextSuffix)
		if exists(txt) {
			asset.TextPath = filepath.ToSlash(txt)
			asset.TextContent = readPromptText(assetRoot, txt)
		}
		if asset.Found() {
			return asset
		}
	}
	return PromptAsset{}
}

// readPromptText returns the decoded text, or "" when it cannot be read or decoded.
func readPromptText(assetRoot, p string) string {
	raw, err := safeio.ReadFileContained(assetRoot, p)
	if err == nil {
		var text string
		if text, err = decodeText(raw); err == nil {
			return text
		}
	}
	logger.Debug("Prompt text unreadable, keeping path only", logger.String("file", filepath.ToSlash(p)), logger.Err(err))
	return ""
}

// decodeText accepts UTF-8 (with or without BOM) and BOM-marked UTF-16.
func decodeText(raw []byte) (string, error) {
	if !finalizer.HasBOM(raw) {
		if !utf8.Valid(raw) {
			return "", errUndecodable
		}
		return string(raw), nil
	}

	enc, size, _ := finalizer.GetBOMInfo(raw)
	switch enc {
	case "UTF-8":
		if !utf8.Valid(raw[size:]) {
			return "", errUndecodable
		}
		return string(raw[size:]), nil
	case "UTF-16LE", "UTF-16BE":
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
		if err != nil {
			return "", fmt.Errorf("%w: %v", errUndecodable, err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("%w: unsupported encoding %s", errUndecodable, enc)
	}
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// Stem returns the identifier's file name without its final extension.
// Dot-files such as ".mp4" are returned unchanged.
func Stem(id string) string {
	base := path.Base(filepath.ToSlash(id))
	ext := path.Ext(base)
	if ext == base {
		return base
	}
	return base[:len(base)-len(ext)]
}
