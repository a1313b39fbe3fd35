package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindPromptAssetsFirstMatchWins(t *testing.T) {
	assets := t.TempDir()
	touch(t, assets, "b_set/clip_frame0.jpg", "")
	touch(t, assets, "b_set/clip.txt", "from b")
	touch(t, assets, "a_set/clip.txt", "from a")

	got := FindPromptAssets("clip.mp4", assets)
	assert.Equal(t, PromptAsset{
		TextPath:    filepath.ToSlash(filepath.Join(assets, "a_set", "clip.txt")),
		TextContent: "from a",
	}, got)
}

func TestFindPromptAssetsBothFiles(t *testing.T) {
	assets := t.TempDir()
	touch(t, assets, "set/clip_frame0.jpg", "jpeg")
	touch(t, assets, "set/clip.txt", "a ball rolls\n")
	touch(t, assets, "loose_clip.txt", "not in a subdirectory")

	got := FindPromptAssets("nested/clip.mp4", assets)
	assert.True(t, got.Found())
	assert.Equal(t, filepath.ToSlash(filepath.Join(assets, "set", "clip_frame0.jpg")), got.ImagePath)
	assert.Equal(t, filepath.ToSlash(filepath.Join(assets, "set", "clip.txt")), got.TextPath)
	assert.Equal(t, "a ball rolls\n", got.TextContent)
}

func TestFindPromptAssetsImageOnlyStopsSearch(t *testing.T) {
	assets := t.TempDir()
	touch(t, assets, "a/clip_frame0.jpg", "")
	touch(t, assets, "b/clip.txt", "later")

	got := FindPromptAssets("clip.mp4", assets)
	assert.Equal(t, filepath.ToSlash(filepath.Join(assets, "a", "clip_frame0.jpg")), got.ImagePath)
	assert.Empty(t, got.TextPath)
	assert.Empty(t, got.TextContent)
}

func TestFindPromptAssetsNone(t *testing.T) {
	assets := t.TempDir()
	touch(t, assets, "set/other.txt", "")

	assert.False(t, FindPromptAssets("clip.mp4", assets).Found())
	assert.False(t, FindPromptAssets("clip.mp4", filepath.Join(assets, "missing")).Found())
}

func TestFindPromptAssetsTextEncodings(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"plain UTF-8", "héllo", "héllo"},
		{"UTF-8 BOM stripped", "\xEF\xBB\xBFhéllo", "héllo"},
		{"UTF-16LE", "\xFF\xFEh\x00i\x00", "hi"},
		{"UTF-16BE", "\xFE\xFF\x00h\x00i", "hi"},
		{"invalid UTF-8", "\xC3\x28 broken", ""},
		{"UTF-32 unsupported", "\xFF\xFE\x00\x00h\x00\x00\x00", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assets := t.TempDir()
			touch(t, assets, "set/clip.txt", tt.raw)

			got := FindPromptAssets("clip.mp4", assets)
			// The path is reported even when the content cannot be decoded.
			assert.Equal(t, filepath.ToSlash(filepath.Join(assets, "set", "clip.txt")), got.TextPath)
			assert.Equal(t, tt.expected, got.TextContent)
		})
	}
}
