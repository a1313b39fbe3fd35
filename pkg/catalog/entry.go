package catalog

import (
	"path/filepath"
	"strings"

	"github.com/fulmenhq/vidlist/pkg/logger"
)

// Entry is one generated video-list record.
type Entry struct {
	Src               string `json:"src" yaml:"src"`
	ID                string `json:"id" yaml:"id"`
	PromptImg         string `json:"promptImg,omitempty" yaml:"promptImg,omitempty"`
	PromptText        string `json:"promptText,omitempty" yaml:"promptText,omitempty"`
	PromptTextContent string `json:"promptTextContent,omitempty" yaml:"promptTextContent,omitempty"`
}

// BuildOptions locate the files entries are built from.
type BuildOptions struct {
	// Root is the demo root holding <model>/<video> files.
	Root string
	// PublicPrefix replaces Root in src fields.
	PublicPrefix string
	// AssetRoot is searched for prompt assets; see FindPromptAssets.
	AssetRoot string
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r", "",
	"\n", `\n`,
)

// Escape makes s safe inside a double-quoted JavaScript string literal:
// backslashes and quotes are escaped, CR is dropped and LF becomes \n.
// Literal runs every field through it, paths included; ordinary paths come
// back unchanged.
func Escape(s string) string {
	return escaper.Replace(s)
}

// BuildEntries emits one Entry per (video, model) pair whose root/model/video
// path exists, video-major and model-minor. Pairs without a file are skipped.
func BuildEntries(videos, models []string, opts BuildOptions) []Entry {
	prefix := strings.TrimRight(opts.PublicPrefix, "/")

	var entries []Entry
	skipped := 0
	for _, video := range videos {
		for _, model := range models {
			if !exists(filepath.Join(opts.Root, model, video)) {
				skipped++
				logger.Trace("No video for model, skipping", logger.String("model", model), logger.String("video", video))
				continue
			}

			e := Entry{
				Src: prefix + "/" + model + "/" + video,
				ID:  model + "/" + video,
			}
			asset := FindPromptAssets(video, opts.AssetRoot)
			e.PromptImg = asset.ImagePath
			e.PromptText = asset.TextPath
			e.PromptTextContent = asset.TextContent
			entries = append(entries, e)
		}
	}

	logger.Debug("Built video entries",
		logger.Int("videos", len(videos)),
		logger.Int("models", len(models)),
		logger.Int("entries", len(entries)),
		logger.Int("skipped", skipped))
	return entries
}

// Literal renders the entry as a single-line object literal with a trailing comma.
// Optional fields appear only when set, always in the same order.
func (e Entry) Literal() string {
	fields := []string{
		`src: "` + Escape(e.Src) + `"`,
		`id: "` + Escape(e.ID) + `"`,
	}
	if e.PromptImg != "" {
		fields = append(fields, `promptImg: "`+Escape(e.PromptImg)+`"`)
	}
	if e.PromptText != "" {
		fields = append(fields, `promptText: "`+Escape(e.PromptText)+`"`)
	}
	if e.PromptTextContent != "" {
		fields = append(fields, `promptTextContent: "`+Escape(e.PromptTextContent)+`"`)
	}
	return "{ " + strings.Join(fields, ", ") + " },"
}

// Lines renders entries as indented literal lines ready for splicing.
func Lines(entries []Entry, indent string) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, indent+e.Literal())
	}
	return lines
}
