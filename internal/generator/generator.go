/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package generator

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fulmenhq/vidlist/internal/gitctx"
	"github.com/fulmenhq/vidlist/pkg/catalog"
	"github.com/fulmenhq/vidlist/pkg/config"
	"github.com/fulmenhq/vidlist/pkg/ignore"
	"github.com/fulmenhq/vidlist/pkg/logger"
	"github.com/fulmenhq/vidlist/pkg/splice"
)

// ErrStale is returned by Verify when the script's video list differs from a fresh run.
var ErrStale = errors.New("video list is stale")

// ID sources reported in a Listing.
const (
	SourceIDFile = "id-file"
	SourceScan   = "scan"
)

// Options drive one generator run
type Options struct {
	Root         string
	Script       string
	IDFile       string
	Models       []string
	PublicPrefix string
	AssetRoot    string
	Extension    string
	Exclude      []string
	Markers      splice.Markers
	Indent       string
	Placeholder  string
}

// OptionsFromConfig maps resolved configuration onto generator options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Root:         cfg.Root,
		Script:       cfg.Script,
		IDFile:       cfg.IDFile,
		Models:       cfg.Models,
		PublicPrefix: cfg.EffectivePublicPrefix(),
		AssetRoot:    cfg.AssetRoot,
		Extension:    cfg.Extension,
		Exclude:      cfg.Exclude,
		Markers:      splice.Markers{Start: cfg.Markers.Start, End: cfg.Markers.End},
		Indent:       cfg.Output.Indent,
		Placeholder:  cfg.Output.Placeholder,
	}
}

// Listing is the computed video list before anything is written.
type Listing struct {
	Source  string          `json:"source" yaml:"source"`
	IDs     []string        `json:"ids" yaml:"ids"`
	Models  []string        `json:"models" yaml:"models"`
	Entries []catalog.Entry `json:"entries" yaml:"entries"`
}

// Lines renders the entries as they appear between the markers.
func (l *Listing) Lines(indent string) []string {
	return catalog.Lines(l.Entries, indent)
}

// Result summarises a Run or Verify.
type Result struct {
	Script  string `json:"script"`
	Entries int    `json:"entries"`
	Changed bool   `json:"changed"`
	DryRun  bool   `json:"dry_run,omitempty"`
}

// Plan resolves IDs and models and builds the entries. It touches nothing on disk.
func Plan(opts Options) (*Listing, error) {
	info, err := os.Stat(opts.Root)
	if err != nil || !info.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("video root %s: %w", opts.Root, err)
		}
		return nil, fmt.Errorf("%w: video root %s", catalog.ErrNotFound, opts.Root)
	}

	listing := &Listing{}
	if opts.IDFile != "" {
		listing.Source = SourceIDFile
		listing.IDs, err = catalog.ReadIDs(opts.IDFile)
	} else {
		listing.Source = SourceScan
		var m *ignore.Matcher
		m, err = ignore.NewMatcher(opts.Root, opts.Exclude)
		if err != nil {
			return nil, fmt.Errorf("loading ignore rules: %w", err)
		}
		logger.Debug("Ignore rules loaded", logger.Int("patterns", m.Patterns()))
		listing.IDs, err = catalog.DiscoverIDs(opts.Root, opts.Extension, m)
	}
	if err != nil {
		return nil, err
	}

	listing.Models, err = catalog.ResolveModels(opts.Root, opts.Models)
	if err != nil {
		return nil, err
	}

	listing.Entries = catalog.BuildEntries(listing.IDs, listing.Models, catalog.BuildOptions{
		Root:         opts.Root,
		PublicPrefix: opts.PublicPrefix,
		AssetRoot:    opts.AssetRoot,
	})

	// Empty results encode as [] rather than null.
	if listing.IDs == nil {
		listing.IDs = []string{}
	}
	if listing.Models == nil {
		listing.Models = []string{}
	}
	if listing.Entries == nil {
		listing.Entries = []catalog.Entry{}
	}

	logger.Info("Video list planned",
		logger.String("source", listing.Source),
		logger.Int("ids", len(listing.IDs)),
		logger.Strings("models", listing.Models),
		logger.Int("entries", len(listing.Entries)))
	return listing, nil
}

// Run plans and splices the entries into the script. With dryRun the script is left untouched.
func Run(opts Options, dryRun bool) (*Result, error) {
	listing, err := Plan(opts)
	if err != nil {
		return nil, err
	}

	if !dryRun {
		warnOnLocalEdits(opts.Script)
	}
	changed, err := splice.UpdateFile(opts.Script, opts.Markers, listing.Lines(opts.Indent), opts.placeholderLine(), dryRun)
	if err != nil {
		return nil, err
	}
	logger.Debug("Generate finished",
		logger.String("file", opts.Script),
		logger.Bool("changed", changed),
		logger.Bool("dry_run", dryRun))
	return &Result{Script: opts.Script, Entries: len(listing.Entries), Changed: changed, DryRun: dryRun}, nil
}

// Verify plans and splices in memory, returning ErrStale when the script on
// disk would change.
func Verify(opts Options) (*Result, error) {
	listing, err := Plan(opts)
	if err != nil {
		return nil, err
	}

	current, err := os.ReadFile(opts.Script) // #nosec G304 -- script path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", opts.Script, err)
	}
	want, err := splice.Splice(current, opts.Markers, listing.Lines(opts.Indent), opts.placeholderLine())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Script, err)
	}

	res := &Result{Script: opts.Script, Entries: len(listing.Entries), Changed: !bytes.Equal(current, want)}
	if res.Changed {
		logger.Warn("Video list is out of date", logger.String("file", opts.Script))
		return res, fmt.Errorf("%w: %s (run vidlist generate)", ErrStale, opts.Script)
	}
	logger.Debug("Video list verified", logger.String("file", opts.Script))
	return res, nil
}

// warnOnLocalEdits flags scripts with uncommitted git changes, which the
// rewrite would mix with generated output. Inspection failures are not fatal.
func warnOnLocalEdits(script string) {
	ctx, err := gitctx.FileState(script)
	if err != nil {
		logger.Debug("Could not inspect git state", logger.String("file", script), logger.Err(err))
		return
	}
	if ctx.HasLocalEdits() {
		logger.Warn("Script has uncommitted changes; review the diff after generating",
			logger.String("file", ctx.Path),
			logger.String("branch", ctx.Branch))
	}
}

func (o Options) placeholderLine() string {
	return o.Indent + o.Placeholder
}
