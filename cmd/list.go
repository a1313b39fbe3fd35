/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fulmenhq/vidlist/internal/generator"
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the entries generate would write",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	addPipelineFlags(cmd)
	cmd.Flags().String("format", "pretty", "Output format: pretty|json|yaml")
	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported format %q (want pretty, json or yaml)", format)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	listing, err := generator.Plan(generator.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(listing); err != nil {
			return err
		}
		return enc.Close()
	default:
		printListing(out, listing)
		return nil
	}
}

// printListing writes an aligned ID / SRC / PROMPT table. Widths are measured
// in terminal cells so wide file names stay aligned.
func printListing(w io.Writer, listing *generator.Listing) {
	if len(listing.Entries) == 0 {
		fmt.Fprintf(w, "No videos found (%d IDs from %s, %d models)\n", len(listing.IDs), listing.Source, len(listing.Models))
		return
	}

	maxID, maxSrc := runewidth.StringWidth("ID"), runewidth.StringWidth("SRC")
	for _, e := range listing.Entries {
		maxID = max(maxID, runewidth.StringWidth(e.ID))
		maxSrc = max(maxSrc, runewidth.StringWidth(e.Src))
	}

	fmt.Fprintf(w, "%s  %s  %s\n", runewidth.FillRight("ID", maxID), runewidth.FillRight("SRC", maxSrc), "PROMPT")
	for _, e := range listing.Entries {
		var prompt []string
		if e.PromptImg != "" {
			prompt = append(prompt, "img")
		}
		if e.PromptText != "" {
			prompt = append(prompt, "txt")
		}
		if len(prompt) == 0 {
			prompt = append(prompt, "-")
		}
		fmt.Fprintf(w, "%s  %s  %s\n", runewidth.FillRight(e.ID, maxID), runewidth.FillRight(e.Src, maxSrc), strings.Join(prompt, ","))
	}
	fmt.Fprintf(w, "\n%d entries (%d IDs from %s, %d models)\n", len(listing.Entries), len(listing.IDs), listing.Source, len(listing.Models))
}
