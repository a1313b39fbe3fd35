/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/vidlist/internal/generator"
)

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Rewrite the video list between the script markers",
		Long: `Generate resolves video IDs (from --id-file, or by scanning the demo root for
--ext files), resolves model directories, and writes one entry per existing
<root>/<model>/<video> file between the VIDEO LIST markers of --script.

With --no-op the entries are computed and nothing is written.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}
	addPipelineFlags(cmd)
	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	noOp, _ := cmd.Flags().GetBool("no-op")

	res, err := generator.Run(generator.OptionsFromConfig(cfg), noOp)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.DryRun {
		fmt.Fprintf(out, "Would update %s with %d entries.\n", res.Script, res.Entries)
		return nil
	}
	fmt.Fprintf(out, "Updated %s with %d entries.\n", res.Script, res.Entries)
	return nil
}
