/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/vidlist/internal/generator"
)

func newVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that the script's video list is up to date",
		Long: `Verify computes the video list exactly as generate would and compares it with
the script on disk. It exits with status 3 when the two differ, which makes it
suitable as a CI or pre-commit guard.`,
		Args: cobra.NoArgs,
		RunE: runVerify,
	}
	addPipelineFlags(cmd)
	return cmd
}

func runVerify(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	res, err := generator.Verify(generator.OptionsFromConfig(cfg))
	out := cmd.OutOrStdout()
	switch {
	case errors.Is(err, generator.ErrStale):
		fmt.Fprintf(out, "❌ %s is out of date (%d entries expected)\n", res.Script, res.Entries)
		return err
	case err != nil:
		return err
	}
	fmt.Fprintf(out, "✅ %s is up to date (%d entries)\n", res.Script, res.Entries)
	return nil
}
