package main

import (
	"github.com/reglet-dev/apmlc/internal/infrastructure/output"
	"github.com/spf13/cobra"
)

var patternFormats = []string{"table", "json", "yaml"}

func newPatternsCmd() *cobra.Command {
	opts := DefaultCommonOptions("table")

	cmd := &cobra.Command{
		Use:     "patterns",
		Short:   "List registered component patterns",
		Example: `  apmlc patterns --format yaml`,
		Args:    cobra.NoArgs,
		RunE: withContainer(func(ctx *CommandContext, _ *cobra.Command, _ []string) error {
			if err := opts.ValidateFlags(patternFormats); err != nil {
				return err
			}
			w, closeFn, err := opts.OpenOutput()
			if err != nil {
				return err
			}
			defer func() {
				_ = closeFn() // Best-effort cleanup
			}()
			return output.FormatPatterns(opts.Format, w, output.PatternInfos(ctx.Container.Registry().Definitions()))
		}),
	}

	opts.RegisterFlags(cmd, patternFormats)
	return cmd
}
