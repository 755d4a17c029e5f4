package main

import (
	"fmt"

	"github.com/reglet-dev/apmlc/internal/application/dto"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	opts := DefaultCommonOptions("table")

	cmd := &cobra.Command{
		Use:   "validate <file.apml>",
		Short: "Check a document for structural issues",
		Long: `Detect structural issues and check that the document parses. Exits non-zero
when issues are found. Likely secrets in the document are reported as warnings,
since they would be redacted before reaching a generative backend.`,
		Example: `  apmlc validate login.apml
  apmlc validate login.apml --format sarif -o findings.sarif`,
		Args: cobra.ExactArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			text, err := readDocument(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			resp, err := analyzeFile(ctx, dto.AnalyzeRequest{Source: args[0], Text: text}, opts)
			if err != nil {
				return err
			}

			for _, f := range ctx.Container.Redactor().Find(text) {
				ctx.Logger.Warn("document contains a likely secret", "source", args[0], "rule", f.Rule, "line", f.Line)
			}

			if !resp.Valid() {
				return fmt.Errorf("%s: %d structural issue(s) found", args[0], len(resp.Issues)+boolToInt(resp.ParseError != ""))
			}
			return nil
		}),
	}

	opts.RegisterFlags(cmd, reportFormats)
	return cmd
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
