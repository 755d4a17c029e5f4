package main

import (
	"fmt"

	"github.com/reglet-dev/apmlc/internal/application/dto"
	"github.com/spf13/cobra"
)

var reportFormats = []string{"table", "json", "yaml", "sarif"}

type analyzeOptions struct {
	CommonOptions
	Filter         string
	Sections       []string
	Patterns       []string
	UnresolvedOnly bool
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{CommonOptions: DefaultCommonOptions("table")}

	cmd := &cobra.Command{
		Use:   "analyze <file.apml>",
		Short: "Classify a document's components without compiling",
		Long: `Detect structural issues, parse the document and report which pattern each
component resolves to, along with the compilation strategy that would be used.

Filtering:
  --section ui_components           Only components in these sections
  --pattern form_input,modal_dialog Only components resolved to these patterns
  --unresolved                      Only components without a pattern
  --filter "match == 'semantic'"    Expression over name, section, declared, pattern,
                                    match, keywords, resolved and complex`,
		Args: cobra.ExactArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			text, err := readDocument(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			resp, err := analyzeFile(ctx, dto.AnalyzeRequest{
				Source:           args[0],
				Text:             text,
				FilterExpression: opts.Filter,
				Sections:         opts.Sections,
				Patterns:         opts.Patterns,
				UnresolvedOnly:   opts.UnresolvedOnly,
			}, opts.CommonOptions)
			if err != nil {
				return err
			}
			ctx.Logger.Debug("analysis complete", "source", resp.Source, "issues", len(resp.Issues), "components", len(resp.Components))
			return nil
		}),
	}

	opts.RegisterFlags(cmd, reportFormats)
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "Component filter expression (e.g. \"!resolved\")")
	cmd.Flags().StringSliceVar(&opts.Sections, "section", nil, "Only report components in these sections (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.Patterns, "pattern", nil, "Only report components resolved to these patterns (comma-separated)")
	cmd.Flags().BoolVar(&opts.UnresolvedOnly, "unresolved", false, "Only report components without a registered pattern")

	return cmd
}

// analyzeFile runs the analyze use case and writes the report.
func analyzeFile(cc *CommandContext, req dto.AnalyzeRequest, opts CommonOptions) (*dto.AnalyzeResponse, error) {
	if err := opts.ValidateFlags(reportFormats); err != nil {
		return nil, err
	}

	resp, err := cc.Container.AnalyzeUseCase().Execute(req)
	if err != nil {
		return nil, err
	}

	w, closeFn, err := opts.OpenOutput()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = closeFn() // Best-effort cleanup
	}()

	formatter, err := cc.Container.Formatters().CreateReport(opts.Format, w)
	if err != nil {
		return nil, err
	}
	if err := formatter.FormatReport(resp); err != nil {
		return nil, fmt.Errorf("failed to format report: %w", err)
	}
	return resp, nil
}
