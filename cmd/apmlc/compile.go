package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/reglet-dev/apmlc/internal/application/dto"
	"github.com/reglet-dev/apmlc/internal/infrastructure/metrics"
	"github.com/spf13/cobra"
)

type compileOptions struct {
	CommonOptions
	SessionID   string
	OutDir      string
	Parallelism int
	NoFallback  bool
	Stats       bool
}

var compileFormats = []string{"html", "table", "json", "yaml", "sarif"}

func newCompileCmd() *cobra.Command {
	opts := &compileOptions{CommonOptions: DefaultCommonOptions("html")}

	cmd := &cobra.Command{
		Use:   "compile <file.apml>...",
		Short: "Compile APML documents into Vue pages",
		Long: `Validate, analyze and compile one or more APML documents.
Use "-" to read a single document from stdin.

Several files are compiled concurrently. With --format html they need --out-dir;
each page is written as <out-dir>/<name>.html. Other formats are written one
after another to --output.`,
		Example: `  apmlc compile login.apml -o login.html
  apmlc compile pages/*.apml --out-dir dist
  apmlc compile dashboard.apml --format json --no-fallback`,
		Args: cobra.MinimumNArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			return runCompile(ctx, cmd, opts, args)
		}),
	}

	opts.RegisterFlags(cmd, compileFormats)
	cmd.Flags().StringVar(&opts.SessionID, "session", "", "Store artifacts in this session's history")
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", "", "Directory for HTML pages when compiling several files")
	cmd.Flags().IntVar(&opts.Parallelism, "parallel", 0, "Concurrent compilations (0 = config batch.parallelism)")
	cmd.Flags().BoolVar(&opts.NoFallback, "no-fallback", false, "Never call the generative backend")
	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "Print compilation statistics to stderr")
	cmd.Flags().BoolP("yes", "y", false, "Send documents to the generative backend without asking")
	cmd.Flags().Bool("no-repair", false, "Do not attempt to repair malformed documents")

	return cmd
}

func runCompile(cc *CommandContext, cmd *cobra.Command, opts *compileOptions, paths []string) error {
	if err := opts.ValidateFlags(compileFormats); err != nil {
		return err
	}
	if len(paths) > 1 && opts.Format == "html" && opts.OutDir == "" {
		return fmt.Errorf("compiling several files to html requires --out-dir")
	}

	ctx, cancel := opts.ApplyToContext(cc.Context)
	defer cancel()

	requests := make([]dto.CompileRequest, 0, len(paths))
	for _, path := range paths {
		text, err := readDocument(path, cmd.InOrStdin())
		if err != nil {
			return err
		}
		requests = append(requests, dto.CompileRequest{
			Source: path,
			Text:   text,
			Options: dto.CompileOptions{
				SessionID:       opts.SessionID,
				DisableFallback: opts.NoFallback,
			},
		})
	}

	if opts.Stats {
		defer printStats(cmd.ErrOrStderr(), cc.Container.Metrics())
	}

	if len(requests) == 1 && opts.OutDir == "" {
		resp, err := cc.Container.CompileUseCase().Execute(ctx, requests[0])
		if err != nil {
			return fmt.Errorf("compile %s: %w", requests[0].Source, err)
		}
		logWarnings(cc, resp)
		return writeCompileOutput(cc, opts, resp, nil)
	}

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = cc.Container.Parallelism()
	}
	results := cc.Container.BatchCompileUseCase().Execute(ctx, dto.BatchCompileRequest{
		Requests:    requests,
		Parallelism: parallelism,
	})

	// Without --out-dir every result goes to one shared output.
	var shared io.Writer
	if opts.OutDir == "" {
		w, closeFn, err := opts.OpenOutput()
		if err != nil {
			return err
		}
		defer func() {
			_ = closeFn() // Best-effort cleanup
		}()
		shared = w
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			cc.Logger.Error("compile failed", "source", r.Source, "error", r.Err)
			continue
		}
		logWarnings(cc, r.Response)
		if err := writeCompileOutput(cc, opts, r.Response, shared); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed to compile", failed, len(results))
	}
	return nil
}

func writeCompileOutput(cc *CommandContext, opts *compileOptions, resp *dto.CompileResponse, shared io.Writer) error {
	if shared != nil {
		return formatCompile(cc, opts.Format, shared, resp)
	}

	pageOpts := opts.CommonOptions
	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		pageOpts.Output = filepath.Join(opts.OutDir, outputName(resp.Metadata.Source, opts.Format))
	}

	w, closeFn, err := pageOpts.OpenOutput()
	if err != nil {
		return err
	}
	defer func() {
		_ = closeFn() // Best-effort cleanup
	}()

	if err := formatCompile(cc, opts.Format, w, resp); err != nil {
		return err
	}
	if pageOpts.Output != "" {
		cc.Logger.Info("wrote output", "file", pageOpts.Output, "format", opts.Format)
	}
	return nil
}

func formatCompile(cc *CommandContext, format string, w io.Writer, resp *dto.CompileResponse) error {
	formatter, err := cc.Container.Formatters().Create(format, w)
	if err != nil {
		return err
	}
	if err := formatter.Format(resp); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}

// outputName maps "pages/login.apml" to "login.html" for the html format.
func outputName(source, format string) string {
	base := filepath.Base(source)
	if source == "-" || base == "." || base == string(filepath.Separator) {
		base = "stdin"
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	ext := format
	if format == "table" {
		ext = "txt"
	}
	return base + "." + ext
}

func logWarnings(cc *CommandContext, resp *dto.CompileResponse) {
	for _, w := range resp.Warnings {
		cc.Logger.Warn(w, "source", resp.Metadata.Source)
	}
	for _, ce := range resp.ComponentErrors {
		cc.Logger.Warn("component skipped", "source", resp.Metadata.Source, "component", ce.Component, "error", ce.Message)
	}
}

//nolint:errcheck // Best-effort terminal output
func printStats(w io.Writer, agg *metrics.Aggregator) {
	s := agg.Snapshot()
	fmt.Fprintf(w, "compiled %d (automatic %d, hybrid %d, manual %d), degraded %d, errors %d\n",
		s.Total, s.Automatic, s.Hybrid, s.Manual, s.Degraded, s.Errors)
	fmt.Fprintf(w, "success rate %.1f%%, automatic %.1f%%, fallback calls %d, avg %s\n",
		s.SuccessRate, s.AutomaticPercent, s.FallbackCalls, s.AvgDuration)
}
