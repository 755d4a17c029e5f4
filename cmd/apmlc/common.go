package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// CommonOptions contains flags shared across commands.
type CommonOptions struct {
	Format  string
	Output  string
	Timeout time.Duration
}

// DefaultCommonOptions returns defaults with the given output format.
func DefaultCommonOptions(format string) CommonOptions {
	return CommonOptions{
		Format:  format,
		Timeout: 5 * time.Minute,
	}
}

// RegisterFlags adds common flags to a cobra command.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command, formats []string) {
	cmd.Flags().StringVar(&opts.Format, "format", opts.Format,
		"Output format: "+strings.Join(formats, ", "))
	cmd.Flags().StringVarP(&opts.Output, "output", "o", opts.Output,
		"Output file path (default: stdout)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout,
		"Global timeout for the command (0 to disable)")
}

// ApplyToContext applies timeout to context.
func (opts *CommonOptions) ApplyToContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	return ctx, func() {}
}

// ValidateFlags checks the format against the formats the command supports.
func (opts *CommonOptions) ValidateFlags(formats []string) error {
	if !slices.Contains(formats, opts.Format) {
		return fmt.Errorf("invalid format: %s (valid: %s)", opts.Format, strings.Join(formats, ", "))
	}
	if opts.Timeout < 0 {
		return fmt.Errorf("--timeout must not be negative")
	}
	return nil
}

// OpenOutput returns the writer for --output and a close function.
func (opts *CommonOptions) OpenOutput() (io.Writer, func() error, error) {
	if opts.Output == "" || opts.Output == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	//nolint:gosec // G304: User-controlled output file path is intentional
	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, file.Close, nil
}

// readDocument reads path, or stdin when path is "-".
func readDocument(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	//nolint:gosec // G304: document path comes from the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
