// Package prompt asks the user before document text leaves the machine.
package prompt

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/reglet-dev/apmlc/internal/application/ports"
)

var _ ports.ConsentPrompter = (*ConsentPrompter)(nil)

// ConsentPrompter confirms external generative calls on the terminal.
type ConsentPrompter struct {
	logger      *slog.Logger
	interactive func() bool
	confirm     func(title, description string) (bool, error)
	assumeYes   bool
}

// NewConsentPrompter creates a prompter. With assumeYes every call is allowed without asking.
func NewConsentPrompter(assumeYes bool, logger *slog.Logger) *ConsentPrompter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsentPrompter{
		assumeYes:   assumeYes,
		logger:      logger,
		interactive: IsInteractive,
		confirm:     confirmWithHuh,
	}
}

// IsInteractive checks if stdin is a terminal rather than a pipe or file.
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ConfirmExternalCall asks whether document text may be sent to provider.
// Without a terminal the call is declined unless assumeYes is set.
func (p *ConsentPrompter) ConfirmExternalCall(ctx context.Context, provider string) (bool, error) {
	if p.assumeYes {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !p.interactive() {
		p.logger.Warn("external generation needs consent; rerun with --yes to allow it non-interactively", "provider", provider)
		return false, nil
	}

	return p.confirm(
		fmt.Sprintf("Send document to %s?", provider),
		"Some components need generative compilation. Secrets are redacted before sending.",
	)
}

func confirmWithHuh(title, description string) (bool, error) {
	var allowed bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Send").
		Negative("Skip").
		Value(&allowed).
		Run()
	if err != nil {
		return false, fmt.Errorf("consent prompt: %w", err)
	}
	return allowed, nil
}
