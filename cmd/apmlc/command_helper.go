package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reglet-dev/apmlc/internal/infrastructure/container"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with container initialization.
//
// Usage:
//
//	cmd := &cobra.Command{
//	    Use: "patterns",
//	    RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
//	        return listPatterns(ctx.Container.Registry())
//	    }),
//	}
func withContainer(handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()

		assumeYes, _ := cmd.Flags().GetBool("yes")
		noRepair, _ := cmd.Flags().GetBool("no-repair")

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		c, err := container.New(ctx, container.Options{
			SystemConfigPath: cfgFile,
			Provider:         viper.GetString("fallback.provider"),
			Model:            viper.GetString("fallback.model"),
			AssumeYes:        assumeYes,
			DisableRepair:    noRepair,
			Logger:           logger,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		return handler(&CommandContext{
			Container: c,
			Logger:    logger,
			Context:   ctx,
		}, cmd, args)
	}
}
