package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// newRootCmd builds the application entry point with all subcommands.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "apmlc",
		Short: "Hybrid APML to Vue compiler",
		Long: `apmlc compiles APML application specifications into standalone Vue 3 pages.
Components with a registered pattern are generated by rules; unknown or complex
components are handed to an optional generative backend and merged into the result.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			initConfig()
			setupLogging()
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.apmlc/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().String("provider", "", "generative backend: none, anthropic, gemini, static")
	rootCmd.PersistentFlags().String("model", "", "model name for the generative backend")

	_ = viper.BindPFlag("fallback.provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("fallback.model", rootCmd.PersistentFlags().Lookup("model"))

	rootCmd.AddCommand(
		newCompileCmd(),
		newAnalyzeCmd(),
		newValidateCmd(),
		newPatternsCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig wires environment overrides such as APMLC_FALLBACK_PROVIDER.
// The config file itself is loaded and schema-checked by the container.
func initConfig() {
	viper.SetEnvPrefix("APMLC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		cfgFile = viper.GetString("config")
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
