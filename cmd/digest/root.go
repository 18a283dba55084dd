package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

var configPath string

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Digest - planning meeting intelligence pipeline",
		Long: `Digest turns local-government planning meeting recordings into
development intelligence.

It downloads meeting media, transcribes it, extracts structured analysis
(projects, votes, regulatory changes, key people), and composes the
Triangle Development Digest newsletter.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "digest.yaml", "Project config file")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newFetchCommand())
	cmd.AddCommand(newInfoCommand())
	cmd.AddCommand(newProcessCommand())
	cmd.AddCommand(newAnalyzeCommand())
	cmd.AddCommand(newNewsletterCommand())
	cmd.AddCommand(newViewCommand())
	cmd.AddCommand(newServeCommand())

	return cmd
}

func execute() error {
	// Credentials commonly live in a local .env during development.
	_ = godotenv.Load()

	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
