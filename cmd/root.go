// Package cmd contains all CLI commands for the trafficlens binary.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cmdanalyze "github.com/trafficlens/trafficlens/cmd/analyze"
	cmdconfig "github.com/trafficlens/trafficlens/cmd/config"
	cmdmetrics "github.com/trafficlens/trafficlens/cmd/metrics"
	cmdsections "github.com/trafficlens/trafficlens/cmd/sections"
	cmdversion "github.com/trafficlens/trafficlens/cmd/version"
	cmdwatch "github.com/trafficlens/trafficlens/cmd/watch"
)

var (
	jsonOutput bool
	verbose    bool
	modelName  string
	provider   string
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trafficlens",
		Short: "YoY/MoM analysis and AI summaries for GA4 traffic workbooks",
		Long: `trafficlens — monthly traffic analysis from the terminal.

Detects the per-channel sections of a GA4 traffic workbook, computes
year-over-year and month-over-month percentages with strict zero/null
safety, generates executive summaries, and writes everything back into
the spreadsheet.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", defaultModel(), "AI model name override")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", defaultProvider(), "AI provider: anthropic | openai | ollama")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	// Register subcommands
	rootCmd.AddCommand(cmdanalyze.NewCommand())
	rootCmd.AddCommand(cmdsections.NewCommand())
	rootCmd.AddCommand(cmdmetrics.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(cmdversion.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func defaultModel() string {
	if m := os.Getenv("TRAFFICLENS_MODEL"); m != "" {
		return m
	}
	return ""
}

func defaultProvider() string {
	if p := os.Getenv("TRAFFICLENS_PROVIDER"); p != "" {
		return p
	}
	return "anthropic"
}
