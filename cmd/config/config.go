// Package config provides the config inspection and initialization commands.
package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trafficlens/trafficlens/internal/config"
	"github.com/trafficlens/trafficlens/internal/output"
)

// NewCommand returns the config subcommand group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize trafficlens configuration",
	}

	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}

			if jsonFlag {
				return output.PrintJSON("config show", cfg)
			}

			fmt.Printf("config file:    %s\n", config.Path())
			fmt.Printf("provider:       %s\n", cfg.Provider)
			fmt.Printf("model:          %s\n", orDefault(cfg.Model, "(provider default)"))
			fmt.Printf("sheet:          %s\n", orDefault(cfg.Report.Sheet, "(active sheet)"))
			fmt.Printf("output suffix:  %s\n", cfg.Report.OutputSuffix)
			fmt.Printf("ollama host:    %s\n", cfg.Ollama.Host)
			return nil
		},
	}
}

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file with defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Init()
			if err != nil {
				return err
			}
			output.Success("wrote %s", path)
			return nil
		},
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
