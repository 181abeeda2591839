// Package watch provides the re-analysis file watcher command.
package watch

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/trafficlens/trafficlens/internal/ai"
	"github.com/trafficlens/trafficlens/internal/config"
	"github.com/trafficlens/trafficlens/internal/output"
	"github.com/trafficlens/trafficlens/internal/pipeline"
	"github.com/trafficlens/trafficlens/internal/summary"
	w "github.com/trafficlens/trafficlens/internal/watch"
)

// NewCommand returns the watch subcommand.
func NewCommand() *cobra.Command {
	var (
		outputPath string
		sheet      string
		debounceMs int
	)

	cmd := &cobra.Command{
		Use:   "watch <file.xlsx>",
		Short: "Re-analyze the workbook whenever it changes",
		Long: `Watches the input workbook and re-runs the full analysis on every save.
Stops on Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			providerName, _ := cmd.Flags().GetString("provider")
			modelName, _ := cmd.Flags().GetString("model")

			inputPath := args[0]
			if !strings.HasSuffix(strings.ToLower(inputPath), ".xlsx") {
				return fmt.Errorf("expected a .xlsx file, got %q", inputPath)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}
			if outputPath == "" {
				ext := ".xlsx"
				outputPath = strings.TrimSuffix(inputPath, ext) + cfg.Report.OutputSuffix + ext
			}

			provider, err := ai.NewProvider(providerName, modelName)
			if err != nil {
				return err
			}
			summarizer := summary.New(provider, ai.InferOptions{})
			summarizer.OnFallback = func(name string, err error) {
				output.Warn("summary generation failed for %q, using fallback text: %v", name, err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			run := func(path string) error {
				rep, err := pipeline.Run(ctx, pipeline.Options{
					InputPath:  path,
					OutputPath: outputPath,
					Sheet:      sheet,
					Summarizer: summarizer,
				})
				if err != nil {
					return err
				}
				output.Success("re-analyzed %d sections → %s", len(rep.Sections), rep.OutputPath)
				return nil
			}

			// Analyze once up front so the watcher starts from a known-good
			// output file.
			if err := run(inputPath); err != nil {
				return err
			}

			watcher := w.New(inputPath, time.Duration(debounceMs)*time.Millisecond, run)
			watcher.OnError = func(err error) {
				output.Warn("re-analysis failed: %v", err)
			}

			output.Info("watching %s (Ctrl-C to stop)", inputPath)
			if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (default: <name>_analyzed.xlsx)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to analyze (default: active sheet)")
	cmd.Flags().IntVar(&debounceMs, "debounce", 500, "Milliseconds to wait after a change before re-running")

	return cmd
}
