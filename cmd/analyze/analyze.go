// Package analyze provides the full read-calculate-summarize-write command.
package analyze

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trafficlens/trafficlens/internal/ai"
	"github.com/trafficlens/trafficlens/internal/config"
	"github.com/trafficlens/trafficlens/internal/metrics"
	"github.com/trafficlens/trafficlens/internal/output"
	"github.com/trafficlens/trafficlens/internal/pipeline"
	"github.com/trafficlens/trafficlens/internal/progress"
	"github.com/trafficlens/trafficlens/internal/summary"
)

// NewCommand returns the analyze subcommand.
func NewCommand() *cobra.Command {
	var (
		outputPath  string
		sheet       string
		noSummaries bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <file.xlsx>",
		Short: "Analyze a traffic workbook and write metrics plus summaries back",
		Long: `Reads a GA4 traffic workbook, detects every section, computes YoY and
MoM percentages, totals, and the baseline "% Change" row, generates an
executive summary per section, and saves an annotated copy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
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
			if sheet == "" {
				sheet = cfg.Report.Sheet
			}
			if outputPath == "" {
				outputPath = defaultOutputPath(inputPath, cfg.Report.OutputSuffix)
			}

			var summarizer *summary.Summarizer
			if !noSummaries {
				provider, err := ai.NewProvider(providerName, modelName)
				if err != nil {
					return err
				}
				summarizer = summary.New(provider, ai.InferOptions{})
				summarizer.OnFallback = func(name string, err error) {
					output.Warn("summary generation failed for %q, using fallback text: %v", name, err)
				}
			}

			var bar *progress.Bar
			opts := pipeline.Options{
				InputPath:  inputPath,
				OutputPath: outputPath,
				Sheet:      sheet,
				Summarizer: summarizer,
				OnDetect: func(count int) {
					bar = progress.New("analyzing", count)
				},
				OnSection: func(res metrics.SectionResult, _ string) {
					if bar != nil {
						bar.Increment(res.Descriptor.Name)
					}
				},
			}

			rep, err := pipeline.Run(context.Background(), opts)
			if err != nil {
				return err
			}
			if bar != nil {
				bar.Finish(fmt.Sprintf("%d sections analyzed", len(rep.Sections)))
			}

			for _, w := range rep.Warnings {
				output.Warn("%s", w)
			}

			if jsonFlag {
				return output.PrintJSON("analyze", rep)
			}

			for _, s := range rep.Sections {
				status := ""
				if s.IsEmpty {
					status = " (no measurable data)"
				}
				output.Info("  %s — %d month rows%s", s.Name, s.Rows, status)
			}
			output.Success("Analyzed %d sections → %s", len(rep.Sections), rep.OutputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (default: <name>_analyzed.xlsx)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to analyze (default: active sheet)")
	cmd.Flags().BoolVar(&noSummaries, "no-summaries", false, "Skip AI summaries, use deterministic fallback text")

	return cmd
}

func defaultOutputPath(input, suffix string) string {
	ext := filepath.Ext(input)
	if suffix == "" {
		suffix = "_analyzed"
	}
	return strings.TrimSuffix(input, ext) + suffix + ext
}
