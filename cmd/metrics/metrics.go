// Package metrics provides the calculation-only command: compute and print
// section metrics without AI calls and without modifying the workbook.
package metrics

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trafficlens/trafficlens/internal/grid"
	"github.com/trafficlens/trafficlens/internal/metrics"
	"github.com/trafficlens/trafficlens/internal/output"
	"github.com/trafficlens/trafficlens/internal/report"
	"github.com/trafficlens/trafficlens/internal/section"
)

// NewCommand returns the metrics subcommand.
func NewCommand() *cobra.Command {
	var (
		sheet       string
		sectionName string
	)

	cmd := &cobra.Command{
		Use:   "metrics <file.xlsx>",
		Short: "Compute YoY/MoM metrics without writing or AI",
		Long: `Detects sections and prints the calculated metrics. The workbook is
never modified; use "analyze" for the full round trip.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			filePath := args[0]
			if !strings.HasSuffix(strings.ToLower(filePath), ".xlsx") {
				return fmt.Errorf("expected a .xlsx file, got %q", filePath)
			}

			wb, err := grid.Open(filePath)
			if err != nil {
				return err
			}
			defer wb.Close()

			if sheet == "" {
				sheet = wb.ActiveSheet()
			}
			g, err := wb.Grid(sheet)
			if err != nil {
				return err
			}

			descriptors, warnings := section.Detect(g)
			for _, w := range warnings {
				output.Warn("%s", w)
			}
			if len(descriptors) == 0 {
				return fmt.Errorf("no sections detected in sheet %q", sheet)
			}

			var results []metrics.SectionResult
			for _, d := range descriptors {
				if sectionName != "" && !strings.EqualFold(d.Name, sectionName) {
					continue
				}
				m := metrics.Calculate(d.Name, metrics.BuildRows(g, d))
				results = append(results, metrics.Assemble(d, m))
			}
			if len(results) == 0 {
				return fmt.Errorf("section %q not found — run \"trafficlens sections\" to list them", sectionName)
			}

			if jsonFlag {
				return output.PrintJSON("metrics", results)
			}

			for _, res := range results {
				printSection(res.Metrics)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to scan (default: active sheet)")
	cmd.Flags().StringVar(&sectionName, "section", "", "Only compute one section by name")

	return cmd
}

func printSection(m *metrics.SectionMetrics) {
	fmt.Printf("\n%s\n", m.SectionName)
	if m.IsEmpty {
		fmt.Println("  (no measurable data in the latest year)")
	}

	fmt.Printf("  %-12s %10s %10s\n", "Month", "YoY", "MoM")
	for _, r := range m.Rows {
		fmt.Printf("  %-12s %10s %10s\n", r.Label, report.FormatPercent(r.YoY), report.FormatPercent(r.MoM))
	}

	fmt.Printf("  %-12s", "Total")
	for _, t := range m.Totals {
		fmt.Printf(" %10d", t)
	}
	fmt.Println()

	fmt.Printf("  %-12s %10s %10s %10s  yoy=%s\n", "% Change",
		report.FormatBaseline(m.Baseline[0]),
		report.FormatBaseline(m.Baseline[1]),
		report.FormatBaseline(m.Baseline[2]),
		report.FormatBaseline(m.BaselineYoY))
}
