// Package sections provides the section-listing command.
package sections

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trafficlens/trafficlens/internal/grid"
	"github.com/trafficlens/trafficlens/internal/output"
	"github.com/trafficlens/trafficlens/internal/section"
)

// NewCommand returns the sections subcommand.
func NewCommand() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "sections <file.xlsx>",
		Short: "List the sections detected in a traffic workbook",
		Args:  cobra.ExactArgs(1),
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

			if jsonFlag {
				return output.PrintJSON("sections", map[string]any{
					"file":     filePath,
					"sheet":    sheet,
					"sections": descriptors,
				})
			}

			if len(descriptors) == 0 {
				output.Info("no sections found in sheet %q", sheet)
				return nil
			}
			for i, d := range descriptors {
				fmt.Printf("%2d. %-40s header row %d, data rows %d-%d\n",
					i+1, d.Name, d.HeaderRow, d.DataStartRow, d.DataEndRow)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to scan (default: active sheet)")

	return cmd
}
