package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/trafficlens/trafficlens/internal/ai"
	"github.com/trafficlens/trafficlens/internal/grid"
	"github.com/trafficlens/trafficlens/internal/metrics"
	"github.com/trafficlens/trafficlens/internal/summary"
)

// twoSectionWorkbook writes a workbook with an active section and an
// all-zero one, and returns its path.
func twoSectionWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	rows := [][]any{
		{"Organic Search", "Month", "Year-2023", "Year-2024", "Year-2025", "YOY%", "LM%"},
		{"", "January", 100, 110, 121},
		{"", "February", 100, 120, 132},
		{"", "Total"},
		{"", "% Change"},
		{"Paid Social", "Month", "Year-2023", "Year-2024", "Year-2025", "YOY%", "LM%"},
		{"", "January", 0, 0, 0},
		{"", "Total"},
		{"", "% Change"},
	}
	for i, row := range rows {
		for j, v := range row {
			if v == nil {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("CoordinatesToCellName: %v", err)
			}
			if err := f.SetCellValue("Sheet1", ref, v); err != nil {
				t.Fatalf("SetCellValue(%s): %v", ref, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "traffic.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}

func TestRunEndToEnd(t *testing.T) {
	input := twoSectionWorkbook(t)
	output := filepath.Join(t.TempDir(), "traffic_analyzed.xlsx")

	var detected int
	var seen []string
	rep, err := Run(context.Background(), Options{
		InputPath:  input,
		OutputPath: output,
		OnDetect:   func(n int) { detected = n },
		OnSection: func(res metrics.SectionResult, _ string) {
			seen = append(seen, res.Descriptor.Name)
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if detected != 2 {
		t.Errorf("OnDetect count = %d", detected)
	}
	if len(seen) != 2 || seen[0] != "Organic Search" || seen[1] != "Paid Social" {
		t.Errorf("OnSection order = %v", seen)
	}
	if len(rep.Sections) != 2 {
		t.Fatalf("report sections = %d", len(rep.Sections))
	}

	first := rep.Sections[0]
	if first.IsEmpty {
		t.Error("Organic Search should not be empty")
	}
	if !first.Fallback || first.Summary == "" {
		t.Errorf("nil summarizer must yield a fallback summary, got %+v", first)
	}

	second := rep.Sections[1]
	if !second.IsEmpty {
		t.Error("Paid Social should be empty: the latest year is all zeros")
	}
	if !strings.Contains(second.Summary, "No measurable traffic") {
		t.Errorf("empty-section summary = %q", second.Summary)
	}

	// The output workbook carries the written metrics.
	wb, err := grid.Open(output)
	if err != nil {
		t.Fatalf("Open(output): %v", err)
	}
	defer wb.Close()

	g, err := wb.Grid(wb.ActiveSheet())
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}
	if got := g.Cell(2, 6); got != "10.00%" {
		t.Errorf("January YoY = %q", got)
	}
	if got := g.Cell(3, 7); got != "9.09%" {
		t.Errorf("February LM = %q", got)
	}
	if got := g.Cell(5, 2); got != "% Change" {
		t.Errorf("baseline label = %q", got)
	}
	if got := g.Cell(1, 9); got != "Summary / Insights :" {
		t.Errorf("summary header = %q", got)
	}
}

type failingProvider struct{}

func (failingProvider) Infer(context.Context, string, string, ai.InferOptions) (*ai.InferResult, error) {
	return nil, errors.New("rate limited")
}

func (failingProvider) Name() string { return "failing" }

func TestRunProviderFailureMarksFallback(t *testing.T) {
	input := twoSectionWorkbook(t)

	rep, err := Run(context.Background(), Options{
		InputPath:  input,
		OutputPath: filepath.Join(t.TempDir(), "out.xlsx"),
		Summarizer: summary.New(failingProvider{}, ai.InferOptions{}),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, s := range rep.Sections {
		if !s.Fallback {
			t.Errorf("section %q: provider failure must be reported as fallback", s.Name)
		}
		if s.Summary == "" {
			t.Errorf("section %q: fallback summary must not be empty", s.Name)
		}
	}
}

func TestRunMissingInput(t *testing.T) {
	_, err := Run(context.Background(), Options{
		InputPath:  filepath.Join(t.TempDir(), "nope.xlsx"),
		OutputPath: filepath.Join(t.TempDir(), "out.xlsx"),
	})
	if err == nil {
		t.Fatal("expected an error for a missing input file")
	}
}

func TestRunNoSections(t *testing.T) {
	f := excelize.NewFile()
	if err := f.SetCellValue("Sheet1", "A1", "just a note"); err != nil {
		t.Fatalf("SetCellValue: %v", err)
	}
	input := filepath.Join(t.TempDir(), "flat.xlsx")
	if err := f.SaveAs(input); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	f.Close()

	_, err := Run(context.Background(), Options{
		InputPath:  input,
		OutputPath: filepath.Join(t.TempDir(), "out.xlsx"),
	})
	if err == nil || !strings.Contains(err.Error(), "no sections detected") {
		t.Fatalf("expected a no-sections error, got %v", err)
	}
}

func TestRunCancelledContext(t *testing.T) {
	input := twoSectionWorkbook(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{
		InputPath:  input,
		OutputPath: filepath.Join(t.TempDir(), "out.xlsx"),
	})
	if err == nil {
		t.Fatal("expected a context error")
	}
}
