// Package pipeline runs the full analysis: open the workbook, detect
// sections, calculate metrics, generate summaries, and write everything back.
package pipeline

import (
	"context"
	"fmt"

	"github.com/trafficlens/trafficlens/internal/grid"
	"github.com/trafficlens/trafficlens/internal/metrics"
	"github.com/trafficlens/trafficlens/internal/report"
	"github.com/trafficlens/trafficlens/internal/section"
	"github.com/trafficlens/trafficlens/internal/summary"
)

// Options configures one pipeline run.
type Options struct {
	InputPath  string
	OutputPath string
	Sheet      string // empty means the active sheet

	Summarizer *summary.Summarizer // nil means fallback texts only

	// OnDetect is invoked once with the number of detected sections,
	// before any of them is processed. May be nil.
	OnDetect func(count int)

	// OnSection is invoked after each section finishes, for progress
	// reporting. May be nil.
	OnSection func(res metrics.SectionResult, summaryText string)
}

// SectionOutcome records one processed section for the run report.
type SectionOutcome struct {
	Name     string `json:"name"`
	Rows     int    `json:"rows"`
	IsEmpty  bool   `json:"isEmpty"`
	Summary  string `json:"summary"`
	Fallback bool   `json:"fallback,omitempty"`
}

// RunReport summarizes a completed pipeline run.
type RunReport struct {
	InputPath  string            `json:"inputPath"`
	OutputPath string            `json:"outputPath"`
	Sheet      string            `json:"sheet"`
	Sections   []SectionOutcome  `json:"sections"`
	Warnings   []section.Warning `json:"warnings,omitempty"`
}

// Run executes the pipeline. Sections are processed strictly one at a time:
// they share the workbook handle and per-section work is tiny, so there is
// nothing to gain from running them concurrently.
func Run(ctx context.Context, opts Options) (*RunReport, error) {
	wb, err := grid.Open(opts.InputPath)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = wb.ActiveSheet()
	}

	g, err := wb.Grid(sheet)
	if err != nil {
		return nil, err
	}
	if g.IsEmpty() {
		return nil, fmt.Errorf("sheet %q is empty — nothing to analyze", sheet)
	}

	descriptors, warnings := section.Detect(g)
	if len(descriptors) == 0 {
		return nil, fmt.Errorf("no sections detected in sheet %q — expected header rows with a section name in column A and \"Month\" in column B", sheet)
	}

	if opts.OnDetect != nil {
		opts.OnDetect(len(descriptors))
	}

	rep := &RunReport{
		InputPath:  opts.InputPath,
		OutputPath: opts.OutputPath,
		Sheet:      sheet,
		Warnings:   warnings,
	}

	writer := report.NewWriter(wb, sheet)

	for _, d := range descriptors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rep.Warnings = append(rep.Warnings, section.ValidateMonthOrder(g, d)...)

		rows := metrics.BuildRows(g, d)
		m := metrics.Calculate(d.Name, rows)
		res := metrics.Assemble(d, m)

		var text string
		usedFallback := true
		if opts.Summarizer != nil {
			text, usedFallback = opts.Summarizer.Generate(ctx, m)
		} else {
			text = summary.Fallback(m)
		}

		if err := writer.WriteResult(g, res, text); err != nil {
			return nil, fmt.Errorf("could not write section %q: %w", d.Name, err)
		}

		rep.Sections = append(rep.Sections, SectionOutcome{
			Name:     d.Name,
			Rows:     len(m.Rows),
			IsEmpty:  m.IsEmpty,
			Summary:  text,
			Fallback: usedFallback,
		})

		if opts.OnSection != nil {
			opts.OnSection(res, text)
		}
	}

	if err := wb.SaveAs(opts.OutputPath); err != nil {
		return nil, err
	}

	return rep, nil
}
