// Package report writes calculated metrics and summary text back into the
// traffic workbook with presentation formatting.
package report

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/trafficlens/trafficlens/internal/grid"
	"github.com/trafficlens/trafficlens/internal/metrics"
	"github.com/trafficlens/trafficlens/internal/section"
)

const (
	summaryHeader      = "Summary / Insights :"
	summaryFontName    = "Century Gothic"
	summaryFontSize    = 12
	summaryColumnWidth = 60

	// Summary font colors keyed off narrative keywords.
	colorUpward  = "00B050"
	colorDecline = "22577A"
)

var (
	declineWords = regexp.MustCompile(`(?i)\bdeclined?\b`)
	upwardWords  = regexp.MustCompile(`(?i)\bupward\b`)
)

// Writer persists section results into a workbook. The calculation core
// never touches coordinates; all layout knowledge lives here.
type Writer struct {
	wb    *grid.Workbook
	sheet string
}

// NewWriter creates a Writer targeting one worksheet.
func NewWriter(wb *grid.Workbook, sheet string) *Writer {
	return &Writer{wb: wb, sheet: sheet}
}

// WriteResult writes one section's numbers and summary text. Cells whose
// metric could not be computed stay blank — never "0%" and never an error
// string.
func (w *Writer) WriteResult(g *grid.Grid, res metrics.SectionResult, summaryText string) error {
	m := res.Metrics
	d := res.Descriptor

	yoyCol, lmCol, summaryCol := w.locateColumns(g, d.HeaderRow)
	monthRows, totalRow, changeRow := metrics.RowPositions(g, d)

	for i, r := range monthRows {
		if i >= len(m.Rows) {
			break
		}
		if v := m.Rows[i].YoY; v != nil {
			if err := w.wb.SetCell(w.sheet, r, yoyCol, FormatPercent(v)); err != nil {
				return err
			}
		}
		if v := m.Rows[i].MoM; v != nil {
			if err := w.wb.SetCell(w.sheet, r, lmCol, FormatPercent(v)); err != nil {
				return err
			}
		}
	}

	if totalRow != 0 {
		if err := w.writeTotals(m, totalRow); err != nil {
			return err
		}
	}
	if changeRow != 0 {
		if err := w.writeBaselineRow(m, changeRow, yoyCol, lmCol); err != nil {
			return err
		}
	}

	return w.writeSummaryBlock(d, summaryCol, summaryText)
}

// locateColumns finds the YoY and LM columns from the section's header row,
// falling back to the documented layout (years in columns 3-5, metrics right
// after). The summary column sits two columns past LM.
func (w *Writer) locateColumns(g *grid.Grid, headerRow int) (yoyCol, lmCol, summaryCol int) {
	yoyCol = section.ColFirstYear + section.YearCount
	lmCol = yoyCol + 1

	row := g.Row(headerRow)
	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case strings.Contains(name, "yoy"):
			yoyCol = i + 1
		case strings.HasPrefix(name, "lm"):
			lmCol = i + 1
		}
	}
	return yoyCol, lmCol, lmCol + 2
}

func (w *Writer) writeTotals(m *metrics.SectionMetrics, totalRow int) error {
	for y, total := range m.Totals {
		// Concrete numbers, never formula references.
		if err := w.wb.SetCell(w.sheet, totalRow, section.ColFirstYear+y, total); err != nil {
			return err
		}
	}
	return nil
}

// writeBaselineRow rewrites the "% Change" row: the year columns compared
// against the earliest year, the YoY column, and a blank LM column.
func (w *Writer) writeBaselineRow(m *metrics.SectionMetrics, changeRow, yoyCol, lmCol int) error {
	// Enforce a clean slate before writing; stale values from the source
	// workbook must not survive.
	last := lmCol
	if yoyCol > last {
		last = yoyCol
	}
	for col := section.ColMonth; col <= last; col++ {
		if err := w.wb.ClearCell(w.sheet, changeRow, col); err != nil {
			return err
		}
	}
	if err := w.wb.SetCell(w.sheet, changeRow, section.ColMonth, "% Change"); err != nil {
		return err
	}

	for y, cell := range m.Baseline {
		if cell.Value == nil {
			continue
		}
		if err := w.wb.SetCell(w.sheet, changeRow, section.ColFirstYear+y, FormatBaseline(cell)); err != nil {
			return err
		}
	}
	if m.BaselineYoY.Value != nil {
		if err := w.wb.SetCell(w.sheet, changeRow, yoyCol, FormatBaseline(m.BaselineYoY)); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeSummaryBlock(d section.Descriptor, summaryCol int, text string) error {
	if d.DataEndRow < d.DataStartRow || text == "" {
		return nil
	}

	if err := w.wb.SetColWidth(w.sheet, summaryCol, summaryColumnWidth); err != nil {
		return err
	}

	if err := w.wb.SetCell(w.sheet, d.HeaderRow, summaryCol, summaryHeader); err != nil {
		return err
	}
	if err := w.wb.ApplyStyle(w.sheet, d.HeaderRow, summaryCol, grid.CellStyle{
		FontName: summaryFontName,
		FontSize: summaryFontSize,
		Bold:     true,
		AlignTop: true, AlignLeft: true,
	}); err != nil {
		return err
	}

	if err := w.wb.MergeCells(w.sheet, d.DataStartRow, summaryCol, d.DataEndRow, summaryCol); err != nil {
		return err
	}
	if err := w.wb.SetCell(w.sheet, d.DataStartRow, summaryCol, text); err != nil {
		return err
	}

	return w.wb.ApplyStyle(w.sheet, d.DataStartRow, summaryCol, grid.CellStyle{
		FontName:    summaryFontName,
		FontSize:    summaryFontSize,
		FontColor:   summaryColor(text),
		WrapText:    true,
		AlignTop:    true,
		AlignLeft:   true,
		LightBorder: true,
	})
}

// summaryColor picks the summary font color from narrative keywords. An
// upward trend wins when both keywords appear: the overall direction is
// positive even if individual declines are mentioned.
func summaryColor(text string) string {
	if upwardWords.MatchString(text) {
		return colorUpward
	}
	if declineWords.MatchString(text) {
		return colorDecline
	}
	return "000000"
}

// FormatPercent renders an optional percentage for display. Absent values
// render as an empty string.
func FormatPercent(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f%%", *v)
}

// FormatBaseline renders a "% Change" cell, appending the partial-year
// marker when set.
func FormatBaseline(c metrics.BaselineCell) string {
	if c.Value == nil {
		return ""
	}
	s := fmt.Sprintf("%.2f%%", *c.Value)
	if c.TillAug {
		s += " " + metrics.PartialSuffix
	}
	return s
}
