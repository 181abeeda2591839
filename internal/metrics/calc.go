package metrics

import (
	"math"

	"github.com/trafficlens/trafficlens/internal/section"
)

const (
	monthsPerYear = 12
	// partialMonths is the Jan–Aug comparison window used when the most
	// recent year's data does not cover a full twelve months.
	partialMonths = 8
)

// PartialSuffix is the marker attached to partial-year baseline figures.
const PartialSuffix = "(till Aug)"

// RowMetrics holds the derived percentages for one month row. A nil value
// means the figure could not be safely computed and must stay blank.
type RowMetrics struct {
	Label string   `json:"label"`
	YoY   *float64 `json:"yoyPct"`
	MoM   *float64 `json:"momPct"`
}

// BaselineCell is one value of the "% Change" row. TillAug marks the figure
// as a partial-year comparison.
type BaselineCell struct {
	Value   *float64 `json:"value"`
	TillAug bool     `json:"tillAug,omitempty"`
}

// SectionMetrics is the complete calculated output for one section.
type SectionMetrics struct {
	SectionName string `json:"sectionName"`

	// Rows carries one entry per month row, in grid order.
	Rows []RowMetrics `json:"rows"`

	// Totals holds the per-year sums of all month rows, absent values
	// counted as zero and the result rounded to the nearest integer.
	Totals [section.YearCount]int64 `json:"totals"`

	// Baseline is the "% Change" row: each year compared against the
	// earliest year. Index 0 is the reference and always stays nil.
	Baseline [section.YearCount]BaselineCell `json:"baseline"`

	// BaselineYoY is the YoY column of the "% Change" row.
	BaselineYoY BaselineCell `json:"baselineYoY"`

	// IsEmpty is set when the most recent year has no non-zero data at
	// all, so the summarizer can pick its zero-data narrative.
	IsEmpty bool `json:"isEmpty"`
}

// Calculate derives all metrics for one section from its classified rows.
// The input may include Total and % Change rows from the grid span; they are
// excluded from month iteration by label. Calculate never fails: every
// degenerate input resolves to nil figures, not errors.
func Calculate(sectionName string, rows []MonthRow) *SectionMetrics {
	m := &SectionMetrics{SectionName: sectionName}

	var months []MonthRow
	for _, r := range rows {
		if section.KindOfLabel(r.Label) == section.RowData {
			months = append(months, r)
		}
	}

	m.IsEmpty = allAbsentOrZero(months, section.YearCount-1)

	for i, row := range months {
		rm := RowMetrics{Label: row.Label}
		if !m.IsEmpty {
			rm.YoY = PercentChange(row.Years[1], row.Years[2])
			// January never wraps to the prior year's December; the first
			// month of the comparison window has no MoM by definition.
			if i > 0 {
				rm.MoM = PercentChange(months[i-1].Years[2], row.Years[2])
			}
		}
		m.Rows = append(m.Rows, rm)
	}

	var sums [section.YearCount]float64
	for _, row := range months {
		for y, v := range row.Years {
			if v != nil {
				sums[y] += *v
			}
		}
	}
	for y, s := range sums {
		m.Totals[y] = int64(math.Round(s))
	}

	// Baseline row. Year 0 is the reference and stays blank. Year 1 compares
	// full-year totals. Year 2 is partial-year aware: with fewer than twelve
	// months of data, only the Jan–Aug window is compared and the figure is
	// suffix-marked.
	m.Baseline[1] = BaselineCell{Value: PercentChange(Float(sums[0]), Float(sums[1]))}

	if countPresent(months, section.YearCount-1) < monthsPerYear {
		var partial [section.YearCount]float64
		for i, row := range months {
			if i >= partialMonths {
				break
			}
			for y, v := range row.Years {
				if v != nil {
					partial[y] += *v
				}
			}
		}
		m.Baseline[2] = BaselineCell{Value: PercentChange(Float(partial[0]), Float(partial[2])), TillAug: true}
		m.BaselineYoY = BaselineCell{Value: PercentChange(Float(partial[1]), Float(partial[2])), TillAug: true}
	} else {
		m.Baseline[2] = BaselineCell{Value: PercentChange(Float(sums[0]), Float(sums[2]))}
		m.BaselineYoY = BaselineCell{Value: PercentChange(Float(sums[1]), Float(sums[2]))}
	}

	return m
}

// HasFigures reports whether any YoY or MoM value was calculated.
func (m *SectionMetrics) HasFigures() bool {
	for _, r := range m.Rows {
		if r.YoY != nil || r.MoM != nil {
			return true
		}
	}
	return false
}

func allAbsentOrZero(months []MonthRow, year int) bool {
	for _, r := range months {
		if v := r.Years[year]; v != nil && *v != 0 {
			return false
		}
	}
	return true
}

func countPresent(months []MonthRow, year int) int {
	n := 0
	for _, r := range months {
		if r.Years[year] != nil {
			n++
		}
	}
	return n
}
