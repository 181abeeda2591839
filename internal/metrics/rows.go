package metrics

import (
	"strconv"
	"strings"

	"github.com/trafficlens/trafficlens/internal/section"
)

// MonthRow is one classified row of a section: the month-column label plus
// an optional value per year index (0 = earliest year). A nil value means
// the source cell was empty or not parseable as a number.
type MonthRow struct {
	Label string
	Years [section.YearCount]*float64
}

// GridSource is the read surface row building needs from a grid.
type GridSource interface {
	Row(n int) []string
}

// BuildRows converts a section's raw grid span into MonthRow values, one per
// grid row from DataStartRow through DataEndRow. Total and % Change rows are
// included; Calculate excludes them from month iteration by label. Rows with
// an empty month-label cell carry no month identity and are skipped, even
// when a stray value sits in a year column.
func BuildRows(g GridSource, d section.Descriptor) []MonthRow {
	var rows []MonthRow
	for r := d.DataStartRow; r <= d.DataEndRow; r++ {
		raw := g.Row(r)
		label := cellAt(raw, section.ColMonth)
		if label == "" {
			continue
		}

		var mr MonthRow
		mr.Label = label
		for y := 0; y < section.YearCount; y++ {
			mr.Years[y] = parseNumber(cellAt(raw, section.ColFirstYear+y))
		}
		rows = append(rows, mr)
	}
	return rows
}

// RowPositions maps a section span back onto 1-indexed grid rows: the month
// rows in order, plus the Total and % Change rows (0 when absent). The writer
// uses this to land values on the same rows BuildRows read from.
func RowPositions(g GridSource, d section.Descriptor) (months []int, totalRow, changeRow int) {
	for r := d.DataStartRow; r <= d.DataEndRow; r++ {
		raw := g.Row(r)
		label := cellAt(raw, section.ColMonth)
		if label == "" {
			continue
		}
		switch section.KindOfLabel(label) {
		case section.RowTotal:
			if totalRow == 0 {
				totalRow = r
			}
		case section.RowPctChange:
			if changeRow == 0 {
				changeRow = r
			}
		default:
			months = append(months, r)
		}
	}
	return months, totalRow, changeRow
}

// parseNumber parses a spreadsheet cell into an optional number. Thousands
// separators and a trailing percent sign are tolerated; anything else that
// fails to parse is treated as absent, never as an error.
func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func cellAt(row []string, col int) string {
	if col < 1 || col > len(row) {
		return ""
	}
	return strings.TrimSpace(row[col-1])
}
