// Package section finds the named monthly-data sections inside a traffic
// workbook grid and classifies their rows.
package section

import "strings"

// Column layout of a traffic workbook. Column 1 carries the section name
// (header rows only), column 2 carries month labels, columns 3-5 carry the
// three year columns oldest first. This is a documented contract of the
// source report, not something the package validates cell by cell.
const (
	ColName      = 1
	ColMonth     = 2
	ColFirstYear = 3
	YearCount    = 3
)

// monthHeaderMarker is the literal column-2 value that marks a header row.
const monthHeaderMarker = "month"

// RowKind is the role a grid row plays within a section.
type RowKind int

const (
	// RowData is a regular month row.
	RowData RowKind = iota
	// RowTotal is the per-section "Total" summary row.
	RowTotal
	// RowPctChange is the per-section "% Change" baseline row.
	RowPctChange
	// RowHeader opens a new section.
	RowHeader
)

// String returns the row kind name for logs and warnings.
func (k RowKind) String() string {
	switch k {
	case RowTotal:
		return "total"
	case RowPctChange:
		return "pct-change"
	case RowHeader:
		return "header"
	default:
		return "data"
	}
}

// Classify determines the role of a single grid row. Unmatched rows default
// to RowData; month identity is positional and never checked here.
func Classify(row []string) RowKind {
	name := cellAt(row, ColName)
	month := cellAt(row, ColMonth)

	// A literal "Month" in the month column marks a header row even when the
	// name cell is blank; the detector reports the blank name as a warning.
	if strings.EqualFold(month, monthHeaderMarker) && !isReservedLabel(name) {
		return RowHeader
	}
	return KindOfLabel(month)
}

// KindOfLabel classifies a row by its month-column label alone. The
// calculator uses this to exclude Total and % Change rows from the
// month-by-month iteration.
func KindOfLabel(label string) RowKind {
	switch normalizeLabel(label) {
	case "total":
		return RowTotal
	case "% change", "%change":
		return RowPctChange
	default:
		return RowData
	}
}

func isReservedLabel(s string) bool {
	switch normalizeLabel(s) {
	case "month", "total", "% change", "%change":
		return true
	}
	return false
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cellAt(row []string, col int) string {
	if col < 1 || col > len(row) {
		return ""
	}
	return strings.TrimSpace(row[col-1])
}
