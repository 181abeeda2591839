package section

import (
	"fmt"
	"strings"
)

// Descriptor identifies one section's row span within the grid. Rows are
// 1-indexed. DataEndRow is inclusive and may be smaller than DataStartRow
// when a header has no data rows at all.
type Descriptor struct {
	Name         string `json:"name"`
	HeaderRow    int    `json:"headerRow"`
	DataStartRow int    `json:"dataStartRow"`
	DataEndRow   int    `json:"dataEndRow"`
}

// Warning is a non-fatal data-quality finding from detection.
type Warning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("row %d: %s", w.Row, w.Message)
}

// RowSource is the read surface Detect needs from a grid.
type RowSource interface {
	NumRows() int
	Row(n int) []string
}

// Detect scans the whole grid top to bottom and returns every well-formed
// section in order, together with warnings for malformed ones. A grid with
// no header rows yields an empty list, not an error.
//
// Every header row bounds the section above it, even a malformed one: a
// header with an empty name is excluded from the results but still ends the
// preceding span, so its rows never leak into a neighbor's metrics.
func Detect(g RowSource) ([]Descriptor, []Warning) {
	var (
		sections []Descriptor
		warnings []Warning
	)

	type headerHit struct {
		row  int
		name string
	}
	var headers []headerHit

	for n := 1; n <= g.NumRows(); n++ {
		row := g.Row(n)
		if Classify(row) != RowHeader {
			continue
		}
		headers = append(headers, headerHit{row: n, name: cellAt(row, ColName)})
	}

	for i, h := range headers {
		if h.name == "" {
			warnings = append(warnings, Warning{Row: h.row, Message: "header row has an empty section name, skipping section"})
			continue
		}

		end := g.NumRows()
		if i < len(headers)-1 {
			end = headers[i+1].row - 1
		}

		// First data row after the header. Well-formed input has data
		// immediately below the header; when it does not, the section is
		// kept with an empty span and flows through as the empty case.
		start := h.row + 1
		found := false
		for r := start; r <= end; r++ {
			if Classify(g.Row(r)) == RowData && cellAt(g.Row(r), ColMonth) != "" {
				start = r
				found = true
				break
			}
		}
		if !found {
			warnings = append(warnings, Warning{Row: h.row, Message: fmt.Sprintf("section %q has no data rows", h.name)})
			start = h.row + 1
			end = h.row
		}

		sections = append(sections, Descriptor{
			Name:         h.name,
			HeaderRow:    h.row,
			DataStartRow: start,
			DataEndRow:   end,
		})
	}

	return sections, warnings
}

// calendarMonths in reporting order. Month identity is positional in the
// calculator; this list only backs the optional label validation pass.
var calendarMonths = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// ValidateMonthOrder cross-checks the data-row labels of a section against
// calendar order and reports a structural warning per mismatch. A mismatch
// never changes calculation; positions stay authoritative.
func ValidateMonthOrder(g RowSource, d Descriptor) []Warning {
	var warnings []Warning

	pos := 0
	for r := d.DataStartRow; r <= d.DataEndRow; r++ {
		row := g.Row(r)
		if Classify(row) != RowData {
			continue
		}
		label := cellAt(row, ColMonth)
		if label == "" {
			continue
		}
		if pos < len(calendarMonths) && !strings.EqualFold(label, calendarMonths[pos]) {
			warnings = append(warnings, Warning{
				Row:     r,
				Message: fmt.Sprintf("section %q: expected month %q at position %d, found %q", d.Name, calendarMonths[pos], pos+1, label),
			})
		}
		pos++
	}

	return warnings
}
