// Package grid provides read and write access to traffic workbooks (.xlsx).
// The analysis core only sees the Grid value; cell coordinates and styling
// stay behind the Workbook type.
package grid

import "strings"

// Grid is a read-only snapshot of one worksheet: an ordered sequence of rows,
// each an ordered sequence of cell strings. Rows and columns are 1-indexed to
// match spreadsheet coordinates.
type Grid struct {
	Sheet string
	rows  [][]string
}

// NewGrid builds a Grid from raw row data. Intended for tests; production
// grids come from Workbook.Grid.
func NewGrid(sheet string, rows [][]string) *Grid {
	return &Grid{Sheet: sheet, rows: rows}
}

// NumRows returns the number of rows in the grid.
func (g *Grid) NumRows() int {
	return len(g.rows)
}

// Row returns the cells of the 1-indexed row. Out-of-range rows return nil.
func (g *Grid) Row(n int) []string {
	if n < 1 || n > len(g.rows) {
		return nil
	}
	return g.rows[n-1]
}

// Cell returns the trimmed value at the 1-indexed (row, col) coordinate, or
// an empty string when the coordinate is out of range.
func (g *Grid) Cell(row, col int) string {
	r := g.Row(row)
	if col < 1 || col > len(r) {
		return ""
	}
	return strings.TrimSpace(r[col-1])
}

// IsEmpty reports whether the grid has no non-blank cells at all.
func (g *Grid) IsEmpty() bool {
	for _, row := range g.rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				return false
			}
		}
	}
	return true
}
