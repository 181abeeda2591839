package grid

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Workbook wraps an open .xlsx file. It owns every cell coordinate and style
// detail so the rest of the program can work in semantic terms.
type Workbook struct {
	f    *excelize.File
	path string
}

// Open opens an existing .xlsx workbook for reading and writing.
func Open(path string) (*Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s — check that the path is correct", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}

	return &Workbook{f: f, path: path}, nil
}

// Close releases the underlying file handle.
func (wb *Workbook) Close() error {
	return wb.f.Close()
}

// Path returns the path the workbook was opened from.
func (wb *Workbook) Path() string {
	return wb.path
}

// ActiveSheet returns the name of the workbook's active worksheet.
func (wb *Workbook) ActiveSheet() string {
	return wb.f.GetSheetName(wb.f.GetActiveSheetIndex())
}

// SheetNames returns all worksheet names in order.
func (wb *Workbook) SheetNames() []string {
	return wb.f.GetSheetList()
}

// Grid reads an entire worksheet into a read-only Grid snapshot.
func (wb *Workbook) Grid(sheet string) (*Grid, error) {
	rows, err := wb.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheet, err)
	}
	return &Grid{Sheet: sheet, rows: rows}, nil
}

// SetCell writes a value into the 1-indexed (row, col) coordinate.
func (wb *Workbook) SetCell(sheet string, row, col int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("invalid cell coordinates (%d,%d): %w", row, col, err)
	}
	if err := wb.f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("could not set cell %s: %w", cell, err)
	}
	return nil
}

// ClearCell blanks the 1-indexed (row, col) coordinate.
func (wb *Workbook) ClearCell(sheet string, row, col int) error {
	return wb.SetCell(sheet, row, col, nil)
}

// MergeCells merges the rectangle between two 1-indexed coordinates.
func (wb *Workbook) MergeCells(sheet string, row1, col1, row2, col2 int) error {
	top, err := excelize.CoordinatesToCellName(col1, row1)
	if err != nil {
		return fmt.Errorf("invalid cell coordinates (%d,%d): %w", row1, col1, err)
	}
	bottom, err := excelize.CoordinatesToCellName(col2, row2)
	if err != nil {
		return fmt.Errorf("invalid cell coordinates (%d,%d): %w", row2, col2, err)
	}
	if err := wb.f.MergeCell(sheet, top, bottom); err != nil {
		return fmt.Errorf("could not merge %s:%s: %w", top, bottom, err)
	}
	return nil
}

// SetColWidth sets the width of a single 1-indexed column.
func (wb *Workbook) SetColWidth(sheet string, col int, width float64) error {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return fmt.Errorf("invalid column %d: %w", col, err)
	}
	return wb.f.SetColWidth(sheet, name, name, width)
}

// CellStyle describes the visual treatment of a cell in semantic terms.
type CellStyle struct {
	FontName    string
	FontSize    float64
	Bold        bool
	FontColor   string // hex RGB, e.g. "00B050"
	WrapText    bool
	AlignTop    bool
	AlignLeft   bool
	LightBorder bool
}

// ApplyStyle styles a single 1-indexed cell.
func (wb *Workbook) ApplyStyle(sheet string, row, col int, style CellStyle) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("invalid cell coordinates (%d,%d): %w", row, col, err)
	}

	s := &excelize.Style{
		Font: &excelize.Font{
			Family: style.FontName,
			Size:   style.FontSize,
			Bold:   style.Bold,
		},
	}
	if style.FontColor != "" {
		s.Font.Color = style.FontColor
	}
	if style.WrapText || style.AlignTop || style.AlignLeft {
		s.Alignment = &excelize.Alignment{WrapText: style.WrapText}
		if style.AlignTop {
			s.Alignment.Vertical = "top"
		}
		if style.AlignLeft {
			s.Alignment.Horizontal = "left"
		}
	}
	if style.LightBorder {
		s.Border = []excelize.Border{
			{Type: "left", Style: 1, Color: "D3D3D3"},
			{Type: "right", Style: 1, Color: "D3D3D3"},
			{Type: "top", Style: 1, Color: "D3D3D3"},
			{Type: "bottom", Style: 1, Color: "D3D3D3"},
		}
	}

	id, err := wb.f.NewStyle(s)
	if err != nil {
		return fmt.Errorf("could not create style: %w", err)
	}
	if err := wb.f.SetCellStyle(sheet, cell, cell, id); err != nil {
		return fmt.Errorf("could not style cell %s: %w", cell, err)
	}
	return nil
}

// SaveAs writes the workbook to a new path.
func (wb *Workbook) SaveAs(path string) error {
	if err := wb.f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save %s: %w", path, err)
	}
	return nil
}
