package section

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want RowKind
	}{
		{"header row", []string{"Organic Search", "Month", "Year-2023", "Year-2024", "Year-2025"}, RowHeader},
		{"header case-insensitive", []string{"Direct", "MONTH"}, RowHeader},
		{"header with blank name", []string{"", "Month"}, RowHeader},
		{"month row", []string{"", "January", "100", "200", "300"}, RowData},
		{"total row", []string{"", "Total"}, RowTotal},
		{"total case-insensitive", []string{"", "TOTAL"}, RowTotal},
		{"pct change row", []string{"", "% Change"}, RowPctChange},
		{"pct change no space", []string{"", "%change"}, RowPctChange},
		{"pct change case-insensitive", []string{"", "% CHANGE"}, RowPctChange},
		{"empty row", []string{}, RowData},
		{"unknown label defaults to data", []string{"", "Quarter 1"}, RowData},
		{"reserved name never opens a section", []string{"Total", "Month"}, RowData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.row); got != tt.want {
				t.Errorf("Classify(%v) = %s, want %s", tt.row, got, tt.want)
			}
		})
	}
}

func TestKindOfLabel(t *testing.T) {
	if KindOfLabel("  total  ") != RowTotal {
		t.Error("expected surrounding whitespace to be ignored")
	}
	if KindOfLabel("September") != RowData {
		t.Error("month labels classify as data")
	}
	if KindOfLabel("") != RowData {
		t.Error("empty labels default to data")
	}
}
