package metrics

import (
	"reflect"
	"testing"
)

var monthLabels = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func row(label string, y0, y1, y2 *float64) MonthRow {
	return MonthRow{Label: label, Years: [3]*float64{y0, y1, y2}}
}

// fullYear builds twelve month rows where every year column holds the same
// per-month value.
func fullYear(y0, y1, y2 float64) []MonthRow {
	rows := make([]MonthRow, 0, 12)
	for _, m := range monthLabels {
		rows = append(rows, row(m, Float(y0), Float(y1), Float(y2)))
	}
	return rows
}

func TestCalculateYoY(t *testing.T) {
	rows := []MonthRow{row("January", Float(90), Float(100), Float(125))}

	m := Calculate("Organic Search", rows)

	if len(m.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(m.Rows))
	}
	if m.Rows[0].YoY == nil || *m.Rows[0].YoY != 25.0 {
		t.Errorf("expected YoY 25.0, got %v", m.Rows[0].YoY)
	}
}

func TestCalculateMoMJanuaryAlwaysNil(t *testing.T) {
	// A December value exists in the prior year column, but MoM never wraps
	// across years.
	rows := []MonthRow{
		row("January", Float(50), Float(999), Float(100)),
		row("February", Float(50), Float(60), Float(110)),
	}

	m := Calculate("Direct", rows)

	if m.Rows[0].MoM != nil {
		t.Errorf("January MoM must be nil, got %v", *m.Rows[0].MoM)
	}
	if m.Rows[1].MoM == nil || *m.Rows[1].MoM != 10.0 {
		t.Errorf("February MoM should be 10.0, got %v", m.Rows[1].MoM)
	}
}

func TestCalculateEmptySection(t *testing.T) {
	rows := []MonthRow{
		row("January", Float(100), Float(200), nil),
		row("February", Float(100), Float(200), Float(0)),
		row("March", Float(100), Float(200), nil),
	}

	m := Calculate("Paid Social", rows)

	if !m.IsEmpty {
		t.Fatal("expected IsEmpty for a section with no latest-year data")
	}
	for i, r := range m.Rows {
		if r.YoY != nil || r.MoM != nil {
			t.Errorf("row %d: expected nil YoY/MoM in empty section, got %v/%v", i, r.YoY, r.MoM)
		}
	}
	if m.HasFigures() {
		t.Error("HasFigures should be false for an empty section")
	}
}

func TestCalculateTotals(t *testing.T) {
	rows := []MonthRow{
		row("January", Float(10), Float(1), Float(2)),
		row("February", Float(20), Float(1), Float(2)),
		row("March", nil, Float(1), Float(2)),
		row("April", Float(5), Float(1), Float(2)),
		// The Total row from the grid span must not feed the sums.
		row("Total", Float(9999), Float(9999), Float(9999)),
	}

	m := Calculate("Referral", rows)

	if m.Totals[0] != 35 {
		t.Errorf("expected year-0 total 35 (nil counted as 0), got %d", m.Totals[0])
	}
	if m.Totals[1] != 4 || m.Totals[2] != 8 {
		t.Errorf("unexpected totals: %v", m.Totals)
	}
	if len(m.Rows) != 4 {
		t.Errorf("Total row must be excluded from month rows, got %d rows", len(m.Rows))
	}
}

func TestCalculateTotalsRounding(t *testing.T) {
	rows := []MonthRow{
		row("January", Float(10.4), nil, Float(1)),
		row("February", Float(10.2), nil, Float(1)),
	}

	m := Calculate("Email", rows)

	if m.Totals[0] != 21 {
		t.Errorf("expected rounded total 21, got %d", m.Totals[0])
	}
}

func TestCalculateBaselineFullYear(t *testing.T) {
	// y0 sums to 1200, y1 to 1440, y2 to 1440; all twelve months present.
	rows := fullYear(100, 120, 120)

	m := Calculate("Organic Search", rows)

	if m.Baseline[0].Value != nil {
		t.Error("baseline year 0 is the reference and must stay nil")
	}
	if m.Baseline[1].Value == nil || *m.Baseline[1].Value != 20.0 {
		t.Errorf("expected baseline year 1 = 20.0, got %v", m.Baseline[1].Value)
	}
	if m.Baseline[1].TillAug {
		t.Error("full-year baseline must not carry the partial-year marker")
	}
	if m.Baseline[2].Value == nil || *m.Baseline[2].Value != 20.0 {
		t.Errorf("expected baseline year 2 = 20.0, got %v", m.Baseline[2].Value)
	}
	if m.Baseline[2].TillAug || m.BaselineYoY.TillAug {
		t.Error("full-year figures must not carry the partial-year marker")
	}
	if m.BaselineYoY.Value == nil || *m.BaselineYoY.Value != 0.0 {
		t.Errorf("expected baseline YoY 0.0, got %v", m.BaselineYoY.Value)
	}
}

func TestCalculateBaselinePartialYear(t *testing.T) {
	// Latest year populated only January through August.
	rows := make([]MonthRow, 0, 12)
	for i, label := range monthLabels {
		var y2 *float64
		if i < 8 {
			y2 = Float(150)
		}
		rows = append(rows, row(label, Float(100), Float(120), y2))
	}

	m := Calculate("Organic Search", rows)

	// Jan–Aug sums: y0 = 800, y1 = 960, y2 = 1200.
	if !m.Baseline[2].TillAug {
		t.Fatal("expected the partial-year marker on baseline year 2")
	}
	if m.Baseline[2].Value == nil || *m.Baseline[2].Value != 50.0 {
		t.Errorf("expected partial baseline 50.0 (800 → 1200), got %v", m.Baseline[2].Value)
	}
	if !m.BaselineYoY.TillAug {
		t.Fatal("expected the partial-year marker on the baseline YoY column")
	}
	if m.BaselineYoY.Value == nil || *m.BaselineYoY.Value != 25.0 {
		t.Errorf("expected partial baseline YoY 25.0 (960 → 1200), got %v", m.BaselineYoY.Value)
	}
	// Full-year columns stay full-year.
	if m.Baseline[1].Value == nil || *m.Baseline[1].Value != 20.0 {
		t.Errorf("expected baseline year 1 = 20.0, got %v", m.Baseline[1].Value)
	}
}

func TestCalculateSkipsPctChangeRows(t *testing.T) {
	rows := []MonthRow{
		row("January", Float(10), Float(10), Float(10)),
		row("% Change", Float(1), Float(2), Float(3)),
		row("%change", Float(1), Float(2), Float(3)),
	}

	m := Calculate("Display", rows)

	if len(m.Rows) != 1 {
		t.Errorf("%% Change rows must be excluded, got %d rows", len(m.Rows))
	}
	if m.Totals[0] != 10 {
		t.Errorf("%% Change rows must not feed totals, got %d", m.Totals[0])
	}
}

func TestCalculateIdempotent(t *testing.T) {
	rows := fullYear(100, 120, 150)
	rows[3].Years[2] = nil
	rows[7].Years[1] = Float(0)

	a := Calculate("Organic Social", rows)
	b := Calculate("Organic Social", rows)

	if !reflect.DeepEqual(a, b) {
		t.Error("Calculate is not deterministic for identical input")
	}
}

func TestCalculateNoRows(t *testing.T) {
	m := Calculate("Unassigned", nil)

	if !m.IsEmpty {
		t.Error("a section with no rows is the empty case")
	}
	if len(m.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(m.Rows))
	}
	if m.Baseline[1].Value != nil || m.Baseline[2].Value != nil {
		t.Error("baseline values must be nil for a section with no rows")
	}
}
