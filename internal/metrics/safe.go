// Package metrics computes the derived YoY, MoM, total, and baseline figures
// for one detected section. Every numeric path funnels through PercentChange
// so zero and missing inputs resolve to nil instead of errors.
package metrics

import "math"

// PercentChange returns the percentage change from old to new, already
// multiplied by 100 and rounded to two decimals.
//
// The result is nil when old is absent, old <= 0, or new is absent. The
// guard on old makes a division blow-up unreachable, but the non-finite
// check stays as a correctness backstop: the function must never surface
// NaN or Inf.
func PercentChange(old, new *float64) *float64 {
	if old == nil || new == nil {
		return nil
	}
	if *old <= 0 {
		return nil
	}

	pct := ((*new - *old) / *old) * 100
	if math.IsInf(pct, 0) || math.IsNaN(pct) {
		return nil
	}

	pct = math.Round(pct*100) / 100
	return &pct
}

// Float returns a pointer to v. Convenience for building optional values.
func Float(v float64) *float64 {
	return &v
}
