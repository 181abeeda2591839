package metrics

import "github.com/trafficlens/trafficlens/internal/section"

// SectionResult pairs a section's boundaries with its calculated metrics for
// downstream writing and summarization.
type SectionResult struct {
	Descriptor section.Descriptor `json:"descriptor"`
	Metrics    *SectionMetrics    `json:"metrics"`
}

// Assemble packages a descriptor and its metrics into a result record. Pure
// packaging, no computation.
func Assemble(d section.Descriptor, m *SectionMetrics) SectionResult {
	return SectionResult{Descriptor: d, Metrics: m}
}
