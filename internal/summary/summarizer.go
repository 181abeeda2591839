package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/trafficlens/trafficlens/internal/ai"
	"github.com/trafficlens/trafficlens/internal/metrics"
)

// Summarizer generates one executive summary per section. Provider failures
// never propagate: after the provider's bounded attempts are exhausted, a
// deterministic fallback text is returned instead.
type Summarizer struct {
	provider ai.Provider
	opts     ai.InferOptions

	// OnFallback, when set, is invoked with the provider error before a
	// fallback text is used. Lets the CLI surface a warning.
	OnFallback func(sectionName string, err error)
}

// New creates a Summarizer over the given provider.
func New(provider ai.Provider, opts ai.InferOptions) *Summarizer {
	return &Summarizer{provider: provider, opts: opts}
}

// Generate produces the summary text for one section and reports whether the
// deterministic fallback was used. It never returns an error; the numeric
// metrics are already final and a missing narrative must not block the run.
func (s *Summarizer) Generate(ctx context.Context, m *metrics.SectionMetrics) (string, bool) {
	var prompt string
	if !m.HasFigures() {
		prompt = fmt.Sprintf(emptySectionPromptTemplate, m.SectionName)
	} else {
		prompt = fmt.Sprintf(executivePromptTemplate, m.SectionName, BuildDataSummary(m))
	}

	if s.provider != nil {
		result, err := s.provider.Infer(ctx, systemPrompt, prompt, s.opts)
		if err == nil {
			if text := strings.TrimSpace(result.Content); text != "" {
				return text, false
			}
			err = fmt.Errorf("provider returned empty summary")
		}
		if s.OnFallback != nil {
			s.OnFallback(m.SectionName, err)
		}
	}

	return Fallback(m), true
}

// Fallback returns the deterministic summary used when no provider is
// available or the provider call failed. Empty sections get their own text.
func Fallback(m *metrics.SectionMetrics) string {
	if !m.HasFigures() {
		return fmt.Sprintf("No measurable traffic was recorded in %s during the analyzed period.", m.SectionName)
	}
	return fmt.Sprintf("Analysis of %s metrics shows varying patterns across the reporting period. Further investigation recommended.", m.SectionName)
}
