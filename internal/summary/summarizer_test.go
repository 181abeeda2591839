package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/trafficlens/trafficlens/internal/ai"
	"github.com/trafficlens/trafficlens/internal/metrics"
)

type stubProvider struct {
	content string
	err     error

	lastPrompt string
}

func (p *stubProvider) Infer(_ context.Context, _, prompt string, _ ai.InferOptions) (*ai.InferResult, error) {
	p.lastPrompt = prompt
	if p.err != nil {
		return nil, p.err
	}
	return &ai.InferResult{Content: p.content}, nil
}

func (p *stubProvider) Name() string { return "stub" }

func activeSection() *metrics.SectionMetrics {
	yoy := 25.0
	mom := 10.0
	return &metrics.SectionMetrics{
		SectionName: "Organic Search",
		Rows: []metrics.RowMetrics{
			{Label: "January", YoY: &yoy},
			{Label: "February", YoY: &yoy, MoM: &mom},
		},
	}
}

func emptySection() *metrics.SectionMetrics {
	return &metrics.SectionMetrics{SectionName: "Paid Social", IsEmpty: true}
}

func TestGenerateUsesProvider(t *testing.T) {
	p := &stubProvider{content: "  Traffic grew steadily.  "}
	s := New(p, ai.InferOptions{})

	got, usedFallback := s.Generate(context.Background(), activeSection())
	if got != "Traffic grew steadily." {
		t.Errorf("Generate = %q", got)
	}
	if usedFallback {
		t.Error("a successful provider call must not be marked as fallback")
	}
	if !strings.Contains(p.lastPrompt, "Organic Search") {
		t.Errorf("prompt missing section name: %q", p.lastPrompt)
	}
	if !strings.Contains(p.lastPrompt, "YOY") {
		t.Errorf("active section should use the data-driven prompt: %q", p.lastPrompt)
	}
}

func TestGenerateFallbackOnError(t *testing.T) {
	p := &stubProvider{err: errors.New("rate limited")}
	s := New(p, ai.InferOptions{})

	var fallbackSection string
	s.OnFallback = func(name string, err error) {
		fallbackSection = name
		if err == nil {
			t.Error("OnFallback should receive the provider error")
		}
	}

	got, usedFallback := s.Generate(context.Background(), activeSection())
	if got != Fallback(activeSection()) {
		t.Errorf("expected fallback text, got %q", got)
	}
	if !usedFallback {
		t.Error("a failed provider call must be marked as fallback")
	}
	if fallbackSection != "Organic Search" {
		t.Errorf("OnFallback section = %q", fallbackSection)
	}
}

func TestGenerateFallbackOnEmptyContent(t *testing.T) {
	p := &stubProvider{content: "   "}
	s := New(p, ai.InferOptions{})

	called := false
	s.OnFallback = func(string, error) { called = true }

	got, usedFallback := s.Generate(context.Background(), activeSection())
	if got != Fallback(activeSection()) {
		t.Errorf("expected fallback text, got %q", got)
	}
	if !usedFallback {
		t.Error("blank provider output must be marked as fallback")
	}
	if !called {
		t.Error("blank provider output should count as a failure")
	}
}

func TestGenerateEmptySectionPrompt(t *testing.T) {
	p := &stubProvider{content: "No activity recorded."}
	s := New(p, ai.InferOptions{})

	s.Generate(context.Background(), emptySection())
	if !strings.Contains(p.lastPrompt, "no measurable traffic") {
		t.Errorf("empty section should use the no-activity prompt: %q", p.lastPrompt)
	}
}

func TestGenerateNilProvider(t *testing.T) {
	s := New(nil, ai.InferOptions{})

	got, usedFallback := s.Generate(context.Background(), activeSection())
	if got == "" {
		t.Fatal("nil provider must still yield a summary")
	}
	if !usedFallback {
		t.Error("a provider-less summarizer always falls back")
	}
	if got != Fallback(activeSection()) {
		t.Errorf("expected fallback text, got %q", got)
	}
}

func TestFallbackTexts(t *testing.T) {
	if got := Fallback(emptySection()); !strings.Contains(got, "No measurable traffic") {
		t.Errorf("empty fallback = %q", got)
	}
	if got := Fallback(activeSection()); !strings.Contains(got, "varying patterns") {
		t.Errorf("active fallback = %q", got)
	}
}

func TestBuildDataSummary(t *testing.T) {
	m := activeSection()
	text := BuildDataSummary(m)

	if !strings.Contains(text, "Average: 25.00%") {
		t.Errorf("missing YOY average:\n%s", text)
	}
	if !strings.Contains(text, "Months analyzed: 2") {
		t.Errorf("missing YOY count:\n%s", text)
	}
	if !strings.Contains(text, "Months with data: 1") {
		t.Errorf("missing MoM count:\n%s", text)
	}
}

func TestBuildDataSummaryNoMetrics(t *testing.T) {
	m := &metrics.SectionMetrics{SectionName: "Referral", Rows: []metrics.RowMetrics{{Label: "January"}}}
	text := BuildDataSummary(m)

	if !strings.Contains(text, "Limited data for year-over-year comparison") {
		t.Errorf("missing YOY placeholder:\n%s", text)
	}
	if !strings.Contains(text, "Insufficient month-to-month data") {
		t.Errorf("missing MoM placeholder:\n%s", text)
	}
}

func TestBuildDataSummaryVolatility(t *testing.T) {
	cases := []struct {
		name string
		moms []float64
		want string
	}{
		{"low", []float64{5, 6, 7}, "Volatility: Low"},
		{"moderate", []float64{0, 15, 30}, "Volatility: Moderate"},
		{"high", []float64{-40, 0, 40}, "Volatility: High"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &metrics.SectionMetrics{SectionName: "Direct"}
			for i := range tc.moms {
				v := tc.moms[i]
				m.Rows = append(m.Rows, metrics.RowMetrics{Label: "M", MoM: &v})
			}
			if text := BuildDataSummary(m); !strings.Contains(text, tc.want) {
				t.Errorf("expected %q in:\n%s", tc.want, text)
			}
		})
	}
}
