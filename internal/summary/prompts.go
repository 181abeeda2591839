// Package summary turns calculated section metrics into executive narrative
// text, using an AI provider with a deterministic fallback.
package summary

import (
	"fmt"
	"math"
	"strings"

	"github.com/trafficlens/trafficlens/internal/metrics"
)

const systemPrompt = `You are an expert data analyst creating executive summaries for GA4 traffic reports.`

const executivePromptTemplate = `**Section**: %s

**Data Analysis**:
%s

**Your Task**:
Generate a professional, 3-5 sentence executive summary that:

1. Describes the Year-over-Year (YOY) trend between the two most recent years
   - Is there growth, decline, or mixed performance?
   - What is the overall direction?

2. Describes the Month-over-Month (LM) behavior within the latest year
   - Is the trend stable, volatile, increasing, or decreasing?
   - Are there notable month-to-month changes?

3. Uses business-friendly, executive-level language
   - Avoid technical jargon
   - Focus on insights and implications
   - Be concise and actionable

**Important Rules**:
- Do NOT mention missing data, errors, or calculation issues
- Do NOT use phrases like "insufficient data" or "unable to calculate"
- If data is limited, focus on what IS available
- Maintain a professional, confident tone
- Use past tense for historical data
- Keep the summary between 3-5 sentences

**Tone**: Professional, analytical, executive-focused

**Output**: Provide ONLY the summary text, no additional formatting or commentary.

Summary:`

const emptySectionPromptTemplate = `**Section**: %s

**Observation**: This section shows no measurable traffic or engagement during the analyzed period.

**Your Task**:
Generate a professional, 2-3 sentence executive summary that:

1. States that no measurable activity was recorded
2. Suggests this may indicate:
   - Inactive channel
   - Data collection issues
   - Channel not utilized during this period
3. Recommends monitoring or investigation if appropriate

**Tone**: Professional, neutral, non-alarming

**Output**: Provide ONLY the summary text, no additional formatting or commentary.

Summary:`

// BuildDataSummary renders the calculated metrics of a section into the
// structured text block the executive prompt consumes.
func BuildDataSummary(m *metrics.SectionMetrics) string {
	var b strings.Builder

	yoy := collect(m, func(r metrics.RowMetrics) *float64 { return r.YoY })
	if len(yoy) > 0 {
		avg, min, max := stats(yoy)
		b.WriteString("YOY Performance (previous year → latest year):\n")
		fmt.Fprintf(&b, "  - Average: %.2f%%\n", avg)
		fmt.Fprintf(&b, "  - Range: %.2f%% to %.2f%%\n", min, max)
		fmt.Fprintf(&b, "  - Months analyzed: %d\n", len(yoy))
	} else {
		b.WriteString("YOY Performance: Limited data for year-over-year comparison\n")
	}

	b.WriteString("\n")

	mom := collect(m, func(r metrics.RowMetrics) *float64 { return r.MoM })
	if len(mom) > 0 {
		avg, min, max := stats(mom)
		b.WriteString("Month-over-Month Performance (latest year):\n")
		fmt.Fprintf(&b, "  - Average: %.2f%%\n", avg)
		fmt.Fprintf(&b, "  - Range: %.2f%% to %.2f%%\n", min, max)
		fmt.Fprintf(&b, "  - Months with data: %d\n", len(mom))

		if len(mom) > 1 {
			sd := stddev(mom)
			switch {
			case sd > 20:
				fmt.Fprintf(&b, "  - Volatility: High (σ=%.2f)\n", sd)
			case sd > 10:
				fmt.Fprintf(&b, "  - Volatility: Moderate (σ=%.2f)\n", sd)
			default:
				fmt.Fprintf(&b, "  - Volatility: Low (σ=%.2f)\n", sd)
			}
		}
	} else {
		b.WriteString("Month-over-Month Performance: Insufficient month-to-month data\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func collect(m *metrics.SectionMetrics, pick func(metrics.RowMetrics) *float64) []float64 {
	var vals []float64
	for _, r := range m.Rows {
		if v := pick(r); v != nil {
			vals = append(vals, *v)
		}
	}
	return vals
}

func stats(vals []float64) (avg, min, max float64) {
	min, max = vals[0], vals[0]
	sum := 0.0
	for _, v := range vals {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return sum / float64(len(vals)), min, max
}

func stddev(vals []float64) float64 {
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))

	ss := 0.0
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	// Sample standard deviation
	return math.Sqrt(ss / float64(len(vals)-1))
}
