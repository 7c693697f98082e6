package usecase

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"mesa-campaigns/internal/core/domain"
)

// ReportAggregator turns reconciled counters into rates, a winner and
// human readable guidance. Output depends only on the state and the clock.
type ReportAggregator struct {
	primaryMetric string
	now           func() time.Time
}

// NewReportAggregator creates an aggregator ranking variants by
// primaryMetric, falling back to open rate for unknown names.
func NewReportAggregator(primaryMetric string, now func() time.Time) *ReportAggregator {
	switch primaryMetric {
	case domain.MetricOpenRate, domain.MetricClickRate, domain.MetricConversionRate, domain.MetricClickThroughRate:
	default:
		primaryMetric = domain.MetricOpenRate
	}
	return &ReportAggregator{primaryMetric: primaryMetric, now: now}
}

// Aggregate builds the campaign report. Labels are always visited in the
// fixed A, B, C order so ties resolve to the earlier label.
func (a *ReportAggregator) Aggregate(st domain.CampaignState) domain.Report {
	labels := st.PresentLabels()
	perf := make(map[domain.Label]domain.VariantResult, len(labels))
	deliv := make(map[domain.Label]domain.CheckResult, len(labels))
	for _, l := range labels {
		perf[l] = variantResult(int64(st.Dispatch[l].Succeeded()), st.Metrics[l])
		if c, ok := st.Deliverability[l]; ok {
			deliv[l] = c
		}
	}

	return domain.Report{
		CampaignID:      st.ID,
		GeneratedAt:     a.now(),
		StrategySummary: summarize(st.Strategy),
		Performance:     perf,
		Deliverability:  deliv,
		PrimaryMetric:   a.primaryMetric,
		Winner:          a.winner(labels, perf),
		Insights:        insights(labels, perf, deliv),
		Recommendations: recommendations(labels, perf, deliv),
		NextSteps:       nextSteps(labels, perf),
	}
}

// Results builds the per-campaign results document from a report.
func (a *ReportAggregator) Results(st domain.CampaignState, report domain.Report) domain.ABTestResults {
	out := domain.ABTestResults{
		Variants:  make(map[domain.Label]domain.VariantResults, len(report.Performance)),
		StartTime: startTime(st).Format(time.RFC3339),
	}
	for l, v := range report.Performance {
		out.Variants[l] = domain.VariantResults{
			Metrics: map[string]float64{
				domain.MetricOpenRate:         v.OpenRate,
				domain.MetricClickRate:        v.ClickRate,
				domain.MetricConversionRate:   v.ConversionRate,
				domain.MetricClickThroughRate: v.ClickThroughRate,
			},
			Sent:      v.Sent,
			Opened:    v.Opened,
			Clicked:   v.Clicked,
			Converted: v.Converted,
		}
	}
	return out
}

func (a *ReportAggregator) winner(labels []domain.Label, perf map[domain.Label]domain.VariantResult) domain.Label {
	var winner domain.Label
	best := -1.0
	for _, l := range labels {
		if v := perf[l].Rate(a.primaryMetric); v > best {
			best = v
			winner = l
		}
	}
	return winner
}

func variantResult(sent int64, m domain.MetricsSnapshot) domain.VariantResult {
	return domain.VariantResult{
		Sent:             sent,
		Opened:           m.Opened,
		Clicked:          m.Clicked,
		Converted:        m.Converted,
		OpenRate:         percent(m.Opened, sent),
		ClickRate:        percent(m.Clicked, sent),
		ConversionRate:   percent(m.Converted, sent),
		ClickThroughRate: percent(m.Clicked, m.Opened),
	}
}

// percent returns part/whole as a percentage rounded to two decimals, or 0
// for an empty whole.
func percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*100*100) / 100
}

// formatRate prints whole numbers with one decimal ("36.0") and keeps up to
// two decimals otherwise.
func formatRate(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func summarize(s domain.Strategy) domain.StrategySummary {
	get := func(key string) any {
		if v, ok := s[key]; ok && v != nil {
			return v
		}
		return "N/A"
	}
	return domain.StrategySummary{
		Objectives:     get("objectives"),
		TargetAudience: get("target_audience"),
		KeyMessages:    get("key_messages"),
	}
}

func insights(labels []domain.Label, perf map[domain.Label]domain.VariantResult, deliv map[domain.Label]domain.CheckResult) []string {
	out := []string{}

	var best domain.Label
	bestRate := 0.0
	for _, l := range labels {
		if r := perf[l].OpenRate; r > bestRate {
			bestRate = r
			best = l
		}
	}
	if best != "" {
		out = append(out, fmt.Sprintf("Variant %s performed best with %s%% open rate", best, formatRate(bestRate)))
	}

	if len(labels) >= 2 {
		first, second := labels[0], labels[1]
		a, b := perf[first].OpenRate, perf[second].OpenRate
		switch {
		case a > b:
			out = append(out, fmt.Sprintf("%s outperformed %s by %.1f%% in open rate", first, second, a-b))
		case b > a:
			out = append(out, fmt.Sprintf("%s outperformed %s by %.1f%% in open rate", second, first, b-a))
		}
	}

	for _, l := range labels {
		c, ok := deliv[l]
		if !ok {
			continue
		}
		switch domain.RiskFor(c.Spam.Score) {
		case domain.RiskLow:
			out = append(out, fmt.Sprintf("Variant %s content passed spam filters with low risk score", l))
		case domain.RiskMedium:
			out = append(out, fmt.Sprintf("Variant %s content has medium spam risk", l))
		default:
			out = append(out, fmt.Sprintf("Variant %s content has high spam risk - consider revising", l))
		}
	}
	return out
}

func recommendations(labels []domain.Label, perf map[domain.Label]domain.VariantResult, deliv map[domain.Label]domain.CheckResult) []string {
	out := []string{}
	for _, l := range labels {
		v := perf[l]
		if v.OpenRate < 20 {
			out = append(out, fmt.Sprintf("Variant %s: Low open rate - consider improving subject line", l))
		}
		if v.ClickRate < 2 {
			out = append(out, fmt.Sprintf("Variant %s: Low click rate - strengthen call-to-action", l))
		}
	}
	for _, l := range labels {
		for _, rec := range deliv[l].Recommendations {
			if rec == readyToSend {
				continue
			}
			out = append(out, fmt.Sprintf("Variant %s: %s", l, rec))
		}
	}
	if len(out) == 0 {
		out = append(out, "Campaign is performing well. Continue monitoring and optimize based on results.")
	}
	return out
}

func nextSteps(labels []domain.Label, perf map[domain.Label]domain.VariantResult) []string {
	out := []string{}

	var best domain.Label
	bestScore := 0.0
	for _, l := range labels {
		if s := perf[l].OpenRate + perf[l].ClickRate; s > bestScore {
			bestScore = s
			best = l
		}
	}
	if best != "" {
		out = append(out,
			fmt.Sprintf("Scale winning variant %s to full audience", best),
			"Run follow-up campaign with optimized content",
			"A/B test new subject lines based on learnings",
		)
	}
	return append(out,
		"Monitor deliverability and engagement metrics",
		"Gather feedback and iterate on messaging",
	)
}

// startTime is the earliest dispatch attempt, or the creation time when
// nothing was attempted.
func startTime(st domain.CampaignState) time.Time {
	start := time.Time{}
	for _, rec := range st.Dispatch {
		if rec.AttemptedAt.IsZero() {
			continue
		}
		if start.IsZero() || rec.AttemptedAt.Before(start) {
			start = rec.AttemptedAt
		}
	}
	if start.IsZero() {
		return st.CreatedAt
	}
	return start
}
