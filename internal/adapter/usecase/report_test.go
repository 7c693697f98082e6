package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-campaigns/internal/core/domain"
)

// TestAggregateWinnerByOpenRate uses A with 48 sends and 12 opens against B
// with 50 sends and 18 opens.
func TestAggregateWinnerByOpenRate(t *testing.T) {
	st := dispatchedState(map[domain.Label]int{domain.LabelA: 48, domain.LabelB: 50})
	st.Metrics[domain.LabelA] = domain.MetricsSnapshot{Delivered: 48, Opened: 12, Clicked: 3}
	st.Metrics[domain.LabelB] = domain.MetricsSnapshot{Delivered: 50, Opened: 18, Clicked: 2}

	report := NewReportAggregator("", fixedClock).Aggregate(st)

	assert.Equal(t, domain.MetricOpenRate, report.PrimaryMetric)
	assert.Equal(t, domain.LabelB, report.Winner)
	assert.Equal(t, 25.0, report.Performance[domain.LabelA].OpenRate)
	assert.Equal(t, 36.0, report.Performance[domain.LabelB].OpenRate)
	assert.Equal(t, 6.25, report.Performance[domain.LabelA].ClickRate)
	assert.Equal(t, 25.0, report.Performance[domain.LabelA].ClickThroughRate)
	assert.Equal(t, testNow, report.GeneratedAt)

	assert.Contains(t, report.Insights, "Variant B performed best with 36.0% open rate")
	assert.Contains(t, report.Insights, "B outperformed A by 11.0% in open rate")
	assert.Equal(t, "Scale winning variant B to full audience", report.NextSteps[0])
	assert.Equal(t, "Gather feedback and iterate on messaging", report.NextSteps[len(report.NextSteps)-1])
}

func TestAggregateTieKeepsEarlierLabel(t *testing.T) {
	st := dispatchedState(map[domain.Label]int{domain.LabelA: 10, domain.LabelB: 10, domain.LabelC: 10})
	st.Metrics[domain.LabelA] = domain.MetricsSnapshot{Opened: 2}
	st.Metrics[domain.LabelB] = domain.MetricsSnapshot{Opened: 4}
	st.Metrics[domain.LabelC] = domain.MetricsSnapshot{Opened: 4}

	report := NewReportAggregator(domain.MetricOpenRate, fixedClock).Aggregate(st)

	assert.Equal(t, domain.LabelB, report.Winner)
}

func TestAggregateZeroSends(t *testing.T) {
	st := dispatchedState(map[domain.Label]int{domain.LabelA: 0, domain.LabelB: 0})

	report := NewReportAggregator(domain.MetricOpenRate, fixedClock).Aggregate(st)

	for _, l := range []domain.Label{domain.LabelA, domain.LabelB} {
		v := report.Performance[l]
		assert.Zero(t, v.OpenRate)
		assert.Zero(t, v.ClickRate)
		assert.Zero(t, v.ClickThroughRate)
	}
	assert.Equal(t, domain.LabelA, report.Winner)
	assert.Equal(t, []string{
		"Monitor deliverability and engagement metrics",
		"Gather feedback and iterate on messaging",
	}, report.NextSteps)
}

func TestAggregateCountsOnlySuccessfulSends(t *testing.T) {
	st := dispatchedState(map[domain.Label]int{domain.LabelA: 4})
	rec := st.Dispatch[domain.LabelA]
	rec.Outcomes[3].Success = false
	rec.Outcomes[3].ErrorKind = domain.ErrorKindTerminal
	st.Dispatch[domain.LabelA] = rec
	st.Metrics[domain.LabelA] = domain.MetricsSnapshot{Opened: 1}

	report := NewReportAggregator(domain.MetricOpenRate, fixedClock).Aggregate(st)

	assert.Equal(t, int64(3), report.Performance[domain.LabelA].Sent)
	assert.Equal(t, 33.33, report.Performance[domain.LabelA].OpenRate)
}

func TestAggregateConfigurablePrimaryMetric(t *testing.T) {
	st := dispatchedState(map[domain.Label]int{domain.LabelA: 10, domain.LabelB: 10})
	st.Metrics[domain.LabelA] = domain.MetricsSnapshot{Opened: 6, Clicked: 1}
	st.Metrics[domain.LabelB] = domain.MetricsSnapshot{Opened: 3, Clicked: 2}

	report := NewReportAggregator(domain.MetricClickRate, fixedClock).Aggregate(st)

	assert.Equal(t, domain.MetricClickRate, report.PrimaryMetric)
	assert.Equal(t, domain.LabelB, report.Winner)
}

func TestAggregateRecommendationsAndSummary(t *testing.T) {
	st := dispatchedState(map[domain.Label]int{domain.LabelA: 10})
	st.Strategy = domain.Strategy{"objectives": []any{"grow signups"}}
	st.Metrics[domain.LabelA] = domain.MetricsSnapshot{Opened: 5, Clicked: 1}
	st.Deliverability[domain.LabelA] = domain.CheckResult{
		Spam:            domain.SpamCheck{Score: 24},
		Recommendations: []string{"Reduce spam keywords and improve content quality"},
	}

	report := NewReportAggregator(domain.MetricOpenRate, fixedClock).Aggregate(st)

	assert.Equal(t, []any{"grow signups"}, report.StrategySummary.Objectives)
	assert.Equal(t, "N/A", report.StrategySummary.TargetAudience)
	assert.Equal(t, "N/A", report.StrategySummary.KeyMessages)
	assert.Equal(t, []string{"Variant A: Reduce spam keywords and improve content quality"}, report.Recommendations)
	assert.Contains(t, report.Insights, "Variant A content has high spam risk - consider revising")
}

func TestAggregateHealthyCampaignRecommendation(t *testing.T) {
	st := dispatchedState(map[domain.Label]int{domain.LabelA: 10})
	st.Metrics[domain.LabelA] = domain.MetricsSnapshot{Opened: 5, Clicked: 1}
	st.Deliverability[domain.LabelA] = domain.CheckResult{Recommendations: []string{"Email is ready to send!"}}

	report := NewReportAggregator(domain.MetricOpenRate, fixedClock).Aggregate(st)

	assert.Equal(t, []string{"Campaign is performing well. Continue monitoring and optimize based on results."}, report.Recommendations)
}

func TestResultsDocument(t *testing.T) {
	st := dispatchedState(map[domain.Label]int{domain.LabelA: 4, domain.LabelB: 4})
	later := st.Dispatch[domain.LabelB]
	later.AttemptedAt = testNow.Add(time.Hour)
	st.Dispatch[domain.LabelB] = later
	st.Metrics[domain.LabelA] = domain.MetricsSnapshot{Opened: 2, Clicked: 1}

	agg := NewReportAggregator(domain.MetricOpenRate, fixedClock)
	res := agg.Results(st, agg.Aggregate(st))

	assert.Equal(t, testNow.Format(time.RFC3339), res.StartTime)
	require.Contains(t, res.Variants, domain.LabelA)
	a := res.Variants[domain.LabelA]
	assert.Equal(t, int64(4), a.Sent)
	assert.Equal(t, 50.0, a.Metrics[domain.MetricOpenRate])
	assert.Equal(t, 25.0, a.Metrics[domain.MetricClickRate])
	assert.Equal(t, 50.0, a.Metrics[domain.MetricClickThroughRate])
}
