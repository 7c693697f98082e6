package filestore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-campaigns/internal/core/domain"
)

func readKeys(t *testing.T, path string) (map[string]json.RawMessage, []string) {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &doc))
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return doc, keys
}

func TestSaveResultsLayout(t *testing.T) {
	s, err := NewResultsStore(filepath.Join(t.TempDir(), "results"))
	require.NoError(t, err)

	err = s.SaveResults(context.Background(), "c1", domain.ABTestResults{
		Variants: map[domain.Label]domain.VariantResults{
			domain.LabelA: {Metrics: map[string]float64{"open_rate": 48}, Sent: 100, Opened: 48, Clicked: 12},
		},
		StartTime: "2025-04-01T08:00:00Z",
	})
	require.NoError(t, err)

	doc, keys := readKeys(t, s.ResultsPath("c1"))
	assert.Equal(t, []string{"start_time", "variants"}, keys)

	var variants map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc["variants"], &variants))
	require.Contains(t, variants, "A")
	assert.JSONEq(t, `{"open_rate": 48}`, string(variants["A"]["metrics"]))
	assert.JSONEq(t, `100`, string(variants["A"]["sent"]))
	assert.Contains(t, variants["A"], "converted")
}

func TestSaveReportLayout(t *testing.T) {
	s, err := NewResultsStore(t.TempDir())
	require.NoError(t, err)

	report := domain.Report{
		CampaignID:      "c1",
		GeneratedAt:     time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC),
		StrategySummary: domain.StrategySummary{Objectives: "N/A", TargetAudience: "N/A", KeyMessages: "N/A"},
		Performance:     map[domain.Label]domain.VariantResult{domain.LabelA: {Sent: 10}},
		Deliverability:  map[domain.Label]domain.CheckResult{},
		PrimaryMetric:   domain.MetricOpenRate,
		Winner:          domain.LabelA,
		Insights:        []string{"Variant A had the highest open rate."},
		Recommendations: []string{},
		NextSteps:       []string{},
	}
	require.NoError(t, s.SaveReport(context.Background(), report))

	_, keys := readKeys(t, s.ReportPath("c1"))
	assert.Equal(t, []string{
		"campaign_id", "deliverability", "generated_at", "insights",
		"next_steps", "performance", "recommendations", "strategy_summary",
	}, keys)

	require.NoError(t, s.SaveReport(context.Background(), report))
	entries, err := os.ReadDir(filepath.Dir(s.ReportPath("c1")))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestRejectsUnsafeCampaignID(t *testing.T) {
	s, err := NewResultsStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, s.SaveResults(context.Background(), "../c1", domain.ABTestResults{}))
	assert.Error(t, s.SaveReport(context.Background(), domain.Report{CampaignID: "a/../../b"}))
}
