package domain

import "time"

// Metric names usable as the primary winner metric.
const (
	MetricOpenRate         = "open_rate"
	MetricClickRate        = "click_rate"
	MetricConversionRate   = "conversion_rate"
	MetricClickThroughRate = "click_through_rate"
)

// VariantResult holds the counters and derived rates of one variant.
type VariantResult struct {
	Sent             int64   `json:"sent"`
	Opened           int64   `json:"opened"`
	Clicked          int64   `json:"clicked"`
	Converted        int64   `json:"converted"`
	OpenRate         float64 `json:"open_rate"`
	ClickRate        float64 `json:"click_rate"`
	ConversionRate   float64 `json:"conversion_rate"`
	ClickThroughRate float64 `json:"click_through_rate"`
}

// Rate returns the named rate, or 0 for an unknown metric.
func (v VariantResult) Rate(metric string) float64 {
	switch metric {
	case MetricOpenRate:
		return v.OpenRate
	case MetricClickRate:
		return v.ClickRate
	case MetricConversionRate:
		return v.ConversionRate
	case MetricClickThroughRate:
		return v.ClickThroughRate
	default:
		return 0
	}
}

// StrategySummary is the strategy excerpt carried in reports.
type StrategySummary struct {
	Objectives     any `json:"objectives"`
	TargetAudience any `json:"target_audience"`
	KeyMessages    any `json:"key_messages"`
}

// Report is the aggregated outcome of a finalized campaign.
type Report struct {
	CampaignID      string                  `json:"campaign_id"`
	GeneratedAt     time.Time               `json:"generated_at"`
	StrategySummary StrategySummary         `json:"strategy_summary"`
	Performance     map[Label]VariantResult `json:"performance"`
	Deliverability  map[Label]CheckResult   `json:"deliverability"`
	PrimaryMetric   string                  `json:"primary_metric"`
	Winner          Label                   `json:"winner,omitempty"`
	Insights        []string                `json:"insights"`
	Recommendations []string                `json:"recommendations"`
	NextSteps       []string                `json:"next_steps"`
}

// VariantResults is one entry of the per-campaign results document.
type VariantResults struct {
	Metrics   map[string]float64 `json:"metrics"`
	Sent      int64              `json:"sent"`
	Opened    int64              `json:"opened"`
	Clicked   int64              `json:"clicked"`
	Converted int64              `json:"converted"`
}

// ABTestResults is the per-campaign results document consumed by existing
// result readers. Field names and nesting are part of the file format.
type ABTestResults struct {
	Variants  map[Label]VariantResults `json:"variants"`
	StartTime string                   `json:"start_time"`
}
