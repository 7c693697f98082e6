package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// ResultsStore writes <id>_ab_test.json and <id>_report.json into a
// directory. Files are replaced atomically so readers never observe a
// partial document.
type ResultsStore struct {
	dir string
}

var _ port.ResultsStore = (*ResultsStore)(nil)

// NewResultsStore returns a store writing into dir, creating it when
// missing.
func NewResultsStore(dir string) (*ResultsStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir: %w", err)
	}
	return &ResultsStore{dir: dir}, nil
}

// ResultsPath is the location of the results document of a campaign.
func (s *ResultsStore) ResultsPath(campaignID string) string {
	return filepath.Join(s.dir, campaignID+"_ab_test.json")
}

// ReportPath is the location of the report document of a campaign.
func (s *ResultsStore) ReportPath(campaignID string) string {
	return filepath.Join(s.dir, campaignID+"_report.json")
}

// SaveResults writes the A/B test results of a campaign to ResultsPath.
// The campaign id must be a local file name.
func (s *ResultsStore) SaveResults(_ context.Context, campaignID string, res domain.ABTestResults) error {
	if !filepath.IsLocal(campaignID) {
		return fmt.Errorf("invalid campaign id %q", campaignID)
	}
	return writeJSON(s.ResultsPath(campaignID), res)
}

// reportDocument is the on-disk report layout.
type reportDocument struct {
	CampaignID      string                                `json:"campaign_id"`
	GeneratedAt     time.Time                             `json:"generated_at"`
	StrategySummary domain.StrategySummary                `json:"strategy_summary"`
	Performance     map[domain.Label]domain.VariantResult `json:"performance"`
	Deliverability  map[domain.Label]domain.CheckResult   `json:"deliverability"`
	Insights        []string                              `json:"insights"`
	Recommendations []string                              `json:"recommendations"`
	NextSteps       []string                              `json:"next_steps"`
}

// SaveReport writes report to ReportPath of its campaign.
func (s *ResultsStore) SaveReport(_ context.Context, report domain.Report) error {
	if !filepath.IsLocal(report.CampaignID) {
		return fmt.Errorf("invalid campaign id %q", report.CampaignID)
	}
	return writeJSON(s.ReportPath(report.CampaignID), reportDocument{
		CampaignID:      report.CampaignID,
		GeneratedAt:     report.GeneratedAt,
		StrategySummary: report.StrategySummary,
		Performance:     report.Performance,
		Deliverability:  report.Deliverability,
		Insights:        report.Insights,
		Recommendations: report.Recommendations,
		NextSteps:       report.NextSteps,
	})
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
