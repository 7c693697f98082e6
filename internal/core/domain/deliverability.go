package domain

// RiskLevel is the spam-risk band of a content score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RiskFor maps a spam score to its band: below 10 is low, below 20 medium,
// anything else high.
func RiskFor(score int) RiskLevel {
	switch {
	case score < 10:
		return RiskLow
	case score < 20:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// SpamCheck is the content heuristic part of a deliverability check.
type SpamCheck struct {
	Score     int       `json:"spam_score"`
	RiskLevel RiskLevel `json:"risk_level"`
	Warnings  []string  `json:"warnings"`
	Issues    []string  `json:"issues"`
	Passed    bool      `json:"passed"`
}

// ComplianceCheck reports opt-out and sender identification findings.
type ComplianceCheck struct {
	Compliant          bool     `json:"compliant"`
	Issues             []string `json:"issues"`
	UnsubscribePresent bool     `json:"unsubscribe_present"`
	SenderInfoPresent  bool     `json:"sender_info_present"`
	SubjectClear       bool     `json:"subject_clear"`
}

// RecipientValidation summarises address validation of a group.
type RecipientValidation struct {
	Total          int      `json:"total"`
	Valid          int      `json:"valid"`
	Invalid        int      `json:"invalid"`
	InvalidEmails  []string `json:"invalid_emails,omitempty"`
	ValidationRate float64  `json:"validation_rate"`
}

// CheckResult is the advisory deliverability verdict for one variant. It
// is informational only and never gates dispatch.
type CheckResult struct {
	Passed          bool                `json:"passed"`
	Score           int                 `json:"score"`
	Warnings        []string            `json:"warnings"`
	Issues          []string            `json:"issues"`
	Spam            SpamCheck           `json:"spam_check"`
	Compliance      ComplianceCheck     `json:"compliance_check"`
	Validation      RecipientValidation `json:"validation_check"`
	Recommendations []string            `json:"recommendations"`
}
