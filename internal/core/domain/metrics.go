package domain

// MetricsSnapshot holds the engagement counters observed for one variant.
type MetricsSnapshot struct {
	Delivered    int64 `json:"delivered"`
	Opened       int64 `json:"opened"`
	Clicked      int64 `json:"clicked"`
	Bounced      int64 `json:"bounced"`
	SpamReports  int64 `json:"spam_reports"`
	Unsubscribes int64 `json:"unsubscribes"`
	Converted    int64 `json:"converted"`
}

// Merge combines two observations of the same variant. Every counter keeps
// the larger value so that a stale observation never lowers what was
// already recorded.
func (m MetricsSnapshot) Merge(other MetricsSnapshot) MetricsSnapshot {
	return MetricsSnapshot{
		Delivered:    max(m.Delivered, nonNegative(other.Delivered)),
		Opened:       max(m.Opened, nonNegative(other.Opened)),
		Clicked:      max(m.Clicked, nonNegative(other.Clicked)),
		Bounced:      max(m.Bounced, nonNegative(other.Bounced)),
		SpamReports:  max(m.SpamReports, nonNegative(other.SpamReports)),
		Unsubscribes: max(m.Unsubscribes, nonNegative(other.Unsubscribes)),
		Converted:    max(m.Converted, nonNegative(other.Converted)),
	}
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
