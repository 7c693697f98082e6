package csvaudience

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

const (
	DefaultLimit        = 50
	highEngagementScore = 7
)

// Provider selects recipients from CSV files stored under a base
// directory. The audience reference of a campaign is the file name
// relative to that directory.
//
// Recognised columns are email (required), name, recipient_id or id,
// subscribed and engagement_score. Rows without a usable address or with
// subscribed set to a false value are skipped. When engagement scores are
// present the highly engaged rows are preferred.
type Provider struct {
	dir        string
	defaultRef string
	limit      int
}

var _ port.SegmentationProvider = (*Provider)(nil)

// NewProvider reads audience files from dir. defaultRef is used when a
// campaign names no audience; limit caps the selection at DefaultLimit when
// not positive.
func NewProvider(dir, defaultRef string, limit int) *Provider {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Provider{dir: dir, defaultRef: defaultRef, limit: limit}
}

type row struct {
	recipient domain.Recipient
	score     float64
	hasScore  bool
}

// SelectAudience returns the subscribed recipients of audienceRef, engaged
// ones first, up to the configured limit.
func (p *Provider) SelectAudience(ctx context.Context, _ domain.Strategy, audienceRef string) ([]domain.Recipient, error) {
	if audienceRef == "" {
		audienceRef = p.defaultRef
	}
	if audienceRef == "" || !filepath.IsLocal(audienceRef) {
		return nil, fmt.Errorf("invalid audience reference %q", audienceRef)
	}

	f, err := os.Open(filepath.Join(p.dir, audienceRef))
	if err != nil {
		return nil, fmt.Errorf("open audience: %w", err)
	}
	defer f.Close()

	rows, err := readRows(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("read audience %s: %w", audienceRef, err)
	}

	selected := rows
	var high []row
	for _, r := range rows {
		if r.hasScore && r.score >= highEngagementScore {
			high = append(high, r)
		}
	}
	if len(high) > 0 {
		selected = high
	}
	if len(selected) > p.limit {
		selected = selected[:p.limit]
	}

	out := make([]domain.Recipient, 0, len(selected))
	for _, r := range selected {
		out = append(out, r.recipient)
	}
	return out, nil
}

func readRows(ctx context.Context, r io.Reader) ([]row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["email"]; !ok {
		return nil, errors.New("missing email column")
	}

	get := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		email := get(rec, "email")
		if !strings.Contains(email, "@") || !subscribed(get(rec, "subscribed")) {
			continue
		}
		id := get(rec, "recipient_id")
		if id == "" {
			id = get(rec, "id")
		}
		name := get(rec, "name")
		if _, ok := cols["name"]; !ok {
			name = nameFromEmail(email)
		}

		r := row{recipient: domain.Recipient{ID: id, Email: email, Name: name}}
		if s := get(rec, "engagement_score"); s != "" {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				r.score, r.hasScore = v, true
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func subscribed(v string) bool {
	switch strings.ToLower(v) {
	case "false", "0", "no", "n":
		return false
	default:
		return true
	}
}

// nameFromEmail turns "jane.doe@example.com" into "Jane Doe".
func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	words := strings.Fields(strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	if len(words) == 0 {
		return "Customer"
	}
	return strings.Join(words, " ")
}
