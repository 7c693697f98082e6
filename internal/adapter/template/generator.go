package templategen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// Generator produces strategies and variant copy offline from fixed
// templates. It is used when no model API key is configured.
type Generator struct {
	subjects map[domain.Label]*template.Template
	bodies   map[domain.Label]*template.Template
}

var _ port.ContentGenerator = (*Generator)(nil)

const footer = "Best regards,\nMarketing Team\nNo longer interested? Reply with unsubscribe to opt out."

var (
	subjectSources = map[domain.Label]string{
		domain.LabelA: `{{.Headline}}: what's new for you`,
		domain.LabelB: `{name}, we think you'll like this`,
		domain.LabelC: `{{.Headline}} for {name}`,
	}
	bodySources = map[domain.Label]string{
		domain.LabelA: `Hello {name},

{{.Objective}}
{{range .Messages}}
- {{.}}{{end}}

{{.CTA}}`,
		domain.LabelB: `Hi {name},

We've been working on something and wanted you to hear it from us first. {{.Objective}}
{{range .Messages}}
{{.}}{{end}}

{{.CTA}}`,
		domain.LabelC: `Hello {name},

{{.Objective}}{{with index .Messages 0}} {{.}}{{end}}

{{.CTA}}`,
	}
)

// NewGenerator parses the built-in variant templates.
func NewGenerator() (*Generator, error) {
	g := &Generator{
		subjects: make(map[domain.Label]*template.Template, len(domain.Labels)),
		bodies:   make(map[domain.Label]*template.Template, len(domain.Labels)),
	}
	for _, l := range domain.Labels {
		s, err := template.New("subject_" + string(l)).Parse(subjectSources[l])
		if err != nil {
			return nil, fmt.Errorf("parse subject template %s: %w", l, err)
		}
		b, err := template.New("body_" + string(l)).Parse(bodySources[l])
		if err != nil {
			return nil, fmt.Errorf("parse body template %s: %w", l, err)
		}
		g.subjects[l] = s
		g.bodies[l] = b
	}
	return g, nil
}

// Strategy returns the strategy view of g.
func (g *Generator) Strategy() StrategyGenerator {
	return StrategyGenerator{}
}

// StrategyGenerator derives a minimal strategy directly from the brief.
type StrategyGenerator struct{}

var _ port.StrategyGenerator = StrategyGenerator{}

func (StrategyGenerator) Generate(_ context.Context, brief string) (domain.Strategy, error) {
	brief = strings.TrimSpace(brief)
	if brief == "" {
		return nil, errors.New("brief is empty")
	}
	sentences := splitSentences(brief)
	return domain.Strategy{
		"objectives":      sentences[0],
		"target_audience": "All subscribers",
		"key_messages":    sentences,
		"call_to_actions": []string{"Learn more"},
		"success_metrics": []string{domain.MetricOpenRate, domain.MetricClickRate},
	}, nil
}

type view struct {
	Headline  string
	Objective string
	Messages  []string
	CTA       string
}

// Generate renders the templates of label with values read from strategy.
func (g *Generator) Generate(_ context.Context, strategy domain.Strategy, label domain.Label) (domain.Content, error) {
	st, ok := g.subjects[label]
	if !ok {
		return domain.Content{}, fmt.Errorf("no template for variant %q", label)
	}

	v := view{
		Objective: firstString(strategy["objectives"], "We have an update for you."),
		Messages:  stringList(strategy["key_messages"]),
		CTA:       firstString(strategy["call_to_actions"], "Learn more"),
	}
	if len(v.Messages) == 0 {
		v.Messages = []string{v.Objective}
	}
	v.Headline = headline(v.Objective)

	var subject, body bytes.Buffer
	if err := st.Execute(&subject, v); err != nil {
		return domain.Content{}, fmt.Errorf("render subject %s: %w", label, err)
	}
	if err := g.bodies[label].Execute(&body, v); err != nil {
		return domain.Content{}, fmt.Errorf("render body %s: %w", label, err)
	}

	return domain.Content{
		Subject:  strings.TrimSpace(subject.String()),
		Body:     strings.TrimSpace(body.String()),
		Footer:   footer,
		Metadata: map[string]string{"variant": string(label), "generator": "template"},
	}, nil
}

func splitSentences(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '.' || r == '!' || r == '?' || r == '\n' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f+".")
		}
	}
	if len(out) == 0 {
		out = append(out, s)
	}
	return out
}

func headline(objective string) string {
	words := strings.Fields(strings.TrimRight(objective, ".!?"))
	if len(words) > 6 {
		words = words[:6]
	}
	if len(words) == 0 {
		return "News"
	}
	h := strings.Join(words, " ")
	return strings.ToUpper(h[:1]) + h[1:]
}

func firstString(v any, fallback string) string {
	if list := stringList(v); len(list) > 0 {
		return list[0]
	}
	return fallback
}

func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		if t = strings.TrimSpace(t); t != "" {
			return []string{t}
		}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return nil
}
