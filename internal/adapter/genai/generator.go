package genaiadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

const DefaultModel = "gemini-2.5-flash"

const unsubscribeLine = "No longer interested? Reply with unsubscribe to opt out."

// Models is the slice of the genai client the generator calls.
type Models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator asks a Gemini model for campaign strategies and variant copy.
type Generator struct {
	models Models
	model  string
	log    *slog.Logger
}

var (
	_ port.StrategyGenerator = StrategyGenerator{}
	_ port.ContentGenerator  = (*Generator)(nil)
)

// NewClient builds a genai client for the Gemini API.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, errors.New("genai API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return client, nil
}

// NewGenerator returns a content generator calling model, DefaultModel when
// empty.
func NewGenerator(models Models, model string, log *slog.Logger) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{models: models, model: model, log: log}
}

const strategyInstruction = `You are an expert email marketing strategist. Analyze the marketing brief and create a campaign strategy.
Return a single JSON object with these keys:
objectives, target_audience, key_messages, email_sequence, call_to_actions, success_metrics.`

const contentInstruction = `You are an expert email copywriter. Write a marketing email that has a catchy subject line,
a greeting, the key messages of the strategy, one clear call to action and no spam trigger words.
Use the literal placeholder {name} wherever the recipient's name belongs.
Style: %s
Return a single JSON object with the keys: subject, greeting, body, cta, footer.`

var variantStyles = map[domain.Label]string{
	domain.LabelA: "Write a professional, direct email with a clear call to action.",
	domain.LabelB: "Write a friendly, conversational email with engaging storytelling.",
	domain.LabelC: "Write a concise, benefit-focused email with urgency.",
}

// Strategy returns a port.StrategyGenerator backed by g. Go does not allow
// two Generate methods on one type, so strategy generation is exposed
// through this view.
func (g *Generator) Strategy() StrategyGenerator {
	return StrategyGenerator{g: g}
}

// StrategyGenerator is the strategy half of Generator.
type StrategyGenerator struct {
	g *Generator
}

// Generate asks the model for a JSON strategy derived from brief.
func (s StrategyGenerator) Generate(ctx context.Context, brief string) (domain.Strategy, error) {
	text, err := s.g.complete(ctx, strategyInstruction, "Marketing brief:\n"+brief)
	if err != nil {
		return nil, err
	}
	var strategy domain.Strategy
	if err := json.Unmarshal([]byte(extractJSON(text)), &strategy); err != nil {
		return nil, fmt.Errorf("decode strategy: %w", err)
	}
	if len(strategy) == 0 {
		return nil, errors.New("model returned an empty strategy")
	}
	return strategy, nil
}

type emailDraft struct {
	Subject  string `json:"subject"`
	Greeting string `json:"greeting"`
	Body     string `json:"body"`
	CTA      string `json:"cta"`
	Footer   string `json:"footer"`
}

// Generate writes the copy for one variant.
func (g *Generator) Generate(ctx context.Context, strategy domain.Strategy, label domain.Label) (domain.Content, error) {
	style, ok := variantStyles[label]
	if !ok {
		style = variantStyles[domain.LabelA]
	}
	encoded, err := json.MarshalIndent(strategy, "", "  ")
	if err != nil {
		return domain.Content{}, fmt.Errorf("encode strategy: %w", err)
	}

	text, err := g.complete(ctx, fmt.Sprintf(contentInstruction, style),
		fmt.Sprintf("Campaign strategy:\n%s\n\nWrite the email for variant %s.", encoded, label))
	if err != nil {
		return domain.Content{}, err
	}

	var draft emailDraft
	if err := json.Unmarshal([]byte(extractJSON(text)), &draft); err != nil {
		return domain.Content{}, fmt.Errorf("decode email for variant %s: %w", label, err)
	}
	return assemble(draft, label, g.model), nil
}

func (g *Generator) complete(ctx context.Context, instruction, prompt string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr[float32](0.7),
	})
	if err != nil {
		return "", fmt.Errorf("genai generate: %w", err)
	}
	if resp == nil {
		return "", errors.New("genai returned no response")
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("genai returned an empty answer")
	}
	g.log.Debug("genai answer", slog.String("model", g.model), slog.Int("length", len(text)))
	return text, nil
}

func assemble(d emailDraft, label domain.Label, model string) domain.Content {
	subject := strings.TrimSpace(d.Subject)
	if subject == "" {
		subject = "Special offer for " + domain.NamePlaceholder
	}
	greeting := strings.TrimSpace(d.Greeting)
	if greeting == "" {
		greeting = "Hello " + domain.NamePlaceholder + ","
	}
	cta := strings.TrimSpace(d.CTA)
	if cta == "" {
		cta = "Learn more"
	}
	footer := strings.TrimSpace(d.Footer)
	if footer == "" {
		footer = "Best regards,\nMarketing Team"
	}
	if !strings.Contains(strings.ToLower(footer), "unsubscribe") {
		footer += "\n" + unsubscribeLine
	}

	parts := []string{greeting}
	if b := strings.TrimSpace(d.Body); b != "" {
		parts = append(parts, b)
	}
	parts = append(parts, cta)

	return domain.Content{
		Subject: subject,
		Body:    strings.Join(parts, "\n\n"),
		Footer:  footer,
		Metadata: map[string]string{
			"variant":   string(label),
			"generator": "genai",
			"model":     model,
		},
	}
}

// extractJSON strips markdown fences and any prose around the outermost
// JSON object.
func extractJSON(text string) string {
	if i := strings.Index(text, "```json"); i >= 0 {
		rest := text[i+len("```json"):]
		if j := strings.Index(rest, "```"); j >= 0 {
			return strings.TrimSpace(rest[:j])
		}
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
