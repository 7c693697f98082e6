package genaiadapter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"mesa-campaigns/internal/core/domain"
)

type fakeModels struct {
	answer string
	err    error

	model  string
	prompt string
	config *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	for _, c := range contents {
		for _, p := range c.Parts {
			f.prompt += p.Text
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(f.answer, genai.RoleModel)}},
	}, nil
}

func newTestGenerator(m *fakeModels) *Generator {
	return NewGenerator(m, "", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStrategyGenerate(t *testing.T) {
	m := &fakeModels{answer: "```json\n{\"objectives\": [\"grow signups\"], \"target_audience\": \"developers\"}\n```"}
	g := newTestGenerator(m)

	strategy, err := g.Strategy().Generate(context.Background(), "Launch the new CLI")
	require.NoError(t, err)

	assert.Equal(t, "developers", strategy["target_audience"])
	assert.Equal(t, DefaultModel, m.model)
	assert.Contains(t, m.prompt, "Launch the new CLI")
	assert.Equal(t, "application/json", m.config.ResponseMIMEType)
}

func TestStrategyGenerateRejectsGarbage(t *testing.T) {
	g := newTestGenerator(&fakeModels{answer: "I cannot help with that"})

	_, err := g.Strategy().Generate(context.Background(), "brief")

	assert.Error(t, err)
}

func TestContentGenerateAssemblesEmail(t *testing.T) {
	m := &fakeModels{answer: `Sure! {"subject": "Hi {name}, meet Mesa", "greeting": "Hello {name},", "body": "We built something new.", "cta": "Try it today", "footer": ""}`}
	g := newTestGenerator(m)

	content, err := g.Generate(context.Background(), domain.Strategy{"key_messages": "speed"}, domain.LabelB)
	require.NoError(t, err)

	assert.Equal(t, "Hi {name}, meet Mesa", content.Subject)
	assert.Equal(t, "Hello {name},\n\nWe built something new.\n\nTry it today", content.Body)
	assert.Equal(t, "Best regards,\nMarketing Team\n"+unsubscribeLine, content.Footer)
	assert.Equal(t, "B", content.Metadata["variant"])
	assert.True(t, strings.Contains(m.config.SystemInstruction.Parts[0].Text, "conversational"))

	personal := content.For(domain.Recipient{Name: "Ada"})
	assert.Equal(t, "Hi Ada, meet Mesa", personal.Subject)
}

func TestContentGenerateDefaultsEmptyFields(t *testing.T) {
	g := newTestGenerator(&fakeModels{answer: `{"body": "Short update."}`})

	content, err := g.Generate(context.Background(), domain.Strategy{}, domain.LabelA)
	require.NoError(t, err)

	assert.Equal(t, "Special offer for {name}", content.Subject)
	assert.True(t, strings.HasPrefix(content.Body, "Hello {name},"))
}

func TestGenerateWrapsClientError(t *testing.T) {
	boom := errors.New("quota exceeded")
	g := newTestGenerator(&fakeModels{err: boom})

	_, err := g.Generate(context.Background(), domain.Strategy{}, domain.LabelA)

	assert.ErrorIs(t, err, boom)
}
