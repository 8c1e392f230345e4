package suggest

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/okian/maturity/internal/domain/model"
)

const (
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 30 * time.Second
)

// generateFunc sends a prompt and returns the raw text reply.
type generateFunc func(ctx context.Context, prompt string) (string, error)

// Gemini asks a Gemini model for element suggestions using structured JSON output.
type Gemini struct {
	model    string
	count    int
	timeout  time.Duration
	generate generateFunc
}

// Option configures Gemini.
type Option func(*Gemini)

// WithModel overrides the model name.
func WithModel(name string) Option {
	return func(g *Gemini) {
		if name != "" {
			g.model = name
		}
	}
}

// WithCount sets how many suggestions to ask for.
func WithCount(n int) Option {
	return func(g *Gemini) {
		if n > 0 {
			g.count = n
		}
	}
}

// WithTimeout bounds a single request.
func WithTimeout(d time.Duration) Option {
	return func(g *Gemini) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// withGenerate replaces the transport; used by tests.
func withGenerate(fn generateFunc) Option {
	return func(g *Gemini) { g.generate = fn }
}

// NewGemini creates a Gemini suggester for apiKey.
func NewGemini(ctx context.Context, apiKey string, opts ...Option) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	g := &Gemini{model: defaultModel, count: DefaultCount, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(g)
	}
	if g.generate != nil {
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	}
	g.generate = func(ctx context.Context, prompt string) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}
	return g, nil
}

// responseSchema describes an array of {name, description} objects.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name": {
					Type:        genai.TypeString,
					Description: "The name of the new assessment element.",
				},
				"description": {
					Type:        genai.TypeString,
					Description: "A brief description of what this element measures.",
				},
			},
			Required: []string{"name", "description"},
		},
	}
}

// Provider implements Suggester.
func (g *Gemini) Provider() string { return "gemini" }

// Model returns the configured model name.
func (g *Gemini) Model() string { return g.model }

// Suggest implements Suggester. Any transport or decoding failure is reported
// as ErrSuggestionFailed. There is no retry.
func (g *Gemini) Suggest(ctx context.Context, dimensionName string, existing []string) ([]model.Suggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.generate(ctx, Prompt(dimensionName, existing, g.count))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSuggestionFailed, err)
	}
	out, err := decode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSuggestionFailed, err)
	}
	return out, nil
}
