package suggest

import (
	"context"

	"github.com/okian/maturity/internal/domain/model"
)

// Placeholder returns fixed suggestions. It stands in when no API key is configured.
type Placeholder struct{}

// Provider implements Suggester.
func (Placeholder) Provider() string { return "placeholder" }

// Suggest implements Suggester.
func (Placeholder) Suggest(context.Context, string, []string) ([]model.Suggestion, error) {
	return []model.Suggestion{
		{Name: "AI Suggestion 1", Description: "This is a mock suggestion for UI testing."},
		{Name: "AI Suggestion 2", Description: "Enable this by setting your API key."},
	}, nil
}
