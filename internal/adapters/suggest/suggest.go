// Package suggest proposes new assessment elements for a dimension.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/okian/maturity/internal/domain/model"
)

// DefaultCount is how many suggestions are requested when none is configured.
const DefaultCount = 3

// Suggester proposes elements for the named dimension, given the names of the
// elements it already has.
type Suggester interface {
	Suggest(ctx context.Context, dimensionName string, existing []string) ([]model.Suggestion, error)
	// Provider names the backend for logs and metrics.
	Provider() string
}

// Prompt builds the instruction sent to the model.
func Prompt(dimensionName string, existing []string, count int) string {
	if count <= 0 {
		count = DefaultCount
	}
	return fmt.Sprintf(
		"Based on the e-government maturity dimension %q, and considering the existing assessment elements [%s], "+
			"suggest %d new, distinct, and relevant assessment elements. "+
			"For each suggestion, provide a brief description. The elements should be specific and measurable. "+
			"Your response must be a JSON array of objects.",
		dimensionName, strings.Join(existing, ", "), count)
}

// decode parses the model's JSON array reply.
func decode(text string) ([]model.Suggestion, error) {
	var out []model.Suggestion
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &out); err != nil {
		return nil, fmt.Errorf("decoding suggestions: %w", err)
	}
	for i, s := range out {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("suggestion %d has no name", i)
		}
	}
	return out, nil
}
