package suggest

import "context"

// New returns a Gemini suggester when apiKey is set and a Placeholder otherwise.
func New(ctx context.Context, apiKey string, opts ...Option) (Suggester, error) {
	if apiKey == "" {
		return Placeholder{}, nil
	}
	return NewGemini(ctx, apiKey, opts...)
}
