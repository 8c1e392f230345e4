package suggest

import "errors"

// ErrSuggestionFailed is returned, wrapping the cause, when the provider
// cannot produce suggestions.
var ErrSuggestionFailed = errors.New("failed to get suggestions from AI; check the API key and network connection")

// ErrMissingAPIKey is returned by NewGemini without a key.
var ErrMissingAPIKey = errors.New("genai api key is required")
