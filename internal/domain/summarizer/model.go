package summarizer

import "time"

// Config configures the dispatcher.
type Config struct {
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// Request is the body of POST /summarize. Pointers distinguish a missing
// field from an empty one: content and apiKey must be present, mode may be
// omitted.
type Request struct {
	Content []any   `json:"content" binding:"required"`
	APIKey  *string `json:"apiKey" binding:"required"`
	Mode    *string `json:"mode"`
}

// Prompt is an admitted request, ready for dispatch.
type Prompt struct {
	Mode   Mode
	Text   string
	APIKey string
}

// Response is returned by the sync endpoint.
type Response struct {
	Summary string `json:"summary"`
}
